package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/airbusgeo/sentinel-tiler/common"
	"github.com/airbusgeo/sentinel-tiler/service"
	"github.com/airbusgeo/sentinel-tiler/service/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	SentinelHubURL         = "https://services.sentinel-hub.com"
	sentinelHubProcessPath = "/api/v1/process"
	sentinelHubTokenPath   = "/auth/realms/main/protocol/openid-connect/token"
)

// SentinelHubImageProvider implements ImageProvider for the Sentinel Hub Process API
type SentinelHubImageProvider struct {
	client     *http.Client
	processURL string
}

type sentinelHubOptions struct {
	baseURL    string
	tokenURL   string
	httpClient *http.Client
}

// SentinelHubOption configures a SentinelHubImageProvider
type SentinelHubOption func(o *sentinelHubOptions)

// WithBaseURL sets the url of the service (default: SentinelHubURL)
func WithBaseURL(url string) SentinelHubOption {
	return func(o *sentinelHubOptions) {
		o.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithTokenURL sets the url of the authentication service (default: <baseURL>/auth/realms/main/protocol/openid-connect/token)
func WithTokenURL(url string) SentinelHubOption {
	return func(o *sentinelHubOptions) {
		o.tokenURL = url
	}
}

// WithHTTPClient sets the client used for the token and the process requests
func WithHTTPClient(client *http.Client) SentinelHubOption {
	return func(o *sentinelHubOptions) {
		o.httpClient = client
	}
}

// NewSentinelHubImageProvider creates a new ImageProvider from Sentinel Hub, authenticated with the oauth client credentials.
// The token is retrieved on the first request and refreshed when it expires.
func NewSentinelHubImageProvider(ctx context.Context, clientID, clientSecret string, opts ...SentinelHubOption) *SentinelHubImageProvider {
	o := sentinelHubOptions{baseURL: SentinelHubURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tokenURL == "" {
		o.tokenURL = o.baseURL + sentinelHubTokenPath
	}
	if o.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	}
	conf := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     o.tokenURL,
	}
	return &SentinelHubImageProvider{
		client:     conf.Client(ctx),
		processURL: o.baseURL + sentinelHubProcessPath,
	}
}

// Name implements ImageProvider
func (ip *SentinelHubImageProvider) Name() string {
	return "SentinelHub"
}

type shBounds struct {
	BBox       [4]float64 `json:"bbox"`
	Properties struct {
		CRS string `json:"crs"`
	} `json:"properties"`
}

type shTimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type shData struct {
	Type       string `json:"type"`
	DataFilter struct {
		TimeRange       shTimeRange `json:"timeRange"`
		MosaickingOrder string      `json:"mosaickingOrder"`
	} `json:"dataFilter"`
}

type shResponse struct {
	Identifier string `json:"identifier"`
	Format     struct {
		Type string `json:"type"`
	} `json:"format"`
}

type shProcessRequest struct {
	Input struct {
		Bounds shBounds `json:"bounds"`
		Data   []shData `json:"data"`
	} `json:"input"`
	Output struct {
		Width     int          `json:"width"`
		Height    int          `json:"height"`
		Responses []shResponse `json:"responses"`
	} `json:"output"`
	Evalscript string `json:"evalscript"`
}

func newProcessRequest(req common.FetchRequest) shProcessRequest {
	var pr shProcessRequest
	pr.Input.Bounds.BBox = req.AOI.BBox()
	pr.Input.Bounds.Properties.CRS = req.AOI.CRS.URL()

	data := shData{Type: req.Collection}
	// The whole last day is included
	data.DataFilter.TimeRange = shTimeRange{
		From: common.Day(req.Interval.Start).Format(time.RFC3339),
		To:   common.Day(req.Interval.End).Add(24*time.Hour - time.Second).Format(time.RFC3339),
	}
	data.DataFilter.MosaickingOrder = req.Mosaicking.String()
	pr.Input.Data = []shData{data}

	pr.Output.Width, pr.Output.Height = req.Width, req.Height
	response := shResponse{Identifier: "default"}
	response.Format.Type = req.MimeType
	pr.Output.Responses = []shResponse{response}
	pr.Evalscript = req.Evalscript
	return pr
}

// Fetch implements ImageProvider
func (ip *SentinelHubImageProvider) Fetch(ctx context.Context, req common.FetchRequest) (*common.RasterImage, error) {
	body, err := json.Marshal(newProcessRequest(req))
	if err != nil {
		return nil, fmt.Errorf("SentinelHubImageProvider.Marshal: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ip.processURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("SentinelHubImageProvider.NewRequest: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", req.MimeType)

	log.Logger(ctx).Sugar().Debugf("request %s %dx%d for %s", req.Collection, req.Width, req.Height, req.Interval)
	resp, err := ip.client.Do(httpReq)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return nil, service.MakeFatal(fmt.Errorf("SentinelHubImageProvider.Authenticate: %w", err))
		}
		return nil, service.MakeTemporary(fmt.Errorf("SentinelHubImageProvider.Do: %w", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, service.MakeTemporary(fmt.Errorf("SentinelHubImageProvider.ReadAll: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil, ErrNoData{Provider: ip.Name(), Interval: req.Interval}
	case resp.StatusCode != http.StatusOK:
		// Temporary on 429 and 5xx, fatal on 401 and 403
		return nil, fmt.Errorf("SentinelHubImageProvider[%s]: %w", req.Interval, &service.HTTPError{Code: resp.StatusCode, Status: resp.Status, Body: string(data)})
	case len(data) == 0:
		return nil, ErrNoData{Provider: ip.Name(), Interval: req.Interval}
	}

	mimeType := req.MimeType
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		mimeType = strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	}
	log.Logger(ctx).Sugar().Debugf("received %s (%s) for %s", fmtBytes(int64(len(data))), mimeType, req.Interval)

	return &common.RasterImage{
		AOI:      req.AOI,
		Interval: req.Interval,
		Width:    req.Width,
		Height:   req.Height,
		Bands:    req.Bands,
		MimeType: mimeType,
		Data:     data,
	}, nil
}
