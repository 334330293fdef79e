package provider

import (
	"errors"
	"fmt"

	"github.com/airbusgeo/sentinel-tiler/common"
)

// ErrNoData is an error returned when no image is available for the requested interval
type ErrNoData struct {
	Provider string
	Interval common.Interval
}

func (e ErrNoData) Error() string {
	return fmt.Sprintf("%s: no data available for %s", e.Provider, e.Interval)
}

// IsNoData returns true if the error is (or wraps) an ErrNoData
func IsNoData(err error) bool {
	var e ErrNoData
	return errors.As(err, &e)
}

func fmtBytes(bytes int64) string {
	v := float64(bytes)
	switch {
	case v > 1<<30:
		return fmt.Sprintf("%.2fGo", v/(1<<30))
	case v > 1<<20:
		return fmt.Sprintf("%.2fMo", v/(1<<20))
	case v > 1<<10:
		return fmt.Sprintf("%.2fko", v/(1<<10))
	default:
		return fmt.Sprintf("%.2fo", v)
	}
}
