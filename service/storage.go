package service

import (
	"compress/flate"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	gstorage "cloud.google.com/go/storage"
	"github.com/airbusgeo/geocube/interface/storage"
	"github.com/airbusgeo/geocube/interface/storage/uri"
	"github.com/mholt/archiver"
)

// Extension of a raster file
type Extension string

// Some supported extensions
const (
	NoExtension    Extension = ""
	ExtensionPNG   Extension = "png"
	ExtensionJPG   Extension = "jpg"
	ExtensionJPEG  Extension = "jpeg"
	ExtensionGTiff Extension = "tif"
	ExtensionTIFF  Extension = "tiff"
	ExtensionZIP   Extension = "zip"
)

// ErrFileNotFound is returned by Export when a file to export does not exist
type ErrFileNotFound struct {
	File string
}

func (e ErrFileNotFound) Error() string {
	return fmt.Sprintf("File not found: %s", e.File)
}

func isErrNotFound(err error) bool {
	var epath *os.PathError
	return errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, gstorage.ErrObjectNotExist) || errors.Is(err, os.ErrNotExist) ||
		(errors.As(err, &epath) && os.IsNotExist(epath))
}

// Storage is a service to export files to a storage
type Storage interface {
	// Export persists the files of localdir into the storage, under the prefix, and returns their uris.
	// If asZip is true, the files are exported as a single archive named <prefix>.zip
	// Raise ErrFileNotFound
	Export(ctx context.Context, localdir, prefix string, files []string, asZip bool) ([]string, error)
}

// StorageStrategy implements Storage using geocube.Strategy
type StorageStrategy struct {
	storage storage.Strategy
	uri     uri.DefaultUri
}

// NewStorageStrategy creates a new StorageStrategy from an uri (gs://bucket/path, file:///path) or a local path
func NewStorageStrategy(ctx context.Context, storageURI string) (*StorageStrategy, error) {
	if !strings.Contains(storageURI, "://") {
		abs, err := filepath.Abs(storageURI)
		if err != nil {
			return nil, fmt.Errorf("NewStorageStrategy.Abs: %w", err)
		}
		storageURI = abs
	}
	uri, err := uri.ParseUri(storageURI)
	if err != nil {
		return nil, fmt.Errorf("NewStorageStrategy.ParseURI: %w", err)
	}

	storageClient, err := uri.NewStorageStrategy(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewStorageStrategy: %w", err)
	}

	return &StorageStrategy{storage: storageClient, uri: uri}, nil
}

// Export implements Storage
func (ss *StorageStrategy) Export(ctx context.Context, localdir, prefix string, files []string, asZip bool) ([]string, error) {
	srcs := make([]string, len(files))
	for i, f := range files {
		srcs[i] = filepath.Join(localdir, f)
		if _, err := os.Stat(srcs[i]); errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound{srcs[i]}
		}
	}

	if asZip {
		tmpDir, err := os.MkdirTemp("", "export")
		if err != nil {
			return nil, fmt.Errorf("Export.MkdirTemp: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		archiveName := WithExt(path.Base(prefix), ExtensionZIP)
		dst := filepath.Join(tmpDir, archiveName)
		zipper := archiver.NewZip()
		zipper.CompressionLevel = flate.BestSpeed
		if err := zipper.Archive(srcs, dst); err != nil {
			return nil, fmt.Errorf("Export.Archive: %w", err)
		}
		uri, err := ss.upload(ctx, dst, path.Join(path.Dir(prefix), archiveName))
		if err != nil {
			return nil, err
		}
		return []string{uri}, nil
	}

	uris := make([]string, 0, len(files))
	for i, f := range files {
		uri, err := ss.upload(ctx, srcs[i], path.Join(prefix, f))
		if err != nil {
			return uris, err
		}
		uris = append(uris, uri)
	}
	return uris, nil
}

// Import downloads the file name from the storage to localFile
// Raise ErrFileNotFound
func (ss *StorageStrategy) Import(ctx context.Context, name, localFile string) error {
	src := ss.getPath(name)
	if err := ss.storage.DownloadToFile(ctx, src, localFile); err != nil {
		if isErrNotFound(err) {
			return ErrFileNotFound{src}
		}
		return fmt.Errorf("Import.DownloadToFile from %s: %w", src, err)
	}
	return nil
}

// URI returns the root uri of the storage
func (ss *StorageStrategy) URI() string {
	return ss.uri.String()
}

func (ss *StorageStrategy) upload(ctx context.Context, src, name string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("Export.Open: %w", err)
	}
	defer f.Close()

	dst := ss.getPath(name)
	if err := ss.storage.UploadFile(ctx, dst, f); err != nil {
		return "", fmt.Errorf("Export.UploadFile to %s: %w", dst, err)
	}
	return dst, nil
}

// getPath returns the uri of the file in the storage
func (ss *StorageStrategy) getPath(name string) string {
	uri := ss.uri.String()
	if !strings.HasSuffix(uri, "/") {
		uri += "/"
	}
	return uri + strings.TrimPrefix(path.Clean("/"+name), "/")
}
