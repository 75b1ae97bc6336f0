package download

import (
	"context"
	"fmt"
	"io"

	"github.com/devmatteini/dag/log"
	"github.com/devmatteini/dag/models"
	"github.com/spf13/afero"
)

// Source opens the byte stream of an asset. size is -1 when unknown.
type Source interface {
	DownloadAssetStream(ctx context.Context, asset models.Asset) (stream io.ReadCloser, size int64, err error)
}

// Progress is told when a download starts and stops, and receives every
// byte written to the destination.
type Progress interface {
	io.Writer
	Start(name, destination string)
	SetTotal(size int64)
	Stop()
}

// StreamError means the asset stream could not be opened.
type StreamError struct {
	Asset string
	Err   error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("Error downloading asset %s: %v", e.Asset, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// CreateFileError means the destination file could not be created.
type CreateFileError struct {
	Path string
	Err  error
}

func (e *CreateFileError) Error() string {
	return fmt.Sprintf("Failed to create the file %s: %v", e.Path, e.Err)
}

func (e *CreateFileError) Unwrap() error { return e.Err }

// CopyError means the download broke off while writing the destination.
type CopyError struct {
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("Failed to write the file %s: %v", e.Path, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// OutputPath is output when set, otherwise the asset name relative to the
// working directory.
func OutputPath(output, assetName string) string {
	if output != "" {
		return output
	}
	return assetName
}

type Downloader struct {
	Source   Source
	Fs       afero.Fs
	Progress Progress
}

func NewDownloader(source Source, progress Progress) *Downloader {
	return NewDownloaderWithFS(afero.NewOsFs(), source, progress)
}

func NewDownloaderWithFS(fs afero.Fs, source Source, progress Progress) *Downloader {
	if progress == nil {
		progress = NoProgress{}
	}
	return &Downloader{
		Source:   source,
		Fs:       fs,
		Progress: progress,
	}
}

// Download writes the whole content of asset to destination, replacing
// any existing file. On a failed copy the partial file is removed.
func (d *Downloader) Download(ctx context.Context, asset models.Asset, destination string) error {
	d.Progress.Start(asset.Name, destination)

	stream, size, err := d.Source.DownloadAssetStream(ctx, asset)
	if err != nil {
		return &StreamError{Asset: asset.Name, Err: err}
	}
	defer stream.Close()
	d.Progress.SetTotal(size)

	file, err := d.Fs.Create(destination)
	if err != nil {
		return &CreateFileError{Path: destination, Err: err}
	}

	written, err := io.Copy(file, io.TeeReader(stream, d.Progress))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := d.Fs.Remove(destination); rmErr != nil {
			log.G(ctx).Warnf("Could not remove partial download %s: %v", destination, rmErr)
		}
		return &CopyError{Path: destination, Err: err}
	}
	if size >= 0 && written != size {
		if rmErr := d.Fs.Remove(destination); rmErr != nil {
			log.G(ctx).Warnf("Could not remove partial download %s: %v", destination, rmErr)
		}
		return &CopyError{Path: destination, Err: fmt.Errorf("expected %d bytes, got %d", size, written)}
	}

	d.Progress.Stop()
	log.G(ctx).Debugf("Wrote %d bytes to %s", written, destination)
	return nil
}

// NoProgress discards all progress notifications.
type NoProgress struct{}

func (NoProgress) Write(p []byte) (int, error) { return len(p), nil }
func (NoProgress) Start(string, string)        {}
func (NoProgress) SetTotal(int64)              {}
func (NoProgress) Stop()                       {}
