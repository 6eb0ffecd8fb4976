// Package service runs the fetch pipeline: locate the latest release, pick
// an asset, download it, write it to disk, then show the release notes.
package service

import (
	"context"
	"fmt"
	"io"

	"github.com/zedfetch/zedfetch/internal/asset"
	"github.com/zedfetch/zedfetch/internal/binary"
	"github.com/zedfetch/zedfetch/internal/logging"
	"github.com/zedfetch/zedfetch/internal/release"
)

// ReleaseLocator finds the most recent release.
type ReleaseLocator interface {
	Latest(ctx context.Context) (*release.Release, error)
}

// AssetDownloader fetches the bytes behind an asset URL.
type AssetDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// AssetUnpacker writes downloaded bytes to disk.
type AssetUnpacker interface {
	Unpack(name string, data []byte) (*binary.UnpackResult, error)
}

// NotesPrinter renders a release body to the terminal.
type NotesPrinter interface {
	Print(body string) error
}

// Pauser blocks until the user acknowledges the output.
type Pauser interface {
	Wait(ctx context.Context) error
}

// Fetcher wires the pipeline stages together. Locator, Downloader, Unpacker,
// Notes, Pause and Out are required; Log and Clock default to no-op logging
// and the system clock.
type Fetcher struct {
	Locator    ReleaseLocator
	Downloader AssetDownloader
	Unpacker   AssetUnpacker
	Notes      NotesPrinter
	Pause      Pauser

	// Out receives the progress lines
	Out   io.Writer
	Log   logging.Logger
	Clock Clock

	// NoPause skips the final key press
	NoPause bool
}

// Run executes the pipeline once. Every error is fatal to the run; files
// already written stay on disk.
func (f *Fetcher) Run(ctx context.Context, sel asset.Selector) error {
	log := logging.OrNop(f.Log)

	rel, err := f.Locator.Latest(ctx)
	if err != nil {
		return err
	}
	f.printf("Found release %s\n", rel.Tag)
	log.Debug("release assets", "tag", rel.Tag, "count", len(rel.Assets))

	chosen, err := sel.Select(rel.Assets)
	if err != nil {
		return fmt.Errorf("select asset from release %s: %w", rel.Tag, err)
	}
	f.printf("Downloading asset %s\n", chosen.Name)

	dl, err := f.download(ctx, chosen)
	if err != nil {
		return err
	}
	log.Debug("download complete", "asset", chosen.Name, "url", dl.URL, "bytes", len(dl.Data), "duration", dl.DownloadTime)

	result, err := f.Unpacker.Unpack(chosen.Name, dl.Data)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", chosen.Name, err)
	}
	for _, file := range result.Files {
		f.printf("File: %s\n", file)
	}

	if rel.Body == nil {
		log.Debug("release has no notes", "tag", rel.Tag)
		return nil
	}

	if err := f.Notes.Print(*rel.Body); err != nil {
		return err
	}

	if f.NoPause {
		return nil
	}
	return f.Pause.Wait(ctx)
}

func (f *Fetcher) download(ctx context.Context, a release.Asset) (*binary.DownloadResult, error) {
	clock := f.Clock
	if clock == nil {
		clock = RealClock{}
	}

	start := clock.Now()
	data, err := f.Downloader.Download(ctx, a.URL)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", a.Name, err)
	}

	return &binary.DownloadResult{
		URL:          a.URL,
		Data:         data,
		DownloadTime: clock.Now().Sub(start),
	}, nil
}

func (f *Fetcher) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(f.Out, format, args...)
}
