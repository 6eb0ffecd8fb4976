package binary

import (
	"time"
)

// Format is the handling an asset receives, chosen by its file extension
type Format string

const (
	// FormatArchive is extracted entry by entry into the destination directory
	FormatArchive Format = "zip"
	// FormatExecutable is written verbatim under the asset's own name
	FormatExecutable Format = "exe"
)

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}

// UnpackResult describes what an Unpack call wrote to disk
type UnpackResult struct {
	Format Format
	// Files lists written paths relative to the destination directory, in archive order
	Files []string
}

// DownloadResult contains information about a completed download
type DownloadResult struct {
	URL          string
	Data         []byte
	DownloadTime time.Duration
}
