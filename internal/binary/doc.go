// Package binary downloads release assets and writes them into the working
// directory.
//
// # Formats
//
// The handling of an asset is chosen by its file extension, compared
// case-insensitively:
//   - zip: the archive is opened in memory and every entry is extracted
//   - exe: the bytes are written verbatim under the asset's own name
//
// Any other extension is rejected with fault.UnsupportedFormatError, and a
// name without an extension with fault.ErrInvalidFormat.
//
// # Overwrites and partial failure
//
// Files are written without checking for existing ones; a same-named file is
// replaced. If extraction fails partway through an archive, entries written
// so far stay on disk.
//
// # Usage
//
//	d := binary.NewDownloader(binary.WithUserAgent(ua))
//	data, err := d.Download(ctx, asset.URL)
//	if err != nil {
//	    return err
//	}
//
//	result, err := binary.NewUnpacker().Unpack(asset.Name, data)
//	if err != nil {
//	    return err
//	}
//	for _, f := range result.Files {
//	    fmt.Println("File:", f)
//	}
//
// # Architecture
//
// The package is organized into two components:
//   - Downloader: single-attempt HTTP download into memory
//   - Unpacker: extension dispatch, zip extraction, executable write
package binary
