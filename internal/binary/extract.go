package binary

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zedfetch/zedfetch/internal/fault"
	"github.com/zedfetch/zedfetch/internal/logging"
	"github.com/zedfetch/zedfetch/internal/platform"
)

// Unpacker writes a downloaded asset into a destination directory, either by
// extracting it (archives) or by saving it as-is (executables).
// Existing files with the same name are overwritten.
type Unpacker struct {
	destDir string
	host    *platform.Info
	log     logging.Logger
}

// UnpackerOption configures an Unpacker
type UnpackerOption func(*Unpacker)

// WithDestDir sets the destination directory (default: the working directory)
func WithDestDir(dir string) UnpackerOption {
	return func(u *Unpacker) { u.destDir = dir }
}

// WithHost records the detected host so saving a Windows executable elsewhere can be flagged
func WithHost(info *platform.Info) UnpackerOption {
	return func(u *Unpacker) { u.host = info }
}

// WithUnpackLogger sets the logger
func WithUnpackLogger(l logging.Logger) UnpackerOption {
	return func(u *Unpacker) { u.log = logging.OrNop(l) }
}

// NewUnpacker creates a new unpacker
func NewUnpacker(opts ...UnpackerOption) *Unpacker {
	u := &Unpacker{
		destDir: ".",
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Extension returns the lower-cased text after the last "." in name.
// Names without an extension wrap fault.ErrInvalidFormat.
func Extension(name string) (string, error) {
	base := filepath.Base(name)
	i := strings.LastIndex(base, ".")
	if i < 0 || i == len(base)-1 {
		return "", fmt.Errorf("asset %q has no extension: %w", name, fault.ErrInvalidFormat)
	}
	return strings.ToLower(base[i+1:]), nil
}

// Unpack dispatches on the extension of name and writes data accordingly.
func (u *Unpacker) Unpack(name string, data []byte) (*UnpackResult, error) {
	ext, err := Extension(name)
	if err != nil {
		return nil, err
	}

	switch Format(ext) {
	case FormatArchive:
		files, err := u.extractZip(data)
		if err != nil {
			return nil, err
		}
		return &UnpackResult{Format: FormatArchive, Files: files}, nil

	case FormatExecutable:
		file, err := u.writeExecutable(name, data)
		if err != nil {
			return nil, err
		}
		return &UnpackResult{Format: FormatExecutable, Files: []string{file}}, nil

	default:
		return nil, &fault.UnsupportedFormatError{Ext: ext}
	}
}

// writeExecutable saves data as <destDir>/<name> with executable permissions
func (u *Unpacker) writeExecutable(name string, data []byte) (string, error) {
	if u.host != nil && !u.host.IsWindows() {
		u.log.Warn("saving a Windows executable on a non-Windows host", "asset", name, "os", u.host.OS)
	}

	file := filepath.Base(name)
	target := filepath.Join(u.destDir, file)

	if err := os.WriteFile(target, data, 0755); err != nil {
		return "", fmt.Errorf("write %s: %w: %w", target, fault.ErrIO, err)
	}

	u.log.Debug("wrote executable", "path", target, "bytes", len(data))
	return file, nil
}

// extractZip extracts every entry of the in-memory zip archive into destDir
func (u *Unpacker) extractZip(data []byte) ([]string, error) {
	// ErrInsecurePath comes with a usable reader; the traversal check below covers it
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("open zip archive: %w: %w", fault.ErrCorruptArchive, err)
	}

	// Resolve the destination so the traversal check works for relative dirs such as "."
	destDir, err := filepath.Abs(u.destDir)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w: %w", fault.ErrIO, err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w: %w", fault.ErrIO, err)
	}

	files := make([]string, 0, len(zipReader.File))
	for _, f := range zipReader.File {
		target := filepath.Join(destDir, f.Name)
		if target == destDir {
			// "./" and similar entries name the destination itself
			u.log.Debug("skipping archive entry for the destination root", "entry", f.Name)
			continue
		}

		// Security check: prevent path traversal
		if !strings.HasPrefix(target, destDir+string(os.PathSeparator)) {
			return files, fmt.Errorf("illegal file path %s: %w", f.Name, fault.ErrCorruptArchive)
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return files, fmt.Errorf("create directory %s: %w: %w", target, fault.ErrIO, err)
			}

		case mode.IsRegular():
			if err := writeZipEntry(f, target); err != nil {
				return files, err
			}

		default:
			// Skip symlinks and other special entries
			u.log.Debug("skipping non-regular archive entry", "entry", f.Name, "mode", mode.String())
			continue
		}

		files = append(files, f.Name)
	}

	return files, nil
}

// writeZipEntry copies one regular archive entry to target
func writeZipEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w: %w", target, fault.ErrIO, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w: %w", f.Name, fault.ErrCorruptArchive, err)
	}
	defer src.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file %s: %w: %w", target, fault.ErrIO, err)
	}

	if _, err := io.Copy(outFile, src); err != nil {
		outFile.Close()
		if isZipFormatError(err) {
			return fmt.Errorf("read entry %s: %w: %w", f.Name, fault.ErrCorruptArchive, err)
		}
		return fmt.Errorf("write file %s: %w: %w", target, fault.ErrIO, err)
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("close file %s: %w: %w", target, fault.ErrIO, err)
	}

	return nil
}

func isZipFormatError(err error) bool {
	return errors.Is(err, zip.ErrChecksum) ||
		errors.Is(err, zip.ErrFormat) ||
		errors.Is(err, zip.ErrAlgorithm) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
