// Package asset picks which release asset to download, either the first
// one listed or the one mapped from a named build kind.
package asset

import (
	"fmt"
	"strings"

	"github.com/zedfetch/zedfetch/internal/fault"
)

// Kind is a logical build identifier that maps to one asset filename
type Kind string

const (
	KindOpenGl    Kind = "OpenGl"
	KindZipOpenGl Kind = "ZipOpenGl"
	KindVulkan    Kind = "Vulkan"
	KindZipVulkan Kind = "ZipVulkan"
)

type kindEntry struct {
	kind     Kind
	filename string
}

// kinds is ordered; help output and error messages list identifiers in this order.
var kinds = []kindEntry{
	{KindOpenGl, "zed-opengl.exe"},
	{KindZipOpenGl, "zed-opengl.zip"},
	{KindVulkan, "zed.exe"},
	{KindZipVulkan, "zed.zip"},
}

func init() {
	if err := validateKinds(kinds); err != nil {
		panic(err)
	}
}

// validateKinds rejects tables where an identifier or filename appears twice
// (case-insensitively).
func validateKinds(entries []kindEntry) error {
	seenKinds := make(map[string]struct{}, len(entries))
	seenFiles := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		k := strings.ToLower(string(e.kind))
		if _, dup := seenKinds[k]; dup {
			return fmt.Errorf("duplicate asset kind %q", e.kind)
		}
		seenKinds[k] = struct{}{}

		f := strings.ToLower(e.filename)
		if f == "" {
			return fmt.Errorf("asset kind %q has no filename", e.kind)
		}
		if _, dup := seenFiles[f]; dup {
			return fmt.Errorf("duplicate asset filename %q", e.filename)
		}
		seenFiles[f] = struct{}{}
	}

	return nil
}

// String returns the identifier
func (k Kind) String() string {
	return string(k)
}

// Filename returns the asset filename the kind maps to, or "" for an unknown kind
func (k Kind) Filename() string {
	for _, e := range kinds {
		if e.kind == k {
			return e.filename
		}
	}
	return ""
}

// Kinds returns every identifier in table order
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	for i, e := range kinds {
		out[i] = e.kind
	}
	return out
}

// KindNames returns the identifiers joined with ", "
func KindNames() string {
	all := Kinds()
	names := make([]string, len(all))
	for i, k := range all {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// ParseKind resolves s to a Kind, ignoring case
func ParseKind(s string) (Kind, error) {
	for _, e := range kinds {
		if strings.EqualFold(string(e.kind), s) {
			return e.kind, nil
		}
	}
	return "", fmt.Errorf("invalid asset %q (possible values: %s): %w", s, KindNames(), fault.ErrInvalidArgument)
}
