package asset

import (
	"fmt"
	"strings"

	"github.com/zedfetch/zedfetch/internal/fault"
	"github.com/zedfetch/zedfetch/internal/release"
)

// Selector chooses one asset from a release's asset list
type Selector interface {
	Select(assets []release.Asset) (release.Asset, error)
}

// First selects the first listed asset
type First struct{}

// Select returns assets[0]
func (First) Select(assets []release.Asset) (release.Asset, error) {
	if len(assets) == 0 {
		return release.Asset{}, fmt.Errorf("no asset found on latest release: %w", fault.ErrNotFound)
	}
	return assets[0], nil
}

// ByKind selects the asset whose name matches the kind's filename, ignoring case
type ByKind struct {
	Kind Kind
}

// Select scans assets in order and returns the first name match
func (b ByKind) Select(assets []release.Asset) (release.Asset, error) {
	filename := b.Kind.Filename()
	if filename == "" {
		return release.Asset{}, fmt.Errorf("invalid asset %q: %w", b.Kind, fault.ErrInvalidArgument)
	}

	for _, a := range assets {
		if strings.EqualFold(a.Name, filename) {
			return a, nil
		}
	}

	return release.Asset{}, fmt.Errorf("asset %s (%s) not found on latest release: %w", b.Kind, filename, fault.ErrNotFound)
}
