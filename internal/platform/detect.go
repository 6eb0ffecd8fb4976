package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct {
	goos   string
	goarch string
	// distro looks up the Linux distribution; replaced in tests
	distro func(ctx context.Context) (platform, family, version string, err error)
}

// NewDetector creates a detector for the running host.
func NewDetector() Detector {
	return &RealDetector{
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
		distro: host.PlatformInformationWithContext,
	}
}

// Detect returns OS and architecture from the Go runtime and, on Linux,
// distribution details from gopsutil.
//
// A failed distribution lookup leaves the distro fields empty. Only a
// cancelled context is an error.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      d.goos,
		Arch:    normalizeArch(d.goarch),
		ArchRaw: d.goarch,
	}

	if d.goos != "linux" || d.distro == nil {
		return info, nil
	}

	platform, family, version, err := d.distro(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return info, nil
	}

	platform = normalizePlatform(platform)
	if platform != "" {
		info.Platform = platform
		info.Family = mapFamily(family)
		info.Version = normalizePlatform(version)
	}

	return info, nil
}
