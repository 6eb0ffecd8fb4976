package platform

import (
	"fmt"
	"strings"
)

// Product is the User-Agent product token
const Product = "zedfetch"

// UserAgent formats the header sent to the release API and the asset host,
// e.g. "zedfetch/1.2.0 (linux; amd64; ubuntu 22.04)". A nil info yields the
// bare product token.
func UserAgent(version string, info *Info) string {
	if version == "" {
		version = "dev"
	}
	ua := Product + "/" + version
	if info == nil {
		return ua
	}

	parts := []string{info.OS, info.Arch}
	if distro := info.GetDistro(); distro != nil {
		parts = append(parts, strings.TrimSpace(distro.ID+" "+distro.Version))
	}

	return fmt.Sprintf("%s (%s)", ua, strings.Join(parts, "; "))
}
