// Package release locates the latest published release of a repository on
// GitHub and reduces it to the fields the fetch pipeline needs.
package release

const (
	// DefaultOwner is the owner of the repository zedfetch tracks
	DefaultOwner = "MolotovCherry"
	// DefaultRepo is the repository zedfetch tracks
	DefaultRepo = "zed-windows-builds"
)

// Release is the most recent published release of a repository
type Release struct {
	Tag string
	// Body is the release description in markdown. Nil when the release has none.
	Body   *string
	Assets []Asset
}

// Asset is a single downloadable file attached to a release
type Asset struct {
	Name string
	URL  string
	Size int
}
