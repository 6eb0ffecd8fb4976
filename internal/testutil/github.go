package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// ReleaseFixture describes the release served by a GitHubServer.
type ReleaseFixture struct {
	Tag  string
	Body *string
	// AssetNames lists assets in the order the API returns them.
	AssetNames []string
}

// GitHubServer is a fake release API. It serves
// GET /repos/{owner}/{repo}/releases/latest and GET /download/{name}.
type GitHubServer struct {
	*httptest.Server

	owner    string
	repo     string
	release  *ReleaseFixture
	assets   map[string][]byte
	requests atomic.Int64
}

// NewGitHubServer starts a fake release API for owner/repo.
// A nil release makes the latest-release endpoint answer 404.
// Assets maps asset names to the bytes served for their download URL; names
// listed in the fixture but missing from assets download as 404.
// The server is closed automatically when the test ends.
func NewGitHubServer(t *testing.T, owner, repo string, release *ReleaseFixture, assets map[string][]byte) *GitHubServer {
	t.Helper()

	s := &GitHubServer{
		owner:   owner,
		repo:    repo,
		release: release,
		assets:  assets,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/{owner}/{repo}/releases/latest", s.handleLatest)
	mux.HandleFunc("GET /download/{name}", s.handleDownload)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

// BaseURL returns the API base URL, with the trailing slash go-github expects.
func (s *GitHubServer) BaseURL() string {
	return s.URL + "/"
}

// DownloadURL returns the URL the server advertises for an asset.
func (s *GitHubServer) DownloadURL(name string) string {
	return s.URL + "/download/" + name
}

// Requests returns how many HTTP requests the server has received.
func (s *GitHubServer) Requests() int {
	return int(s.requests.Load())
}

type assetJSON struct {
	Name               string `json:"name"`
	Size               int    `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type releaseJSON struct {
	TagName string      `json:"tag_name"`
	Body    *string     `json:"body"`
	Assets  []assetJSON `json:"assets"`
}

func (s *GitHubServer) handleLatest(w http.ResponseWriter, r *http.Request) {
	if s.release == nil || r.PathValue("owner") != s.owner || r.PathValue("repo") != s.repo {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	payload := releaseJSON{
		TagName: s.release.Tag,
		Body:    s.release.Body,
		Assets:  []assetJSON{},
	}
	for _, name := range s.release.AssetNames {
		payload.Assets = append(payload.Assets, assetJSON{
			Name:               name,
			Size:               len(s.assets[name]),
			BrowserDownloadURL: s.DownloadURL(name),
		})
	}

	writeJSON(w, http.StatusOK, payload)
}

func (s *GitHubServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	data, ok := s.assets[r.PathValue("name")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
