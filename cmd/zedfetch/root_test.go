package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zedfetch/zedfetch/internal/fault"
	"github.com/zedfetch/zedfetch/internal/release"
	"github.com/zedfetch/zedfetch/internal/testutil"
)

type cliRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func execute(t *testing.T, srv *testutil.GitHubServer, stdin string, args ...string) (*cliRun, error) {
	t.Helper()

	r := &cliRun{}
	opts := &options{
		stdin:  strings.NewReader(stdin),
		stdout: &r.stdout,
		stderr: &r.stderr,
	}
	if srv != nil {
		opts.apiBaseURL = srv.BaseURL()
	}

	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	return r, cmd.ExecuteContext(context.Background())
}

func newServer(t *testing.T, body *string) *testutil.GitHubServer {
	t.Helper()
	return testutil.NewGitHubServer(t, release.DefaultOwner, release.DefaultRepo, &testutil.ReleaseFixture{
		Tag:        "v0.150.0",
		Body:       body,
		AssetNames: []string{"zed.exe", "zed-opengl.exe"},
	}, map[string][]byte{
		"zed.exe":        []byte("vulkan build"),
		"zed-opengl.exe": []byte("opengl build"),
	})
}

func TestHelp(t *testing.T) {
	for _, flag := range []string{"--help", "-h"} {
		t.Run(flag, func(t *testing.T) {
			srv := newServer(t, nil)

			r, err := execute(t, srv, "", flag)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}

			out := r.stdout.String()
			if !strings.HasPrefix(out, "Usage: zedfetch [asset]\n") {
				t.Errorf("help should start with the usage line:\n%s", out)
			}
			if !strings.Contains(out, "Possible values: OpenGl, ZipOpenGl, Vulkan, ZipVulkan") {
				t.Errorf("help missing identifier list:\n%s", out)
			}
			for _, f := range []string{"--no-pause", "--verbose", "--version"} {
				if !strings.Contains(out, f) {
					t.Errorf("help missing flag %s:\n%s", f, out)
				}
			}
			if n := srv.Requests(); n != 0 {
				t.Errorf("help made %d requests, want 0", n)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	srv := newServer(t, nil)

	r, err := execute(t, srv, "", "--version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got, want := r.stdout.String(), "zedfetch "+Version+"\n"; got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
	if srv.Requests() != 0 {
		t.Error("--version should not touch the network")
	}
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown_identifier", args: []string{"foo"}},
		{name: "too_many", args: []string{"Vulkan", "OpenGl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, nil)

			_, err := execute(t, srv, "", tt.args...)
			if !errors.Is(err, fault.ErrInvalidArgument) {
				t.Fatalf("error = %v, want ErrInvalidArgument", err)
			}
			if n := srv.Requests(); n != 0 {
				t.Errorf("made %d requests, want 0", n)
			}
		})
	}
}

func TestUnknownIdentifierListsValues(t *testing.T) {
	_, err := execute(t, nil, "", "foo")
	if err == nil || !strings.Contains(err.Error(), "OpenGl, ZipOpenGl, Vulkan, ZipVulkan") {
		t.Errorf("error should list possible values, got %v", err)
	}
}

func TestRunDownloadsSelectedAsset(t *testing.T) {
	dir := testutil.InTempDir(t)
	srv := newServer(t, testutil.StringPtr("# v0.150.0\n\n- faster startup"))

	r, err := execute(t, srv, "", "opengl", "--no-pause")
	if err != nil {
		t.Fatalf("execute: %v\nstderr: %s", err, r.stderr.String())
	}

	out := r.stdout.String()
	for _, want := range []string{
		"Found release v0.150.0\n",
		"Downloading asset zed-opengl.exe\n",
		"File: zed-opengl.exe\n",
		"# v0.150.0",
		"* faster startup",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Press any key") {
		t.Error("--no-pause should skip the prompt")
	}

	tree := testutil.ReadTree(t, dir)
	if tree["zed-opengl.exe"] != "opengl build" {
		t.Errorf("unexpected files: %v", tree)
	}
}

func TestRunDefaultsToFirstAssetAndPauses(t *testing.T) {
	dir := testutil.InTempDir(t)
	srv := newServer(t, testutil.StringPtr("Bug fixes."))

	r, err := execute(t, srv, "\n")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := r.stdout.String()
	if !strings.Contains(out, "Downloading asset zed.exe\n") {
		t.Errorf("first asset not chosen:\n%s", out)
	}
	if !strings.HasSuffix(out, "Press any key to continue...\n") {
		t.Errorf("output should end with the prompt:\n%q", out)
	}
	if _, ok := testutil.ReadTree(t, dir)["zed.exe"]; !ok {
		t.Error("zed.exe not written")
	}
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	testutil.InTempDir(t)
	srv := newServer(t, nil)

	r, err := execute(t, srv, "", "-v", "Vulkan")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(r.stderr.String(), "download complete") {
		t.Errorf("debug logs missing from stderr:\n%s", r.stderr.String())
	}
	if strings.Contains(r.stdout.String(), "download complete") {
		t.Error("logs leaked to stdout")
	}
}

func TestRunMissingRelease(t *testing.T) {
	testutil.InTempDir(t)
	srv := testutil.NewGitHubServer(t, release.DefaultOwner, release.DefaultRepo, nil, nil)

	_, err := execute(t, srv, "")
	if !errors.Is(err, fault.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
