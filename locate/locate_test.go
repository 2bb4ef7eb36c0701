// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package locate

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfgctl/cfgctl/pattern"
)

func testSink() log.Interface {
	return &log.Logger{Handler: discard.Default, Level: log.DebugLevel}
}

// seedTree writes a small filesystem tree and returns its root.
func seedTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"app.toml",
		"app.yaml",
		"zz.json",
		"nested/app.toml",
		"nested/deeper/app.json",
		"other/readme.txt",
	}
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))
	}

	return root
}

func TestCandidatesOrderIsDeterministic(t *testing.T) {
	root := seedTree(t)

	pat, err := pattern.Compile("**/app.*", pattern.DefaultFlags())
	require.NoError(t, err)

	first := Candidates([]string{root}, pat, testSink())
	second := Candidates([]string{root}, pat, testSink())

	require.NotEmpty(t, first)
	assert.Equal(t, first, second, "unchanged tree must yield identical ordering")

	want := []string{
		filepath.Join(root, "app.toml"),
		filepath.Join(root, "app.yaml"),
		filepath.Join(root, "nested", "app.toml"),
		filepath.Join(root, "nested", "deeper", "app.json"),
	}
	assert.Equal(t, want, first)
}

func TestCandidatesSkipsMissingRoots(t *testing.T) {
	root := seedTree(t)

	pat, err := pattern.Compile("**/app.*", pattern.DefaultFlags())
	require.NoError(t, err)

	got := Candidates([]string{filepath.Join(root, "no-such-dir"), root}, pat, testSink())
	assert.Len(t, got, 4)
}

func TestCandidatesExcludesDirectories(t *testing.T) {
	root := t.TempDir()
	// A directory whose name matches the pattern must not be yielded.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app.toml"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.yaml"), []byte("a: 1\n"), 0o644))

	pat, err := pattern.Compile("**/app.*", pattern.DefaultFlags())
	require.NoError(t, err)

	got := Candidates([]string{root}, pat, testSink())
	assert.Equal(t, []string{filepath.Join(root, "app.yaml")}, got)
}

func TestCandidatesFollowsSymlinkedDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	real := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(real, "app.toml"), []byte("x = 1\n"), 0o644))

	root := t.TempDir()
	link := filepath.Join(root, "linked")
	require.NoError(t, os.Symlink(real, link))

	pat, err := pattern.Compile("**/app.*", pattern.DefaultFlags())
	require.NoError(t, err)

	got := Candidates([]string{root}, pat, testSink())
	assert.Equal(t, []string{filepath.Join(link, "app.toml")}, got)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/app.toml"))
	assert.True(t, IsURL("http://example.com/app.toml"))
	assert.False(t, IsURL("/etc/app.toml"))
	assert.False(t, IsURL("app.toml"))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"app": {"flag": true}}`)
	}))
	defer srv.Close()

	data, err := Fetch(t.Context(), srv.URL+"/app.json", 2*time.Second, testSink())
	require.NoError(t, err)
	assert.JSONEq(t, `{"app": {"flag": true}}`, string(data))
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(t.Context(), srv.URL+"/app.json", 2*time.Second, testSink())
	assert.Error(t, err)
}

func TestFetchConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Fetch(t.Context(), url+"/app.json", 1*time.Second, testSink())
	assert.Error(t, err)
}
