// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cfgctl

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfgctl/cfgctl/format"
	"github.com/cfgctl/cfgctl/pattern"
	"github.com/cfgctl/cfgctl/schema"
)

func testSink() log.Interface {
	return &log.Logger{Handler: discard.Default, Level: log.DebugLevel}
}

func testTree() *schema.Command {
	return &schema.Command{
		Name: "app",
		Params: []*schema.Node{
			{Name: "flag", Type: schema.TypeBool, Default: false},
		},
		Commands: []*schema.Command{
			{
				Name: "sub",
				Params: []*schema.Node{
					{Name: "count", Type: schema.TypeInt, Default: 10},
				},
			},
		},
	}
}

// writeFile drops content into dir under name and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestResolveFromDocument covers a full pass end to end: document
// values win over defaults, and a CLI value then wins over the document.
func TestResolveFromDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yaml", "app:\n  flag: true\n  sub:\n    count: 3\n")

	opts := Options{Program: "app", Roots: []string{dir}, Log: testSink()}

	res, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, "yaml", res.Source.Format)

	assert.Equal(t, ResolvedValue{ID: "app.flag", Value: true, Provenance: ProvenanceFile},
		res.Values["app.flag"])
	assert.Equal(t, ResolvedValue{ID: "app.sub.count", Value: 3, Provenance: ProvenanceFile},
		res.Values["app.sub.count"])

	// Now with a CLI override for count: flag unchanged, count from CLI.
	opts.CLIValues = map[string]any{"app.sub.count": 99}
	res, err = Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	assert.Equal(t, ResolvedValue{ID: "app.sub.count", Value: 99, Provenance: ProvenanceCLI},
		res.Values["app.sub.count"])
	assert.Equal(t, ProvenanceFile, res.Values["app.flag"].Provenance)
}

// TestResolveSkipsEmptyDocument exercises the skip policy:
// a.toml parses to an empty document and is skipped, so b.json wins even
// though it comes later in locator order.
func TestResolveSkipsEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.toml", "# nothing but a comment\n")
	writeFile(t, dir, "b.json", `{"app": {"flag": true}}`)

	opts := Options{
		Program: "app",
		Pattern: "**/*.{toml,json}",
		Roots:   []string{dir},
		Log:     testSink(),
	}

	res, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, filepath.Join(dir, "b.json"), res.Source.Path)
	assert.Equal(t, "json", res.Source.Format)
	assert.Equal(t, true, res.Values["app.flag"].Value)
}

// TestResolveDeterminism: two passes over an unchanged tree produce the
// identical source and identical values.
func TestResolveDeterminism(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.toml", "[app]\nflag = true\n")
	writeFile(t, dir, "app.yaml", "app:\n  flag: false\n")

	opts := Options{Program: "app", Roots: []string{dir}, Log: testSink()}

	first, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	second, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)

	assert.Equal(t, first.Source, second.Source)
	assert.Equal(t, first.Values, second.Values)
	// app.toml sorts before app.yaml, and toml outranks yaml anyway.
	assert.Equal(t, "toml", first.Source.Format)
}

// TestFormatPriority: when one path satisfies two formats' patterns and
// both parse, the registry/selection order decides, never file order.
func TestFormatPriority(t *testing.T) {
	dir := t.TempDir()
	// Valid JSON is valid YAML too.
	cand := writeFile(t, dir, "app.conf", `{"app": {"flag": true}}`)

	jsonSpec, _ := format.ByName("json")
	yamlSpec, _ := format.ByName("yaml")
	jsonSpec = jsonSpec.WithPatterns("*.conf")
	yamlSpec = yamlSpec.WithPatterns("*.conf")

	doc, source := parseFirstMatch([]string{cand}, []format.Spec{jsonSpec, yamlSpec}, testSink())
	require.NotNil(t, doc)
	assert.Equal(t, "json", source.Format)

	doc, source = parseFirstMatch([]string{cand}, []format.Spec{yamlSpec, jsonSpec}, testSink())
	require.NotNil(t, doc)
	assert.Equal(t, "yaml", source.Format)
}

func TestParseFirstMatchSkipConditions(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.toml", "")
	broken := writeFile(t, dir, "broken.toml", "= not toml")
	missing := filepath.Join(dir, "missing.toml")
	good := writeFile(t, dir, "good.toml", "[app]\nflag = true\n")

	doc, source := parseFirstMatch(
		[]string{missing, dir, empty, broken, good},
		format.Registry(),
		testSink(),
	)

	require.NotNil(t, doc)
	assert.Equal(t, good, source.Path)
}

// TestResolveNotFound: no candidates is not an error; environment values
// and defaults still resolve.
func TestResolveNotFound(t *testing.T) {
	opts := Options{
		Program:   "app",
		Roots:     []string{t.TempDir()},
		EnvValues: map[string]any{"app.flag": true},
		Log:       testSink(),
	}

	res, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Nil(t, res.Document)
	assert.Equal(t, ProvenanceEnv, res.Values["app.flag"].Provenance)
	assert.Equal(t, ProvenanceDefault, res.Values["app.sub.count"].Provenance)
}

// TestResolveStrict: garbage keys are tolerated silently in non-strict
// mode and fatal, by name, in strict mode.
func TestResolveStrict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yaml", "app:\n  flag: true\n  mistery: 1\n")

	opts := Options{Program: "app", Roots: []string{dir}, Log: testSink()}

	res, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err, "non-strict tolerates garbage")
	assert.Equal(t, true, res.Values["app.flag"].Value)

	opts.Strict = true
	_, err = Resolve(t.Context(), testTree(), opts)
	require.Error(t, err)

	var strictErr *StrictError
	require.ErrorAs(t, err, &strictErr)
	assert.Equal(t, "app.mistery", strictErr.Key)
	assert.Equal(t, filepath.Join(dir, "app.yaml"), strictErr.Source)
}

func TestResolveExcluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yaml", "app:\n  flag: true\n  sub:\n    count: 3\n")

	opts := Options{
		Program: "app",
		Roots:   []string{dir},
		Exclude: []string{"app.sub.count"},
		Log:     testSink(),
	}

	res, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	assert.Equal(t, ProvenanceDefault, res.Values["app.sub.count"].Provenance,
		"document value discarded for excluded id")
	assert.Equal(t, ProvenanceFile, res.Values["app.flag"].Provenance)

	// The raw document still shows the excluded value for introspection.
	assert.Equal(t, int64(3), res.Query("app.sub.count").Int())
}

func TestResolveDefinitionErrors(t *testing.T) {
	opts := Options{Program: "app", Exclude: []string{"app.nope"}, Log: testSink()}
	_, err := Resolve(t.Context(), testTree(), opts)
	assert.ErrorIs(t, err, schema.ErrUnknownExclusion)

	opts = Options{Program: "app", Pattern: "app.{toml", Log: testSink()}
	_, err = Resolve(t.Context(), testTree(), opts)
	assert.ErrorIs(t, err, pattern.ErrInvalidPattern)

	opts = Options{Program: "app", Formats: []string{"nope"}, Log: testSink()}
	_, err = Resolve(t.Context(), testTree(), opts)
	assert.Error(t, err)
}

func TestResolveExplicitLocation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "my-settings.toml", "[app]\nflag = true\n")

	opts := Options{Program: "app", Location: path, Log: testSink()}

	res, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Equal(t, path, res.Source.Path)
	assert.False(t, res.Source.Remote)
}

func TestResolveRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"app": {"sub": {"count": 5}}}`))
	}))
	defer srv.Close()

	// The query string must not defeat extension-based format inference.
	opts := Options{Program: "app", Location: srv.URL + "/app.json?v=1", Log: testSink()}

	res, err := Resolve(t.Context(), testTree(), opts)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.True(t, res.Source.Remote)
	assert.Equal(t, "json", res.Source.Format)
	assert.Equal(t, float64(5), res.Values["app.sub.count"].Value)
}

// TestResolveRemoteFailures: network errors and unrecognized extensions
// fall through to NotFound, never to a process-visible error.
func TestResolveRemoteFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		location string
	}{
		{name: "non-success status", location: srv.URL + "/app.json"},
		{name: "unknown extension", location: srv.URL + "/app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Program: "app", Location: tt.location, Log: testSink()}
			res, err := Resolve(t.Context(), testTree(), opts)
			require.NoError(t, err)
			assert.False(t, res.Found())
			assert.Equal(t, ProvenanceDefault, res.Values["app.flag"].Provenance)
		})
	}
}

func TestResultQuery(t *testing.T) {
	res := &Result{
		Document: map[string]any{
			"app": map[string]any{
				"sub":     map[string]any{"count": 3},
				"garbage": "still visible",
			},
		},
	}

	assert.Equal(t, int64(3), res.Query("app.sub.count").Int())
	assert.Equal(t, "still visible", res.Query("app.garbage").String())
	assert.False(t, res.Query("app.none").Exists())

	empty := &Result{}
	assert.False(t, empty.Query("app").Exists())
}
