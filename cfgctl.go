// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cfgctl

import (
	"context"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/dustin/go-humanize"

	"github.com/cfgctl/cfgctl/format"
	"github.com/cfgctl/cfgctl/locate"
	"github.com/cfgctl/cfgctl/pattern"
	"github.com/cfgctl/cfgctl/schema"
)

// Options parameterizes one resolution pass. The zero value resolves from
// environment values and defaults only; set Program (or Pattern/Roots) to
// enable file discovery.
type Options struct {
	// Program names the embedding CLI. It seeds the default search roots
	// (the per-OS user config directory) and the default file pattern
	// ("**/<program>.*").
	Program string

	// Location short-circuits discovery: an http(s) URL is fetched as the
	// single candidate with its format inferred from the URL extension; any
	// other non-empty value is used as the single on-disk candidate.
	Location string

	// Pattern is the raw search pattern; empty means the Program default.
	Pattern string
	// Flags override the pattern compiler defaults.
	Flags *pattern.FlagSet
	// Roots are the directories to search; empty means the Program default.
	Roots []string

	// Formats selects and reorders dialects by name; empty means the full
	// registry in registry order.
	Formats []string

	// Strict rejects documents containing keys unknown to the schema.
	Strict bool

	// Timeout bounds a remote fetch. Zero means locate.DefaultTimeout.
	Timeout time.Duration

	// Exclude lists dotted ids that must never take values from a
	// configuration file. Ids must exist in the schema.
	Exclude []string

	// CLIValues and EnvValues are the literal flag values and bound
	// environment values supplied by the argument-parsing collaborator,
	// keyed by dotted id.
	CLIValues map[string]any
	EnvValues map[string]any

	// Log is the diagnostic sink. Nil discards diagnostics; the engine
	// never writes to a global logger.
	Log log.Interface
}

func (o *Options) sink() log.Interface {
	if o.Log != nil {
		return o.Log
	}
	return &log.Logger{Handler: discard.Default, Level: log.ErrorLevel}
}

// Resolve executes one synchronous resolution pass: discover candidates,
// parse the first usable document, validate it when strict, and merge CLI,
// file, environment and default values into one resolved set.
//
// Only three conditions surface as errors: a malformed search pattern, an
// excluded id that names no schema parameter, and a strict-mode violation.
// Everything else (missing files, unparseable candidates, failed fetches)
// degrades to "no configuration found" and resolution proceeds on
// environment values and defaults.
func Resolve(ctx context.Context, root *schema.Command, opts Options) (*Result, error) {
	sink := opts.sink()

	flat := schema.Flatten(root)
	if err := schema.VerifyExclusions(flat, opts.Exclude); err != nil {
		return nil, err
	}
	excluded := schema.Excluded(flat, opts.Exclude...)

	specs := format.Registry()
	if len(opts.Formats) > 0 {
		var err error
		if specs, err = format.Select(opts.Formats...); err != nil {
			return nil, err
		}
	}

	doc, source, err := discover(ctx, opts, specs, sink)
	if err != nil {
		return nil, err
	}

	if doc != nil && opts.Strict {
		if verr := validateStrict(doc, flat, excluded); verr != nil {
			verr.Source = source.Path
			return nil, verr
		}
	}

	ids := schema.IDs(flat)
	projected := schema.Project(doc, ids)
	values := resolveValues(flat, opts.CLIValues, projected, opts.EnvValues, excluded)

	for _, id := range ids {
		rv := values[id]
		sink.Debugf("resolved: id=%s value=%v provenance=%s", id, rv.Value, rv.Provenance)
	}

	return &Result{
		Values:   values,
		Document: doc,
		Source:   source,
		Strict:   opts.Strict,
	}, nil
}

// discover produces the winning document and its source, or (nil, nil) for
// NotFound. Pattern compilation is the only error path.
func discover(ctx context.Context, opts Options, specs []format.Spec, sink log.Interface) (map[string]any, *Source, error) {
	if locate.IsURL(opts.Location) {
		doc, source := fetchRemote(ctx, opts, sink)
		return doc, source, nil
	}

	var candidates []string
	switch {
	case opts.Location != "":
		candidates = []string{opts.Location}
	default:
		raw := opts.Pattern
		if raw == "" {
			if opts.Program == "" {
				return nil, nil, nil
			}
			raw = "**/" + opts.Program + ".*"
		}

		flags := pattern.DefaultFlags()
		if opts.Flags != nil {
			flags = *opts.Flags
		}
		compiled, err := pattern.Compile(raw, flags)
		if err != nil {
			return nil, nil, err
		}

		roots := opts.Roots
		if len(roots) == 0 {
			roots = locate.DefaultRoots(opts.Program)
		}
		candidates = locate.Candidates(roots, compiled, sink)
	}

	sink.Debugf("candidates located: count=%d", len(candidates))
	doc, source := parseFirstMatch(candidates, specs, sink)
	return doc, source, nil
}

// fetchRemote handles the single-URL candidate: exactly one format, taken
// from the URL's own extension; there is no multi-format probing for
// remote sources. Every failure falls through to NotFound.
func fetchRemote(ctx context.Context, opts Options, sink log.Interface) (map[string]any, *Source) {
	spec, ok := format.ByExtension(format.ExtOf(opts.Location))
	if !ok {
		sink.Debugf("remote candidate has no recognized extension: url=%s", opts.Location)
		return nil, nil
	}

	data, err := locate.Fetch(ctx, opts.Location, opts.Timeout, sink)
	if err != nil {
		sink.Debugf("remote fetch failed: url=%s err=%v", opts.Location, err)
		return nil, nil
	}

	doc, err := spec.Parse(data)
	if err != nil {
		sink.Debugf("remote parse failed: url=%s format=%s err=%v", opts.Location, spec.Name, err)
		return nil, nil
	}
	if !format.IsUsable(doc) {
		sink.Debugf("remote document empty: url=%s format=%s", opts.Location, spec.Name)
		return nil, nil
	}

	return doc, &Source{Path: opts.Location, Format: spec.Name, Remote: true}
}

// parseFirstMatch tries each candidate in locator order against each
// matching format in registry order and returns the first usable document.
// The search stops at the first success: later candidates and formats are
// never consulted, even if they would also parse. Both orders are stable,
// which makes the winner deterministic for an unchanged filesystem.
func parseFirstMatch(candidates []string, specs []format.Spec, sink log.Interface) (map[string]any, *Source) {
	for _, cand := range candidates {
		st, err := os.Stat(cand)
		if err != nil || !st.Mode().IsRegular() || st.Size() == 0 {
			sink.Debugf("skipping candidate: path=%s err=%v", cand, err)
			continue
		}

		data, err := os.ReadFile(cand)
		if err != nil {
			sink.Debugf("unreadable candidate: path=%s err=%v", cand, err)
			continue
		}

		for _, spec := range specs {
			if !spec.Matches(cand) {
				continue
			}

			doc, err := spec.Parse(data)
			if err != nil {
				sink.Debugf("parse failed: path=%s format=%s err=%v", cand, spec.Name, err)
				continue
			}
			if !format.IsUsable(doc) {
				sink.Debugf("document not usable: path=%s format=%s", cand, spec.Name)
				continue
			}

			sink.Debugf("using config: path=%s format=%s size=%s",
				cand, spec.Name, humanize.Bytes(uint64(len(data))))
			return doc, &Source{Path: cand, Format: spec.Name}
		}
	}

	return nil, nil
}
