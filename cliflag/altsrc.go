// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cliflag

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	altjson "github.com/urfave/cli-altsrc/v3/json"
	alttoml "github.com/urfave/cli-altsrc/v3/toml"
	altyaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// FileSources builds per-flag value sources reading a namespaced key and
// then the bare key from one configuration file. This is the lighter
// alternative to a full resolution pass: CLIs that only want "this yaml
// file feeds these flags" can chain these directly. Supported formats are
// the ones cli-altsrc ships codecs for; anything else falls back to yaml.
func FileSources(ns, key, path, formatName string) []cli.ValueSource {
	sourcer := altsrc.StringSourcer(path)

	build := func(k string) cli.ValueSource {
		switch formatName {
		case "toml":
			return alttoml.TOML(k, sourcer)
		case "json":
			return altjson.JSON(k, sourcer)
		default:
			return altyaml.YAML(k, sourcer)
		}
	}

	return []cli.ValueSource{build(ns + "." + key), build(key)}
}

// AttachFileSources appends namespaced-then-bare file sources to a string
// flag's chain and returns the flag for composition.
func AttachFileSources(flag *cli.StringFlag, ns, path, formatName string) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, FileSources(ns, flag.Name, path, formatName)...)
	return flag
}
