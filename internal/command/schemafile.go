// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cfgctl/cfgctl/schema"
)

// LoadSchemaFile reads a YAML schema description into a parameter tree.
//
// The file mirrors the engine's schema model directly:
//
//	name: myapp
//	params:
//	  - {name: flag, type: bool, default: false}
//	commands:
//	  - name: sub
//	    params:
//	      - {name: count, type: int, default: 10}
func LoadSchemaFile(path string) (*schema.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var tree schema.Command
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}
	if tree.Name == "" {
		return nil, fmt.Errorf("schema file %s has no root command name", path)
	}

	return &tree, nil
}
