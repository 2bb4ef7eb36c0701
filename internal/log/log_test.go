// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTracefGating: trace lines are emitted only when CFGCTL_LOG selects
// trace, and ride the debug level with the TRACE: prefix the handler keys on.
func TestTracefGating(t *testing.T) {
	h := memory.New()
	log.SetHandler(h)
	log.SetLevel(log.DebugLevel)

	traceEnabled = false
	Tracef("hidden: n=%d", 1)
	require.Empty(t, h.Entries)

	traceEnabled = true
	defer func() { traceEnabled = false }()
	Tracef("visible: n=%d", 2)
	require.Len(t, h.Entries, 1)
	assert.Equal(t, "TRACE: visible: n=2", h.Entries[0].Message)
	assert.Equal(t, log.DebugLevel, h.Entries[0].Level)
}

func TestInitLoggerLevels(t *testing.T) {
	tests := []struct {
		env   string
		level log.Level
		trace bool
	}{
		{env: "trace", level: log.DebugLevel, trace: true},
		{env: "debug", level: log.DebugLevel},
		{env: "warn", level: log.WarnLevel},
		{env: "", level: log.ErrorLevel},
		{env: "bogus", level: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.env, func(t *testing.T) {
			t.Setenv("CFGCTL_LOG", tt.env)
			InitLogger()
			assert.Equal(t, tt.trace, traceEnabled)
			assert.Equal(t, tt.level, log.Log.(*log.Logger).Level)
		})
	}
}
