// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selftest

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	plog "github.com/phuslu/log"
	"github.com/stretchr/testify/require"
)

func testLogger(w io.Writer) *plog.Logger {
	return &plog.Logger{
		Level:      plog.DebugLevel,
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     &plog.IOWriter{Writer: w},
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want *Config
		err  string
	}{{
		name: "empty",
		in:   "",
		want: Default(),
	}, {
		name: "full",
		in: `
strategy: xxhash
ordered: false
borrowed: true
keys: 500
deleteEvery: 0
scenarios: [b]
`,
		want: &Config{
			Strategy:  StrategyXXHash,
			Borrowed:  true,
			Keys:      500,
			Scenarios: []string{ScenarioGrowth},
		},
	}, {
		name: "partial",
		in:   "keys: 42\n",
		want: func() *Config {
			c := Default()
			c.Keys = 42
			return c
		}(),
	}, {
		name: "unknown field",
		in:   "keyz: 42\n",
		err:  "decoding config",
	}, {
		name: "bad strategy",
		in:   "strategy: md5\n",
		err:  `invalid config: unknown strategy "md5"`,
	}, {
		name: "bad keys",
		in:   "keys: 0\n",
		err:  "invalid config: keys must be in",
	}, {
		name: "bad scenario",
		in:   "scenarios: [z]\n",
		err:  `invalid config: unknown scenario "z"`,
	}} {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Load(strings.NewReader(tc.in))
			if tc.err != "" {
				require.ErrorContains(t, err, tc.err)
				require.Nil(t, c)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, c); diff != "" {
				t.Errorf("unexpected config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.DeleteEvery = -1
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
	require.NoError(t, Default().Validate())
}

func TestRun(t *testing.T) {
	for _, strategy := range []string{
		StrategyString, StrategyInt, StrategyBytes, StrategyXXH3, StrategyXXHash,
	} {
		for _, ordered := range []bool{false, true} {
			for _, borrowed := range []bool{false, true} {
				cfg := &Config{
					Strategy:    strategy,
					Ordered:     ordered,
					Borrowed:    borrowed,
					Keys:        2000,
					DeleteEvery: 4,
				}
				rep, err := Run(cfg, nil)
				require.NoError(t, err, "%+v", cfg)
				require.Len(t, rep.Results, 1)
				res := rep.Results[0]
				require.Equal(t, "workload/"+strategy, res.Name)
				require.Equal(t, 1500, res.Stats.Count)
				require.Equal(t, ordered, res.Stats.Ordered)
				require.Equal(t, borrowed, res.Stats.BorrowedKeys)
			}
		}
	}
}

func TestRunScenarios(t *testing.T) {
	var logs bytes.Buffer
	rep, err := Run(Default(), testLogger(&logs))
	require.NoError(t, err)

	var names []string
	for _, r := range rep.Results {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"strings", "growth", "reverse", "workload/string"}, names)
	require.Equal(t, 300, rep.Results[1].Stats.Count)
	require.Equal(t, 767, rep.Results[1].Stats.Buckets)
	require.Equal(t, 6, rep.Results[1].Stats.Resizes)

	out := logs.String()
	require.Contains(t, out, `"step":"growth"`)
	require.Contains(t, out, "xhash: grow")

	var buf bytes.Buffer
	require.NoError(t, rep.Format(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[1], "growth "), lines[1])
	require.Contains(t, lines[1], "entries=300 buckets=767")
	require.Contains(t, lines[3], "entries=6,666")
}

func TestRunInvalid(t *testing.T) {
	_, err := Run(&Config{Strategy: "nope", Keys: 1}, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCheck(t *testing.T) {
	require.NoError(t, check(true, "unused"))
	err := check(false, "got %d", 1)
	require.ErrorIs(t, err, ErrCheckFailed)
	require.EqualError(t, err, "check failed: got 1")
}
