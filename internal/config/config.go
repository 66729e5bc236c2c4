// Package config loads solver tuning (internal/sat.Options) from an
// optional YAML overlay and environment overrides, layered on top of
// internal/sat.DefaultOptions the same way the engine's own
// Options/DefaultOptions pair is meant to be extended by callers.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/cnfsolve/cdcl/internal/sat"
)

// overlay is the YAML shape of an optional config file; zero fields leave
// the corresponding sat.Options default untouched.
type overlay struct {
	ArenaCells          int `yaml:"arena_cells"`
	InitialMaxLemmas    int `yaml:"initial_max_lemmas"`
	LemmasGrowth        int `yaml:"lemmas_growth"`
	ReduceKeepThreshold int `yaml:"reduce_keep_threshold"`
}

// Load returns sat.DefaultOptions, optionally overridden by a YAML file at
// path (path == "" skips the file) and then by CDCL_* environment
// variables, which take precedence over both.
func Load(path string) (sat.Options, error) {
	opts := sat.DefaultOptions

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return opts, fmt.Errorf("could not read config file %q: %w", path, err)
		}
		var ov overlay
		if err := yaml.Unmarshal(data, &ov); err != nil {
			return opts, fmt.Errorf("could not parse config file %q: %w", path, err)
		}
		applyOverlay(&opts, ov)
	}

	if err := applyEnv(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

func applyOverlay(opts *sat.Options, ov overlay) {
	if ov.ArenaCells != 0 {
		opts.ArenaCells = ov.ArenaCells
	}
	if ov.InitialMaxLemmas != 0 {
		opts.InitialMaxLemmas = ov.InitialMaxLemmas
	}
	if ov.LemmasGrowth != 0 {
		opts.LemmasGrowth = ov.LemmasGrowth
	}
	if ov.ReduceKeepThreshold != 0 {
		opts.ReduceKeepThreshold = ov.ReduceKeepThreshold
	}
}

func applyEnv(opts *sat.Options) error {
	fields := []struct {
		env string
		dst *int
	}{
		{"CDCL_ARENA_CELLS", &opts.ArenaCells},
		{"CDCL_INITIAL_MAX_LEMMAS", &opts.InitialMaxLemmas},
		{"CDCL_LEMMAS_GROWTH", &opts.LemmasGrowth},
		{"CDCL_REDUCE_KEEP_THRESHOLD", &opts.ReduceKeepThreshold},
	}
	for _, f := range fields {
		v, ok := os.LookupEnv(f.env)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", f.env, err)
		}
		*f.dst = n
	}
	return nil
}
