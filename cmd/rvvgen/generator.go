// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/ajroetker/rvvgen/rvv"
	"github.com/ajroetker/rvvgen/rvv/fsutil"
	"github.com/ajroetker/rvvgen/rvv/makefrag"
	"github.com/ajroetker/rvvgen/rvv/sweep"
	"github.com/ajroetker/rvvgen/rvv/testcase"
	"github.com/ajroetker/rvvgen/rvv/workerpool"
)

// Generator renders the test sweep into OutputDir.
type Generator struct {
	Arch      rvv.Arch
	OutputDir string
	Suite     string
	Only      string // glob over file names; empty selects every case
	Jobs      int    // <= 0 uses GOMAXPROCS
	Logger    *slog.Logger
}

// Stats summarizes a generation run.
type Stats struct {
	Cases   int
	Changed int
	Elapsed time.Duration
}

// Cases returns the selected test cases in generation order.
func (g *Generator) Cases() ([]testcase.Case, error) {
	if err := g.Arch.Validate(); err != nil {
		return nil, err
	}
	return sweep.Filter(sweep.All(g.Arch), g.Only)
}

// Run writes every selected case whose content changed, then regenerates the
// Makefrag of OutputDir.
func (g *Generator) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}
	suite := g.Suite
	if suite == "" {
		suite = makefrag.DefaultSuite
	}

	cases, err := g.Cases()
	if err != nil {
		return Stats{}, err
	}
	logger.Debug("generating", "cases", len(cases), "dir", g.OutputDir, "vlen", g.Arch.VLEN, "elen", g.Arch.ELEN)

	pool := workerpool.New(g.Jobs)
	defer pool.Close()

	var changed atomic.Int64
	err = pool.ForEach(ctx, len(cases), func(i int) error {
		c := cases[i]
		text, err := c.Render(g.Arch)
		if err != nil {
			return fmt.Errorf("render %s: %w", c.Name(), err)
		}
		ok, err := fsutil.SaveFile(filepath.Join(g.OutputDir, c.Name()), text)
		if err != nil {
			return fmt.Errorf("write %s: %w", c.Name(), err)
		}
		if ok {
			changed.Add(1)
		}
		logger.Debug("wrote", "file", c.Name(), "changed", ok)
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	if _, err := makefrag.Write(g.OutputDir, suite); err != nil {
		return Stats{}, fmt.Errorf("write %s: %w", makefrag.FileName, err)
	}
	stats := Stats{Cases: len(cases), Changed: int(changed.Load()), Elapsed: time.Since(start)}
	logger.Info("generation finished", "cases", stats.Cases, "changed", stats.Changed, "elapsed", stats.Elapsed)
	return stats, nil
}
