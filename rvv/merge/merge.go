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

// Package merge splices reference-simulator register dumps into generated
// test sources, producing self-checking tests.
//
// Every generated code block ends in a marker line "addi x0, xA, B". A
// patched simulator executing the built test prints, for each marker, the
// instructions that check registers vA..vB-1, separated by "---". Merge
// replaces the i-th marker with the i-th segment.
package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/rvvgen/rvv/fsutil"
	"github.com/ajroetker/rvvgen/rvv/makefrag"
	"github.com/ajroetker/rvvgen/rvv/testcase"
)

// Separator splits the simulator output into per-marker segments.
const Separator = "---"

// ErrSegmentMismatch is returned when the simulator output has fewer
// segments than the source has markers.
var ErrSegmentMismatch = errors.New("simulator output does not cover every marker")

var markerRE = regexp.MustCompile(`  addi x0, x.+`)

// Splice replaces the markers of content, in order, with the segments of
// output and drops the placeholder test case.
func Splice(content, output string) (string, error) {
	segments := strings.Split(output, Separator)
	markers := markerRE.FindAllStringIndex(content, -1)
	if len(segments) < len(markers) {
		return "", fmt.Errorf("%w: %d markers, %d segments", ErrSegmentMismatch, len(markers), len(segments))
	}

	var b strings.Builder
	last := 0
	for i, loc := range markers {
		b.WriteString(content[last:loc[0]])
		b.WriteString(segments[i])
		last = loc[1]
	}
	b.WriteString(content[last:])
	return strings.ReplaceAll(b.String(), testcase.Placeholder, ""), nil
}

// Merger merges every built test of a suite.
type Merger struct {
	SrcDir   string // generated sources
	BuildDir string // built test binaries
	OutDir   string // merged sources and Makefrag
	Suite    string
	Runner   Runner
	Jobs     int // concurrent simulator runs; <= 0 means one
	Logger   *slog.Logger
}

// Stats summarizes a merge run.
type Stats struct {
	Binaries int
	Changed  int
	Elapsed  time.Duration
}

func (m *Merger) suite() string {
	if m.Suite == "" {
		return makefrag.DefaultSuite
	}
	return m.Suite
}

func (m *Merger) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

// Binaries returns the names of the built vector tests in BuildDir, sorted.
func (m *Merger) Binaries() ([]string, error) {
	prefix := m.suite() + "-p-v"
	return fsutil.ListNames(m.BuildDir, func(name string) bool {
		return strings.HasPrefix(name, prefix) && !strings.HasSuffix(name, ".dump")
	})
}

// Run merges every binary and regenerates OutDir/Makefrag. The first failure
// cancels the remaining simulator runs.
func (m *Merger) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	if m.Runner == nil {
		return Stats{}, errors.New("merge: no simulator runner")
	}
	bins, err := m.Binaries()
	if err != nil {
		return Stats{}, fmt.Errorf("list binaries: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.Jobs, 1))
	var changed atomic.Int64
	for _, bin := range bins {
		g.Go(func() error {
			c, err := m.mergeOne(ctx, bin)
			if err != nil {
				return fmt.Errorf("%s: %w", bin, err)
			}
			if c {
				changed.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	if _, err := makefrag.Write(m.OutDir, m.suite()); err != nil {
		return Stats{}, fmt.Errorf("write %s: %w", makefrag.FileName, err)
	}
	stats := Stats{Binaries: len(bins), Changed: int(changed.Load()), Elapsed: time.Since(start)}
	m.logger().Info("merge finished", "binaries", stats.Binaries, "changed", stats.Changed, "elapsed", stats.Elapsed)
	return stats, nil
}

func (m *Merger) mergeOne(ctx context.Context, bin string) (bool, error) {
	name := strings.TrimPrefix(bin, m.suite()+"-p-") + ".S"
	content, err := fsutil.ReadFile(filepath.Join(m.SrcDir, name))
	if err != nil {
		return false, err
	}
	out, err := m.Runner.Run(ctx, filepath.Join(m.BuildDir, bin))
	if err != nil {
		return false, err
	}
	merged, err := Splice(content, string(out))
	if err != nil {
		return false, err
	}
	changed, err := fsutil.SaveFile(filepath.Join(m.OutDir, name), merged)
	if err != nil {
		return false, err
	}
	m.logger().Debug("merged", "file", name, "changed", changed)
	return changed, nil
}
