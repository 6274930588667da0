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

package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/ajroetker/rvvgen/rvv"
	"github.com/ajroetker/rvvgen/rvv/makefrag"
)

func archiveFiles(t *testing.T, path string) map[string]string {
	t.Helper()
	a, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile(%s) failed: %v", path, err)
	}
	files := make(map[string]string, len(a.Files))
	for _, f := range a.Files {
		files[f.Name] = string(f.Data)
	}
	return files
}

func TestSplice(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			files := archiveFiles(t, path)
			got, err := Splice(files["input.S"], files["spike.out"])
			want, ok := files["want.S"]
			if !ok {
				if !errors.Is(err, ErrSegmentMismatch) {
					t.Fatalf("Splice error = %v, want ErrSegmentMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Splice failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Splice mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpliceNoMarkers(t *testing.T) {
	got, err := Splice("  nop\n  TEST_CASE(2, x0, 0x0)\n", "")
	if err != nil {
		t.Fatalf("Splice failed: %v", err)
	}
	if got != "  nop\n\n" {
		t.Errorf("Splice = %q, want %q", got, "  nop\n\n")
	}
}

// fakeRunner returns canned output per binary base name.
type fakeRunner struct {
	mu      sync.Mutex
	outputs map[string]string
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, binary string) ([]byte, error) {
	name := filepath.Base(binary)
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	out, ok := f.outputs[name]
	if !ok {
		return nil, errors.New("simulator crashed")
	}
	return []byte(out), nil
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestMerger(t *testing.T) {
	src, build, out := t.TempDir(), t.TempDir(), filepath.Join(t.TempDir(), "rv64uxx")
	writeFiles(t, src, map[string]string{
		"vadd_vv_LMUL1SEW8VL8.S": "  vadd.vv v1, v2, v3\n  addi x0, x1, 2\n  TEST_CASE(2, x0, 0x0)\n",
		"vle8_v_LMUL1VL8.S":      "  vle8.v v1, (a1)\n  addi x0, x1, 2\n",
	})
	writeFiles(t, build, map[string]string{
		"rv64uv-p-vadd_vv_LMUL1SEW8VL8":      "ELF",
		"rv64uv-p-vadd_vv_LMUL1SEW8VL8.dump": "dump",
		"rv64uv-p-vle8_v_LMUL1VL8":           "ELF",
		"rv64ui-p-add":                       "ELF",
	})
	runner := &fakeRunner{outputs: map[string]string{
		"rv64uv-p-vadd_vv_LMUL1SEW8VL8": "  TEST_CASE(2, t0, 0x2)",
		"rv64uv-p-vle8_v_LMUL1VL8":      "  TEST_CASE(2, t0, 0x1)",
	}}
	m := &Merger{SrcDir: src, BuildDir: build, OutDir: out, Runner: runner, Jobs: 2}

	stats, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.Binaries)
	require.Equal(t, 2, stats.Changed)
	require.ElementsMatch(t, []string{"rv64uv-p-vadd_vv_LMUL1SEW8VL8", "rv64uv-p-vle8_v_LMUL1VL8"}, runner.calls)

	got, err := os.ReadFile(filepath.Join(out, "vadd_vv_LMUL1SEW8VL8.S"))
	require.NoError(t, err)
	require.Equal(t, "  vadd.vv v1, v2, v3\n  TEST_CASE(2, t0, 0x2)\n\n", string(got))

	frag, err := os.ReadFile(filepath.Join(out, makefrag.FileName))
	require.NoError(t, err)
	require.Equal(t, makefrag.Render(makefrag.DefaultSuite, []string{"vadd_vv_LMUL1SEW8VL8", "vle8_v_LMUL1VL8"}), string(frag))

	stats, err = m.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.Changed)
}

func TestMergerNoBinaries(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rv64uxx")
	m := &Merger{SrcDir: t.TempDir(), BuildDir: t.TempDir(), OutDir: out, Runner: &fakeRunner{}}

	stats, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.Binaries)

	frag, err := os.ReadFile(filepath.Join(out, makefrag.FileName))
	require.NoError(t, err)
	require.Equal(t, makefrag.Render(makefrag.DefaultSuite, nil), string(frag))
}

func TestMergerErrors(t *testing.T) {
	src, build := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{
		"vle8_v_LMUL1VL8.S": "  addi x0, x1, 2\n  addi x0, x1, 2\n",
	})
	writeFiles(t, build, map[string]string{"rv64uv-p-vle8_v_LMUL1VL8": "ELF"})

	t.Run("simulator", func(t *testing.T) {
		m := &Merger{SrcDir: src, BuildDir: build, OutDir: t.TempDir(), Runner: &fakeRunner{}}
		_, err := m.Run(context.Background())
		require.ErrorContains(t, err, "simulator crashed")
	})
	t.Run("segments", func(t *testing.T) {
		runner := &fakeRunner{outputs: map[string]string{"rv64uv-p-vle8_v_LMUL1VL8": "one segment"}}
		m := &Merger{SrcDir: src, BuildDir: build, OutDir: t.TempDir(), Runner: runner}
		_, err := m.Run(context.Background())
		require.ErrorIs(t, err, ErrSegmentMismatch)
	})
	t.Run("missing source", func(t *testing.T) {
		m := &Merger{SrcDir: t.TempDir(), BuildDir: build, OutDir: t.TempDir(), Runner: &fakeRunner{}}
		_, err := m.Run(context.Background())
		require.Error(t, err)
	})
	t.Run("no runner", func(t *testing.T) {
		m := &Merger{SrcDir: src, BuildDir: build, OutDir: t.TempDir()}
		_, err := m.Run(context.Background())
		require.Error(t, err)
	})
}

func TestSpikeArgs(t *testing.T) {
	s := &Spike{Path: "spike", ISA: DefaultISA, Arch: rvv.DefaultArch}
	want := []string{"--isa", "rv64gcv", "--varch", "vlen:4096,elen:64", "isa/rv64uv-p-vadd_vv_LMUL1SEW8VL64"}
	if diff := cmp.Diff(want, s.Args("isa/rv64uv-p-vadd_vv_LMUL1SEW8VL64")); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "spike")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestSpikeRun(t *testing.T) {
	path := writeScript(t, "echo \"$5 $4\"\n")
	s, err := NewSpike(path, rvv.Arch{VLEN: 256, ELEN: 32})
	require.NoError(t, err)

	out, err := s.Run(context.Background(), "bin")
	require.NoError(t, err)
	require.Equal(t, "bin vlen:256,elen:32\n", string(out))
}

func TestSpikeRunFailure(t *testing.T) {
	path := writeScript(t, "echo boom >&2\nexit 3\n")
	s, err := NewSpike(path, rvv.DefaultArch)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), "bin")
	require.ErrorContains(t, err, "boom")
}

func TestNewSpike(t *testing.T) {
	_, err := NewSpike(filepath.Join(t.TempDir(), "missing"), rvv.DefaultArch)
	require.Error(t, err)

	if runtime.GOOS != "windows" {
		path := filepath.Join(t.TempDir(), "spike")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644))
		_, err = NewSpike(path, rvv.DefaultArch)
		require.Error(t, err, "non-executable simulator accepted")
	}

	_, err = NewSpike("spike", rvv.Arch{VLEN: 100, ELEN: 64})
	require.Error(t, err)
}
