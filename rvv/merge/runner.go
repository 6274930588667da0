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
	"fmt"
	"os/exec"
	"strings"

	"github.com/ajroetker/rvvgen/rvv"
)

// DefaultISA is the ISA string the simulator runs tests with.
const DefaultISA = "rv64gcv"

// Runner executes a built test on a reference simulator and returns its
// standard output.
type Runner interface {
	Run(ctx context.Context, binary string) ([]byte, error)
}

// Spike runs tests on the Spike simulator.
type Spike struct {
	Path string
	ISA  string
	Arch rvv.Arch
}

// NewSpike resolves path (a file name looked up in $PATH, or a path) and
// checks that it is executable.
func NewSpike(path string, arch rvv.Arch) (*Spike, error) {
	if err := arch.Validate(); err != nil {
		return nil, err
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("simulator %q: %w", path, err)
	}
	if err := executable(resolved); err != nil {
		return nil, fmt.Errorf("simulator %q: %w", resolved, err)
	}
	return &Spike{Path: resolved, ISA: DefaultISA, Arch: arch}, nil
}

// Args returns the simulator arguments for binary.
func (s *Spike) Args(binary string) []string {
	return []string{
		"--isa", s.ISA,
		"--varch", fmt.Sprintf("vlen:%d,elen:%d", s.Arch.VLEN, s.Arch.ELEN),
		binary,
	}
}

// Run implements Runner. A failing simulator's stderr is part of the error.
func (s *Spike) Run(ctx context.Context, binary string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, s.Path, s.Args(binary)...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", s.Path, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return out, nil
}
