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

// Package makefrag renders the Makefile fragment that lists generated tests
// for the riscv-tests build.
package makefrag

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/rvvgen/rvv/fsutil"
)

// FileName is the fragment's name inside a test directory.
const FileName = "Makefrag"

// DefaultSuite is the test-suite prefix of the vector tests.
const DefaultSuite = "rv64uv"

// Render returns the fragment for suite listing tests, which are test names
// without the ".S" extension. The list is sorted.
func Render(suite string, tests []string) string {
	sorted := append([]string(nil), tests...)
	sort.Strings(sorted)

	var b strings.Builder
	fmt.Fprintf(&b, "\n#=======================================================================\n")
	fmt.Fprintf(&b, "# Makefrag for %s tests\n", suite)
	fmt.Fprintf(&b, "#-----------------------------------------------------------------------\n\n")
	fmt.Fprintf(&b, "%s_sc_tests = \\\n", suite)
	for _, t := range sorted {
		fmt.Fprintf(&b, "  %s \\\n", t)
	}
	fmt.Fprintf(&b, "\n%s_p_tests = $(addprefix %s-p-, $(%s_sc_tests))\n", suite, suite, suite)
	return b.String()
}

// IsTestSource reports whether name is a generated vector test source.
func IsTestSource(name string) bool {
	return strings.HasPrefix(name, "v") && strings.HasSuffix(name, ".S")
}

// Write regenerates dir/Makefrag from the test sources present in dir and
// reports whether the fragment changed. A missing dir is created.
func Write(dir, suite string) (bool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	names, err := fsutil.ListNames(dir, IsTestSource)
	if err != nil {
		return false, fmt.Errorf("list tests: %w", err)
	}
	tests := lo.Map(names, func(n string, _ int) string {
		return strings.TrimSuffix(n, ".S")
	})
	return fsutil.SaveFile(filepath.Join(dir, FileName), Render(suite, tests))
}
