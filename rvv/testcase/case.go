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

// Package testcase renders self-checking RISC-V vector assembly tests.
//
// Each test kind is a small value type that names its output file and
// renders the file for a given machine. A rendered file contains one or more
// code blocks, each ending in a marker line
//
//	addi x0, x<first>, <last+1>
//
// which a patched reference simulator turns into a dump of the destination
// register group. The merge step later replaces those markers with the
// dumped values (see package merge).
package testcase

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/rvvgen/rvv"
)

// Case is one generated test file.
type Case interface {
	// Name returns the output file name, e.g. "vle32_v_LMUL1VL64.S".
	Name() string
	// Render returns the assembly source for arch.
	Render(arch rvv.Arch) (string, error)
}

// Placeholder is the dummy check every file carries until merge replaces
// the markers with real ones.
const Placeholder = "  TEST_CASE(2, x0, 0x0)"

// maskWord sets every other mask bit, so masked-off elements alternate.
const maskWord = 0x5555555555555555

// file holds the pieces shared by every generated test.
type file struct {
	name     string
	inst     string
	extras   string
	policies []rvv.Policy // policy of each block, when blocks vary by policy
	blocks   []string
	resBytes int
	tdat     []uint64
	idat     []uint64
	mask     int // quads in the mask block; 0 omits it
}

func (f *file) String() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "\n# See LICENSE for license details.\n\n")
	fmt.Fprintf(&buf, "# This file is automatically generated. Do not edit.\n\n")
	fmt.Fprintf(&buf, "#*****************************************************************************\n")
	fmt.Fprintf(&buf, "# %s\n", f.name)
	fmt.Fprintf(&buf, "#-----------------------------------------------------------------------------\n")
	fmt.Fprintf(&buf, "#\n")
	fmt.Fprintf(&buf, "# Test %s instructions.\n", f.inst)
	if f.extras != "" {
		fmt.Fprintf(&buf, "# %s\n", f.extras)
	}
	if len(f.policies) > 0 {
		fmt.Fprintf(&buf, "# Blocks: %s\n", strings.Join(lo.Map(f.policies, func(p rvv.Policy, _ int) string {
			return p.String()
		}), " / "))
	}
	fmt.Fprintf(&buf, "#\n\n")
	fmt.Fprintf(&buf, "#include \"riscv_test.h\"\n")
	fmt.Fprintf(&buf, "#include \"test_macros.h\"\n\n")
	fmt.Fprintf(&buf, "RVTEST_RV64UV\n\n")

	fmt.Fprintf(&buf, "RVTEST_CODE_BEGIN\n")
	for _, b := range f.blocks {
		buf.WriteString(b)
	}
	fmt.Fprintf(&buf, "\n%s\n", Placeholder)
	fmt.Fprintf(&buf, "  TEST_PASSFAIL\n\n")
	fmt.Fprintf(&buf, "RVTEST_CODE_END\n\n")

	fmt.Fprintf(&buf, "  .data\n")
	fmt.Fprintf(&buf, "RVTEST_DATA_BEGIN\n\n")
	fmt.Fprintf(&buf, "res:\n  .zero %d\n\n", f.resBytes)
	writeQuads(&buf, "tdat", f.tdat)
	if len(f.idat) > 0 {
		writeQuads(&buf, "idat", f.idat)
	}
	if f.mask > 0 {
		writeQuads(&buf, "mask", lo.Times(f.mask, func(int) uint64 { return maskWord }))
	}
	fmt.Fprintf(&buf, "RVTEST_DATA_END\n")
	return buf.String()
}

func writeQuads(buf *bytes.Buffer, label string, words []uint64) {
	lines := lo.Map(words, func(w uint64, _ int) string {
		return fmt.Sprintf("  .quad 0x%x", w)
	})
	fmt.Fprintf(buf, "%s:\n%s\n\n", label, strings.Join(lines, "\n"))
}
