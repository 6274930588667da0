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

package testcase

import (
	"bytes"
	"fmt"

	"github.com/ajroetker/rvvgen/rvv"
)

// block accumulates one code block. Every instruction is indented two
// spaces; the merge step relies on that for marker lines.
type block struct {
	buf bytes.Buffer
}

func newBlock() *block {
	b := &block{}
	b.blank()
	return b
}

func (b *block) op(format string, args ...any) {
	b.buf.WriteString("  ")
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteByte('\n')
}

func (b *block) blank() {
	b.buf.WriteByte('\n')
}

// setAll configures VLMAX elements with agnostic policies. t0 keeps -1.
func (b *block) setAll(eew int, mul string) {
	b.op("li t0, -1")
	b.op("vsetvli t1, t0, e%d,%s,ta,ma", eew, mul)
}

// setVL configures vl elements under policy p.
func (b *block) setVL(vl, eew int, mul string, p rvv.Policy) {
	b.op("li t0, %d", vl)
	b.op("vsetvli t1, t0, e%d,%s,%s,%s", eew, mul, p.VTA(), p.VMA())
}

// loadMask fills v0 from the mask block.
func (b *block) loadMask() {
	b.op("li t0, -1")
	b.op("vsetvli t1, t0, e8,m1,ta,ma")
	b.op("la a3, mask")
	b.op("vle8.v v0, (a3)")
	b.blank()
}

// marker asks the simulator to dump the destination group of r.
func (b *block) marker(r rvv.Registers) {
	from, to := r.Marker()
	b.op("addi x0, x%d, %d", from, to)
}

func (b *block) String() string {
	return b.buf.String()
}

// m returns the vsetvli operand for an integral group multiplier.
func m(lmul int) string {
	return rvv.EMUL(lmul * 8).String()
}

// maskOperand returns the trailing operand selecting masked execution.
func maskOperand(p rvv.Policy) string {
	if p.Masked {
		return ", v0.t"
	}
	return ""
}
