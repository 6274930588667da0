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

package rvv

import "fmt"

// NumVRegs is the size of the vector register file.
const NumVRegs = 32

// Shape describes how an instruction's operand groups scale relative to LMUL.
// The zero Shape has every operand spanning LMUL registers.
type Shape struct {
	WideDest bool // vd holds 2*SEW elements (widening)
	WideSrc2 bool // vs2 holds 2*SEW elements (.w* forms, narrowing)
	Src1EMUL EMUL // vs1 multiplier when it differs from LMUL (vrgatherei16 index)
	Src2EMUL EMUL // vs2 multiplier when it differs from LMUL (indexed memory offsets)
}

// Registers holds the vector register numbers and group sizes of a test's
// operands. VS2 and VS1 follow assembler operand order: "op vd, vs2, vs1".
type Registers struct {
	VD, VDSize   int
	VS2, VS2Size int
	VS1, VS1Size int
}

// Allocate places the destination and both sources of an operation at base,
// 2*base and 3*base, where base is the largest operand group. Every group
// size is a power of two no larger than base, so the groups are aligned,
// disjoint, above v0, and end within v31 whenever base <= 8.
func Allocate(lmul int, s Shape) Registers {
	dest := lmul
	if s.WideDest {
		dest = 2 * lmul
	}
	src2 := lmul
	switch {
	case s.Src2EMUL != 0:
		src2 = s.Src2EMUL.Registers()
	case s.WideSrc2:
		src2 = 2 * lmul
	}
	src1 := lmul
	if s.Src1EMUL != 0 {
		src1 = s.Src1EMUL.Registers()
	}

	base := max(dest, src2, src1)
	return Registers{
		VD: base, VDSize: dest,
		VS2: 2 * base, VS2Size: src2,
		VS1: 3 * base, VS1Size: src1,
	}
}

// Marker returns the register range [from, to) the reference simulator dumps
// for this test: the destination group.
func (r Registers) Marker() (from, to int) {
	return r.VD, r.VD + r.VDSize
}

// Validate checks the register group invariants Allocate promises.
func (r Registers) Validate() error {
	groups := []struct {
		name       string
		base, size int
	}{
		{"vd", r.VD, r.VDSize},
		{"vs2", r.VS2, r.VS2Size},
		{"vs1", r.VS1, r.VS1Size},
	}
	for i, g := range groups {
		if g.size <= 0 || g.base%g.size != 0 {
			return fmt.Errorf("%s=v%d is not aligned to its group of %d", g.name, g.base, g.size)
		}
		if g.base == 0 {
			return fmt.Errorf("%s overlaps the mask register v0", g.name)
		}
		if g.base+g.size > NumVRegs {
			return fmt.Errorf("%s=v%d group of %d exceeds v%d", g.name, g.base, g.size, NumVRegs-1)
		}
		for _, o := range groups[i+1:] {
			if g.base < o.base+o.size && o.base < g.base+g.size {
				return fmt.Errorf("%s=v%d overlaps %s=v%d", g.name, g.base, o.name, o.base)
			}
		}
	}
	return nil
}
