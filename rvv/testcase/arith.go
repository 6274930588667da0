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
	"fmt"

	"github.com/ajroetker/rvvgen/rvv"
	"github.com/ajroetker/rvvgen/rvv/insn"
)

// Arith tests one arithmetic instruction at a (LMUL, SEW, VL) point.
type Arith struct {
	Insn          insn.Insn
	LMUL, SEW, VL int
}

// Name returns the file name, e.g. "vadd_vx_LMUL2SEW32VL64.S".
func (c Arith) Name() string {
	return fmt.Sprintf("v%s_%s_LMUL%dSEW%dVL%d.S", c.Insn.Name, c.Insn.Suffix, c.LMUL, c.SEW, c.VL)
}

// imm returns the scalar or immediate operand: one, as an integer or as the
// bit pattern of 1.0 at SEW for floating-point instructions.
func (c Arith) imm() string {
	if c.Insn.Float() {
		return fmt.Sprintf("0x%x", rvv.FloatHex(1.0, c.SEW))
	}
	return "1"
}

// fmvUnit returns the fmv.<unit>.x width letter for SEW.
func (c Arith) fmvUnit() string {
	if c.SEW == 32 {
		return "w"
	}
	return "d"
}

// Render returns the test source. A descriptor the renderer cannot handle
// is an error wrapping insn.ErrUnknownSuffix.
func (c Arith) Render(arch rvv.Arch) (string, error) {
	if err := c.Insn.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", c.Name(), err)
	}
	operand, err := c.Insn.Suffix.Operand()
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Name(), err)
	}
	if !c.Insn.Legal(arch, c.SEW, c.LMUL) {
		return "", fmt.Errorf("%s: not legal for SEW=%d LMUL=%d", c.Name(), c.SEW, c.LMUL)
	}

	regs := rvv.Allocate(c.LMUL, c.Insn.Shape(c.SEW, c.LMUL))
	if err := regs.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", c.Name(), err)
	}
	group := max(regs.VDSize, regs.VS2Size, regs.VS1Size)
	nbytes := arch.GroupBytes(group) + 8

	var idat []uint64
	var indexEMUL rvv.EMUL
	if c.Insn.Form == insn.FormGatherEI16 {
		indexEMUL = rvv.EMULOf(16, c.SEW, c.LMUL)
		idat = rvv.GenerateIndexedData(max(8, arch.EMULBytes(indexEMUL)), 16)
	}

	variants := rvv.Variants
	if c.Insn.Suffix.UsesV0() {
		// v0 is an operand, so only the unmasked policies apply.
		variants = []rvv.Policy{rvv.Variants[0], rvv.Variants[2]}
	}

	var blocks []string
	for _, p := range variants {
		b := newBlock()
		b.setAll(c.SEW, m(regs.VS2Size))
		b.op("la a2, tdat")
		b.op("vle%d.v v%d, (a2)", c.SEW, regs.VS2)
		b.blank()
		b.op("vsetvli t1, t0, e%d,%s,ta,ma", c.SEW, m(regs.VDSize))
		b.op("vle%d.v v%d, (a2)", c.SEW, regs.VD)
		if operand == insn.OperandVector {
			if idat != nil {
				b.op("la a2, idat")
				b.op("vsetvli t1, t0, e16,%s,ta,ma", indexEMUL)
				b.op("vle16.v v%d, (a2)", regs.VS1)
			} else {
				b.op("la a2, tdat+8")
				b.op("vsetvli t1, t0, e%d,%s,ta,ma", c.SEW, m(regs.VS1Size))
				b.op("vle%d.v v%d, (a2)", c.SEW, regs.VS1)
			}
		}
		b.blank()
		if p.Masked || c.Insn.Suffix.UsesV0() {
			b.loadMask()
		}
		b.setVL(c.VL, c.SEW, m(c.LMUL), p)

		tail := maskOperand(p)
		if c.Insn.Suffix.UsesV0() {
			tail = ", v0"
		}
		op := c.Insn.Mnemonic()
		switch operand {
		case insn.OperandVector:
			b.op("%s v%d, v%d, v%d%s", op, regs.VD, regs.VS2, regs.VS1, tail)
		case insn.OperandImm:
			b.op("%s v%d, v%d, %s%s", op, regs.VD, regs.VS2, c.imm(), tail)
		case insn.OperandScalar:
			b.op("li t2, %s", c.imm())
			b.scalarOp(op, regs, "t2", c.Insn.ScalarFirst, tail)
		case insn.OperandFloat:
			b.op("li t2, %s", c.imm())
			b.op("fmv.%s.x f2, t2", c.fmvUnit())
			b.scalarOp(op, regs, "f2", c.Insn.ScalarFirst, tail)
		default:
			return "", fmt.Errorf("%s: %w: %v", c.Name(), insn.ErrUnknownSuffix, c.Insn.Suffix)
		}
		b.blank()
		b.setAll(c.SEW, m(regs.VDSize))
		b.op("la a1, res")
		b.op("vse%d.v v%d, (a1)", c.SEW, regs.VD)
		b.blank()
		b.marker(regs)
		blocks = append(blocks, b.String())
	}

	f := &file{
		name:     c.Name(),
		inst:     c.Insn.Mnemonic(),
		extras:   fmt.Sprintf("With LMUL=%d, SEW=%d, VL=%d", c.LMUL, c.SEW, c.VL),
		policies: variants,
		blocks:   blocks,
		resBytes: nbytes,
		tdat:     rvv.GenerateTestData(nbytes, c.SEW),
		idat:     idat,
		mask:     arch.MaskQuads(),
	}
	return f.String(), nil
}

// scalarOp emits "op vd, vs2, reg" or, for multiply-add forms, "op vd, reg, vs2".
func (b *block) scalarOp(op string, r rvv.Registers, reg string, scalarFirst bool, tail string) {
	if scalarFirst {
		b.op("%s v%d, %s, v%d%s", op, r.VD, reg, r.VS2, tail)
		return
	}
	b.op("%s v%d, v%d, %s%s", op, r.VD, r.VS2, reg, tail)
}
