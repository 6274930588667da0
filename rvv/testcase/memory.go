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
)

// LoadWhole tests vl<NF>re<EEW>.v.
type LoadWhole struct {
	NF, EEW int
}

// Name returns e.g. "vl2re32_v.S".
func (c LoadWhole) Name() string {
	return fmt.Sprintf("vl%dre%d_v.S", c.NF, c.EEW)
}

// Render loads NF registers from tdat after filling them from tdat+8, so a
// load that did nothing is visible in the dump.
func (c LoadWhole) Render(arch rvv.Arch) (string, error) {
	if c.EEW > arch.ELEN {
		return "", fmt.Errorf("%s: EEW %d exceeds ELEN %d", c.Name(), c.EEW, arch.ELEN)
	}
	regs := rvv.Allocate(c.NF, rvv.Shape{})
	nbytes := arch.GroupBytes(c.NF)

	b := newBlock()
	b.setAll(c.EEW, m(c.NF))
	b.op("la a2, tdat")
	b.op("mv s1, a2")
	b.op("addi a2, a2, 8")
	b.op("vle%d.v v%d, (a2)", c.EEW, regs.VD)
	b.blank()
	b.op("vl%dre%d.v v%d, (s1)", c.NF, c.EEW, regs.VD)
	b.blank()
	b.setAll(c.EEW, m(c.NF))
	b.op("la a1, res")
	b.op("vse%d.v v%d, (a1)", c.EEW, regs.VD)
	b.blank()
	b.marker(regs)

	f := &file{
		name:     c.Name(),
		inst:     fmt.Sprintf("vl%dre%d.v", c.NF, c.EEW),
		blocks:   []string{b.String()},
		resBytes: nbytes,
		tdat:     rvv.GenerateTestData(nbytes+8, 0),
	}
	return f.String(), nil
}

// StoreWhole tests vs<NF>r.v.
type StoreWhole struct {
	NF int
}

// Name returns e.g. "vs4r_v.S".
func (c StoreWhole) Name() string {
	return fmt.Sprintf("vs%dr_v.S", c.NF)
}

// Render stores NF registers over a different copy of the data and reloads
// the result from memory for the dump.
func (c StoreWhole) Render(arch rvv.Arch) (string, error) {
	regs := rvv.Allocate(c.NF, rvv.Shape{})
	nbytes := arch.GroupBytes(c.NF)

	b := newBlock()
	b.setAll(8, m(c.NF))
	b.op("la a2, tdat")
	b.op("mv s1, a2")
	b.op("addi a2, a2, 8")
	b.op("vle8.v v%d, (a2)", regs.VD)
	b.op("la a1, res")
	b.op("vse8.v v%d, (a1)", regs.VD)
	b.op("vle8.v v%d, (s1)", regs.VD)
	b.blank()
	b.op("vs%dr.v v%d, (a1)", c.NF, regs.VD)
	b.blank()
	b.op("vle8.v v%d, (a1)", regs.VD)
	b.blank()
	b.marker(regs)

	f := &file{
		name:     c.Name(),
		inst:     fmt.Sprintf("vs%dr.v", c.NF),
		blocks:   []string{b.String()},
		resBytes: nbytes,
		tdat:     rvv.GenerateTestData(nbytes+8, 0),
	}
	return f.String(), nil
}

// UnitStride tests vle<EEW>.v and vse<EEW>.v.
type UnitStride struct {
	Store         bool
	LMUL, EEW, VL int
}

func (c UnitStride) op() string {
	if c.Store {
		return "vse"
	}
	return "vle"
}

// Name returns e.g. "vle32_v_LMUL1VL64.S".
func (c UnitStride) Name() string {
	return fmt.Sprintf("%s%d_v_LMUL%dVL%d.S", c.op(), c.EEW, c.LMUL, c.VL)
}

// Render emits one block per policy variant.
func (c UnitStride) Render(arch rvv.Arch) (string, error) {
	if c.EEW > arch.ELEN {
		return "", fmt.Errorf("%s: EEW %d exceeds ELEN %d", c.Name(), c.EEW, arch.ELEN)
	}
	regs := rvv.Allocate(c.LMUL, rvv.Shape{})
	nbytes := arch.GroupBytes(c.LMUL) + 8
	mul := m(c.LMUL)

	var blocks []string
	for _, p := range rvv.Variants {
		b := newBlock()
		b.setAll(c.EEW, mul)
		b.op("la a2, tdat")
		b.op("mv s1, a2")
		b.op("addi a2, a2, 8")
		b.op("vle%d.v v%d, (a2)", c.EEW, regs.VD)
		if c.Store {
			b.op("la a1, res")
			b.op("vse%d.v v%d, (a1)", c.EEW, regs.VD)
			b.op("vle%d.v v%d, (s1)", c.EEW, regs.VD)
		}
		b.blank()
		if p.Masked {
			b.loadMask()
		}
		b.setVL(c.VL, c.EEW, mul, p)
		if c.Store {
			b.op("vse%d.v v%d, (a1)%s", c.EEW, regs.VD, maskOperand(p))
			b.blank()
			b.setAll(c.EEW, mul)
			b.op("vle%d.v v%d, (a1)", c.EEW, regs.VD)
		} else {
			b.op("vle%d.v v%d, (s1)%s", c.EEW, regs.VD, maskOperand(p))
			b.blank()
			b.setAll(c.EEW, mul)
			b.op("la a1, res")
			b.op("vse%d.v v%d, (a1)", c.EEW, regs.VD)
		}
		b.blank()
		b.marker(regs)
		blocks = append(blocks, b.String())
	}

	f := &file{
		name:     c.Name(),
		inst:     fmt.Sprintf("%s%d.v", c.op(), c.EEW),
		extras:   fmt.Sprintf("With LMUL=%d, VL=%d", c.LMUL, c.VL),
		policies: rvv.Variants,
		blocks:   blocks,
		resBytes: nbytes,
		tdat:     rvv.GenerateTestData(nbytes, 0),
		mask:     arch.MaskQuads(),
	}
	return f.String(), nil
}

// Strided tests vlse<EEW>.v and vsse<EEW>.v with a byte stride.
type Strided struct {
	Store                 bool
	LMUL, EEW, VL, Stride int
}

func (c Strided) op() string {
	if c.Store {
		return "vsse"
	}
	return "vlse"
}

// Name returns e.g. "vlse16_v_LMUL2VL31STRIDE4.S".
func (c Strided) Name() string {
	return fmt.Sprintf("%s%d_v_LMUL%dVL%dSTRIDE%d.S", c.op(), c.EEW, c.LMUL, c.VL, c.Stride)
}

// Render emits one block per policy variant. The data block is large
// enough for VLMAX elements at the stride.
func (c Strided) Render(arch rvv.Arch) (string, error) {
	if !rvv.StrideLegal(c.Store, c.Stride) {
		return "", fmt.Errorf("%s: stride %d is not generated for stores", c.Name(), c.Stride)
	}
	regs := rvv.Allocate(c.LMUL, rvv.Shape{})
	nbytes := arch.GroupBytes(c.LMUL)*max(c.Stride, 1) + 8
	mul := m(c.LMUL)

	var blocks []string
	for _, p := range rvv.Variants {
		b := newBlock()
		b.setAll(c.EEW, mul)
		b.op("la a2, tdat")
		b.op("mv s1, a2")
		b.op("addi a2, a2, 8")
		b.op("vle%d.v v%d, (a2)", c.EEW, regs.VD)
		if c.Store {
			b.op("la a1, res")
			b.op("vse%d.v v%d, (a1)", c.EEW, regs.VD)
			b.op("vle%d.v v%d, (s1)", c.EEW, regs.VD)
		}
		b.blank()
		if p.Masked {
			b.loadMask()
		}
		b.setVL(c.VL, c.EEW, mul, p)
		b.op("li t2, %d", c.Stride)
		if c.Store {
			b.op("vsse%d.v v%d, (a1), t2%s", c.EEW, regs.VD, maskOperand(p))
			b.blank()
			b.setAll(c.EEW, mul)
			b.op("vlse%d.v v%d, (a1), t2", c.EEW, regs.VD)
		} else {
			b.op("vlse%d.v v%d, (s1), t2%s", c.EEW, regs.VD, maskOperand(p))
			b.blank()
			b.setAll(c.EEW, mul)
			b.op("la a1, res")
			b.op("vse%d.v v%d, (a1)", c.EEW, regs.VD)
		}
		b.blank()
		b.marker(regs)
		blocks = append(blocks, b.String())
	}

	f := &file{
		name:     c.Name(),
		inst:     fmt.Sprintf("%s%d.v", c.op(), c.EEW),
		extras:   fmt.Sprintf("With LMUL=%d, VL=%d, STRIDE=%d", c.LMUL, c.VL, c.Stride),
		policies: rvv.Variants,
		blocks:   blocks,
		resBytes: nbytes,
		tdat:     rvv.GenerateTestData(nbytes, 0),
		mask:     arch.MaskQuads(),
	}
	return f.String(), nil
}

// IndexedOp is an indexed memory instruction prefix.
type IndexedOp string

const (
	UnorderedLoad  IndexedOp = "vluxei"
	OrderedLoad    IndexedOp = "vloxei"
	UnorderedStore IndexedOp = "vsuxei"
	OrderedStore   IndexedOp = "vsoxei"
)

// Store reports whether o writes memory.
func (o IndexedOp) Store() bool {
	return o == UnorderedStore || o == OrderedStore
}

// Indexed tests vl[uo]xei<EEW>.v and vs[uo]xei<EEW>.v. SEW is the data
// width, EEW the offset width.
type Indexed struct {
	Op                 IndexedOp
	LMUL, SEW, VL, EEW int
}

// Name returns e.g. "vloxei16_v_LMUL2SEW32VL64.S".
func (c Indexed) Name() string {
	return fmt.Sprintf("%s%d_v_LMUL%dSEW%dVL%d.S", c.Op, c.EEW, c.LMUL, c.SEW, c.VL)
}

// Render emits one block per policy variant with byte offsets in idat. It
// fails when the offset group multiplier is out of range.
func (c Indexed) Render(arch rvv.Arch) (string, error) {
	if !arch.IndexedLegal(c.EEW, c.SEW, c.LMUL) {
		return "", fmt.Errorf("%s: EMUL %v out of range", c.Name(), rvv.EMULOf(c.EEW, c.SEW, c.LMUL))
	}
	emul := rvv.EMULOf(c.EEW, c.SEW, c.LMUL)
	regs := rvv.Allocate(c.LMUL, rvv.Shape{Src2EMUL: emul})
	if err := regs.Validate(); err != nil {
		return "", fmt.Errorf("%s: %w", c.Name(), err)
	}
	nbytes := arch.GroupBytes(c.LMUL) + 8
	mul := m(c.LMUL)

	offsets := rvv.GenerateIndexedData(max(8, arch.EMULBytes(emul)), c.EEW)
	rvv.ScaleOffsets(offsets, c.EEW, c.SEW/8)

	var blocks []string
	for _, p := range rvv.Variants {
		b := newBlock()
		b.setAll(c.SEW, mul)
		b.op("la a2, tdat")
		b.op("mv s1, a2")
		b.op("addi a2, a2, 8")
		b.op("vle%d.v v%d, (a2)", c.SEW, regs.VD)
		if c.Op.Store() {
			b.op("la a1, res")
			b.op("vse%d.v v%d, (a1)", c.SEW, regs.VD)
			b.op("vle%d.v v%d, (s1)", c.SEW, regs.VD)
		}
		b.blank()
		b.op("li t0, %d", c.VL)
		b.op("vsetvli t1, t0, e%d,%s,ta,ma", c.EEW, emul)
		b.op("la a2, idat")
		b.op("vle%d.v v%d, (a2)", c.EEW, regs.VS2)
		b.blank()
		if p.Masked {
			b.loadMask()
		}
		b.setVL(c.VL, c.SEW, mul, p)
		if c.Op.Store() {
			b.op("%s%d.v v%d, (a1), v%d%s", c.Op, c.EEW, regs.VD, regs.VS2, maskOperand(p))
			b.blank()
			b.setAll(c.SEW, mul)
			b.op("vle%d.v v%d, (a1)", c.SEW, regs.VD)
		} else {
			b.op("%s%d.v v%d, (s1), v%d%s", c.Op, c.EEW, regs.VD, regs.VS2, maskOperand(p))
			b.blank()
			b.setAll(c.SEW, mul)
			b.op("la a1, res")
			b.op("vse%d.v v%d, (a1)", c.SEW, regs.VD)
		}
		b.blank()
		b.marker(regs)
		blocks = append(blocks, b.String())
	}

	f := &file{
		name:     c.Name(),
		inst:     fmt.Sprintf("%s%d.v", c.Op, c.EEW),
		extras:   fmt.Sprintf("With LMUL=%d, SEW=%d, VL=%d, EEW=%d", c.LMUL, c.SEW, c.VL, c.EEW),
		policies: rvv.Variants,
		blocks:   blocks,
		resBytes: nbytes,
		tdat:     rvv.GenerateTestData(nbytes, 0),
		idat:     offsets,
		mask:     arch.MaskQuads(),
	}
	return f.String(), nil
}
