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

package insn

import (
	"fmt"
	"strings"

	"github.com/ajroetker/rvvgen/rvv"
)

// Form describes how an instruction's operand widths relate to SEW.
type Form int

const (
	FormPlain      Form = iota // all operands SEW wide
	FormWiden                  // vd is 2*SEW
	FormNarrow                 // vs2 is 2*SEW, vd is SEW
	FormGatherEI16             // vs1 is a 16-bit index vector
)

// Insn describes one arithmetic instruction the generator tests.
type Insn struct {
	Name        string // mnemonic without the leading "v" and suffix, e.g. "add"
	Suffix      Suffix
	Form        Form
	ScalarFirst bool // multiply-add order: "op vd, rs1, vs2"
}

// Float reports whether the instruction operates on floating-point elements.
func (i Insn) Float() bool {
	return strings.HasPrefix(i.Name, "f")
}

// Mnemonic returns the full assembler mnemonic, e.g. "vadd.vx".
func (i Insn) Mnemonic() string {
	return "v" + i.Name + "." + i.Suffix.String()
}

// String returns the mnemonic.
func (i Insn) String() string {
	return i.Mnemonic()
}

// Shape returns how the instruction's register groups scale with LMUL.
func (i Insn) Shape(sew, lmul int) rvv.Shape {
	s := rvv.Shape{WideSrc2: i.Suffix.Wide() || i.Form == FormNarrow}
	switch i.Form {
	case FormWiden:
		s.WideDest = true
	case FormGatherEI16:
		s.Src1EMUL = rvv.EMULOf(16, sew, lmul)
	}
	return s
}

// Legal reports whether the instruction is generated for (sew, lmul) on a.
func (i Insn) Legal(a rvv.Arch, sew, lmul int) bool {
	if sew > a.ELEN {
		return false
	}
	if i.Float() && !a.FloatLegal(sew) {
		return false
	}
	switch i.Form {
	case FormWiden, FormNarrow:
		if i.Float() {
			return a.FloatWideningLegal(sew, lmul)
		}
		return a.WideningLegal(sew, lmul)
	case FormGatherEI16:
		return a.IndexedLegal(16, sew, lmul)
	}
	return true
}

// Validate checks that the descriptor can be rendered.
func (i Insn) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("instruction with suffix %v has no name", i.Suffix)
	}
	if _, err := i.Suffix.Operand(); err != nil {
		return fmt.Errorf("%s: %w", i.Name, err)
	}
	if i.Suffix == VF && !i.Float() {
		return fmt.Errorf("%s: .vf form of an integer instruction", i.Mnemonic())
	}
	return nil
}
