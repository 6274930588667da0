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
	"errors"
	"fmt"
)

// ErrUnknownSuffix reports an operand suffix with no rendering rule. It means
// the instruction tables and the renderers are out of sync.
var ErrUnknownSuffix = errors.New("unknown suffix")

// Suffix is an instruction's operand-form suffix, e.g. the "vx" of vadd.vx.
type Suffix int

const (
	VV  Suffix = iota + 1 // vector-vector
	VI                    // vector-immediate
	VX                    // vector-scalar (x register)
	VF                    // vector-scalar (f register)
	VVM                   // vector-vector with v0 operand
	VIM                   // vector-immediate with v0 operand
	VXM                   // vector-scalar with v0 operand
	WV                    // wide vs2, vector vs1
	WX                    // wide vs2, scalar
	WI                    // wide vs2, immediate
)

var suffixNames = map[Suffix]string{
	VV: "vv", VI: "vi", VX: "vx", VF: "vf",
	VVM: "vvm", VIM: "vim", VXM: "vxm",
	WV: "wv", WX: "wx", WI: "wi",
}

func (s Suffix) String() string {
	if name, ok := suffixNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Suffix(%d)", int(s))
}

// Operand classifies the last source operand of a suffix.
type Operand int

const (
	OperandVector Operand = iota + 1
	OperandImm
	OperandScalar
	OperandFloat
)

// Operand returns the kind of the suffix's last source operand.
func (s Suffix) Operand() (Operand, error) {
	switch s {
	case VV, VVM, WV:
		return OperandVector, nil
	case VI, VIM, WI:
		return OperandImm, nil
	case VX, VXM, WX:
		return OperandScalar, nil
	case VF:
		return OperandFloat, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownSuffix, s)
}

// UsesV0 reports whether v0 is a data operand (carry-in or merge selector)
// rather than an execution mask.
func (s Suffix) UsesV0() bool {
	return s == VVM || s == VIM || s == VXM
}

// Wide reports whether vs2 holds 2*SEW elements.
func (s Suffix) Wide() bool {
	return s == WV || s == WX || s == WI
}
