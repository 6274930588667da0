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

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/samber/lo"
)

// MaxLMUL is the largest register group multiplier, including effective
// multipliers derived from widening and index operands.
const MaxLMUL = 8

var (
	// SEWs lists the selectable element widths in bits.
	SEWs = []int{8, 16, 32, 64}

	// LMULs lists the integral register group multipliers.
	LMULs = []int{1, 2, 4, 8}

	// NFs lists the register counts of whole-register loads and stores.
	NFs = []int{1, 2, 4, 8}
)

// Arch describes the simulated vector unit.
type Arch struct {
	VLEN int // Bits per vector register
	ELEN int // Largest supported element width in bits
}

// DefaultArch matches the reference simulator's "vlen:4096,elen:64".
var DefaultArch = Arch{VLEN: 4096, ELEN: 64}

// Validate reports whether a describes a machine the V extension allows.
func (a Arch) Validate() error {
	if a.ELEN != 32 && a.ELEN != 64 {
		return fmt.Errorf("ELEN must be 32 or 64, got %d", a.ELEN)
	}
	if a.VLEN < 128 || a.VLEN > 65536 || bits.OnesCount(uint(a.VLEN)) != 1 {
		return fmt.Errorf("VLEN must be a power of two in [128, 65536], got %d", a.VLEN)
	}
	if a.VLEN < a.ELEN {
		return errors.New("VLEN must not be smaller than ELEN")
	}
	return nil
}

// VLENB returns the vector register size in bytes.
func (a Arch) VLENB() int {
	return a.VLEN / 8
}

// VLMax returns the number of elements of width sew that fit in a group of
// lmul registers.
func (a Arch) VLMax(sew, lmul int) int {
	return a.VLEN / sew * lmul
}

// VLs returns the vector lengths exercised for a (sew, lmul) pair: half the
// group, one short of full, and full. Duplicates collapse on tiny machines.
func (a Arch) VLs(sew, lmul int) []int {
	vlmax := a.VLMax(sew, lmul)
	return lo.Uniq([]int{vlmax / 2, vlmax - 1, vlmax})
}

// SEWs returns the element widths supported by a.
func (a Arch) SEWs() []int {
	return lo.Filter(SEWs, func(sew int, _ int) bool { return sew <= a.ELEN })
}

// MaskQuads returns the number of 64-bit words needed to hold one mask bit
// per element of the longest possible vector (e8, m8).
func (a Arch) MaskQuads() int {
	return max(4, a.VLEN/64)
}

// GroupBytes returns the bytes covered by a group of n registers.
func (a Arch) GroupBytes(n int) int {
	return a.VLENB() * n
}

// EMUL is an effective group multiplier measured in eighths of a register,
// so the fractional multipliers 1/8, 1/4 and 1/2 are exact.
type EMUL int

// EMULOf returns the effective multiplier of an operand with element width
// eew accessed alongside data of width sew under group multiplier lmul.
func EMULOf(eew, sew, lmul int) EMUL {
	return EMUL(eew * lmul * 8 / sew)
}

// Fractional reports whether e is smaller than one register.
func (e EMUL) Fractional() bool {
	return e < 8
}

// Valid reports whether e lies in [1/8, 8].
func (e EMUL) Valid() bool {
	return e >= 1 && e <= 8*MaxLMUL
}

// Registers returns the number of whole registers an operand with this
// multiplier occupies.
func (e EMUL) Registers() int {
	return max(1, int(e)/8)
}

// String returns the vsetvli LMUL operand: "m2", "mf4", ...
func (e EMUL) String() string {
	if e.Fractional() {
		return fmt.Sprintf("mf%d", 8/int(e))
	}
	return fmt.Sprintf("m%d", int(e)/8)
}

// EMULBytes returns the bytes covered by an operand group with multiplier e.
func (a Arch) EMULBytes(e EMUL) int {
	return a.VLENB() * int(e) / 8
}
