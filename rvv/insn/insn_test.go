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
	"testing"

	"github.com/ajroetker/rvvgen/rvv"
)

// lookup returns the table entry for a full mnemonic such as "vadd.vx".
func lookup(mnemonic string) (Insn, bool) {
	for _, i := range Arith() {
		if i.Mnemonic() == mnemonic {
			return i, true
		}
	}
	return Insn{}, false
}

func TestSuffixOperandUnknown(t *testing.T) {
	if _, err := Suffix(99).Operand(); !errors.Is(err, ErrUnknownSuffix) {
		t.Errorf("Suffix(99).Operand() error = %v, want ErrUnknownSuffix", err)
	}
}

func TestTablesValid(t *testing.T) {
	seen := map[string]bool{}
	for _, i := range Arith() {
		if err := i.Validate(); err != nil {
			t.Errorf("%v: %v", i, err)
		}
		if seen[i.Mnemonic()] {
			t.Errorf("duplicate descriptor %s", i.Mnemonic())
		}
		seen[i.Mnemonic()] = true
	}
	for _, m := range []string{"vadd.vv", "vrsub.vi", "vmerge.vxm", "vfsgnjx.vf", "vwaddu.wx", "vnsra.wi", "vrgatherei16.vv", "vfmacc.vf"} {
		if !seen[m] {
			t.Errorf("missing descriptor %s", m)
		}
	}
}

func TestMulAddScalarFirst(t *testing.T) {
	for _, m := range []string{"vmacc.vx", "vnmsub.vx", "vfmacc.vf"} {
		i, ok := lookup(m)
		if !ok {
			t.Fatalf("lookup(%q) not found", m)
		}
		if !i.ScalarFirst {
			t.Errorf("%s should take the scalar operand first", m)
		}
	}
	if i, _ := lookup("vadd.vx"); i.ScalarFirst {
		t.Error("vadd.vx should take the scalar operand last")
	}
}

func TestInsnLegal(t *testing.T) {
	arch := rvv.DefaultArch
	tests := []struct {
		mnemonic  string
		sew, lmul int
		want      bool
	}{
		{"vadd.vv", 8, 8, true},
		{"vfadd.vv", 16, 1, false},
		{"vfadd.vf", 64, 8, true},
		{"vwadd.vv", 32, 4, true},
		{"vwadd.vv", 64, 1, false},
		{"vwadd.wv", 8, 8, false},
		{"vnsrl.wi", 16, 4, true},
		{"vnsrl.wi", 16, 8, false},
		{"vfwadd.vf", 64, 1, false},
		{"vfwadd.vf", 32, 4, true},
		{"vrgatherei16.vv", 8, 8, false},
		{"vrgatherei16.vv", 8, 4, true},
		{"vrgatherei16.vv", 64, 8, true},
	}
	for _, tt := range tests {
		i, ok := lookup(tt.mnemonic)
		if !ok {
			t.Fatalf("lookup(%q) not found", tt.mnemonic)
		}
		if got := i.Legal(arch, tt.sew, tt.lmul); got != tt.want {
			t.Errorf("%s.Legal(sew=%d, lmul=%d) = %v, want %v", tt.mnemonic, tt.sew, tt.lmul, got, tt.want)
		}
	}
}

// No legal widening or narrowing configuration needs a group beyond m8.
func TestWideningNeverExceedsMaxLMUL(t *testing.T) {
	arch := rvv.DefaultArch
	for _, i := range Arith() {
		for _, sew := range rvv.SEWs {
			for _, lmul := range rvv.LMULs {
				if !i.Legal(arch, sew, lmul) {
					continue
				}
				r := rvv.Allocate(lmul, i.Shape(sew, lmul))
				for _, size := range []int{r.VDSize, r.VS2Size, r.VS1Size} {
					if size > rvv.MaxLMUL {
						t.Errorf("%s sew=%d lmul=%d: group of %d registers", i, sew, lmul, size)
					}
				}
				if err := r.Validate(); err != nil {
					t.Errorf("%s sew=%d lmul=%d: %v", i, sew, lmul, err)
				}
			}
		}
	}
}
