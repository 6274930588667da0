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

// Package sweep enumerates the test cases to generate as explicit cross
// products of typed parameters. Each family owns its parameter space and
// legality rules; an illegal combination never becomes a Case.
package sweep

import (
	"fmt"
	"path"

	"github.com/samber/lo"

	"github.com/ajroetker/rvvgen/rvv"
	"github.com/ajroetker/rvvgen/rvv/insn"
	"github.com/ajroetker/rvvgen/rvv/testcase"
)

// Point is one (LMUL, SEW, VL) coordinate.
type Point struct {
	LMUL, SEW, VL int
}

// Points returns LMUL × SEW × VL for the given element widths, LMUL
// outermost, with the VLs of arch for each (SEW, LMUL).
func Points(arch rvv.Arch, sews []int) []Point {
	var pts []Point
	for _, lmul := range rvv.LMULs {
		for _, sew := range sews {
			for _, vl := range arch.VLs(sew, lmul) {
				pts = append(pts, Point{LMUL: lmul, SEW: sew, VL: vl})
			}
		}
	}
	return pts
}

// Family produces the cases of one group of instructions.
type Family struct {
	Name  string
	Cases func(arch rvv.Arch) []testcase.Case
}

// Families lists every family in generation order.
var Families = []Family{
	{"load-whole", loadWhole},
	{"store-whole", storeWhole},
	{"unit-stride", unitStride},
	{"strided", strided},
	{"indexed", indexed},
	{"arith", arith},
}

// All returns every case for arch.
func All(arch rvv.Arch) []testcase.Case {
	var cases []testcase.Case
	for _, f := range Families {
		cases = append(cases, f.Cases(arch)...)
	}
	return cases
}

// Filter keeps the cases whose file name matches the glob pattern. An empty
// pattern keeps everything.
func Filter(cases []testcase.Case, pattern string) ([]testcase.Case, error) {
	if pattern == "" {
		return cases, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	return lo.Filter(cases, func(c testcase.Case, _ int) bool {
		ok, _ := path.Match(pattern, c.Name())
		return ok
	}), nil
}

func loadWhole(arch rvv.Arch) []testcase.Case {
	var cases []testcase.Case
	for _, nf := range rvv.NFs {
		for _, eew := range arch.SEWs() {
			cases = append(cases, testcase.LoadWhole{NF: nf, EEW: eew})
		}
	}
	return cases
}

func storeWhole(rvv.Arch) []testcase.Case {
	return lo.Map(rvv.NFs, func(nf int, _ int) testcase.Case {
		return testcase.StoreWhole{NF: nf}
	})
}

func unitStride(arch rvv.Arch) []testcase.Case {
	var cases []testcase.Case
	for _, p := range Points(arch, arch.SEWs()) {
		for _, store := range []bool{false, true} {
			cases = append(cases, testcase.UnitStride{Store: store, LMUL: p.LMUL, EEW: p.SEW, VL: p.VL})
		}
	}
	return cases
}

func strided(arch rvv.Arch) []testcase.Case {
	var cases []testcase.Case
	for _, p := range Points(arch, arch.SEWs()) {
		for _, store := range []bool{false, true} {
			for _, n := range []int{0, 1, 2} {
				stride := n * p.SEW / 8
				if !rvv.StrideLegal(store, stride) {
					continue
				}
				cases = append(cases, testcase.Strided{Store: store, LMUL: p.LMUL, EEW: p.SEW, VL: p.VL, Stride: stride})
			}
		}
	}
	return cases
}

// Unordered indexed stores are left out: the cyclic offsets repeat, and
// the winner among colliding unordered writes is not architecturally fixed.
var indexedOps = []testcase.IndexedOp{testcase.UnorderedLoad, testcase.OrderedLoad, testcase.OrderedStore}

func indexed(arch rvv.Arch) []testcase.Case {
	var cases []testcase.Case
	for _, p := range Points(arch, arch.SEWs()) {
		for _, eew := range arch.SEWs() {
			if !arch.IndexedLegal(eew, p.SEW, p.LMUL) {
				continue
			}
			for _, op := range indexedOps {
				cases = append(cases, testcase.Indexed{Op: op, LMUL: p.LMUL, SEW: p.SEW, VL: p.VL, EEW: eew})
			}
		}
	}
	return cases
}

func arith(arch rvv.Arch) []testcase.Case {
	var cases []testcase.Case
	descs := insn.Arith()
	for _, p := range Points(arch, arch.SEWs()) {
		for _, d := range descs {
			if !d.Legal(arch, p.SEW, p.LMUL) {
				continue
			}
			cases = append(cases, testcase.Arith{Insn: d, LMUL: p.LMUL, SEW: p.SEW, VL: p.VL})
		}
	}
	return cases
}
