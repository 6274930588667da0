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

// Package rvv holds the machine model shared by the RISC-V "V" test generator:
// the vector architecture parameters, tail/mask policy variants, operand
// register allocation, legality predicates and the deterministic test data
// that every generated test embeds.
//
// Everything in this package is pure. The same inputs always produce the same
// outputs, so generated test files are reproducible byte for byte.
//
// Basic usage:
//
//	arch := rvv.DefaultArch
//	for _, vl := range arch.VLs(32, 2) {
//	    regs := rvv.Allocate(2, rvv.Shape{})
//	    data := rvv.GenerateTestData(arch.VLEN*2/8+8, 32)
//	    ...
//	}
package rvv
