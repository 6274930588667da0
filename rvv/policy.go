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

// Policy selects masking and the tail/mask element policies for one code
// block of a generated test.
type Policy struct {
	Masked          bool // Operation executes under v0.t
	TailUndisturbed bool // tu instead of ta
	MaskUndisturbed bool // mu instead of ma
}

// Variants lists the code blocks every policy-sensitive test renders, in
// file order.
var Variants = []Policy{
	{},
	{Masked: true},
	{TailUndisturbed: true},
	{Masked: true, MaskUndisturbed: true},
}

// VTA returns the vsetvli tail policy operand.
func (p Policy) VTA() string {
	if p.TailUndisturbed {
		return "tu"
	}
	return "ta"
}

// VMA returns the vsetvli mask policy operand.
func (p Policy) VMA() string {
	if p.MaskUndisturbed {
		return "mu"
	}
	return "ma"
}

// String returns e.g. "vm1,ta,mu".
func (p Policy) String() string {
	vm := "vm0"
	if p.Masked {
		vm = "vm1"
	}
	return vm + "," + p.VTA() + "," + p.VMA()
}
