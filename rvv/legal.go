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

// WideningLegal reports whether an operation producing or consuming 2*SEW
// elements in 2*LMUL groups fits the machine.
func (a Arch) WideningLegal(sew, lmul int) bool {
	return 2*sew <= a.ELEN && 2*lmul <= MaxLMUL
}

// IndexedLegal reports whether offsets of width eew can accompany data of
// width sew under lmul, i.e. EMUL = eew/sew*lmul lies in [1/8, 8].
func (a Arch) IndexedLegal(eew, sew, lmul int) bool {
	return eew <= a.ELEN && sew <= a.ELEN && EMULOf(eew, sew, lmul).Valid()
}

// FloatLegal reports whether floating-point operations are generated at sew.
func (a Arch) FloatLegal(sew int) bool {
	return (sew == 32 || sew == 64) && sew <= a.ELEN
}

// FloatWideningLegal reports whether a floating-point widening operation is
// generated at sew. Only single to double widening exists.
func (a Arch) FloatWideningLegal(sew, lmul int) bool {
	return sew == 32 && a.WideningLegal(sew, lmul)
}

// StrideLegal reports whether a strided access with the given byte stride is
// generated. Stores skip stride 0, whose element write order is unspecified.
func StrideLegal(store bool, stride int) bool {
	return !store || stride != 0
}
