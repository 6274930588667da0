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

// group expands names into descriptors sharing a suffix and form.
func group(suffix Suffix, form Form, names ...string) []Insn {
	out := make([]Insn, len(names))
	for i, name := range names {
		out[i] = Insn{Name: name, Suffix: suffix, Form: form}
	}
	return out
}

func mulAdd(suffix Suffix, names ...string) []Insn {
	out := group(suffix, FormPlain, names...)
	if suffix == VX || suffix == VF {
		for i := range out {
			out[i].ScalarFirst = true
		}
	}
	return out
}

var (
	integerVV = group(VV, FormPlain,
		"add", "sub", "minu", "min", "maxu", "max",
		"and", "or", "xor",
		"divu", "div", "rem", "remu",
		"mulhu", "mul", "mulhsu", "mulh",
		"rgather", "saddu",
		"sll", "srl", "sra",
	)
	integerVI = group(VI, FormPlain,
		"add", "rsub", "and", "or", "xor",
		"rgather", "slideup", "slidedown", "saddu",
		"sll", "srl", "sra",
	)
	integerVX = group(VX, FormPlain,
		"add", "sub", "rsub", "minu", "min", "maxu", "max",
		"and", "or", "xor",
		"divu", "div", "rem", "remu",
		"mulhu", "mul", "mulhsu", "mulh",
		"rgather", "slideup", "slidedown", "saddu",
		"sll", "srl", "sra",
	)
	carryVVM = group(VVM, FormPlain, "adc", "sbc", "merge")
	carryVIM = group(VIM, FormPlain, "adc", "merge")
	carryVXM = group(VXM, FormPlain, "adc", "sbc", "merge")

	floatVV = group(VV, FormPlain, "fadd", "fsub", "fmin", "fmax", "fsgnj", "fsgnjn", "fsgnjx")
	floatVF = group(VF, FormPlain, "fadd", "fsub", "fmin", "fmax", "fsgnj", "fsgnjn", "fsgnjx")

	mulAddVV      = mulAdd(VV, "macc", "nmsac", "madd", "nmsub")
	mulAddVX      = mulAdd(VX, "macc", "nmsac", "madd", "nmsub")
	floatMulAddVV = mulAdd(VV, "fmacc", "fnmsac", "fmadd", "fnmsub")
	floatMulAddVF = mulAdd(VF, "fmacc", "fnmsac", "fmadd", "fnmsub")

	widenVV      = group(VV, FormWiden, "waddu", "wadd", "wsubu", "wsub", "wmulu", "wmul")
	widenVX      = group(VX, FormWiden, "waddu", "wadd", "wsubu", "wsub", "wmulu", "wmul")
	widenWV      = group(WV, FormWiden, "waddu", "wadd", "wsubu", "wsub")
	widenWX      = group(WX, FormWiden, "waddu", "wadd", "wsubu", "wsub")
	floatWidenVV = group(VV, FormWiden, "fwadd", "fwsub")
	floatWidenVF = group(VF, FormWiden, "fwadd", "fwsub")

	narrowWV = group(WV, FormNarrow, "nsrl", "nsra")
	narrowWX = group(WX, FormNarrow, "nsrl", "nsra")
	narrowWI = group(WI, FormNarrow, "nsrl", "nsra")

	gatherEI16 = group(VV, FormGatherEI16, "rgatherei16")
)

// Arith returns every arithmetic instruction descriptor in generation order.
func Arith() []Insn {
	var all []Insn
	for _, g := range [][]Insn{
		integerVV, integerVI, integerVX,
		carryVVM, carryVIM, carryVXM,
		mulAddVV, mulAddVX,
		widenVV, widenVX, widenWV, widenWX,
		narrowWV, narrowWX, narrowWI,
		gatherEI16,
		floatVV, floatVF,
		floatMulAddVV, floatMulAddVF,
		floatWidenVV, floatWidenVF,
	} {
		all = append(all, g...)
	}
	return all
}
