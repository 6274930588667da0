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

import "math"

// Base patterns for GenerateTestData. Each word mixes zero, one, small
// positive, large negative and near-overflow lanes at its element width.
var (
	testPattern8 = []uint64{
		0x000103F8FFEFEFFF,
		0x0001070001000100,
	}
	testPattern16 = []uint64{
		0x000000010003FFF8,
		0x0000000100070000,
		0xFFFFEFFFEFFFFFFF,
		0x0001000000010000,
	}
	testPattern32 = []uint64{
		0x0000000000000001,
		0x0000000000000001,
		0x00000003FFFFFFF8,
		0x0000000700000000,
		0xFFFFFFFFEFFFFFFF,
		0x0000000100000000,
		0xEFFFFFFFFFFFFFFF,
		0x0000000100000000,
	}
	testPattern64 = []uint64{
		0x0000000000000000,
		0x0000000000000000,
		0x0000000000000001,
		0x0000000000000001,
		0x0000000000000003,
		0x0000000000000007,
		0xFFFFFFFFFFFFFFF8,
		0x0000000000000000,
		0xFFFFFFFFFFFFFFFF,
		0x0000000000000001,
		0xEFFFFFFFFFFFFFFF,
		0x0000000000000000,
		0xEFFFFFFFFFFFFFFF,
		0x0000000000000001,
		0xFFFFFFFFFFFFFFFF,
		0x0000000000000000,
	}
	// Float-flavoured words for width-agnostic tests (loads, stores).
	testPatternDefault = []uint64{
		0xBF8003044003B0F0,
		0x40400000C0800000,
		0xDEADBEEFCAFEBABE,
		0xABAD1DEA1337D00D,
	}
)

// Lane indices 0..7 packed at each offset width.
var (
	indexPattern8 = []uint64{
		0x0706050403020100,
	}
	indexPattern16 = []uint64{
		0x0003000200010000,
		0x0007000600050004,
	}
	indexPattern32 = []uint64{
		0x0000000100000000,
		0x0000000300000002,
		0x0000000500000004,
		0x0000000700000006,
	}
	indexPattern64 = []uint64{0, 1, 2, 3, 4, 5, 6, 7}
)

// CeilDiv returns a/b rounded up. a must be non-negative and b positive.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// TestPattern returns the base pattern GenerateTestData repeats for width.
// Widths other than 8, 16, 32 and 64 select the float-oriented pattern.
func TestPattern(width int) []uint64 {
	switch width {
	case 8:
		return testPattern8
	case 16:
		return testPattern16
	case 32:
		return testPattern32
	case 64:
		return testPattern64
	default:
		return testPatternDefault
	}
}

// IndexPattern returns the base pattern GenerateIndexedData repeats for
// offset width eew. Widths other than 8, 16 and 32 select the 64-bit layout.
func IndexPattern(eew int) []uint64 {
	switch eew {
	case 8:
		return indexPattern8
	case 16:
		return indexPattern16
	case 32:
		return indexPattern32
	default:
		return indexPattern64
	}
}

// GenerateTestData returns ceil(nbytes/8) words of the base pattern for
// width, repeated end to end. The result is a fresh slice.
func GenerateTestData(nbytes, width int) []uint64 {
	return repeat(TestPattern(width), CeilDiv(nbytes, 8))
}

// GenerateIndexedData returns ceil(nbytes/8) words of ascending eew-bit lane
// indices (0, 1, ..., 7, 0, 1, ...). Callers turn them into byte offsets with
// ScaleOffsets.
func GenerateIndexedData(nbytes, eew int) []uint64 {
	return repeat(IndexPattern(eew), CeilDiv(nbytes, 8))
}

func repeat(base []uint64, nquads int) []uint64 {
	out := make([]uint64, max(nquads, 0))
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}

// ScaleOffsets multiplies every eew-bit lane of words by scale in place and
// returns words. Lanes wrap at their width.
func ScaleOffsets(words []uint64, eew, scale int) []uint64 {
	if eew <= 0 || eew > 64 || 64%eew != 0 {
		return words
	}
	mask := uint64(math.MaxUint64)
	if eew < 64 {
		mask = 1<<eew - 1
	}
	for i, w := range words {
		var out uint64
		for shift := 0; shift < 64; shift += eew {
			lane := (w >> shift) & mask
			out |= ((lane * uint64(scale)) & mask) << shift
		}
		words[i] = out
	}
	return words
}

// FloatHex returns the IEEE-754 bit pattern of f at width 32 or 64 as an
// unsigned integer, ready to embed as an integer literal. Any other width
// returns 0.
func FloatHex(f float64, width int) uint64 {
	switch width {
	case 32:
		return uint64(math.Float32bits(float32(f)))
	case 64:
		return math.Float64bits(f)
	default:
		return 0
	}
}
