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
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{520, 8, 65},
	}
	for _, tt := range tests {
		if got := CeilDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGenerateTestDataLength(t *testing.T) {
	for _, width := range []int{0, 8, 16, 32, 64} {
		for _, nbytes := range []int{0, 1, 7, 8, 9, 64, 100, 520, 4104} {
			t.Run(fmt.Sprintf("w%d/n%d", width, nbytes), func(t *testing.T) {
				got := GenerateTestData(nbytes, width)
				if want := CeilDiv(nbytes, 8); len(got) != want {
					t.Errorf("len(GenerateTestData(%d, %d)) = %d, want %d", nbytes, width, len(got), want)
				}
			})
		}
	}
}

func TestGenerateTestDataDeterministic(t *testing.T) {
	for _, width := range []int{0, 8, 16, 32, 64} {
		a := GenerateTestData(1000, width)
		b := GenerateTestData(1000, width)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("GenerateTestData(1000, %d) not deterministic (-first +second):\n%s", width, diff)
		}
	}
}

func TestGenerateTestDataPeriodic(t *testing.T) {
	for _, width := range []int{0, 8, 16, 32, 64} {
		base := TestPattern(width)
		got := GenerateTestData(8*len(base)*5+3, width)
		for i, w := range got {
			if w != base[i%len(base)] {
				t.Fatalf("width %d: word %d = %#x, want %#x", width, i, w, base[i%len(base)])
			}
		}
	}
}

func TestGenerateTestData64MatchesBase(t *testing.T) {
	want := []uint64{
		0x0000000000000000, 0x0000000000000000,
		0x0000000000000001, 0x0000000000000001,
		0x0000000000000003, 0x0000000000000007,
		0xFFFFFFFFFFFFFFF8, 0x0000000000000000,
		0xFFFFFFFFFFFFFFFF, 0x0000000000000001,
		0xEFFFFFFFFFFFFFFF, 0x0000000000000000,
		0xEFFFFFFFFFFFFFFF, 0x0000000000000001,
		0xFFFFFFFFFFFFFFFF, 0x0000000000000000,
	}
	got := GenerateTestData(16*8, 64)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GenerateTestData(128, 64) mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateTestDataUnknownWidth(t *testing.T) {
	got := GenerateTestData(24, 12)
	want := []uint64{0xBF8003044003B0F0, 0x40400000C0800000, 0xDEADBEEFCAFEBABE}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GenerateTestData(24, 12) mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateIndexedData(t *testing.T) {
	tests := []struct {
		eew    int
		nbytes int
		want   []uint64
	}{
		{8, 16, []uint64{0x0706050403020100, 0x0706050403020100}},
		{16, 24, []uint64{0x0003000200010000, 0x0007000600050004, 0x0003000200010000}},
		{32, 9, []uint64{0x0000000100000000, 0x0000000300000002}},
		{64, 80, []uint64{0, 1, 2, 3, 4, 5, 6, 7, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("eew%d", tt.eew), func(t *testing.T) {
			got := GenerateIndexedData(tt.nbytes, tt.eew)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GenerateIndexedData(%d, %d) mismatch (-want +got):\n%s", tt.nbytes, tt.eew, diff)
			}
		})
	}
}

func TestScaleOffsets(t *testing.T) {
	tests := []struct {
		eew, scale int
		in, want   []uint64
	}{
		{8, 8, []uint64{0x0706050403020100}, []uint64{0x3830282018100800}},
		{16, 4, []uint64{0x0003000200010000}, []uint64{0x000C000800040000}},
		{32, 2, []uint64{0x0000000300000002}, []uint64{0x0000000600000004}},
		{64, 8, []uint64{7}, []uint64{56}},
		{8, 64, []uint64{0x0000000000000004}, []uint64{0}}, // 4*64 wraps at 8 bits
	}
	for _, tt := range tests {
		got := ScaleOffsets(append([]uint64(nil), tt.in...), tt.eew, tt.scale)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ScaleOffsets(%#x, %d, %d) mismatch (-want +got):\n%s", tt.in, tt.eew, tt.scale, diff)
		}
	}
}

func TestFloatHex(t *testing.T) {
	tests := []struct {
		f     float64
		width int
		want  uint64
	}{
		{1.0, 32, 0x3F800000},
		{1.0, 64, 0x3FF0000000000000},
		{-2.0, 32, 0xC0000000},
		{0.5, 64, 0x3FE0000000000000},
		{math.Inf(1), 32, 0x7F800000},
		{1.0, 16, 0},
		{1.0, 0, 0},
	}
	for _, tt := range tests {
		if got := FloatHex(tt.f, tt.width); got != tt.want {
			t.Errorf("FloatHex(%v, %d) = %#x, want %#x", tt.f, tt.width, got, tt.want)
		}
	}
}
