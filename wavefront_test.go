// Copyright © 2025 the wfa authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package wfa

import (
	"math"
	"testing"
)

func TestK2I(t *testing.T) {
	tests := []struct{ k, i int }{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2, 4}, {-3, 5}, {3, 6},
	}
	for _, c := range tests {
		if i := k2i(c.k); i != c.i {
			t.Errorf("k2i(%d) = %d, want %d", c.k, i, c.i)
		}
	}

	// the interleaving must be a bijection.
	seen := make(map[int]int)
	for k := -1000; k <= 1000; k++ {
		i := k2i(k)
		if prev, ok := seen[i]; ok {
			t.Fatalf("k2i maps both %d and %d to %d", prev, k, i)
		}
		seen[i] = k
	}
}

func TestWaveFrontSetGet(t *testing.T) {
	wf := NewWaveFront()
	defer RecycleWaveFront(wf)

	if wf.Lo != math.MaxInt || wf.Hi != math.MinInt {
		t.Fatalf("fresh wavefront has range [%d, %d]", wf.Lo, wf.Hi)
	}
	if _, _, ok := wf.Get(0); ok {
		t.Fatal("fresh wavefront has a record at k=0")
	}

	wf.Set(0, 7, btMismatch)
	wf.Set(-2, 3, btInsOpen)
	wf.Set(5, 11, btDelExt)

	if wf.Lo != -2 || wf.Hi != 5 {
		t.Errorf("range [%d, %d], want [-2, 5]", wf.Lo, wf.Hi)
	}

	tests := []struct {
		k      int
		offset uint32
		bt     uint32
		ok     bool
	}{
		{0, 7, btMismatch, true},
		{-2, 3, btInsOpen, true},
		{5, 11, btDelExt, true},
		{-1, 0, 0, false}, // inside the range, no record
		{1, 0, 0, false},
		{-3, 0, 0, false}, // outside the range
		{6, 0, 0, false},
	}
	for _, c := range tests {
		offset, bt, ok := wf.Get(c.k)
		if offset != c.offset || bt != c.bt || ok != c.ok {
			t.Errorf("Get(%d) = (%d, %d, %v), want (%d, %d, %v)",
				c.k, offset, bt, ok, c.offset, c.bt, c.ok)
		}
	}
}

func TestWaveFrontIncrease(t *testing.T) {
	wf := NewWaveFront()
	defer RecycleWaveFront(wf)

	wf.Set(-1, 4, btDelOpen)
	wf.Increase(-1, 3)

	offset, bt, ok := wf.Get(-1)
	if !ok || offset != 7 || bt != btDelOpen {
		t.Errorf("Get(-1) = (%d, %d, %v), want (7, %d, true)", offset, bt, ok, btDelOpen)
	}
}

func TestWaveFrontGrow(t *testing.T) {
	wf := NewWaveFront()
	defer RecycleWaveFront(wf)

	// far beyond the initial capacity, on both sides.
	wf.Set(3000, 42, btMatch)
	wf.Set(-2500, 17, btInsExt)

	if offset, _, ok := wf.Get(3000); !ok || offset != 42 {
		t.Errorf("Get(3000) = (%d, _, %v), want (42, _, true)", offset, ok)
	}
	if offset, _, ok := wf.Get(-2500); !ok || offset != 17 {
		t.Errorf("Get(-2500) = (%d, _, %v), want (17, _, true)", offset, ok)
	}
	if wf.Lo != -2500 || wf.Hi != 3000 {
		t.Errorf("range [%d, %d], want [-2500, 3000]", wf.Lo, wf.Hi)
	}
}

func TestComponent(t *testing.T) {
	cpt := NewComponent()
	defer RecycleComponent(cpt)

	cpt.Set(0, 0, 1, btMatch)
	cpt.Set(4, -2, 9, btInsOpen)

	if offset, bt, ok := cpt.Get(0, 0); !ok || offset != 1 || bt != btMatch {
		t.Errorf("Get(0, 0) = (%d, %d, %v)", offset, bt, ok)
	}
	if offset, bt, ok := cpt.Get(4, -2); !ok || offset != 9 || bt != btInsOpen {
		t.Errorf("Get(4, -2) = (%d, %d, %v)", offset, bt, ok)
	}

	// scores without a wavefront, and scores beyond the history.
	if _, _, ok := cpt.Get(2, 0); ok {
		t.Error("Get(2, 0) found a record in a nil wavefront")
	}
	if _, _, ok := cpt.Get(100000, 0); ok {
		t.Error("Get far beyond the history found a record")
	}
}

func TestComponentGetAfterDiff(t *testing.T) {
	cpt := NewComponent()
	defer RecycleComponent(cpt)

	cpt.Set(3, 1, 5, btDelOpen)

	if offset, _, ok := cpt.GetAfterDiff(7, 4, 1); !ok || offset != 5 {
		t.Errorf("GetAfterDiff(7, 4, 1) = (%d, _, %v), want (5, _, true)", offset, ok)
	}
	// a diff larger than the score is unreachable, not an underflow.
	if _, _, ok := cpt.GetAfterDiff(3, 4, 1); ok {
		t.Error("GetAfterDiff(3, 4, 1) found a record below score 0")
	}
}

func TestComponentKRange(t *testing.T) {
	cpt := NewComponent()
	defer RecycleComponent(cpt)

	cpt.Set(2, -3, 1, btInsOpen)
	cpt.Set(2, 4, 8, btDelOpen)

	if lo, hi := cpt.KRange(5, 3); lo != -3 || hi != 4 {
		t.Errorf("KRange(5, 3) = [%d, %d], want [-3, 4]", lo, hi)
	}

	// missing wavefronts yield an empty range so unions stay exact.
	if lo, hi := cpt.KRange(5, 1); lo <= hi {
		t.Errorf("KRange(5, 1) = [%d, %d], want an empty range", lo, hi)
	}
	if lo, hi := cpt.KRange(2, 3); lo <= hi {
		t.Errorf("KRange(2, 3) = [%d, %d], want an empty range", lo, hi)
	}
}
