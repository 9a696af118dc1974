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
	"fmt"
	"testing"
)

func TestReferenceAlignKnownScores(t *testing.T) {
	tests := []struct {
		q, t                     string
		mismatch, gapOpen, gapExt int
		score                    uint32
	}{
		{"CAT", "CAT", 4, 6, 2, 0},
		{"", "", 4, 6, 2, 0},
		{"", "ACGT", 1, 2, 1, 6},
		{"ACGT", "", 1, 2, 1, 6},
		{"CAT", "CAC", 1, 2, 2, 1},
		{"XX", "YY", 1, 100, 100, 2},
		{"XX", "YY", 100, 1, 1, 6},
		{"XX", "YYYYYYYY", 100, 1, 1, 12},
		{"CAT", "CATS", 1, 1, 1, 2},
		{"A", "AAAA", 1, 3, 0, 3},
		{"AA", "", 1, 3, 0, 3},
		{"CAAT", "CAT", 4, 2, 1, 3},
		{"XXZZ", "XXYZ", 100, 1, 1, 4},
		{"AViidI", "ViidIM", 3, 1, 1, 4},
		{"TCTTTACTCGCGCGTTGGAGAAATACAATAGT", "TCTATACTGCGCGTTTGGAGAAATAAAATAGT", 1, 1, 1, 6},
		{"TCTTTACTCGCGCGTTGGAGAAATACAATAGT", "TCTATACTGCGCGTTTGGAGAAATAAAATAGT", 135, 82, 19, 472},
	}

	for _, c := range tests {
		name := fmt.Sprintf("%s/%s/x%d-o%d-e%d", c.q, c.t, c.mismatch, c.gapOpen, c.gapExt)
		t.Run(name, func(t *testing.T) {
			p, err := NewPenalties(c.mismatch, c.gapOpen, c.gapExt)
			if err != nil {
				t.Fatal(err)
			}

			q, tx := []byte(c.q), []byte(c.t)
			a, err := ReferenceAlign(q, tx, p)
			if err != nil {
				t.Fatal(err)
			}
			defer RecycleAlignment(a)

			if a.Score != c.score {
				t.Errorf("score %d, want %d (%s)", a.Score, c.score, a.CIGAR())
			}
			checkConsistent(t, a, q, tx, p)
		})
	}
}

func TestReferenceAlignLongerQuery(t *testing.T) {
	p := &Penalties{Mismatch: 4, GapOpen: 6, GapExt: 2}

	a, err := ReferenceAlign([]byte("GATTACA"), []byte("GACA"), p)
	if err != nil {
		t.Fatal(err)
	}
	defer RecycleAlignment(a)

	// one insertion run of three: GapOpen + 3*GapExt.
	if a.Score != 12 {
		t.Errorf("score %d, want 12 (%s)", a.Score, a.CIGAR())
	}
	if a.QueryLen() != 7 || a.TextLen() != 4 {
		t.Errorf("consumed %d/%d, want 7/4 (%s)", a.QueryLen(), a.TextLen(), a.CIGAR())
	}
}
