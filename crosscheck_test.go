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

package wfa_test

import (
	"math/rand"
	"testing"

	"github.com/seqalign/wfa"
	"github.com/seqalign/wfa/seqgen"
	"github.com/stretchr/testify/require"
)

// TestAlignCrossValidation aligns randomized sequence pairs with both the
// wavefront aligner and the quadratic reference, and requires that the two
// agree on the optimal score and that the reported operations consume both
// sequences and cost exactly the reported score.
func TestAlignCrossValidation(t *testing.T) {
	const cases = 500

	rng := rand.New(rand.NewSource(11))

	for i := 0; i < cases; i++ {
		q := seqgen.Random(rng, 0, 60)
		tx := seqgen.Mutate(rng, q, 0, 100)
		x, o, e := seqgen.RandomPenalties(rng)

		p, err := wfa.NewPenalties(x, o, e)
		require.NoError(t, err)

		algn := wfa.NewWithPenalties(p)
		a, err := algn.Align(q, tx)
		require.NoError(t, err, "case %d: %s vs %s with %+v", i, q, tx, p)

		r, err := wfa.ReferenceAlign(q, tx, p)
		require.NoError(t, err)

		require.Equal(t, r.Score, a.Score,
			"case %d: %s vs %s with %+v: %s vs %s", i, q, tx, p, a.CIGAR(), r.CIGAR())

		for _, al := range []*wfa.Alignment{a, r} {
			require.Equal(t, len(q), al.QueryLen(), "case %d: %s", i, al.CIGAR())
			require.Equal(t, len(tx), al.TextLen(), "case %d: %s", i, al.CIGAR())
			require.Equal(t, al.Score, al.RecomputeScore(p), "case %d: %s", i, al.CIGAR())
		}

		wfa.RecycleAlignment(a)
		wfa.RecycleAlignment(r)
		wfa.RecycleAligner(algn)
	}
}

func BenchmarkAlign(b *testing.B) {
	rng := rand.New(rand.NewSource(17))
	q := seqgen.Random(rng, 1000, 1000)
	tx := seqgen.Mutate(rng, q, 5, 5)

	algn := wfa.New()
	defer wfa.RecycleAligner(algn)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a, err := algn.Align(q, tx)
		if err != nil {
			b.Fatal(err)
		}
		wfa.RecycleAlignment(a)
	}
}

func BenchmarkReferenceAlign(b *testing.B) {
	rng := rand.New(rand.NewSource(17))
	q := seqgen.Random(rng, 1000, 1000)
	tx := seqgen.Mutate(rng, q, 5, 5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a, err := wfa.ReferenceAlign(q, tx, wfa.DefaultPenalties)
		if err != nil {
			b.Fatal(err)
		}
		wfa.RecycleAlignment(a)
	}
}
