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

package seqgen

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		s := Random(rng, 5, 20)
		require.GreaterOrEqual(t, len(s), 5)
		require.LessOrEqual(t, len(s), 20)
		for _, b := range s {
			require.True(t, strings.IndexByte(alphabet, b) >= 0, "byte %q outside the alphabet", b)
		}
	}

	require.Len(t, Random(rng, 0, 0), 0)
	require.Len(t, Random(rng, 7, 7), 7)
}

func TestMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	seq := Random(rng, 50, 50)
	orig := append([]byte(nil), seq...)

	mutated := Mutate(rng, seq, 10, 30)
	require.Equal(t, orig, seq, "Mutate modified its input")

	// a 100% error rate on a non-trivial sequence virtually always changes it.
	changed := Mutate(rng, seq, 100, 100)
	require.False(t, bytes.Equal(seq, changed))

	// a 0% error rate changes nothing.
	require.Equal(t, seq, Mutate(rng, seq, 0, 0))

	require.NotNil(t, mutated)
	require.Empty(t, Mutate(rng, nil, 50, 100))
}

func TestMutateReproducible(t *testing.T) {
	seq := Random(rand.New(rand.NewSource(3)), 80, 80)

	a := Mutate(rand.New(rand.NewSource(4)), seq, 20, 60)
	b := Mutate(rand.New(rand.NewSource(4)), seq, 20, 60)
	require.Equal(t, a, b)
}

func TestRandomPenalties(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 1000; i++ {
		x, o, e := RandomPenalties(rng)
		require.GreaterOrEqual(t, x, 1)
		require.Less(t, x, 100)
		require.GreaterOrEqual(t, o, 1)
		require.Less(t, o, 100)
		require.GreaterOrEqual(t, e, 1)
		require.Less(t, e, 100)
	}
}
