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

// Package seqgen generates randomized sequence pairs for validating and
// benchmarking aligners: a random sequence plus a copy mutated at a chosen
// error rate. All functions draw from the *rand.Rand the caller passes in,
// so runs are reproducible from a seed and goroutines don't share state.
package seqgen

import "math/rand"

// alphabet of generated sequences.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Random returns a random sequence with a length in [minLen, maxLen].
func Random(rng *rand.Rand, minLen, maxLen int) []byte {
	n := minLen
	if maxLen > minLen {
		n += rng.Intn(maxLen - minLen + 1)
	}
	s := make([]byte, n)
	for i := range s {
		s[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return s
}

// Mutate returns a copy of seq with random insertions, deletions and
// substitutions applied. The number of mutations is errRate percent of the
// sequence length, with errRate drawn from [minErr, maxErr].
// The input is never modified.
func Mutate(rng *rand.Rand, seq []byte, minErr, maxErr int) []byte {
	mutated := make([]byte, len(seq), len(seq)+len(seq)/2+8)
	copy(mutated, seq)

	errRate := minErr
	if maxErr > minErr {
		errRate += rng.Intn(maxErr - minErr + 1)
	}
	n := errRate * len(mutated) / 100

	for i := 0; i < n; i++ {
		if len(mutated) == 0 {
			break
		}
		pos := rng.Intn(len(mutated))
		switch rng.Intn(3) {
		case 0: // insertion
			mutated = append(mutated, 0)
			copy(mutated[pos+1:], mutated[pos:])
			mutated[pos] = alphabet[rng.Intn(len(alphabet))]
		case 1: // deletion
			mutated = append(mutated[:pos], mutated[pos+1:]...)
		default: // substitution
			mutated[pos] = differentChar(rng, mutated[pos])
		}
	}
	return mutated
}

// RandomPenalties draws a random penalty configuration, each value in
// [1, 100). Zero is excluded: zero-cost operations degenerate the gap-affine
// model and are covered by dedicated cases instead of random ones.
func RandomPenalties(rng *rand.Rand) (mismatch, gapOpen, gapExt int) {
	return 1 + rng.Intn(99), 1 + rng.Intn(99), 1 + rng.Intn(99)
}

func differentChar(rng *rand.Rand, c byte) byte {
	for {
		b := alphabet[rng.Intn(len(alphabet))]
		if b != c {
			return b
		}
	}
}
