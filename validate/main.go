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

// Command validate cross-checks the wavefront aligner against the quadratic
// reference aligner on randomized sequence pairs: a random sequence, a copy
// mutated at a random error rate, and random penalties. Each case asserts
// that both aligners agree on the optimal score and that each reported score
// matches the score recomputed from the reported operations. Independent
// cases share no state, so they fan out one case per worker goroutine.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/seqalign/wfa"
	"github.com/seqalign/wfa/seqgen"
)

func main() {
	number := flag.Int("n", 1000, "number of random pairings to validate")
	minLen := flag.Int("min-len", 0, "minimum sequence length")
	maxLen := flag.Int("max-len", 100, "maximum sequence length")
	minErr := flag.Int("min-error", 0, "minimum error rate (percent)")
	maxErr := flag.Int("max-error", 100, "maximum error rate (percent)")
	threads := flag.Int("t", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("s", 0, "random seed, 0 for time-based")
	quiet := flag.Bool("q", false, "only report failures and the summary")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	if *threads < 1 {
		*threads = 1
	}

	results := make(chan error, *threads)
	cases := make(chan int64)

	var wg sync.WaitGroup
	for i := 0; i < *threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for caseSeed := range cases {
				results <- runCase(rand.New(rand.NewSource(caseSeed)),
					*minLen, *maxLen, *minErr, *maxErr)
			}
		}()
	}

	go func() {
		rng := rand.New(rand.NewSource(*seed))
		for i := 0; i < *number; i++ {
			cases <- rng.Int63()
		}
		close(cases)
		wg.Wait()
		close(results)
	}()

	var failed int
	cycle := 0
	for err := range results {
		cycle++
		if err != nil {
			failed++
			fmt.Printf("validation failed at cycle %d:\n%s\n", cycle, err)
		} else if !*quiet {
			fmt.Printf("validation successful at cycle %d\n", cycle)
		}
	}

	fmt.Printf("seed %d: %d cases, %d failed\n", *seed, cycle, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// runCase generates one random case and checks it.
func runCase(rng *rand.Rand, minLen, maxLen, minErr, maxErr int) error {
	t := seqgen.Random(rng, minLen, maxLen)
	q := seqgen.Mutate(rng, t, minErr, maxErr)

	x, o, e := seqgen.RandomPenalties(rng)
	p, err := wfa.NewPenalties(x, o, e)
	if err != nil {
		return err
	}

	algn := wfa.NewWithPenalties(p)
	defer wfa.RecycleAligner(algn)
	a, err := algn.Align(q, t)
	if err != nil {
		return fmt.Errorf("wavefront: q=%q t=%q pens=%+v: %w", q, t, *p, err)
	}
	defer wfa.RecycleAlignment(a)

	b, err := wfa.ReferenceAlign(q, t, p)
	if err != nil {
		return fmt.Errorf("reference: q=%q t=%q pens=%+v: %w", q, t, *p, err)
	}
	defer wfa.RecycleAlignment(b)

	if a.Score != b.Score {
		return fmt.Errorf("scores differ for q=%q t=%q pens=%+v:\n  wavefront %d (%s)\n  reference %d (%s)",
			q, t, *p, a.Score, a.CIGAR(), b.Score, b.CIGAR())
	}
	if got := a.RecomputeScore(p); got != a.Score {
		return fmt.Errorf("wavefront score %d does not match its operations %s (recomputed %d) for q=%q t=%q pens=%+v",
			a.Score, a.CIGAR(), got, q, t, *p)
	}
	if got := b.RecomputeScore(p); got != b.Score {
		return fmt.Errorf("reference score %d does not match its operations %s (recomputed %d) for q=%q t=%q pens=%+v",
			b.Score, b.CIGAR(), got, q, t, *p)
	}
	if gotQ, gotT := a.QueryLen(), a.TextLen(); gotQ != len(q) || gotT != len(t) {
		return fmt.Errorf("operations %s consume %d/%d characters, want %d/%d for q=%q t=%q",
			a.CIGAR(), gotQ, gotT, len(q), len(t), q, t)
	}
	return nil
}
