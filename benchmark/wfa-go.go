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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"
	"github.com/seqalign/wfa"
)

var version = "0.1.0"

func main() {
	app := filepath.Base(os.Args[0])
	usage := fmt.Sprintf(`
Gap-affine wavefront alignment

Version: v%s

Input file format: one sequence per line, query and target alternating.
  Example:
  >ATTGGAAAATAGGATTGGGGTTTGTTTATATTTGGGTTGAGGGATGTCCCACCTTCGTCGTCCTTACGTTTCCGGAAGGGAGTGGTTAGCTCGAAGCCCA
  <GATTGGAAAATAGGATGGGGTTTGTTTATATTTGGGTTGAGGGATGTCCCACCTTGTCGTCCTTACGTTTCCGGAAGGGAGTGGTTGCTCGAAGCCCA

Usage:
  1. Align two sequences from the positional arguments.

        %s [options] <query seq> <target seq>

  2. Align sequence pairs from the input file (described above).

        %s [options] -i input.txt

Options/Flags:
`, version, app, app)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	help := flag.Bool("h", false, "print help message")
	infile := flag.String("i", "", "input file")
	mismatch := flag.Int("x", 4, "mismatch penalty")
	gapOpen := flag.Int("o", 6, "gap-opening penalty")
	gapExt := flag.Int("e", 2, "gap-extension penalty")
	noOutput := flag.Bool("N", false, "do not output alignment (for benchmark)")
	plot := flag.Bool("P", false, "plot the M component of each alignment")

	pprofCPU := flag.Bool("p", false, "cpu pprof. go tool pprof -http=:8080 cpu.pprof")
	pprofMem := flag.Bool("m", false, "mem pprof. go tool pprof -http=:8080 mem.pprof")

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	// go tool pprof -http=:8080 cpu.pprof
	if *pprofCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *pprofMem {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	p, err := wfa.NewPenalties(*mismatch, *gapOpen, *gapExt)
	if err != nil {
		checkError(err)
	}

	outfh := bufio.NewWriter(os.Stdout)

	algn := wfa.NewWithPenalties(p)

	defer func() {
		wfa.RecycleAligner(algn)
		outfh.Flush()
	}()

	align2Seq := func(q, t string) {
		_q, _t := []byte(q), []byte(t)
		a, err := algn.Align(_q, _t)
		if err != nil {
			checkError(err)
		}

		if !*noOutput {
			Q, A, T := a.AlignmentText(&_q, &_t)

			fmt.Fprintf(outfh, "query   %s\n", *Q)
			fmt.Fprintf(outfh, "        %s\n", *A)
			fmt.Fprintf(outfh, "target  %s\n", *T)
			fmt.Fprintf(outfh, "cigar   %s\n", a.CIGAR())
			fmt.Fprintf(outfh, "score: %d, length: %d, matches: %d (%.2f%%), gaps: %d, gap regions: %d\n",
				a.Score, a.AlignLen, a.Matches, float64(a.Matches)/float64(a.AlignLen)*100,
				a.Gaps, a.GapRegions)
			fmt.Fprintln(outfh)

			wfa.RecycleAlignmentText(Q, A, T)
		}
		if *plot {
			algn.Plot(&_q, &_t, outfh, algn.M, true)
		}
		wfa.RecycleAlignment(a)
	}

	var q, t string

	// two sequences from positional arguments

	if *infile == "" {
		if flag.NArg() != 2 {
			checkError(fmt.Errorf("if flag -i not given, please give me two sequences"))
		}
		q = flag.Arg(0)
		t = flag.Arg(1)

		align2Seq(q, t)

		return
	}

	// sequence pairs from a file

	fh, err := os.Open(*infile)
	if err != nil {
		checkError(fmt.Errorf("failed to read file: %s", *infile))
	}

	scanner := bufio.NewScanner(fh)
	var ok bool
	for scanner.Scan() {
		q = scanner.Text()
		ok = scanner.Scan()
		if !ok {
			break
		}

		t = scanner.Text()

		align2Seq(strings.TrimPrefix(q, ">"), strings.TrimPrefix(t, "<"))
	}
	if err = scanner.Err(); err != nil {
		checkError(fmt.Errorf("something wrong in reading file: %s", *infile))
	}
}

func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
