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

// Package wfa implements the wavefront alignment algorithm (WFA) for exact
// pair-wise global alignment under gap-affine penalties, including full
// backtrace of the alignment operations.
//
// The furthest-reaching offsets count Text characters consumed; a diagonal
// k = offset - (query characters consumed) identifies an anti-diagonal of the
// implicit dynamic-programming matrix. The alignment is complete when the M
// component reaches offset len(text) on diagonal len(text)-len(query).
// A gap of length L costs GapOpen + L*GapExt.
package wfa

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNegativePenalty is returned by NewPenalties for configuration with a
// negative penalty value.
var ErrNegativePenalty = errors.New("wfa: negative penalty")

// ErrScoreOverflow is returned when the score exceeds the theoretical upper
// bound of the optimal alignment score: a defect in the recurrence
// bookkeeping, or the degenerate configuration with both gap penalties zero
// on inputs that require a gap (see Align).
var ErrScoreOverflow = errors.New("wfa: score exceeded the theoretical bound")

// Penalties contains the gap-affine penalties; matches cost 0.
type Penalties struct {
	Mismatch uint32
	GapOpen  uint32
	GapExt   uint32
}

// DefaultPenalties is from the WFA paper.
var DefaultPenalties = &Penalties{
	Mismatch: 4,
	GapOpen:  6,
	GapExt:   2,
}

// NewPenalties validates and builds a penalty configuration.
// Negative values are rejected, never clamped.
func NewPenalties(mismatch, gapOpen, gapExt int) (*Penalties, error) {
	if mismatch < 0 || gapOpen < 0 || gapExt < 0 {
		return nil, fmt.Errorf("%w: mismatch=%d, gapOpen=%d, gapExt=%d",
			ErrNegativePenalty, mismatch, gapOpen, gapExt)
	}
	return &Penalties{
		Mismatch: uint32(mismatch),
		GapOpen:  uint32(gapOpen),
		GapExt:   uint32(gapExt),
	}, nil
}

// Aligner aligns pairs of query and text sequences.
// One Aligner serves many alignments, but a single alignment run is strictly
// sequential and an Aligner must not be shared between goroutines; use one
// Aligner per goroutine and recycle it with RecycleAligner.
type Aligner struct {
	p *Penalties

	// wavefront history of the three recurrence layers.
	M, I, D *Component
}

// object pool of aligners.
var poolAligner = &sync.Pool{New: func() interface{} {
	return &Aligner{}
}}

// New returns an Aligner with the default penalties from the object pool.
func New() *Aligner {
	return NewWithPenalties(DefaultPenalties)
}

// NewWithPenalties returns an Aligner from the object pool.
func NewWithPenalties(p *Penalties) *Aligner {
	algn := poolAligner.Get().(*Aligner)
	algn.p = p
	return algn
}

// RecycleAligner recycles an Aligner object.
func RecycleAligner(algn *Aligner) {
	if algn != nil {
		algn.reset()
		poolAligner.Put(algn)
	}
}

// reset releases the wavefront history of the previous alignment.
func (algn *Aligner) reset() {
	RecycleComponent(algn.M)
	RecycleComponent(algn.I)
	RecycleComponent(algn.D)
	algn.M, algn.I, algn.D = nil, nil, nil
}

// maxScore is the upper bound of the optimal alignment score: the cost of
// mismatching everything plus one gap covering the length difference.
// The loop in Align may never pass it.
func (p *Penalties) maxScore(lenQ, lenT int) uint64 {
	long, short := lenT, lenQ
	if lenQ > lenT {
		long, short = lenQ, lenT
	}
	return uint64(p.Mismatch)*uint64(long) +
		uint64(p.GapOpen) +
		uint64(p.GapExt)*uint64(long-short)
}

// Align computes the optimal gap-affine alignment of q against t.
// It is deterministic and total for all finite inputs, including empty
// sequences; an error reports an internal defect, not a property of the
// input. The one degenerate corner is GapOpen and GapExt both zero: a cell
// never depends on a cell of its own
// score, so fully free gap runs stay out of reach of the recurrence, and
// inputs that cannot be aligned without a gap may fail with
// ErrScoreOverflow.
func (algn *Aligner) Align(q, t []byte) (*Alignment, error) {
	algn.reset()
	algn.M = NewComponent()
	algn.I = NewComponent()
	algn.D = NewComponent()

	lenQ, lenT := len(q), len(t)
	Ak := lenT - lenQ       // the terminal diagonal
	Aoffset := uint32(lenT) // the terminal offset on it

	algn.M.Set(0, 0, 0, btMatch) // M[0][0] = 0, the seed

	smax := algn.p.maxScore(lenQ, lenT)

	var s uint32
	for {
		if wf := algn.M.WaveFronts[s]; wf != nil {
			algn.extend(wf, q, t)

			if offset, _, ok := wf.Get(Ak); ok && offset >= Aoffset {
				break
			}
		}

		if uint64(s) >= smax {
			return nil, fmt.Errorf("%w: s=%d, bound=%d", ErrScoreOverflow, s, smax)
		}
		s++

		algn.next(lenQ, lenT, s)
	}

	return algn.backTrace(lenQ, lenT, s)
}

// extend advances every M offset of the current score along its diagonal
// while query and text characters agree (WF-EXTEND). No score is spent.
func (algn *Aligner) extend(wf *WaveFront, q, t []byte) {
	lenQ := len(q)
	lenT := len(t)

	var h, v int
	for k := wf.Lo; k <= wf.Hi; k++ {
		offset, _, ok := wf.Get(k)
		if !ok {
			continue
		}
		h = int(offset)
		v = h - k
		if v < 0 {
			continue
		}

		var delta uint32
		for h < lenT && v < lenQ && q[v] == t[h] {
			delta++
			h++
			v++
		}
		if delta > 0 {
			wf.Increase(k, delta)
		}
	}
}

// next derives the wavefronts of score s from the previously computed levels
// (WF-NEXT). For every diagonal in the union of the dependency ranges,
// expanded by one on each side and clamped to the valid diagonals:
//
//	I[s][k] = max(M[s-o-e][k+1], I[s-e][k+1])      // consumes a query char
//	D[s][k] = max(M[s-o-e][k-1], D[s-e][k-1]) + 1  // consumes a text char
//	M[s][k] = max(M[s-x][k]+1, I[s][k], D[s][k])
//
// A term whose score index is negative, whose source cell has no record, or
// whose derived cell would leave the matrix (consume a character past the end
// of either sequence) is excluded; if every term of a cell is excluded, the
// cell stays unset.
// Ties prefer the mismatch term, then D, then I; within a gap layer,
// extending an open gap beats opening a new one.
// With a zero gap-extension penalty, closeGapRuns afterwards completes the
// same-score gap runs the single ascending scan cannot reach.
func (algn *Aligner) next(lenQ, lenT int, s uint32) {
	p := algn.p
	gapOpenExt := p.GapOpen + p.GapExt

	loMismatch, hiMismatch := algn.M.KRange(s, p.Mismatch)
	loGapOpen, hiGapOpen := algn.M.KRange(s, gapOpenExt)
	loInsert, hiInsert := algn.I.KRange(s, p.GapExt)
	loDelete, hiDelete := algn.D.KRange(s, p.GapExt)

	lo := min(loMismatch, loGapOpen, loInsert, loDelete)
	hi := max(hiMismatch, hiGapOpen, hiInsert, hiDelete)
	if lo > hi { // nothing reachable at this score
		algn.M.ensure(s)
		algn.I.ensure(s)
		algn.D.ensure(s)
		return
	}
	lo = max(lo-1, -lenQ)
	hi = min(hi+1, lenT)

	var gOff, iOff, dOff uint32
	var iBt, dBt uint32
	var mOk, gOk, iOk, dOk bool
	var Isk, Dsk, Msk uint32

	for k := lo; k <= hi; k++ {
		// I[s][k]: open a gap after M[s-o-e][k+1], or extend I[s-e][k+1].
		// The inserted query character must exist.
		gOff, _, gOk = algn.M.GetAfterDiff(s, gapOpenExt, k+1)
		iOff, _, iOk = algn.I.GetAfterDiff(s, p.GapExt, k+1)
		iBt = 0
		if gOk || iOk {
			if gOk && (!iOk || gOff > iOff) {
				Isk, iBt = gOff, btInsOpen
			} else {
				Isk, iBt = iOff, btInsExt
			}
			if int(Isk)-k > lenQ {
				iBt = 0
			} else {
				algn.I.Set(s, k, Isk, iBt)
			}
		}

		// D[s][k]: open a gap after M[s-o-e][k-1], or extend D[s-e][k-1].
		// The deleted text character must exist.
		gOff, _, gOk = algn.M.GetAfterDiff(s, gapOpenExt, k-1)
		dOff, _, dOk = algn.D.GetAfterDiff(s, p.GapExt, k-1)
		dBt = 0
		if gOk || dOk {
			if gOk && (!dOk || gOff > dOff) {
				Dsk, dBt = gOff+1, btDelOpen
			} else {
				Dsk, dBt = dOff+1, btDelExt
			}
			if int(Dsk) > lenT {
				dBt = 0
			} else {
				algn.D.Set(s, k, Dsk, dBt)
			}
		}

		// M[s][k]: a mismatch after M[s-x][k], or close the gap of I/D[s][k].
		// The mismatched pair of characters must exist.
		mOk = false
		if mOff, _, ok := algn.M.GetAfterDiff(s, p.Mismatch, k); ok {
			Msk = mOff + 1
			mOk = int(Msk) <= lenT && int(Msk)-k <= lenQ
		}
		switch {
		case mOk:
			bt := btMismatch
			if dBt != 0 && Dsk > Msk {
				Msk, bt = Dsk, dBt
			}
			if iBt != 0 && Isk > Msk {
				Msk, bt = Isk, iBt
			}
			algn.M.Set(s, k, Msk, bt)
		case dBt != 0 && (iBt == 0 || Dsk >= Isk):
			algn.M.Set(s, k, Dsk, dBt)
		case iBt != 0:
			algn.M.Set(s, k, Isk, iBt)
		}
	}

	algn.M.ensure(s)
	algn.I.ensure(s)
	algn.D.ensure(s)

	if p.GapExt == 0 && p.GapOpen != 0 {
		algn.closeGapRuns(lenQ, lenT, s)
	}
}

// closeGapRuns completes the same-score gap runs that a zero gap-extension
// penalty allows. A free delete run grows towards higher diagonals, which the
// ascending scan of next resolves on its own, but a free insert run grows
// towards lower diagonals, ahead of the scan, and either run may outgrow the
// scanned diagonal range. One sweep per direction reaches every such cell:
// score-neutral moves never leave their own layer while opening a gap still
// costs something, and a swept cell only depends on cells the sweep has
// already finalized.
func (algn *Aligner) closeGapRuns(lenQ, lenT int, s uint32) {
	if wf := algn.D.WaveFronts[s]; wf != nil && wf.Lo <= wf.Hi {
		for k := wf.Lo + 1; k <= lenT; k++ {
			pre, _, ok := wf.Get(k - 1)
			if !ok || int(pre) >= lenT {
				continue
			}
			if cur, _, ok := wf.Get(k); ok && cur >= pre+1 {
				continue
			}
			wf.Set(k, pre+1, btDelExt)
			if cur, _, ok := algn.M.Get(s, k); !ok || pre+1 > cur {
				algn.M.Set(s, k, pre+1, btDelExt)
			}
		}
	}

	if wf := algn.I.WaveFronts[s]; wf != nil && wf.Lo <= wf.Hi {
		for k := wf.Hi - 1; k >= -lenQ; k-- {
			pre, _, ok := wf.Get(k + 1)
			if !ok || int(pre)-k > lenQ {
				continue
			}
			if cur, _, ok := wf.Get(k); ok && cur >= pre {
				continue
			}
			wf.Set(k, pre, btInsExt)
			if cur, _, ok := algn.M.Get(s, k); !ok || pre > cur {
				algn.M.Set(s, k, pre, btInsExt)
			}
		}
	}
}
