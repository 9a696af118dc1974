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
	"errors"
	"fmt"
)

// ErrBacktrace reports an internal inconsistency between the recurrence and
// the backtrace: a recorded cell has no predecessor with the expected offset.
// It signals a defect in the bookkeeping, never bad input.
var ErrBacktrace = errors.New("wfa: inconsistent wavefront history in backtrace")

// the number of low bits of an offset holding the backtrace type.
const btBits uint32 = 3
const btMask uint32 = (1 << btBits) - 1

// Backtrace types, stored in the low bits of every offset.
// A cell set by the recurrence records which term of the max produced it;
// extension keeps the type while advancing the offset.
// Type 0 is reserved: a raw value of 0 means "no record".
const (
	btInsOpen  uint32 = iota + 1 // insertion, gap opened here
	btInsExt                     // insertion, gap extended
	btDelOpen                    // deletion, gap opened here
	btDelExt                     // deletion, gap extended
	btMismatch                   // mismatch on the same diagonal
	btMatch                      // the score-0 seed cell only
)

// for showing offsets.
func btString(bt uint32) string {
	switch bt {
	case btInsOpen:
		return "I.O"
	case btInsExt:
		return "I.E"
	case btDelOpen:
		return "D.O"
	case btDelExt:
		return "D.E"
	case btMismatch:
		return "Mis"
	case btMatch:
		return "Mat"
	default:
		return "N/A"
	}
}

// components the backtrace cursor can sit on.
const (
	cptM = iota
	cptI
	cptD
)

// backTrace walks the wavefront history backwards from the terminal cell
// (score s, diagonal lenT-lenQ) to the score-0 seed, reconstructing the
// operations of one optimal alignment.
//
// At an M cell the stored offset is the post-extension value. The value the
// recurrence derived is recovered from the recorded backtrace type, every
// character in between is emitted as a match ("un-extending"), and the cursor
// then follows the recorded move to the predecessor cell. Each hop asserts
// that the predecessor exists and carries exactly the expected offset.
func (algn *Aligner) backTrace(lenQ, lenT int, s uint32) (*Alignment, error) {
	p := algn.p
	gapOpenExt := p.GapOpen + p.GapExt

	a := NewAlignment()
	a.Score = s

	k := lenT - lenQ
	cpt := cptM
	h, _, ok := algn.M.Get(s, k)
	if !ok {
		RecycleAlignment(a)
		return nil, fmt.Errorf("%w: no terminal M cell at s=%d, k=%d", ErrBacktrace, s, k)
	}

LOOP:
	for {
		switch cpt {
		case cptM:
			_, bt, ok := algn.M.Get(s, k)
			if !ok {
				break LOOP
			}

			switch bt {
			case btMatch: // the seed cell: only initial matches remain
				if s != 0 || k != 0 {
					break LOOP
				}
				a.addN(OpMatch, h)
				a.process()
				return a, nil
			case btMismatch:
				pre, _, ok := algn.M.GetAfterDiff(s, p.Mismatch, k)
				if !ok || pre+1 > h {
					break LOOP
				}
				a.addN(OpMatch, h-pre-1)
				a.add(OpMismatch)
				s -= p.Mismatch
				h = pre
			case btInsOpen, btInsExt:
				pre, _, ok := algn.I.Get(s, k)
				if !ok || pre > h {
					break LOOP
				}
				a.addN(OpMatch, h-pre)
				h = pre
				cpt = cptI
			case btDelOpen, btDelExt:
				pre, _, ok := algn.D.Get(s, k)
				if !ok || pre > h {
					break LOOP
				}
				a.addN(OpMatch, h-pre)
				h = pre
				cpt = cptD
			default:
				break LOOP
			}

		case cptI:
			// an insertion consumes one query character: the text offset is
			// unchanged and the predecessor sits on diagonal k+1.
			off, bt, ok := algn.I.Get(s, k)
			if !ok || off != h {
				break LOOP
			}
			a.add(OpInsert)
			switch bt {
			case btInsOpen:
				pre, _, ok := algn.M.GetAfterDiff(s, gapOpenExt, k+1)
				if !ok || pre != h {
					break LOOP
				}
				s -= gapOpenExt
				cpt = cptM
			case btInsExt:
				pre, _, ok := algn.I.GetAfterDiff(s, p.GapExt, k+1)
				if !ok || pre != h {
					break LOOP
				}
				s -= p.GapExt
			default:
				break LOOP
			}
			k++

		case cptD:
			// a deletion consumes one text character: the predecessor sits on
			// diagonal k-1 with offset h-1.
			off, bt, ok := algn.D.Get(s, k)
			if !ok || off != h || h == 0 {
				break LOOP
			}
			a.add(OpDelete)
			switch bt {
			case btDelOpen:
				pre, _, ok := algn.M.GetAfterDiff(s, gapOpenExt, k-1)
				if !ok || pre != h-1 {
					break LOOP
				}
				s -= gapOpenExt
				cpt = cptM
			case btDelExt:
				pre, _, ok := algn.D.GetAfterDiff(s, p.GapExt, k-1)
				if !ok || pre != h-1 {
					break LOOP
				}
				s -= p.GapExt
			default:
				break LOOP
			}
			k--
			h--
		}
	}

	RecycleAlignment(a)
	return nil, fmt.Errorf("%w: stuck at s=%d, k=%d, offset=%d", ErrBacktrace, s, k, h)
}
