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

// ReferenceAlign computes the optimal gap-affine alignment with the classical
// O(len(q) * len(t)) Smith-Waterman-Gotoh dynamic program (global flavor).
// It exists to cross-check the wavefront aligner: slow, simple, and
// independent of the wavefront code paths.
func ReferenceAlign(q, t []byte, p *Penalties) (*Alignment, error) {
	lenQ, lenT := len(q), len(t)

	m := newRefMatrix(lenQ, lenT, p)
	m.fill(q, t, p)
	return m.traceBack(q, t)
}

// unset marks an unreachable cell of the reference matrices.
const unset = -1

// refMatrix holds the three (len(q)+1) x (len(t)+1) score layers of the
// gap-affine DP, each cell tagged with the layer it was derived from.
type refMatrix struct {
	lenQ, lenT int
	// score and source layer per cell; index [i*(lenT+1)+j] for
	// i query chars and j text chars consumed.
	mat, ins, del []refCell
}

type refCell struct {
	score int64
	from  int // cptM, cptI or cptD; meaningless while score == unset
}

func (m *refMatrix) idx(i, j int) int { return i*(m.lenT+1) + j }

func newRefMatrix(lenQ, lenT int, p *Penalties) *refMatrix {
	n := (lenQ + 1) * (lenT + 1)
	m := &refMatrix{
		lenQ: lenQ,
		lenT: lenT,
		mat:  make([]refCell, n),
		ins:  make([]refCell, n),
		del:  make([]refCell, n),
	}
	for i := range m.mat {
		m.mat[i].score = unset
		m.ins[i].score = unset
		m.del[i].score = unset
	}

	// borders: the first column is one insertion run, the first row one
	// deletion run, each costing GapOpen + length*GapExt.
	m.mat[m.idx(0, 0)].score = 0
	for i := 1; i <= lenQ; i++ {
		m.ins[m.idx(i, 0)] = refCell{int64(p.GapOpen) + int64(i)*int64(p.GapExt), cptI}
		m.mat[m.idx(i, 0)] = refCell{m.ins[m.idx(i, 0)].score, cptI}
	}
	for j := 1; j <= lenT; j++ {
		m.del[m.idx(0, j)] = refCell{int64(p.GapOpen) + int64(j)*int64(p.GapExt), cptD}
		m.mat[m.idx(0, j)] = refCell{m.del[m.idx(0, j)].score, cptD}
	}
	return m
}

func (m *refMatrix) fill(q, t []byte, p *Penalties) {
	gapOpenExt := int64(p.GapOpen) + int64(p.GapExt)
	gapExt := int64(p.GapExt)

	for i := 1; i <= m.lenQ; i++ {
		for j := 1; j <= m.lenT; j++ {
			// insertion: consume q[i-1] against a gap.
			m.ins[m.idx(i, j)] = minGap(
				m.ins[m.idx(i-1, j)].score, gapExt,
				m.mat[m.idx(i-1, j)].score, gapOpenExt,
				cptI)

			// deletion: consume t[j-1] against a gap.
			m.del[m.idx(i, j)] = minGap(
				m.del[m.idx(i, j-1)].score, gapExt,
				m.mat[m.idx(i, j-1)].score, gapOpenExt,
				cptD)

			var sub int64
			if q[i-1] != t[j-1] {
				sub = int64(p.Mismatch)
			}

			best := refCell{unset, cptM}
			if d := m.mat[m.idx(i-1, j-1)].score; d != unset {
				best = refCell{d + sub, cptM}
			}
			if v := m.del[m.idx(i, j)].score; v != unset && (best.score == unset || v < best.score) {
				best = refCell{v, cptD}
			}
			if v := m.ins[m.idx(i, j)].score; v != unset && (best.score == unset || v < best.score) {
				best = refCell{v, cptI}
			}
			m.mat[m.idx(i, j)] = best
		}
	}
}

// minGap picks the cheaper of extending a gap (ext cost) and opening one off
// the match layer (openExt cost); extending wins ties.
func minGap(extScore, extCost, matScore, openExtCost int64, layer int) refCell {
	switch {
	case extScore == unset && matScore == unset:
		return refCell{unset, layer}
	case extScore == unset:
		return refCell{matScore + openExtCost, cptM}
	case matScore == unset:
		return refCell{extScore + extCost, layer}
	case extScore+extCost <= matScore+openExtCost:
		return refCell{extScore + extCost, layer}
	default:
		return refCell{matScore + openExtCost, cptM}
	}
}

func (m *refMatrix) traceBack(q, t []byte) (*Alignment, error) {
	a := NewAlignment()
	final := m.mat[m.idx(m.lenQ, m.lenT)]
	if final.score == unset {
		RecycleAlignment(a)
		return nil, ErrBacktrace
	}
	a.Score = uint32(final.score)

	i, j := m.lenQ, m.lenT
	layer := cptM
	for i > 0 || j > 0 {
		switch {
		case i == 0:
			a.add(OpDelete)
			j--
		case j == 0:
			a.add(OpInsert)
			i--
		case layer == cptI:
			a.add(OpInsert)
			if m.ins[m.idx(i, j)].from == cptM {
				layer = cptM
			}
			i--
		case layer == cptD:
			a.add(OpDelete)
			if m.del[m.idx(i, j)].from == cptM {
				layer = cptM
			}
			j--
		default:
			switch m.mat[m.idx(i, j)].from {
			case cptM:
				if q[i-1] == t[j-1] {
					a.add(OpMatch)
				} else {
					a.add(OpMismatch)
				}
				i--
				j--
			case cptI:
				layer = cptI
			case cptD:
				layer = cptD
			}
		}
	}

	a.process()
	return a, nil
}
