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
	"bytes"
	"strconv"
	"sync"
)

// Alignment operations.
//
//	'M'  match: one query char aligned to one equal text char
//	'X'  mismatch: one query char aligned to one different text char
//	'I'  insertion: one query char aligned to a gap in the text
//	'D'  deletion: one text char aligned to a gap in the query
const (
	OpMatch    byte = 'M'
	OpMismatch byte = 'X'
	OpInsert   byte = 'I'
	OpDelete   byte = 'D'
)

// AlignOp is one run-length encoded alignment operation.
type AlignOp struct {
	N  uint32
	Op byte
}

// Alignment is the result of an alignment: the optimal score and the
// run-length encoded operations realizing it, in forward order.
type Alignment struct {
	Ops   []AlignOp
	Score uint32

	// Stats of the alignment.
	AlignLen   uint32
	Matches    uint32
	Gaps       uint32
	GapRegions uint32

	processed bool
}

// object pool of Alignments.
var poolAlignment = &sync.Pool{New: func() interface{} {
	a := Alignment{
		Ops: make([]AlignOp, 0, 128),
	}
	return &a
}}

// NewAlignment returns a clean Alignment from the object pool.
func NewAlignment() *Alignment {
	a := poolAlignment.Get().(*Alignment)
	a.reset()
	return a
}

// RecycleAlignment recycles an Alignment object.
func RecycleAlignment(a *Alignment) {
	if a != nil {
		poolAlignment.Put(a)
	}
}

func (a *Alignment) reset() {
	a.Ops = a.Ops[:0]
	a.Score = 0
	a.processed = false

	a.AlignLen = 0
	a.Matches = 0
	a.Gaps = 0
	a.GapRegions = 0
}

// add appends one operation during backtrace, coalescing it with the
// previous record when the kind repeats.
func (a *Alignment) add(op byte) {
	a.addN(op, 1)
}

func (a *Alignment) addN(op byte, n uint32) {
	if n == 0 {
		return
	}
	if l := len(a.Ops); l > 0 && a.Ops[l-1].Op == op {
		a.Ops[l-1].N += n
		return
	}
	a.Ops = append(a.Ops, AlignOp{N: n, Op: op})
}

// process puts the operations into forward order and fills in the stats.
// Backtrace appends operations from the end of the alignment to the start,
// so the op list has to be reversed once.
func (a *Alignment) process() {
	if a.processed {
		return
	}
	a.processed = true

	s := a.Ops
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}

	for _, op := range s {
		a.AlignLen += op.N
		switch op.Op {
		case OpMatch:
			a.Matches += op.N
		case OpInsert, OpDelete:
			a.Gaps += op.N
			a.GapRegions++
		}
	}
}

// CIGAR returns the CIGAR-like string, e.g., "2M1X3M1I".
func (a *Alignment) CIGAR() string {
	a.process()
	buf := poolBytesBuffer.Get().(*bytes.Buffer)
	buf.Reset()

	for _, op := range a.Ops {
		buf.WriteString(strconv.Itoa(int(op.N)))
		buf.WriteByte(op.Op)
	}

	text := buf.String()
	poolBytesBuffer.Put(buf)
	return text
}

// QueryLen returns the number of query characters the operations consume.
func (a *Alignment) QueryLen() int {
	var n uint32
	for _, op := range a.Ops {
		switch op.Op {
		case OpMatch, OpMismatch, OpInsert:
			n += op.N
		}
	}
	return int(n)
}

// TextLen returns the number of text characters the operations consume.
func (a *Alignment) TextLen() int {
	var n uint32
	for _, op := range a.Ops {
		switch op.Op {
		case OpMatch, OpMismatch, OpDelete:
			n += op.N
		}
	}
	return int(n)
}

// RecomputeScore recomputes the alignment score from the operations alone.
// A gap of length L costs GapOpen + L*GapExt: the extension penalty applies
// to the opening character too.
func (a *Alignment) RecomputeScore(p *Penalties) uint32 {
	a.process()
	var score uint32
	for _, op := range a.Ops {
		switch op.Op {
		case OpMismatch:
			score += op.N * p.Mismatch
		case OpInsert, OpDelete:
			score += p.GapOpen + op.N*p.GapExt
		}
	}
	return score
}

// AlignmentText returns the three formatted alignment rows for
// query, the match line, and text.
// Recycle them with RecycleAlignmentText().
func (a *Alignment) AlignmentText(q, t *[]byte) (*[]byte, *[]byte, *[]byte) {
	a.process()

	Q := poolBytes.Get().(*[]byte)
	A := poolBytes.Get().(*[]byte)
	T := poolBytes.Get().(*[]byte)

	var v, h int
	var i uint32
	for _, op := range a.Ops {
		switch op.Op {
		case OpMatch:
			for i = 0; i < op.N; i++ {
				*Q = append(*Q, (*q)[v])
				*A = append(*A, '|')
				*T = append(*T, (*t)[h])
				v++
				h++
			}
		case OpMismatch:
			for i = 0; i < op.N; i++ {
				*Q = append(*Q, (*q)[v])
				*A = append(*A, ' ')
				*T = append(*T, (*t)[h])
				v++
				h++
			}
		case OpInsert:
			for i = 0; i < op.N; i++ {
				*Q = append(*Q, (*q)[v])
				*A = append(*A, ' ')
				*T = append(*T, '-')
				v++
			}
		case OpDelete:
			for i = 0; i < op.N; i++ {
				*Q = append(*Q, '-')
				*A = append(*A, ' ')
				*T = append(*T, (*t)[h])
				h++
			}
		}
	}

	return Q, A, T
}

// RecycleAlignmentText recycles the three rows returned by AlignmentText.
func RecycleAlignmentText(Q, A, T *[]byte) {
	for _, b := range []*[]byte{Q, A, T} {
		if b != nil {
			*b = (*b)[:0]
			poolBytes.Put(b)
		}
	}
}

var poolBytesBuffer = &sync.Pool{New: func() interface{} {
	return &bytes.Buffer{}
}}

var poolBytes = &sync.Pool{New: func() interface{} {
	buf := make([]byte, 0, 1024)
	return &buf
}}
