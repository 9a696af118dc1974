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
	"io"
	"sync"
)

// Print lists all recorded cells of a component, one line per score.
func (cpt *Component) Print(wtr io.Writer, name string) {
	for s, wf := range cpt.WaveFronts {
		if wf == nil {
			continue
		}
		fmt.Fprintf(wtr, "%s%d: k[%d, %d]:", name, s, wf.Lo, wf.Hi)
		for k := wf.Lo; k <= wf.Hi; k++ {
			if offset, bt, ok := wf.Get(k); ok {
				fmt.Fprintf(wtr, " k(%d):%d(%s)", k, offset, btString(bt))
			}
		}
		fmt.Fprintln(wtr)
	}
}

// Plot renders one component of the last alignment as a tab-delimited score
// table over the implicit DP matrix: rows follow the query, columns the text,
// each visited cell showing the score at which the wavefront reached it.
// isM marks the M component, whose offsets cover whole matched runs.
func (algn *Aligner) Plot(q, t *[]byte, wtr io.Writer, cpt *Component, isM bool) {
	m := poolMatrix.Get().(*[]*[]int32)
	for range *q {
		r := poolRow.Get().(*[]int32)
		for range *t {
			*r = append(*r, -1)
		}
		*m = append(*m, r)
	}

	var v, h int
	for s, wf := range cpt.WaveFronts {
		if wf == nil {
			continue
		}
		for k := wf.Lo; k <= wf.Hi; k++ {
			offset, _, ok := wf.Get(k)
			if !ok {
				continue
			}

			if isM {
				// walk the matched run backwards, keeping earlier scores
				for h = int(offset) - 1; h >= 0; h-- {
					v = h - k
					if v < 0 || v >= len(*q) {
						break
					}
					if (*(*m)[v])[h] < 0 {
						(*(*m)[v])[h] = int32(s)
					}
					if (*q)[v] != (*t)[h] {
						break
					}
				}
			} else {
				h = int(offset) - 1
				v = h - k
				if v >= 0 && v < len(*q) && h >= 0 && h < len(*t) {
					(*(*m)[v])[h] = int32(s)
				}
			}
		}
	}

	for _, b := range *t {
		fmt.Fprintf(wtr, "\t%c", b)
	}
	fmt.Fprintln(wtr)

	for v, b := range *q {
		fmt.Fprintf(wtr, "%c", b)
		for _, s := range *(*m)[v] {
			if s < 0 {
				fmt.Fprint(wtr, "\t")
			} else {
				fmt.Fprintf(wtr, "\t%d", s)
			}
		}
		fmt.Fprintln(wtr)
	}

	recycleMatrix(m)
}

var poolMatrix = &sync.Pool{New: func() interface{} {
	tmp := make([]*[]int32, 0, 128)
	return &tmp
}}

var poolRow = &sync.Pool{New: func() interface{} {
	tmp := make([]int32, 0, 128)
	return &tmp
}}

func recycleMatrix(m *[]*[]int32) {
	for _, r := range *m {
		if r != nil {
			*r = (*r)[:0]
			poolRow.Put(r)
		}
	}
	*m = (*m)[:0]
	poolMatrix.Put(m)
}
