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
	"fmt"
	"math"
	"sync"
)

// offsetsBaseSize is the initial capacity of the offset slice of a wavefront.
const offsetsBaseSize = 1024

var offsetsGrowSlice = make([]uint32, offsetsBaseSize)

// WaveFront stores the furthest-reaching offsets of one score, indexed by
// diagonal. An offset counts the Text characters consumed; the low bits keep
// the backtrace type (see backtrace.go).
//
// Diagonals can be negative, so they are interleaved in a single slice:
//
//	index: 0,  1,  2,  3,  4,  5,  6
//	k:     0, -1,  1, -2,  2, -3,  3
//
// A stored value of 0 means there's no record for that diagonal: every real
// record carries a non-zero backtrace type in its low bits.
type WaveFront struct {
	Lo, Hi  int // lowest and highest diagonal with a record
	Offsets []uint32
}

var poolWaveFront = &sync.Pool{New: func() interface{} {
	wf := WaveFront{
		Offsets: make([]uint32, offsetsBaseSize),
	}
	return &wf
}}

// NewWaveFront returns an empty WaveFront from the object pool.
// Return it with RecycleWaveFront when done.
func NewWaveFront() *WaveFront {
	wf := poolWaveFront.Get().(*WaveFront)
	wf.Lo = math.MaxInt
	wf.Hi = math.MinInt
	wf.Offsets = wf.Offsets[:offsetsBaseSize]
	clear(wf.Offsets)
	return wf
}

// RecycleWaveFront recycles a WaveFront.
func RecycleWaveFront(wf *WaveFront) {
	if wf != nil {
		poolWaveFront.Put(wf)
	}
}

// k2i converts a diagonal to a slice index.
func k2i(k int) int {
	if k >= 0 {
		return k << 1
	}
	return ((-k) << 1) - 1
}

func (wf *WaveFront) grow(i int) {
	n := (i - len(wf.Offsets) + offsetsBaseSize) / offsetsBaseSize
	for j := 0; j < n; j++ {
		wf.Offsets = append(wf.Offsets, offsetsGrowSlice...)
	}
}

// Set stores an offset with its backtrace type for diagonal k.
func (wf *WaveFront) Set(k int, offset uint32, bt uint32) {
	i := k2i(k)
	if i >= len(wf.Offsets) {
		wf.grow(i)
	}
	wf.Offsets[i] = offset<<btBits | bt

	wf.Lo = min(wf.Lo, k)
	wf.Hi = max(wf.Hi, k)
}

// Increase advances the offset of diagonal k by delta, keeping its
// backtrace type. The diagonal must already have a record.
func (wf *WaveFront) Increase(k int, delta uint32) {
	wf.Offsets[k2i(k)] += delta << btBits
}

// Get returns (offset, backtrace type, existed) for diagonal k.
func (wf *WaveFront) Get(k int) (uint32, uint32, bool) {
	if k < wf.Lo || k > wf.Hi {
		return 0, 0, false
	}
	v := wf.Offsets[k2i(k)]
	return v >> btBits, v & btMask, v > 0
}

// String lists all records, for debugging.
func (wf *WaveFront) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "k range: [%d, %d].", wf.Lo, wf.Hi)
	for k := wf.Lo; k <= wf.Hi; k++ {
		if offset, bt, ok := wf.Get(k); ok {
			fmt.Fprintf(&buf, " k(%d):%d(%s)", k, offset, btString(bt))
		}
	}
	return buf.String()
}
