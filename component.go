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
	"math"
	"sync"
)

const componentBaseSize = 128

var componentGrowSlice = make([]*WaveFront, componentBaseSize)

// Component is the wavefront history of one of the M/I/D recurrence layers:
// a list of wavefronts indexed by score. A nil entry means no cell of that
// layer is reachable at that score.
type Component struct {
	WaveFronts []*WaveFront
}

var poolComponent = &sync.Pool{New: func() interface{} {
	cpt := Component{
		WaveFronts: make([]*WaveFront, 0, componentBaseSize),
	}
	return &cpt
}}

// NewComponent returns an empty Component from the object pool.
func NewComponent() *Component {
	cpt := poolComponent.Get().(*Component)
	cpt.reset()
	return cpt
}

// RecycleComponent recycles a Component and all its wavefronts.
func RecycleComponent(cpt *Component) {
	if cpt != nil {
		cpt.reset()
		poolComponent.Put(cpt)
	}
}

func (cpt *Component) reset() {
	for i, wf := range cpt.WaveFronts {
		if wf != nil {
			RecycleWaveFront(wf)
			cpt.WaveFronts[i] = nil
		}
	}
	cpt.WaveFronts = cpt.WaveFronts[:0]
}

// ensure makes sure the list covers score s, filling gaps with nil.
func (cpt *Component) ensure(s uint32) {
	for int(s) >= len(cpt.WaveFronts) {
		cpt.WaveFronts = append(cpt.WaveFronts, componentGrowSlice...)
	}
}

// Set stores an offset with its backtrace type at (score, diagonal),
// creating the wavefront of that score on first use.
func (cpt *Component) Set(s uint32, k int, offset uint32, bt uint32) {
	cpt.ensure(s)
	wf := cpt.WaveFronts[s]
	if wf == nil {
		wf = NewWaveFront()
		cpt.WaveFronts[s] = wf
	}
	wf.Set(k, offset, bt)
}

// Get returns (offset, backtrace type, existed) at (score, diagonal).
func (cpt *Component) Get(s uint32, k int) (uint32, uint32, bool) {
	if int(s) >= len(cpt.WaveFronts) || cpt.WaveFronts[s] == nil {
		return 0, 0, false
	}
	return cpt.WaveFronts[s].Get(k)
}

// GetAfterDiff returns the cell at (s-diff, k), treating scores below zero
// as unreachable.
func (cpt *Component) GetAfterDiff(s uint32, diff uint32, k int) (uint32, uint32, bool) {
	if diff > s {
		return 0, 0, false
	}
	return cpt.Get(s-diff, k)
}

// KRange returns the diagonal range of the wavefront at score s-diff.
// A missing wavefront yields an empty range (lo > hi), so a union over
// several dependency levels stays exact.
func (cpt *Component) KRange(s, diff uint32) (int, int) {
	if diff > s {
		return math.MaxInt, math.MinInt
	}
	s -= diff
	if int(s) >= len(cpt.WaveFronts) || cpt.WaveFronts[s] == nil {
		return math.MaxInt, math.MinInt
	}
	wf := cpt.WaveFronts[s]
	return wf.Lo, wf.Hi
}
