package regalloc

import "math/bits"

// Written is a set of binding indexes known to be assigned.
type Written []uint64

func (w Written) Has(i int) bool {
	word := i / 64
	if word >= len(w) {
		return false
	}
	return w[word]&(1<<(i%64)) != 0
}

func (w *Written) Set(i int) {
	word := i / 64
	for word >= len(*w) {
		*w = append(*w, 0)
	}
	(*w)[word] |= 1 << (i % 64)
}

func (w *Written) Unset(i int) {
	word := i / 64
	if word >= len(*w) {
		return
	}
	(*w)[word] &^= 1 << (i % 64)
}

func (w Written) Clone() Written {
	if w == nil {
		return nil
	}
	ret := make(Written, len(w))
	copy(ret, w)
	return ret
}

func (w Written) Intersect(other Written) Written {
	ret := make(Written, min(len(w), len(other)))
	for i := range ret {
		ret[i] = w[i] & other[i]
	}
	return ret
}

func (w Written) Len() int {
	n := 0
	for _, word := range w {
		n += bits.OnesCount64(word)
	}
	return n
}

func (a *Allocator) Written() Written {
	return a.written.Clone()
}

func (a *Allocator) SetWritten(w Written) {
	a.written = w.Clone()
}

func (a *Allocator) MarkWritten(index int) {
	a.written.Set(index)
}

func (a *Allocator) IsWritten(index int) bool {
	return a.written.Has(index)
}
