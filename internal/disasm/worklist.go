package disasm

import "container/heap"

// WorkList is a set of pending start addresses. Pop always yields the
// lowest pending address so runs are reproducible; the listing does not
// depend on pop order beyond which discovery names a label first.
type WorkList struct {
	pending map[int]struct{}
	order   addrHeap
}

func newWorkList() *WorkList {
	return &WorkList{pending: make(map[int]struct{})}
}

// Push adds addr. Pushing a pending address again is a no-op.
func (w *WorkList) Push(addr int) {
	if _, ok := w.pending[addr]; ok {
		return
	}
	w.pending[addr] = struct{}{}
	heap.Push(&w.order, addr)
}

// Pop removes and returns the lowest pending address.
func (w *WorkList) Pop() (int, bool) {
	if w.order.Len() == 0 {
		return 0, false
	}
	addr := heap.Pop(&w.order).(int)
	delete(w.pending, addr)
	return addr, true
}

// Len returns the number of pending addresses.
func (w *WorkList) Len() int { return len(w.pending) }

type addrHeap []int

func (h addrHeap) Len() int           { return len(h) }
func (h addrHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h addrHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *addrHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *addrHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
