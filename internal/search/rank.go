package search

import "container/heap"

type scored struct {
	doc   int
	score float64
}

// better orders by descending score, then ascending ordinal.
func better(a, b scored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.doc < b.doc
}

// topK keeps the k best entries seen. The root is the worst kept entry.
type topK struct {
	k     int
	items []scored
}

func newTopK(k int) *topK {
	return &topK{k: k, items: make([]scored, 0, k)}
}

func (h *topK) Len() int           { return len(h.items) }
func (h *topK) Less(i, j int) bool { return better(h.items[j], h.items[i]) }
func (h *topK) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *topK) Push(x any)         { h.items = append(h.items, x.(scored)) }

func (h *topK) Pop() any {
	n := len(h.items)
	x := h.items[n-1]
	h.items = h.items[:n-1]
	return x
}

func (h *topK) offer(s scored) {
	if h.Len() < h.k {
		heap.Push(h, s)
		return
	}
	if better(s, h.items[0]) {
		h.items[0] = s
		heap.Fix(h, 0)
	}
}

// sorted drains the heap best first.
func (h *topK) sorted() []scored {
	out := make([]scored, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(scored)
	}
	return out
}
