package util

import (
	"container/heap"
)

type LessFunc[T any] func(l, r T) bool

// Implements a general purpose (min) Heap data structure, based on user-defined ordering.
type Heap[T any] struct {
	h *heapImpl[T]
}

func NewHeap[T any](less LessFunc[T]) *Heap[T] {
	h := &Heap[T]{
		&heapImpl[T]{less: less},
	}
	heap.Init(h.h)
	return h
}

func (self *Heap[T]) Len() int {
	return self.h.Len()
}

// Pushes an item into the heap; smallest items will ripple to the bottom
func (self *Heap[T]) Push(x T) {
	heap.Push(self.h, x)
}

// Removes and returns the smallest item from the heap
func (self *Heap[T]) Pop() T {
	return heap.Pop(self.h).(T)
}

// heapImpl contains the actual container/heap.Interface-conforming
// interface to the heap. Heap above is the high-level user-facing
// interface

type heapImpl[T any] struct {
	items []T
	less  LessFunc[T]
}

func (self *heapImpl[T]) Len() int {
	return len(self.items)
}
func (self *heapImpl[T]) Less(i, j int) bool {
	return self.less(self.items[i], self.items[j])
}
func (self *heapImpl[T]) Swap(i, j int) {
	self.items[i], self.items[j] = self.items[j], self.items[i]
}
func (self *heapImpl[T]) Push(x interface{}) {
	self.items = append(self.items, x.(T))
}
func (self *heapImpl[T]) Pop() interface{} {
	last := len(self.items) - 1
	item := self.items[last]
	// zero the slot so the reference can be garbage collected
	var zero T
	self.items[last] = zero
	self.items = self.items[0:last]
	return item
}
