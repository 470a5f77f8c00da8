package util

import "container/heap"

//*******************************************
// array
//*******************************************

// Array is a fixed-length slice wrapper used throughout the codebase in
// place of a bare []T, so call sites read the same whether the backing
// store is a slice, a memory-mapped file or (eventually) something else.
type Array[T any] []T

func NewArray[T any](length int) Array[T] {
	return make(Array[T], length)
}

func (self Array[T]) Length() int {
	return len(self)
}
func (self Array[T]) Get(i int32) T {
	return self[i]
}
func (self Array[T]) Set(i int32, v T) {
	self[i] = v
}

//*******************************************
// list
//*******************************************

// List is a growable Array. Kept distinct from Array so that call sites
// make it explicit whether a collection is still being built (List) or
// has already been frozen to its final size (Array).
type List[T any] []T

func NewList[T any](capacity int) List[T] {
	return make(List[T], 0, capacity)
}

func (self *List[T]) Add(v T) {
	*self = append(*self, v)
}
func (self List[T]) Length() int {
	return len(self)
}
func (self List[T]) Get(i int32) T {
	return self[i]
}
func (self List[T]) Set(i int32, v T) {
	self[i] = v
}

//*******************************************
// dict
//*******************************************

// Dict wraps a map[K]V for the same reason Array wraps []T: one place to
// add instrumentation or swap the backing store later.
type Dict[K comparable, V any] map[K]V

func NewDict[K comparable, V any](capacity int) Dict[K, V] {
	return make(Dict[K, V], capacity)
}

func (self Dict[K, V]) Get(k K) V {
	return self[k]
}
func (self Dict[K, V]) Set(k K, v V) {
	self[k] = v
}
func (self Dict[K, V]) ContainsKey(k K) bool {
	_, ok := self[k]
	return ok
}
func (self Dict[K, V]) Delete(k K) {
	delete(self, k)
}
func (self Dict[K, V]) Length() int {
	return len(self)
}

//*******************************************
// flags
//*******************************************

// Flags holds one mutable per-node/per-edge scratch value of type T,
// addressed by a dense int32 id: a slice-backed alternative to a Dict
// for scratch state keyed by dense ids.
type Flags[T any] struct {
	values []T
}

func NewFlags[T any](count int32, init T) Flags[T] {
	values := make([]T, count)
	for i := range values {
		values[i] = init
	}
	return Flags[T]{values: values}
}

func (self *Flags[T]) Get(id int32) *T {
	return &self.values[id]
}

//*******************************************
// optional
//*******************************************

// Optional mirrors the sum-type "present or absent" pattern used all
// over this codebase in place of a (T, bool) pair, so it can be stored
// as a single struct field.
type Optional[T any] struct {
	Value T
	has   bool
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, has: true}
}
func (self Optional[T]) HasValue() bool {
	return self.has
}

//*******************************************
// tuple / triple
//*******************************************

type Tuple[A, B any] struct {
	A A
	B B
}

func MakeTuple[A, B any](a A, b B) Tuple[A, B] {
	return Tuple[A, B]{A: a, B: b}
}

type Triple[A, B, C any] struct {
	A A
	B B
	C C
}

func MakeTriple[A, B, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{A: a, B: b, C: c}
}

//*******************************************
// priority queue
//*******************************************

// PriorityQueue is a min-heap over items of type T keyed by priority P.
// Used by every shortest-path style algorithm in this codebase instead
// of reaching for container/heap directly at each call site.
type PriorityQueue[T any, P int32 | int64 | float32 | float64] struct {
	items _pqItems[T, P]
}

func NewPriorityQueue[T any, P int32 | int64 | float32 | float64](capacity int) PriorityQueue[T, P] {
	items := make(_pqItems[T, P], 0, capacity)
	return PriorityQueue[T, P]{items: items}
}

func (self *PriorityQueue[T, P]) Enqueue(item T, priority P) {
	heap.Push(&self.items, _pqItem[T, P]{item: item, priority: priority})
}
func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	if len(self.items) == 0 {
		var t T
		return t, false
	}
	top := heap.Pop(&self.items).(_pqItem[T, P])
	return top.item, true
}
func (self *PriorityQueue[T, P]) Peek() (T, bool) {
	if len(self.items) == 0 {
		var t T
		return t, false
	}
	return self.items[0].item, true
}
func (self *PriorityQueue[T, P]) Length() int {
	return len(self.items)
}
func (self *PriorityQueue[T, P]) IsEmpty() bool {
	return len(self.items) == 0
}

type _pqItem[T any, P int32 | int64 | float32 | float64] struct {
	item     T
	priority P
}

type _pqItems[T any, P int32 | int64 | float32 | float64] []_pqItem[T, P]

func (self _pqItems[T, P]) Len() int { return len(self) }
func (self _pqItems[T, P]) Less(i, j int) bool {
	return self[i].priority < self[j].priority
}
func (self _pqItems[T, P]) Swap(i, j int) {
	self[i], self[j] = self[j], self[i]
}
func (self *_pqItems[T, P]) Push(x any) {
	*self = append(*self, x.(_pqItem[T, P]))
}
func (self *_pqItems[T, P]) Pop() any {
	old := *self
	n := len(old)
	item := old[n-1]
	*self = old[:n-1]
	return item
}
