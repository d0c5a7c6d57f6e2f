package util

// TODO(go,nth) make this threadsafe

// OrderedMap implements a simple map data structure that maintains its insertion order.
// Setting an existing key replaces its value but keeps its original position.
type OrderedMap[K comparable, V any] struct {
	data map[K]V
	keys []K
}

func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		data: map[K]V{},
	}
}

// OrderedMapFrom indexes a list by the given key function, preserving list order.
// Later items with a duplicate key replace earlier ones.
func OrderedMapFrom[S ~[]V, K comparable, V any](list S, key IdFunc[V, K]) *OrderedMap[K, V] {
	out := NewOrderedMap[K, V]()
	for _, v := range list {
		out.Set(key(v), v)
	}
	return out
}

func (self *OrderedMap[K, V]) Len() int {
	return len(self.keys)
}

func (self *OrderedMap[K, V]) Set(key K, val V) {
	if _, ok := self.data[key]; !ok {
		self.keys = append(self.keys, key)
	}
	self.data[key] = val
}

func (self *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := self.data[key]
	return v, ok
}

func (self *OrderedMap[K, V]) Has(key K) bool {
	_, ok := self.data[key]
	return ok
}

func (self *OrderedMap[K, V]) Keys() []K {
	out := make([]K, len(self.keys))
	copy(out, self.keys)
	return out
}

func (self *OrderedMap[K, V]) Values() []V {
	out := make([]V, len(self.keys))
	for i, k := range self.keys {
		out[i] = self.data[k]
	}
	return out
}

type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

func (self *OrderedMap[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], len(self.keys))
	for i, k := range self.keys {
		out[i] = Entry[K, V]{Key: k, Value: self.data[k]}
	}
	return out
}

// Difference returns the entries of left whose keys are not in right, in left's order
func (left *OrderedMap[K, V]) Difference(right *OrderedMap[K, V]) *OrderedMap[K, V] {
	out := NewOrderedMap[K, V]()
	for _, k := range left.keys {
		if !right.Has(k) {
			out.Set(k, left.data[k])
		}
	}
	return out
}

// Intersect returns the entries of left whose keys are also in right, in left's order
func (left *OrderedMap[K, V]) Intersect(right *OrderedMap[K, V]) *OrderedMap[K, V] {
	out := NewOrderedMap[K, V]()
	for _, k := range left.keys {
		if right.Has(k) {
			out.Set(k, left.data[k])
		}
	}
	return out
}

// UnionKeys returns the keys of left followed by the keys of right not in left
func (left *OrderedMap[K, V]) UnionKeys(right *OrderedMap[K, V]) []K {
	out := left.Keys()
	for _, k := range right.keys {
		if !left.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
