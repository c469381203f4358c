// Copyright 2026 The bstree Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bstree

import "golang.org/x/exp/constraints"

// Iterator is a cursor over the elements of a Map in key order.
//
// An Iterator is a small value and may be copied freely; copies move
// independently.  It refers to a node without owning it: once that node is
// erased every operation on the Iterator fails with ErrDanglingIterator.  The
// zero Iterator belongs to no map and behaves as dangling.
type Iterator[K constraints.Ordered, V any] struct {
	m   *Map[K, V]
	h   handle
	gen uint32
}

func (it Iterator[K, V]) live() bool {
	return it.m != nil && it.m.nodes.live(it.h, it.gen)
}

// Valid reports whether the element the iterator refers to (or End) still
// exists.
func (it Iterator[K, V]) Valid() bool {
	return it.live()
}

// IsEnd reports whether it is the past-the-end position of a live map.
func (it Iterator[K, V]) IsEnd() bool {
	return it.live() && it.h == sentinel
}

// Equal reports whether it and other refer to the same live position of the
// same map.  A dangling iterator is equal to nothing, itself included.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.live() && other.live() && it.m == other.m && it.h == other.h
}

// Next advances it to the next element in key order, or to End after the
// last element.  It fails with ErrIteratorOutOfRange on End and leaves it
// unchanged on failure.
func (it *Iterator[K, V]) Next() error {
	if !it.live() {
		return &IteratorError{Op: "next", Err: ErrDanglingIterator}
	}
	h := it.m.next(it.h)
	if h == nilHandle {
		return &IteratorError{Op: "next", Err: ErrIteratorOutOfRange}
	}
	*it = it.m.iter(h)
	return nil
}

// Prev moves it to the previous element in key order; from End it moves to
// the last element.  It fails with ErrIteratorOutOfRange at the first
// element, or on End of an empty map, and leaves it unchanged on failure.
func (it *Iterator[K, V]) Prev() error {
	if !it.live() {
		return &IteratorError{Op: "prev", Err: ErrDanglingIterator}
	}
	h := it.m.prev(it.h)
	if h == nilHandle {
		return &IteratorError{Op: "prev", Err: ErrIteratorOutOfRange}
	}
	*it = it.m.iter(h)
	return nil
}

func (it Iterator[K, V]) deref(op string) (*node[K, V], error) {
	if !it.live() {
		return nil, &IteratorError{Op: op, Err: ErrDanglingIterator}
	}
	if it.h == sentinel {
		return nil, &IteratorError{Op: op, Err: ErrEndIterator}
	}
	return it.m.node(it.h), nil
}

// Key returns the key of the element it refers to.
func (it Iterator[K, V]) Key() (K, error) {
	n, err := it.deref("key")
	if err != nil {
		var zero K
		return zero, err
	}
	return n.key, nil
}

// Value returns the value of the element it refers to.
func (it Iterator[K, V]) Value() (V, error) {
	n, err := it.deref("value")
	if err != nil {
		var zero V
		return zero, err
	}
	return n.value, nil
}

// SetValue replaces the value of the element it refers to.  The key cannot be
// changed in place since that could break the ordering.
func (it Iterator[K, V]) SetValue(value V) error {
	n, err := it.deref("set value")
	if err != nil {
		return err
	}
	n.value = value
	return nil
}
