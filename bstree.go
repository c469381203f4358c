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

// Package bstree implements an in-memory ordered map backed by a plain,
// unbalanced binary search tree with bidirectional iterators.
//
// bstree is meant as a small ordered associative container whose node storage
// can be supplied by a caller-provided Allocator, for instance the fixed-pool
// allocator in the pool subpackage.  It is not meant for persistent storage
// solutions.
//
// Within this tree every node holds one key, one value, two child links and a
// parent link.  Nodes live in an arena and refer to each other by handle, and
// slot 0 of the arena is a sentinel whose left child is the root.  The
// sentinel is the End position of every iterator walk.
//
// The tree is never rebalanced.  Every operation is O(height), and height is
// unbounded relative to the number of elements: inserting keys in strictly
// increasing (or decreasing) order builds a linked list and makes every
// operation linear.  Callers that need guaranteed logarithmic behavior should
// use a balanced structure such as github.com/google/btree instead.
//
// Duplicate keys are allowed.  A key equal to an existing key always goes to
// the right subtree of that key.  Find and LowerBound return whichever equal
// node their descent reaches first; which one that is depends on the shape of
// the tree, so callers needing a deterministic choice among duplicates must
// add a tiebreaker to the key.
//
// Iterators do not own the nodes they point at.  Erasing a node makes every
// iterator that refers to it dangling; a dangling iterator reports
// ErrDanglingIterator instead of silently reading a recycled slot.
//
// A Map is not safe for concurrent use.
package bstree

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Map is an ordered map from K to V built on an unbalanced binary search
// tree.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, and unlike a B-tree even reads are not, since iterators share
// the arena.
type Map[K constraints.Ordered, V any] struct {
	nodes    arena[K, V]
	length   int
	alloc    Allocator
	nodeSize int
}

// New creates an empty Map whose node storage is left to the Go heap.
func New[K constraints.Ordered, V any]() *Map[K, V] {
	return NewWithAllocator[K, V](Heap{})
}

// NewWithAllocator creates an empty Map that reserves storage for each of
// its nodes from a.
//
// a must not itself be backed by this Map, or the first Insert recurses into
// a without bound.
func NewWithAllocator[K constraints.Ordered, V any](a Allocator) *Map[K, V] {
	if a == nil {
		panic("bstree: nil allocator")
	}
	m := &Map[K, V]{alloc: a}
	m.nodes.init()
	m.nodeSize = int(unsafe.Sizeof(m.nodes.slots[sentinel]))
	return m
}

func (m *Map[K, V]) node(h handle) *node[K, V] {
	return &m.nodes.slots[h]
}

func (m *Map[K, V]) root() handle {
	return m.node(sentinel).left
}

func (m *Map[K, V]) iter(h handle) Iterator[K, V] {
	return Iterator[K, V]{m: m, h: h, gen: m.node(h).gen}
}

// NodeSize returns the number of bytes reserved from the Allocator for each
// element.
func (m *Map[K, V]) NodeSize() int {
	return m.nodeSize
}

// Find returns an iterator to an element whose key equals key, or End if
// there is none.  With duplicate keys the element returned is the first one
// met on the descent from the root.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	for cur := m.root(); cur != nilHandle; {
		n := m.node(cur)
		switch {
		case key == n.key:
			return m.iter(cur)
		case key > n.key:
			cur = n.right
		default:
			cur = n.left
		}
	}
	return m.End()
}

// LowerBound returns an iterator to an element whose key equals key if the
// descent meets one, otherwise to the element with the smallest key greater
// than key, or End if every key is smaller.
func (m *Map[K, V]) LowerBound(key K) Iterator[K, V] {
	bigger := nilHandle
	for cur := m.root(); cur != nilHandle; {
		n := m.node(cur)
		switch {
		case key == n.key:
			return m.iter(cur)
		case key > n.key:
			cur = n.right
		default:
			if bigger == nilHandle || n.key < m.node(bigger).key {
				bigger = cur
			}
			cur = n.left
		}
	}
	if bigger == nilHandle {
		return m.End()
	}
	return m.iter(bigger)
}

// Insert adds key and value to the map and returns an iterator to the new
// element.  Keys already present are not replaced: the new element is placed
// to the right of every equal key on its path.
//
// Insert fails only when the Allocator cannot supply storage for the node,
// in which case the map is left unchanged.
func (m *Map[K, V]) Insert(key K, value V) (Iterator[K, V], error) {
	addr, err := m.alloc.Allocate(m.nodeSize)
	if err != nil {
		return m.End(), fmt.Errorf("bstree: insert: %w", err)
	}
	h := m.nodes.newNode()
	n := m.node(h)
	n.key, n.value, n.addr = key, value, addr
	n.left, n.right = nilHandle, nilHandle

	cur := m.root()
	if cur == nilHandle {
		m.node(sentinel).left = h
		n.parent = sentinel
		m.length++
		return m.iter(h), nil
	}
	for {
		c := m.node(cur)
		if key < c.key {
			if c.left == nilHandle {
				c.left = h
				break
			}
			cur = c.left
		} else {
			if c.right == nilHandle {
				c.right = h
				break
			}
			cur = c.right
		}
	}
	n.parent = cur
	m.length++
	return m.iter(h), nil
}

// Erase removes the element it refers to.  It fails with ErrForeignIterator
// if it belongs to another map, ErrEndIterator if it is End, and
// ErrDanglingIterator if its element was already removed.
//
// Erase invalidates iterators to the removed element only.  If the Allocator
// refuses the node's storage back, the element is still removed and the
// allocator's error is returned.
func (m *Map[K, V]) Erase(it Iterator[K, V]) error {
	switch {
	case it.m != m:
		return &IteratorError{Op: "erase", Err: ErrForeignIterator}
	case !it.live():
		return &IteratorError{Op: "erase", Err: ErrDanglingIterator}
	case it.h == sentinel:
		return &IteratorError{Op: "erase", Err: ErrEndIterator}
	}
	z := it.h
	zn := m.node(z)
	parent := zn.parent
	var repl handle
	switch {
	case zn.right == nilHandle:
		repl = zn.left
		if repl != nilHandle {
			m.node(repl).parent = parent
		}
	case m.node(zn.right).left == nilHandle:
		repl = zn.right
		r := m.node(repl)
		r.left = zn.left
		if zn.left != nilHandle {
			m.node(zn.left).parent = repl
		}
		r.parent = parent
	default:
		repl = zn.right
		for m.node(repl).left != nilHandle {
			repl = m.node(repl).left
		}
		r := m.node(repl)
		// Detach the successor; it is always a left child here.
		m.node(r.parent).left = r.right
		if r.right != nilHandle {
			m.node(r.right).parent = r.parent
		}
		r.left = zn.left
		if zn.left != nilHandle {
			m.node(zn.left).parent = repl
		}
		r.right = zn.right
		m.node(zn.right).parent = repl
		r.parent = parent
	}
	m.replaceChild(parent, z, repl)

	addr := zn.addr
	m.nodes.freeNode(z)
	m.length--
	if err := m.alloc.Deallocate(addr, m.nodeSize); err != nil {
		return fmt.Errorf("bstree: erase: releasing node storage: %w", err)
	}
	return nil
}

// replaceChild points whichever child link of parent held old at repl.
func (m *Map[K, V]) replaceChild(parent, old, repl handle) {
	p := m.node(parent)
	if p.left == old {
		p.left = repl
	} else {
		p.right = repl
	}
}

// Empty reports whether the map holds no elements.
func (m *Map[K, V]) Empty() bool {
	return m.root() == nilHandle
}

// Len returns the number of elements currently in the map.
func (m *Map[K, V]) Len() int {
	return m.length
}

// Begin returns an iterator to the element with the smallest key, or End if
// the map is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	return m.iter(m.leftmost(sentinel))
}

// End returns the past-the-end iterator.  It is never invalidated.
func (m *Map[K, V]) End() Iterator[K, V] {
	return m.iter(sentinel)
}

func (m *Map[K, V]) leftmost(h handle) handle {
	for m.node(h).left != nilHandle {
		h = m.node(h).left
	}
	return h
}

func (m *Map[K, V]) rightmost(h handle) handle {
	for m.node(h).right != nilHandle {
		h = m.node(h).right
	}
	return h
}

// next returns the in-order successor of h, the sentinel after the last
// element, or nilHandle when h is the sentinel.
func (m *Map[K, V]) next(h handle) handle {
	if r := m.node(h).right; r != nilHandle {
		return m.leftmost(r)
	}
	for {
		p := m.node(h).parent
		if p == nilHandle {
			return nilHandle
		}
		if m.node(p).right != h {
			return p
		}
		h = p
	}
}

// prev returns the in-order predecessor of h (the last element when h is the
// sentinel), or nilHandle when h is the first position.
func (m *Map[K, V]) prev(h handle) handle {
	if l := m.node(h).left; l != nilHandle {
		return m.rightmost(l)
	}
	for {
		p := m.node(h).parent
		if p == nilHandle {
			return nilHandle
		}
		if m.node(p).left != h {
			return p
		}
		h = p
	}
}

// Min returns the element with the smallest key.  ok is false if the map is
// empty.
func (m *Map[K, V]) Min() (key K, value V, ok bool) {
	if m.Empty() {
		return
	}
	n := m.node(m.leftmost(m.root()))
	return n.key, n.value, true
}

// Max returns the element with the largest key.  ok is false if the map is
// empty.
func (m *Map[K, V]) Max() (key K, value V, ok bool) {
	if m.Empty() {
		return
	}
	n := m.node(m.rightmost(m.root()))
	return n.key, n.value, true
}

// ceiling returns the first element whose key is >= key, or the sentinel.
func (m *Map[K, V]) ceiling(key K) handle {
	found := sentinel
	for h := m.root(); h != nilHandle; {
		n := m.node(h)
		if n.key < key {
			h = n.right
		} else {
			found, h = h, n.left
		}
	}
	return found
}

// floor returns the last element whose key is <= key, or nilHandle.
func (m *Map[K, V]) floor(key K) handle {
	found := nilHandle
	for h := m.root(); h != nilHandle; {
		n := m.node(h)
		if key < n.key {
			h = n.left
		} else {
			found, h = h, n.right
		}
	}
	return found
}

func unbounded[K any](K) bool { return true }

// ascend walks forward from h while in(key) holds and fn returns true.
func (m *Map[K, V]) ascend(h handle, in func(K) bool, fn func(key K, value V) bool) {
	for ; h != sentinel; h = m.next(h) {
		n := m.node(h)
		if !in(n.key) || !fn(n.key, n.value) {
			return
		}
	}
}

// descend walks backward from h while in(key) holds and fn returns true.
func (m *Map[K, V]) descend(h handle, in func(K) bool, fn func(key K, value V) bool) {
	for ; h != nilHandle; h = m.prev(h) {
		n := m.node(h)
		if !in(n.key) || !fn(n.key, n.value) {
			return
		}
	}
}

// Ascend calls fn for every element in ascending key order, until fn returns
// false.  fn must not modify the map.
func (m *Map[K, V]) Ascend(fn func(key K, value V) bool) {
	m.ascend(m.leftmost(sentinel), unbounded[K], fn)
}

// AscendRange calls fn for every element within the range
// [greaterOrEqual, lessThan), until fn returns false.
func (m *Map[K, V]) AscendRange(greaterOrEqual, lessThan K, fn func(key K, value V) bool) {
	m.ascend(m.ceiling(greaterOrEqual), func(k K) bool { return k < lessThan }, fn)
}

// AscendLessThan calls fn for every element within the range [first, pivot),
// until fn returns false.
func (m *Map[K, V]) AscendLessThan(pivot K, fn func(key K, value V) bool) {
	m.ascend(m.leftmost(sentinel), func(k K) bool { return k < pivot }, fn)
}

// AscendGreaterOrEqual calls fn for every element within the range
// [pivot, last], until fn returns false.  Every duplicate of pivot is
// visited.
func (m *Map[K, V]) AscendGreaterOrEqual(pivot K, fn func(key K, value V) bool) {
	m.ascend(m.ceiling(pivot), unbounded[K], fn)
}

// Descend calls fn for every element in descending key order, until fn
// returns false.  fn must not modify the map.
func (m *Map[K, V]) Descend(fn func(key K, value V) bool) {
	m.descend(m.prev(sentinel), unbounded[K], fn)
}

// DescendRange calls fn for every element within the range
// [lessOrEqual, greaterThan), until fn returns false.
func (m *Map[K, V]) DescendRange(lessOrEqual, greaterThan K, fn func(key K, value V) bool) {
	m.descend(m.floor(lessOrEqual), func(k K) bool { return k > greaterThan }, fn)
}

// DescendLessOrEqual calls fn for every element within the range
// [pivot, first], until fn returns false.
func (m *Map[K, V]) DescendLessOrEqual(pivot K, fn func(key K, value V) bool) {
	m.descend(m.floor(pivot), unbounded[K], fn)
}

// DescendGreaterThan calls fn for every element within the range
// [last, pivot), until fn returns false.
func (m *Map[K, V]) DescendGreaterThan(pivot K, fn func(key K, value V) bool) {
	m.descend(m.prev(sentinel), func(k K) bool { return k > pivot }, fn)
}

// All returns an iterator over the elements in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.Ascend(yield)
	}
}

// Height returns the number of nodes on the longest root-to-leaf path, 0 for
// an empty map.
func (m *Map[K, V]) Height() int {
	if m.Empty() {
		return 0
	}
	height := 0
	level := []handle{m.root()}
	for len(level) > 0 {
		height++
		var below []handle
		for _, h := range level {
			n := m.node(h)
			if n.left != nilHandle {
				below = append(below, n.left)
			}
			if n.right != nilHandle {
				below = append(below, n.right)
			}
		}
		level = below
	}
	return height
}

// Clear removes every element and hands each node's storage back to the
// Allocator.  All iterators other than End become dangling.  If the Allocator
// rejects any release, Clear still empties the map and returns the first
// error.
func (m *Map[K, V]) Clear() error {
	var first error
	stack := []handle{}
	if r := m.root(); r != nilHandle {
		stack = append(stack, r)
	}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := m.node(h)
		if n.left != nilHandle {
			stack = append(stack, n.left)
		}
		if n.right != nilHandle {
			stack = append(stack, n.right)
		}
		addr := n.addr
		m.nodes.freeNode(h)
		if err := m.alloc.Deallocate(addr, m.nodeSize); err != nil && first == nil {
			first = fmt.Errorf("bstree: clear: releasing node storage: %w", err)
		}
	}
	m.node(sentinel).left = nilHandle
	m.length = 0
	return first
}

// print is used for testing/debugging purposes.
func (m *Map[K, V]) print(w io.Writer) {
	if r := m.root(); r != nilHandle {
		m.printNode(w, r, 0)
	}
}

func (m *Map[K, V]) printNode(w io.Writer, h handle, level int) {
	n := m.node(h)
	if n.right != nilHandle {
		m.printNode(w, n.right, level+1)
	}
	fmt.Fprintf(w, "%sNODE:%v=%v\n", strings.Repeat("  ", level), n.key, n.value)
	if n.left != nilHandle {
		m.printNode(w, n.left, level+1)
	}
}
