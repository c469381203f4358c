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

// handle addresses a node slot in an arena.
type handle int32

const (
	nilHandle handle = -1
	sentinel  handle = 0
)

// node is a single tree node.
//
// left and right are owning links: a node is reachable from the sentinel
// through exactly one chain of them.  parent is the inverse of that chain and
// owns nothing.  gen is bumped every time the slot is freed, so an Iterator
// that captured an older gen knows its node is gone.
type node[K, V any] struct {
	key    K
	value  V
	left   handle
	right  handle
	parent handle
	gen    uint32
	// addr is the storage reserved from the map's Allocator for this node.
	addr int
}

// arena stores the nodes of a single Map.  Freed slots are kept on a free
// list and reused before the slot slice grows.
type arena[K, V any] struct {
	slots    []node[K, V]
	freelist []handle
}

func (a *arena[K, V]) init() {
	a.slots = append(a.slots[:0], node[K, V]{
		left:   nilHandle,
		right:  nilHandle,
		parent: nilHandle,
	})
	a.freelist = a.freelist[:0]
}

func (a *arena[K, V]) newNode() (h handle) {
	index := len(a.freelist) - 1
	if index < 0 {
		a.slots = append(a.slots, node[K, V]{})
		return handle(len(a.slots) - 1)
	}
	h = a.freelist[index]
	a.freelist = a.freelist[:index]
	return
}

func (a *arena[K, V]) freeNode(h handle) {
	n := &a.slots[h]
	gen := n.gen + 1
	// clear to allow GC
	*n = node[K, V]{
		left:   nilHandle,
		right:  nilHandle,
		parent: nilHandle,
		gen:    gen,
	}
	a.freelist = append(a.freelist, h)
}

// live reports whether slot h still holds the node generation gen.
func (a *arena[K, V]) live(h handle, gen uint32) bool {
	return h >= 0 && int(h) < len(a.slots) && a.slots[h].gen == gen
}
