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

// Allocator is the storage strategy of a Map.  The map reserves NodeSize
// bytes from it for every node it creates and returns them when the node is
// erased.
type Allocator interface {
	// Allocate reserves n bytes and returns their address.
	Allocate(n int) (addr int, err error)
	// Deallocate returns n bytes at addr.  n must match the size passed to
	// the Allocate call that produced addr.
	Deallocate(addr, n int) error
}

// Heap is the Allocator that leaves node storage entirely to the Go runtime.
// It never fails and never recurses into a Map, which makes it the storage
// strategy for maps that themselves implement an allocator.
type Heap struct{}

// Allocate implements Allocator.
func (Heap) Allocate(n int) (int, error) { return 0, nil }

// Deallocate implements Allocator.
func (Heap) Deallocate(addr, n int) error { return nil }
