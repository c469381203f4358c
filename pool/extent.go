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

package pool

import (
	"fmt"
	"strings"

	"github.com/treepool/bstree"
)

// Extent is a contiguous byte range of the pool.
type Extent struct {
	Addr int
	Size int
}

// End returns the address one past the last byte of e.
func (e Extent) End() int { return e.Addr + e.Size }

func (e Extent) String() string { return fmt.Sprintf("[%d,+%d)", e.Addr, e.Size) }

// extentMap holds extents keyed by start address.
type extentMap = bstree.Map[int, int]

// newExtentMap builds a bookkeeping map.  Its nodes always come from the
// Go heap, never from a Pool: a pool whose own free and busy maps drew from
// the pool would recurse on its first allocation.
func newExtentMap() *extentMap {
	return bstree.NewWithAllocator[int, int](bstree.Heap{})
}

func extents(m *extentMap) []Extent {
	out := make([]Extent, 0, m.Len())
	m.Ascend(func(addr, size int) bool {
		out = append(out, Extent{Addr: addr, Size: size})
		return true
	})
	return out
}

func total(m *extentMap) (sum int) {
	m.Ascend(func(_, size int) bool {
		sum += size
		return true
	})
	return
}

func formatExtents(m *extentMap) string {
	var b strings.Builder
	m.Ascend(func(addr, size int) bool {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Extent{Addr: addr, Size: size}.String())
		return true
	})
	return b.String()
}
