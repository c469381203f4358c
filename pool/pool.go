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

// Package pool implements a fixed-size, first-fit byte pool allocator.
//
// # Overview
//
// A Pool owns one contiguous region, established by New and released by
// Close.  It hands out byte ranges (extents) of that region by offset and
// tracks them in two bstree maps keyed by start address:
//
//   - free: extents available for allocation
//   - busy: extents handed out and not yet returned
//
// Together the two maps partition the region exactly.  No two free extents
// are ever adjacent: Deallocate merges a returned extent with its free
// neighbours on both sides immediately.
//
// # Allocation
//
// Allocate scans the free extents in ascending address order and takes the
// first one that is large enough (first-fit, not best-fit).  A larger extent
// is split and its tail stays free.  Fragmentation is not resolved: a request
// can fail with ErrOutOfMemory even when the free bytes add up to more than
// it asks for.
//
// # Node storage
//
// A Pool implements bstree.Allocator, so it can supply the storage of a
// bstree.Map:
//
//	p, err := pool.New(4096)
//	if err != nil {
//	    return err
//	}
//	m := bstree.NewWithAllocator[int, string](p)
//
// The pool's own free and busy maps always use bstree.Heap.  This is fixed at
// construction and cannot be configured, since a pool feeding its own
// bookkeeping would recurse without bound.
//
// # Logging
//
// Every Allocate and Deallocate logs the resulting extents at glog verbosity
// level 2.
//
// # Thread Safety
//
// Pool instances are not thread-safe.
package pool

import (
	"fmt"

	"github.com/golang/glog"
)

// Pool is a fixed-size first-fit allocator over a single byte region.
type Pool struct {
	buf  []byte
	size int
	free *extentMap
	busy *extentMap
}

// New creates a pool managing size bytes, all of them free.
func New(size int) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: pool of %d bytes", ErrZeroSize, size)
	}
	p := &Pool{
		buf:  make([]byte, size),
		size: size,
		free: newExtentMap(),
		busy: newExtentMap(),
	}
	if _, err := p.free.Insert(0, size); err != nil {
		return nil, err
	}
	return p, nil
}

// Size returns the size of the region in bytes.
func (p *Pool) Size() int { return p.size }

// FreeBytes returns the number of bytes not handed out.
func (p *Pool) FreeBytes() int { return total(p.free) }

// BusyBytes returns the number of bytes handed out.
func (p *Pool) BusyBytes() int { return total(p.busy) }

// FreeExtents returns the free extents in address order.
func (p *Pool) FreeExtents() []Extent { return extents(p.free) }

// BusyExtents returns the busy extents in address order.
func (p *Pool) BusyExtents() []Extent { return extents(p.busy) }

// Allocate reserves n bytes from the first free extent large enough to hold
// them and returns their offset in the region.
func (p *Pool) Allocate(n int) (int, error) {
	if p.buf == nil {
		return 0, ErrClosed
	}
	if n <= 0 {
		return 0, ErrZeroSize
	}
	var addr, size int
	it := p.free.Begin()
	for !it.IsEnd() {
		addr, _ = it.Key()
		size, _ = it.Value()
		if size >= n {
			break
		}
		if err := it.Next(); err != nil {
			return 0, err
		}
	}
	if it.IsEnd() {
		return 0, fmt.Errorf("%w: no free extent of %d bytes (%d bytes free)", ErrOutOfMemory, n, p.FreeBytes())
	}

	if err := p.free.Erase(it); err != nil {
		return 0, err
	}
	if size > n {
		if _, err := p.free.Insert(addr+n, size-n); err != nil {
			return 0, err
		}
	}
	if _, err := p.busy.Insert(addr, n); err != nil {
		return 0, err
	}
	p.trace("allocate(%d) = %d", n, addr)
	return addr, nil
}

// Deallocate returns the n bytes at addr to the pool.  addr and n must match
// a previous Allocate exactly, otherwise Deallocate fails with ErrInvalidFree
// and the pool is unchanged.
func (p *Pool) Deallocate(addr, n int) error {
	if p.buf == nil {
		return ErrClosed
	}
	it := p.busy.Find(addr)
	if it.IsEnd() {
		return fmt.Errorf("%w: no busy extent at %d", ErrInvalidFree, addr)
	}
	if size, _ := it.Value(); size != n {
		return fmt.Errorf("%w: extent at %d has %d bytes, not %d", ErrInvalidFree, addr, size, n)
	}
	if err := p.busy.Erase(it); err != nil {
		return err
	}

	cur, err := p.free.Insert(addr, n)
	if err != nil {
		return err
	}
	prev := cur
	if prev.Prev() == nil {
		paddr, _ := prev.Key()
		psize, _ := prev.Value()
		if paddr+psize == addr {
			if err := prev.SetValue(psize + n); err != nil {
				return err
			}
			if err := p.free.Erase(cur); err != nil {
				return err
			}
			cur = prev
		}
	}
	next := cur
	if next.Next() == nil && !next.IsEnd() {
		naddr, _ := next.Key()
		nsize, _ := next.Value()
		if addr+n == naddr {
			csize, _ := cur.Value()
			if err := cur.SetValue(csize + nsize); err != nil {
				return err
			}
			if err := p.free.Erase(next); err != nil {
				return err
			}
		}
	}
	p.trace("deallocate(%d, %d)", addr, n)
	return nil
}

// Bytes returns the first n bytes of the busy extent starting at addr.
func (p *Pool) Bytes(addr, n int) ([]byte, error) {
	if p.buf == nil {
		return nil, ErrClosed
	}
	it := p.busy.Find(addr)
	if it.IsEnd() {
		return nil, fmt.Errorf("%w: no busy extent at %d", ErrInvalidFree, addr)
	}
	if size, _ := it.Value(); n < 0 || n > size {
		return nil, fmt.Errorf("pool: %d bytes requested from a %d byte extent at %d", n, size, addr)
	}
	return p.buf[addr : addr+n : addr+n], nil
}

// Close releases the region.  Extents still busy are dropped with a warning.
func (p *Pool) Close() error {
	if p.buf == nil {
		return ErrClosed
	}
	if busy := p.BusyBytes(); busy > 0 {
		glog.Warningf("pool: closing with %d bytes in %d busy extents", busy, p.busy.Len())
	}
	p.buf = nil
	if err := p.free.Clear(); err != nil {
		return err
	}
	return p.busy.Clear()
}

func (p *Pool) trace(format string, args ...interface{}) {
	if glog.V(2) {
		glog.Infof("pool: %s; free: %s; busy: %s", fmt.Sprintf(format, args...), formatExtents(p.free), formatExtents(p.busy))
	}
}
