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

import "errors"

var (
	// ErrForeignIterator indicates an iterator handed to a map it does not
	// belong to.
	ErrForeignIterator = errors.New("bstree: iterator belongs to another map")

	// ErrEndIterator indicates an erase or dereference of the End position.
	ErrEndIterator = errors.New("bstree: end iterator")

	// ErrDanglingIterator indicates an iterator whose element was erased.
	ErrDanglingIterator = errors.New("bstree: iterator refers to an erased element")

	// ErrIteratorOutOfRange indicates a move past End or before the first
	// element.
	ErrIteratorOutOfRange = errors.New("bstree: iterator out of range")
)

// IteratorError records a failed iterator operation and the reason.
type IteratorError struct {
	Op  string
	Err error
}

func (e *IteratorError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *IteratorError) Unwrap() error { return e.Err }
