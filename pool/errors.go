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

import "errors"

var (
	// ErrZeroSize indicates a request for zero (or a negative number of) bytes.
	ErrZeroSize = errors.New("pool: zero size allocation")

	// ErrOutOfMemory indicates that no single free extent is large enough,
	// regardless of the total number of free bytes.
	ErrOutOfMemory = errors.New("pool: out of memory")

	// ErrInvalidFree indicates a deallocation that does not match a busy
	// extent's address and size exactly.
	ErrInvalidFree = errors.New("pool: invalid free")

	// ErrClosed indicates use of a pool after Close.
	ErrClosed = errors.New("pool: closed")
)
