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

package repl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treepool/bstree"
	"github.com/treepool/bstree/internal/geometry"
	"github.com/treepool/bstree/pool"
)

func run(t *testing.T, figures *Figures, script string) []string {
	t.Helper()
	var out strings.Builder
	if err := New(figures, &out).Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run(): %v", err)
	}
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestSession(t *testing.T) {
	figures := bstree.New[int, *geometry.Square[int]]()
	got := run(t, figures, `
add 2 0 0 0 2 2 2 2 0
add 1 0 0 0 1 1 0 1 1
add 3 0 0 0 3 3 3 3 0
add 2 0 0 0 5 5 5 5 0
add 4 0 0 2 0 2 1 0 1
add 5 0 0 1 0 0 1 2 2
size
count 5
print
erase 2
erase 2
size
print
frobnicate 1 2
add x 0 0 0 1 1 1 1 0
count
`)
	want := []string{
		"square (0 0) (0 2) (2 2) (2 0)",
		"square (0 0) (0 1) (1 1) (1 0)",
		"square (0 0) (0 3) (3 3) (3 0)",
		"Element with such key already exists",
		"geometry: not a square, sides are not equal",
		"geometry: not a square, sides are not perpendicular",
		"3",
		"2",
		"(1, square (0 0) (0 1) (1 1) (1 0)) (2, square (0 0) (0 2) (2 2) (2 0)) (3, square (0 0) (0 3) (3 3) (3 0))",
		"No such element in container",
		"2",
		"(1, square (0 0) (0 1) (1 1) (1 0)) (3, square (0 0) (0 3) (3 3) (3 0))",
		"Incorrect command",
		"Incorrect command",
		"Incorrect command",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("session output mismatch (-want +got):\n%s", diff)
	}
	if figures.Len() != 2 {
		t.Errorf("Len() = %d, want 2", figures.Len())
	}
}

func TestPoolExhausted(t *testing.T) {
	nodeSize := bstree.New[int, *geometry.Square[int]]().NodeSize()
	p, err := pool.New(2 * nodeSize)
	if err != nil {
		t.Fatal(err)
	}
	figures := bstree.NewWithAllocator[int, *geometry.Square[int]](p)
	got := run(t, figures, `
add 1 0 0 0 1 1 1 1 0
add 2 0 0 0 1 1 1 1 0
add 3 0 0 0 1 1 1 1 0
size
erase 1
add 3 0 0 0 1 1 1 1 0
size
`)
	if len(got) != 6 {
		t.Fatalf("got %d lines: %q", len(got), got)
	}
	if !strings.Contains(got[2], pool.ErrOutOfMemory.Error()) {
		t.Errorf("third add: got %q, want out of memory", got[2])
	}
	if diff := cmp.Diff([]string{"2", "square (0 0) (0 1) (1 1) (1 0)", "2"}, got[3:]); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if err := figures.Clear(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]pool.Extent{{Addr: 0, Size: p.Size()}}, p.FreeExtents()); diff != "" {
		t.Errorf("free extents after clear (-want +got):\n%s", diff)
	}
}

func TestPrompt(t *testing.T) {
	var out strings.Builder
	in := New(bstree.New[int, *geometry.Square[int]](), &out)
	in.SetPrompt("> ")
	if err := in.Run(strings.NewReader("size\n")); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "> 0\n> "; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
