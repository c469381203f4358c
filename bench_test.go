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

import (
	"math/rand"
	"testing"

	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
)

const benchmarkTreeSize = 10000

func BenchmarkInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		m := New[int, int]()
		for _, item := range insertP {
			m.Insert(item, item)
			i++
			if i >= b.N {
				return
			}
		}
	}
}

// BenchmarkInsertSorted shows the cost of the missing rebalancing: sorted
// input turns the tree into a list.
func BenchmarkInsertSorted(b *testing.B) {
	const size = 1000
	i := 0
	for i < b.N {
		m := New[int, int]()
		for item := 0; item < size; item++ {
			m.Insert(item, item)
			i++
			if i >= b.N {
				return
			}
		}
	}
}

func BenchmarkFind(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	m := New[int, int]()
	for _, item := range insertP {
		m.Insert(item, item)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		m.Find(insertP[i%benchmarkTreeSize])
	}
}

func BenchmarkDeleteInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	m := New[int, int]()
	for _, item := range insertP {
		m.Insert(item, item)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		k := insertP[i%benchmarkTreeSize]
		m.Erase(m.Find(k))
		m.Insert(k, k)
	}
}

func BenchmarkAscend(b *testing.B) {
	m := New[int, int]()
	for _, item := range rand.Perm(benchmarkTreeSize) {
		m.Insert(item, item)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for it := m.Begin(); !it.IsEnd(); it.Next() {
		}
	}
}

func BenchmarkLLRBInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		tr := llrb.New()
		for _, item := range insertP {
			tr.InsertNoReplace(llrb.Int(item))
			i++
			if i >= b.N {
				return
			}
		}
	}
}

func BenchmarkLLRBFind(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	tr := llrb.New()
	for _, item := range insertP {
		tr.InsertNoReplace(llrb.Int(item))
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tr.Get(llrb.Int(insertP[i%benchmarkTreeSize]))
	}
}

func BenchmarkBTreeInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		tr := btree.NewOrderedG[int](32)
		for _, item := range insertP {
			tr.ReplaceOrInsert(item)
			i++
			if i >= b.N {
				return
			}
		}
	}
}

func BenchmarkBTreeFind(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	tr := btree.NewOrderedG[int](32)
	for _, item := range insertP {
		tr.ReplaceOrInsert(item)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tr.Get(insertP[i%benchmarkTreeSize])
	}
}
