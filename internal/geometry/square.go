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

package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPerpendicular indicates four points whose sides do not meet at
	// right angles in any vertex order.
	ErrNotPerpendicular = errors.New("geometry: not a square, sides are not perpendicular")

	// ErrUnequalSides indicates a rectangle that is not a square.
	ErrUnequalSides = errors.New("geometry: not a square, sides are not equal")

	// ErrDegenerate indicates coincident vertices.
	ErrDegenerate = errors.New("geometry: not a square, vertices coincide")
)

// Square is an arbitrarily rotated square.  Its vertices are kept in
// traversal order, so p[i] and p[(i+1)%4] share a side.
type Square[T Number] struct {
	p [4]Point[T]
}

// NewSquare builds a square from its four vertices given in any order.
func NewSquare[T Number](p1, p2, p3, p4 Point[T]) (*Square[T], error) {
	var (
		rectangle bool
		s         Square[T]
	)
	// p1 is opposite to one of the other three points; the remaining two
	// are its neighbours.
	for _, order := range [][4]Point[T]{
		{p1, p2, p4, p3},
		{p1, p3, p2, p4},
		{p1, p2, p3, p4},
	} {
		if isRectangle(order) {
			rectangle = true
			s.p = order
			break
		}
	}
	if !rectangle {
		return nil, ErrNotPerpendicular
	}
	side := NewVector(s.p[0], s.p[1])
	if side.LengthSquared() == 0 || NewVector(s.p[1], s.p[2]).LengthSquared() == 0 {
		return nil, ErrDegenerate
	}
	for i := 1; i < 4; i++ {
		if !SameLength(side, NewVector(s.p[i], s.p[(i+1)%4])) {
			return nil, ErrUnequalSides
		}
	}
	return &s, nil
}

// isRectangle reports whether every corner of the closed path p is a right
// angle.
func isRectangle[T Number](p [4]Point[T]) bool {
	for i := 0; i < 4; i++ {
		prev, cur, next := p[(i+3)%4], p[i], p[(i+1)%4]
		if !Perpendicular(NewVector(cur, prev), NewVector(cur, next)) {
			return false
		}
	}
	return true
}

// Vertices returns the vertices in traversal order.
func (s *Square[T]) Vertices() [4]Point[T] { return s.p }

// Side returns the side length.
func (s *Square[T]) Side() float64 { return NewVector(s.p[0], s.p[1]).Length() }

// Area returns the area.
func (s *Square[T]) Area() float64 { return NewVector(s.p[0], s.p[1]).LengthSquared() }

// Center returns the intersection of the diagonals.
func (s *Square[T]) Center() Point[float64] {
	var c Point[float64]
	for _, v := range s.p {
		c.X += float64(v.X)
		c.Y += float64(v.Y)
	}
	return Point[float64]{c.X / 4, c.Y / 4}
}

func (s *Square[T]) String() string {
	return fmt.Sprintf("square (%v) (%v) (%v) (%v)", s.p[0], s.p[1], s.p[2], s.p[3])
}
