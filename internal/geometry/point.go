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

// Package geometry provides the planar value types stored by squarectl.
package geometry

import (
	"fmt"
	"math"
	"math/big"

	"golang.org/x/exp/constraints"
)

// Number is the set of coordinate types.
type Number interface {
	constraints.Integer | constraints.Float
}

// epsilon is the relative tolerance of the floating point comparisons.
const epsilon = 1e-9

// Point is a point in the plane.
type Point[T Number] struct {
	X, Y T
}

// Add returns p+q.
func (p Point[T]) Add(q Point[T]) Point[T] { return Point[T]{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point[T]) Sub(q Point[T]) Point[T] { return Point[T]{p.X - q.X, p.Y - q.Y} }

func (p Point[T]) String() string { return fmt.Sprintf("%v %v", p.X, p.Y) }

// Vector is the displacement between two points.
type Vector[T Number] struct {
	X, Y T
}

// NewVector returns the vector from a to b.
func NewVector[T Number](a, b Point[T]) Vector[T] {
	return Vector[T]{b.X - a.X, b.Y - a.Y}
}

// Dot returns the dot product of v and w.
func (v Vector[T]) Dot(w Vector[T]) float64 {
	return float64(v.X)*float64(w.X) + float64(v.Y)*float64(w.Y)
}

// LengthSquared returns |v|².
func (v Vector[T]) LengthSquared() float64 { return v.Dot(v) }

// Length returns |v|.
func (v Vector[T]) Length() float64 { return math.Hypot(float64(v.X), float64(v.Y)) }

// Perpendicular reports whether v and w are at a right angle.  A zero vector
// is perpendicular to everything.  Integer vectors are compared exactly,
// floating point ones within a relative tolerance.
func Perpendicular[T Number](v, w Vector[T]) bool {
	if integral[T]() {
		return v.exactDot(w).Sign() == 0
	}
	return math.Abs(v.Dot(w)) <= epsilon*(v.LengthSquared()+w.LengthSquared())
}

// SameLength reports whether |v| == |w|, under the same rules as
// Perpendicular.
func SameLength[T Number](v, w Vector[T]) bool {
	if integral[T]() {
		return v.exactDot(v).Cmp(w.exactDot(w)) == 0
	}
	return nearlyEqual(v.LengthSquared(), w.LengthSquared())
}

// integral reports whether T is an integer type.
func integral[T Number]() bool {
	one := T(1)
	return one/2 == 0
}

// exactDot returns the dot product of integer vectors without overflow.
func (v Vector[T]) exactDot(w Vector[T]) *big.Int {
	x := new(big.Int).Mul(toBig(v.X), toBig(w.X))
	y := new(big.Int).Mul(toBig(v.Y), toBig(w.Y))
	return x.Add(x, y)
}

func toBig[T Number](x T) *big.Int {
	var zero T
	if zero-1 < 0 {
		return big.NewInt(int64(x))
	}
	return new(big.Int).SetUint64(uint64(x))
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(math.Abs(a), math.Abs(b))
}
