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

// Package repl interprets the squarectl command language over a map of
// squares keyed by integer.
//
// One command per line:
//
//	add <key> <x1> <y1> <x2> <y2> <x3> <y3> <x4> <y4>
//	erase <key>
//	size
//	count <area>
//	print
//
// Errors are reported on the output and never stop the session.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/treepool/bstree"
	"github.com/treepool/bstree/internal/geometry"
)

// Figures is the container the interpreter works on.
type Figures = bstree.Map[int, *geometry.Square[int]]

const (
	msgExists    = "Element with such key already exists"
	msgNoElement = "No such element in container"
	msgIncorrect = "Incorrect command"
)

// Interpreter executes commands against a Figures map.
type Interpreter struct {
	figures *Figures
	out     io.Writer
	prompt  string
}

// New returns an interpreter writing its results to out.
func New(figures *Figures, out io.Writer) *Interpreter {
	return &Interpreter{figures: figures, out: out}
}

// SetPrompt sets the text printed before every command is read.  The empty
// string disables the prompt.
func (in *Interpreter) SetPrompt(prompt string) {
	in.prompt = prompt
}

// Run executes every command read from r until EOF.
func (in *Interpreter) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for {
		if in.prompt != "" {
			fmt.Fprint(in.out, in.prompt)
		}
		if !scanner.Scan() {
			break
		}
		in.Exec(scanner.Text())
	}
	return scanner.Err()
}

// Exec executes a single command line.
func (in *Interpreter) Exec(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	glog.V(1).Infof("repl: %q", line)
	var err error
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "add":
		err = in.add(args)
	case "erase":
		err = in.erase(args)
	case "size":
		err = in.size(args)
	case "count":
		err = in.count(args)
	case "print":
		err = in.print(args)
	default:
		err = errIncorrect
	}
	if err != nil {
		fmt.Fprintln(in.out, err)
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

const errIncorrect = usageError(msgIncorrect)

func wantArgs(args []string, n int) error {
	if len(args) != n {
		return errIncorrect
	}
	return nil
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, errIncorrect
		}
		out[i] = v
	}
	return out, nil
}

func (in *Interpreter) add(args []string) error {
	if err := wantArgs(args, 9); err != nil {
		return err
	}
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	key := v[0]
	if !in.figures.Find(key).IsEnd() {
		return usageError(msgExists)
	}
	var p [4]geometry.Point[int]
	for i := range p {
		p[i] = geometry.Point[int]{X: v[1+2*i], Y: v[2+2*i]}
	}
	sq, err := geometry.NewSquare(p[0], p[1], p[2], p[3])
	if err != nil {
		return err
	}
	if _, err := in.figures.Insert(key, sq); err != nil {
		return err
	}
	fmt.Fprintln(in.out, sq)
	return nil
}

func (in *Interpreter) erase(args []string) error {
	if err := wantArgs(args, 1); err != nil {
		return err
	}
	key, err := strconv.Atoi(args[0])
	if err != nil {
		return errIncorrect
	}
	it := in.figures.Find(key)
	if it.IsEnd() {
		return usageError(msgNoElement)
	}
	return in.figures.Erase(it)
}

func (in *Interpreter) size(args []string) error {
	if err := wantArgs(args, 0); err != nil {
		return err
	}
	fmt.Fprintln(in.out, in.figures.Len())
	return nil
}

func (in *Interpreter) count(args []string) error {
	if err := wantArgs(args, 1); err != nil {
		return err
	}
	limit, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errIncorrect
	}
	n := 0
	in.figures.Ascend(func(_ int, sq *geometry.Square[int]) bool {
		if sq.Area() < limit {
			n++
		}
		return true
	})
	fmt.Fprintln(in.out, n)
	return nil
}

func (in *Interpreter) print(args []string) error {
	if err := wantArgs(args, 0); err != nil {
		return err
	}
	var b strings.Builder
	for it := in.figures.Begin(); !it.IsEnd(); {
		k, err := it.Key()
		if err != nil {
			return err
		}
		sq, err := it.Value()
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "(%d, %v) ", k, sq)
		if err := it.Next(); err != nil {
			return err
		}
	}
	fmt.Fprintln(in.out, strings.TrimSuffix(b.String(), " "))
	return nil
}
