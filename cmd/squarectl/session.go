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

package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/google/subcommands"

	"github.com/treepool/bstree"
	"github.com/treepool/bstree/internal/geometry"
	"github.com/treepool/bstree/internal/repl"
	"github.com/treepool/bstree/pool"
)

// session is a square map whose nodes live in a pool.
type session struct {
	pool    *pool.Pool
	figures *repl.Figures
}

func openSession(c config) (*session, error) {
	p, err := pool.New(c.PoolSize)
	if err != nil {
		return nil, err
	}
	glog.Infof("session opened with a %d byte pool", c.PoolSize)
	return &session{
		pool:    p,
		figures: bstree.NewWithAllocator[int, *geometry.Square[int]](p),
	}, nil
}

func (s *session) run(r io.Reader, out io.Writer, prompt string) error {
	in := repl.New(s.figures, out)
	in.SetPrompt(prompt)
	return in.Run(r)
}

// close releases the map's nodes before the pool that holds them.
func (s *session) close() error {
	if err := s.figures.Clear(); err != nil {
		return err
	}
	return s.pool.Close()
}

// Repl implements subcommands.Command for the "repl" command.
type Repl struct {
	flags sessionFlags
	in    io.Reader
	out   io.Writer
}

// Name implements subcommands.Command.Name.
func (*Repl) Name() string {
	return "repl"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Repl) Synopsis() string {
	return "read square commands interactively from stdin"
}

// Usage implements subcommands.Command.Usage.
func (*Repl) Usage() string {
	return `repl [flags] - read add/erase/size/count/print commands from stdin.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Repl) SetFlags(f *flag.FlagSet) {
	r.flags.setFlags(f)
}

// Execute implements subcommands.Command.Execute.
func (r *Repl) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	c, err := r.flags.resolve()
	if err != nil {
		glog.Errorf("%v", err)
		return subcommands.ExitUsageError
	}
	return execute(c, r.input(), r.output(), c.Prompt)
}

func (r *Repl) input() io.Reader {
	if r.in == nil {
		return os.Stdin
	}
	return r.in
}

func (r *Repl) output() io.Writer {
	if r.out == nil {
		return os.Stdout
	}
	return r.out
}

// Run implements subcommands.Command for the "run" command.
type Run struct {
	flags sessionFlags
	out   io.Writer
}

// Name implements subcommands.Command.Name.
func (*Run) Name() string {
	return "run"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Run) Synopsis() string {
	return "execute square commands from a file"
}

// Usage implements subcommands.Command.Usage.
func (*Run) Usage() string {
	return `run [flags] <script> - execute the commands in script, one per line.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Run) SetFlags(f *flag.FlagSet) {
	r.flags.setFlags(f)
}

// Execute implements subcommands.Command.Execute.
func (r *Run) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	c, err := r.flags.resolve()
	if err != nil {
		glog.Errorf("%v", err)
		return subcommands.ExitUsageError
	}
	script, err := os.Open(f.Arg(0))
	if err != nil {
		glog.Errorf("opening script: %v", err)
		return subcommands.ExitFailure
	}
	defer script.Close()

	out := r.out
	if out == nil {
		out = os.Stdout
	}
	return execute(c, script, out, "")
}

func execute(c config, r io.Reader, out io.Writer, prompt string) subcommands.ExitStatus {
	s, err := openSession(c)
	if err != nil {
		glog.Errorf("opening session: %v", err)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	if err := s.run(r, out, prompt); err != nil {
		glog.Errorf("reading commands: %v", err)
		status = subcommands.ExitFailure
	}
	if err := s.close(); err != nil {
		glog.Errorf("closing session: %v", err)
		status = subcommands.ExitFailure
	}
	return status
}
