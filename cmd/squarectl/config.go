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
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
)

const defaultPoolSize = 4096

// config is the configuration of a squarectl session.
type config struct {
	// PoolSize is the size in bytes of the pool that stores the square map's
	// nodes.
	PoolSize int `toml:"pool_size"`
	// Prompt is printed before every interactive command.
	Prompt string `toml:"prompt"`
}

func defaultConfig() config {
	return config{
		PoolSize: defaultPoolSize,
		Prompt:   "> ",
	}
}

// loadConfig loads the session config from a TOML file on top of the
// defaults.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return c, err
	}
	return c, nil
}

// sessionFlags are the flags shared by every command that opens a session.
type sessionFlags struct {
	configPath string
	poolSize   int
}

func (s *sessionFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&s.configPath, "config", "", "path to a TOML config file.")
	f.IntVar(&s.poolSize, "pool-size", 0, fmt.Sprintf("size in bytes of the node pool; overrides the config file (default %d).", defaultPoolSize))
}

// resolve merges the defaults, the config file and the flags, in increasing
// order of precedence.
func (s *sessionFlags) resolve() (config, error) {
	c := defaultConfig()
	if s.configPath != "" {
		var err error
		if c, err = loadConfig(s.configPath); err != nil {
			return c, fmt.Errorf("loading config %q: %w", s.configPath, err)
		}
	}
	if s.poolSize != 0 {
		c.PoolSize = s.poolSize
	}
	if c.PoolSize <= 0 {
		return c, fmt.Errorf("pool size must be positive, got %d", c.PoolSize)
	}
	return c, nil
}
