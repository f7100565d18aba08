// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/parser"
)

const defaultConfigFile = "ttdump.toml"

// config holds the defaults that flags override. It is read from a TOML
// file such as:
//
//	edition = "2018"
//	entry = "expr"
//	doc_comments = "proc-macro"
//	format = "pretty"
//	color = "off"
type config struct {
	Edition     parser.Edition `toml:"edition"`
	Entry       string         `toml:"entry"`
	DocComments string         `toml:"doc_comments"`
	Format      string         `toml:"format"`
	Color       string         `toml:"color"`
}

func defaultConfig() config {
	return config{
		Edition:     parser.Edition2021,
		Entry:       "file",
		DocComments: bridge.DesugarMbe.String(),
		Format:      "debug",
		Color:       "auto",
	}
}

// loadConfig reads the config file at path on top of the defaults. A missing
// file is only an error if required is set.
func loadConfig(path string, required bool) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		return defaultConfig(), nil
	case err != nil:
		return cfg, fmt.Errorf("loading config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %q: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

var (
	formats    = []string{"debug", "pretty", "yaml"}
	colorModes = []string{"auto", "on", "off"}
)

func (c config) validate() error {
	if _, err := parser.ParseEntry(c.Entry); err != nil {
		return err
	}
	if _, err := bridge.ParseDocCommentDesugarMode(c.DocComments); err != nil {
		return err
	}
	if err := checkFormat(c.Format); err != nil {
		return err
	}
	if !slices.Contains(colorModes, c.Color) {
		return fmt.Errorf("unknown color mode %q", c.Color)
	}
	return nil
}

func checkFormat(format string) error {
	if !slices.Contains(formats, format) {
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
