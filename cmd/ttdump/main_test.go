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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/parser"
	"github.com/bufbuild/tokentree/tt/wire"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", "", "--color", "off"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "ttdump.toml", `
edition = "2018"
entry = "expr"
format = "pretty"
`)
	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, parser.Edition2018, cfg.Edition)
	assert.Equal(t, "expr", cfg.Entry)
	assert.Equal(t, "pretty", cfg.Format)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, bridge.DesugarMbe.String(), cfg.DocComments)
	require.NoError(t, cfg.validate())

	cfg, err = loadConfig(filepath.Join(dir, "missing.toml"), false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = loadConfig(filepath.Join(dir, "missing.toml"), true)
	assert.Error(t, err)

	_, err = loadConfig(writeFile(t, dir, "unknown.toml", `colour = "on"`), true)
	assert.ErrorContains(t, err, "colour")

	_, err = loadConfig(writeFile(t, dir, "edition.toml", `edition = "1999"`), true)
	assert.Error(t, err)

	cfg = defaultConfig()
	cfg.Format = "json"
	assert.Error(t, cfg.validate())
}

func TestLex(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.rs", "a<<b")

	stdout, _, err := run(t, "lex", "--format", "pretty", path)
	require.NoError(t, err)
	assert.Equal(t, "a << b\n", stdout)

	stdout, _, err = run(t, "lex", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "PUNCT   < [joint]")
	assert.Contains(t, stdout, "IDENT   b")

	stdout, _, err = run(t, "lex", "-f", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "kind: subtree")
	assert.Contains(t, stdout, "spacing: joint")

	_, _, err = run(t, "lex", "-f", "json", path)
	assert.Error(t, err)
}

func TestLexErrors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.rs", "fn f() {")
	_, stderr, err := run(t, "lex", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "unclosed delimiter")
}

func TestParse(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "e.rs", "x.1.2")
	stdout, _, err := run(t, "parse", "--entry", "expr", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "FIELD_EXPR@0..5\n")
	assert.Contains(t, stdout, "spans:\n")
	assert.Contains(t, stdout, "  2..3 -> 0:0@2..5#0\n")

	_, _, err = run(t, "parse", "--entry", "type", path)
	assert.Error(t, err)
}

func TestWire(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.rs", "fn f(x: u8) -> u8 { x << 1 }")
	want, _, err := run(t, "lex", path)
	require.NoError(t, err)

	for _, codec := range []string{"proto", "msgpack"} {
		out := filepath.Join(dir, "a."+codec)
		_, _, err := run(t, "wire", "--codec", codec, "-o", out, path)
		require.NoError(t, err, codec)

		got, _, err := run(t, "wire", "--read", "--codec", codec, out)
		require.NoError(t, err, codec)
		assert.Equal(t, want, got, codec)
	}

	stdout, _, err := run(t, "wire", "--codec", "msgpack", path)
	require.NoError(t, err)
	tree, err := wire.UnmarshalMsgpack([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, wire.Version, tree.Version)

	_, _, err = run(t, "wire", "--codec", "json", path)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "ok/a.rs", "/// Docs.\nfn f(a: u8) -> u8 { a << 2 }\n")
	writeFile(t, dir, "ok/nested/b.rs", "struct S<'a> { r: &'a str }\n")
	writeFile(t, dir, "bad/c.rs", "fn f( {}\n")

	stdout, _, err := run(t, "check", filepath.Join(dir, "ok", "**", "*.rs"))
	require.NoError(t, err, stdout)
	assert.Contains(t, stdout, "ok  "+filepath.Join(dir, "ok", "a.rs"))
	assert.Contains(t, stdout, "2 passed, 0 failed\n")

	stdout, _, err = run(t, "check", "--doc-comments", "proc-macro", filepath.Join(dir, "**", "*.rs"))
	require.Error(t, err)
	assert.Contains(t, stdout, "FAIL "+filepath.Join(dir, "bad", "c.rs"))
	assert.Contains(t, stdout, "2 passed, 1 failed\n")

	_, _, err = run(t, "check", filepath.Join(dir, "*.nothing"))
	assert.Error(t, err)
}
