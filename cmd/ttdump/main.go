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

// Command ttdump shows how source text becomes a token tree and how token
// trees parse back into syntax trees.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bufbuild/tokentree/bridge"
	"github.com/bufbuild/tokentree/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by every subcommand, set up once flags have been
// parsed.
type app struct {
	cfg    config
	logger *zap.Logger
	color  bool
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: defaultConfig(), logger: zap.NewNop()}
	root := &cobra.Command{
		Use:          "ttdump",
		Short:        "Inspect token trees",
		Long:         `ttdump converts source text to token trees, parses token trees back into syntax trees, and checks that the two agree.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", defaultConfigFile, "path to a TOML config file")
	flags.String("edition", "", "language edition (2015|2018|2021|2024)")
	flags.String("color", "", "colorize output (auto|on|off)")
	flags.BoolP("verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newLexCmd(a),
		newParseCmd(a),
		newWireCmd(a),
		newCheckCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := loadConfig(path, flags.Changed("config"))
	if err != nil {
		return err
	}
	if flags.Changed("edition") {
		text, _ := flags.GetString("edition")
		if cfg.Edition, err = parser.ParseEdition(text); err != nil {
			return err
		}
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	a.cfg = cfg

	verbose, _ := flags.GetBool("verbose")
	if a.logger, err = newLogger(verbose); err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	bridge.SetLogger(a.logger)
	a.logger.Debug("configured",
		zap.String("config", path),
		zap.Stringer("edition", cfg.Edition),
		zap.String("entry", cfg.Entry),
		zap.String("doc_comments", cfg.DocComments),
	)

	a.color = useColor(cfg.Color, cmd.OutOrStdout())
	return nil
}

// override returns the value of a per-command string flag if it was given,
// and fallback otherwise.
func override(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// paint returns a color that is only applied when enabled is set.
func paint(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
