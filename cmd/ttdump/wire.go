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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bufbuild/tokentree/tt/wire"
)

func newWireCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wire FILE",
		Short: "Serialize the token tree of a file",
		Long: `Serialize the token tree of a file with one of the wire codecs.

With --read, FILE is instead a serialized tree, which is printed in the
configured format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, _ := cmd.Flags().GetString("codec")
			if read, _ := cmd.Flags().GetBool("read"); read {
				return a.readWire(cmd, args[0], codec)
			}

			top, err := a.encodeFile(cmd.ErrOrStderr(), args[0], 0)
			if err != nil {
				return err
			}
			tree := wire.FromTopSubtree(top)

			var data []byte
			switch codec {
			case "proto":
				data = wire.MarshalProto(tree)
			case "msgpack":
				if data, err = wire.MarshalMsgpack(tree); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown codec %q", codec)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %q: %w", output, err)
			}
			return nil
		},
	}
	cmd.Flags().String("codec", "proto", "wire codec (proto|msgpack)")
	cmd.Flags().StringP("output", "o", "-", "output file")
	cmd.Flags().Bool("read", false, "decode FILE instead of encoding it")
	cmd.Flags().StringP("format", "f", "", "output format for --read (debug|pretty|yaml)")
	return cmd
}

func (a *app) readWire(cmd *cobra.Command, path, codec string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %q: %w", path, err)
	}

	var tree *wire.Tree
	switch codec {
	case "proto":
		tree, err = wire.UnmarshalProto(data)
	case "msgpack":
		tree, err = wire.UnmarshalMsgpack(data)
	default:
		return fmt.Errorf("unknown codec %q", codec)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	top, err := tree.TopSubtree()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	text, err := formatTree(top, override(cmd, "format", a.cfg.Format))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
