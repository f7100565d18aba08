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

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/tokentree/tt"
)

// yamlTree is the YAML shape of one token tree entry.
type yamlTree struct {
	Kind      string     `yaml:"kind"`
	Delimiter string     `yaml:"delimiter,omitempty"`
	Literal   string     `yaml:"literal,omitempty"`
	Text      string     `yaml:"text,omitempty"`
	Suffix    string     `yaml:"suffix,omitempty"`
	Spacing   string     `yaml:"spacing,omitempty"`
	Raw       bool       `yaml:"raw,omitempty"`
	Span      string     `yaml:"span"`
	Close     string     `yaml:"close,omitempty"`
	Children  []yamlTree `yaml:"children,omitempty"`
}

func treeYAML(top *tt.TopSubtree) (string, error) {
	out, err := yaml.Marshal(yamlSubtree(top.Top(), top.Iter()))
	if err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return string(out), nil
}

func yamlSubtree(sub tt.Subtree, it *tt.Iter) yamlTree {
	node := yamlTree{
		Kind:      "subtree",
		Delimiter: sub.Delimiter.Kind.String(),
		Span:      sub.Delimiter.Open.String(),
		Close:     sub.Delimiter.Close.String(),
	}
	for e := range it.All() {
		if sub, children, ok := e.Subtree(); ok {
			node.Children = append(node.Children, yamlSubtree(sub, children))
			continue
		}
		leaf, _ := e.Leaf()
		node.Children = append(node.Children, yamlLeaf(leaf))
	}
	return node
}

func yamlLeaf(leaf tt.Leaf) yamlTree {
	switch leaf := leaf.(type) {
	case tt.Literal:
		return yamlTree{
			Kind:    "literal",
			Literal: leaf.Kind.String(),
			Text:    leaf.Symbol.String(),
			Suffix:  leaf.Suffix.String(),
			Span:    leaf.Span.String(),
		}
	case tt.Punct:
		return yamlTree{
			Kind:    "punct",
			Text:    string(leaf.Char),
			Spacing: leaf.Spacing.String(),
			Span:    leaf.Span.String(),
		}
	case tt.Ident:
		return yamlTree{
			Kind: "ident",
			Text: leaf.Symbol.String(),
			Raw:  leaf.IsRaw,
			Span: leaf.Span.String(),
		}
	default:
		return yamlTree{Kind: "unknown", Span: tt.SpanOf(leaf).String()}
	}
}
