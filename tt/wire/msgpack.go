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

package wire

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalMsgpack encodes t as MessagePack.
func MarshalMsgpack(t *Tree) ([]byte, error) {
	data, err := msgpack.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("tokentree/wire: %w", err)
	}
	return data, nil
}

// UnmarshalMsgpack decodes a [Tree] from MessagePack.
func UnmarshalMsgpack(data []byte) (*Tree, error) {
	t := new(Tree)
	if err := msgpack.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("tokentree/wire: %w", err)
	}
	return t, nil
}

// WriteMsgpack streams t to w as MessagePack.
func WriteMsgpack(w io.Writer, t *Tree) error {
	if err := msgpack.NewEncoder(w).Encode(t); err != nil {
		return fmt.Errorf("tokentree/wire: %w", err)
	}
	return nil
}

// ReadMsgpack reads one MessagePack-encoded [Tree] from r.
func ReadMsgpack(r io.Reader) (*Tree, error) {
	t := new(Tree)
	if err := msgpack.NewDecoder(r).Decode(t); err != nil {
		return nil, fmt.Errorf("tokentree/wire: %w", err)
	}
	return t, nil
}
