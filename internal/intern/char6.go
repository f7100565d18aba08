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

package intern

import "strings"

const maxInlined = 32 / 6

var (
	// Same alphabet as LLVM's char6, except that _ and . are swapped so that
	// '.' is 077. Trailing 077 sextets are padding.
	char6ToByte = []byte("0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_.")
	byteToChar6 = func() (out [256]byte) {
		for i := range out {
			out[i] = 0xff
		}
		for j, b := range char6ToByte {
			out[b] = byte(j)
		}
		return out
	}()
)

// encodeChar6 tries to pack data into a Symbol.
func encodeChar6(data string) (Symbol, bool) {
	if data == "" {
		return 0, true
	}
	if len(data) > maxInlined || strings.HasSuffix(data, ".") {
		return 0, false
	}

	// Starting from all ones sets the sign bit and pads short strings with
	// '.', which encode never produces at the end of a string.
	value := Symbol(-1)
	for i := len(data) - 1; i >= 0; i-- {
		sextet := byteToChar6[data[i]]
		if sextet == 0xff {
			return 0, false
		}
		value <<= 6
		value |= Symbol(sextet)
	}
	return value, true
}

// decodeChar6 unpacks a Symbol produced by encodeChar6.
func decodeChar6(sym Symbol) string {
	var data [maxInlined]byte
	for i := range data {
		data[i] = char6ToByte[int(sym&077)]
		sym >>= 6
	}

	n := maxInlined
	for n > 0 && data[n-1] == '.' {
		n--
	}
	return string(data[:n])
}
