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

package parser

import (
	"fmt"
	"strings"
)

// Edition is a language edition. Editions change which identifiers are
// keywords and how some prefixes are lexed.
type Edition byte

const (
	Edition2015 Edition = iota
	Edition2018
	Edition2021
	Edition2024

	EditionLatest = Edition2024
)

// ParseEdition parses an edition year, such as "2021".
func ParseEdition(s string) (Edition, error) {
	switch strings.TrimSpace(s) {
	case "2015":
		return Edition2015, nil
	case "2018":
		return Edition2018, nil
	case "2021":
		return Edition2021, nil
	case "2024":
		return Edition2024, nil
	default:
		return 0, fmt.Errorf("unknown edition %q", s)
	}
}

// String implements [fmt.Stringer].
func (e Edition) String() string {
	switch e {
	case Edition2015:
		return "2015"
	case Edition2018:
		return "2018"
	case Edition2021:
		return "2021"
	case Edition2024:
		return "2024"
	default:
		return fmt.Sprintf("parser.Edition(%d)", int(e))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler], so that editions can
// be read from configuration files.
func (e *Edition) UnmarshalText(text []byte) error {
	v, err := ParseEdition(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (e Edition) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
