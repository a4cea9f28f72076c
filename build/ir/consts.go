// Copyright 2025 Google LLC
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

package ir

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"github.com/gsomix/Cesium/build/ir/irkind"
)

// narrow converts a value to a smaller integer type.
// Returns false if the value does not fit in the target type.
func narrow[T constraints.Integer](v int64) (T, bool) {
	t := T(v)
	return t, int64(t) == v && (t < 0) == (v < 0)
}

var simpleEscapes = map[byte]int64{
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

// UnescapeChar returns the code point of a character literal.
// The surrounding quotes of the literal are optional.
func UnescapeChar(text string) (int64, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'")
	if body == "" {
		return 0, errors.Errorf("empty character constant %s", text)
	}
	if body[0] != '\\' {
		r, size := utf8.DecodeRuneInString(body)
		if r == utf8.RuneError || size != len(body) {
			return 0, errors.Errorf("multi-character constant %s not supported", text)
		}
		return int64(r), nil
	}
	if len(body) < 2 {
		return 0, errors.Errorf("unknown escape sequence '%s'", body)
	}
	if val, ok := simpleEscapes[body[1]]; ok {
		if len(body) != 2 {
			return 0, errors.Errorf("unknown escape sequence '%s'", body)
		}
		return val, nil
	}
	switch c := body[1]; {
	case c == 'x':
		digits := body[2:]
		val, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return 0, errors.Errorf("invalid hexadecimal escape sequence '%s'", body)
		}
		return int64(val), nil
	case isOctalDigit(c):
		digits := body[1:]
		if len(digits) > 3 {
			return 0, errors.Errorf("octal escape sequence '%s' is too long", body)
		}
		val, err := strconv.ParseUint(digits, 8, 64)
		if err != nil {
			return 0, errors.Errorf("invalid octal escape sequence '%s'", body)
		}
		return int64(val), nil
	}
	return 0, errors.Errorf("unknown escape sequence '%s'", body)
}

// DecodeChar returns the value of a character literal.
// The value needs to fit in a byte.
func DecodeChar(text string) (byte, error) {
	val, err := UnescapeChar(text)
	if err != nil {
		return 0, err
	}
	b, ok := narrow[byte](val)
	if !ok {
		return 0, errors.Errorf("character constant %s overflows a byte: %d", text, val)
	}
	return b, nil
}

func fitsKind(val uint64, kind Kind) bool {
	bits := uint(kind.Size() * 8)
	if irkind.IsUnsignedKind(kind) {
		return bits >= 64 || val < 1<<bits
	}
	return val < 1<<(bits-1)
}

// ParseIntegerLiteral returns the value and the type of an integer literal.
// The type is the first type of the C rules able to represent the value
// given the suffix and the base of the literal.
func ParseIntegerLiteral(text string) (int64, Type, error) {
	lower := strings.ToLower(text)
	digits := strings.TrimRight(lower, "ul")
	suffix := lower[len(digits):]
	val, err := strconv.ParseUint(digits, 0, 64)
	if err != nil {
		return 0, InvalidType(), errors.Errorf("invalid integer constant %s", text)
	}
	decimal := digits == "0" || !strings.HasPrefix(digits, "0")
	var candidates []Kind
	switch suffix {
	case "":
		if decimal {
			candidates = []Kind{irkind.Int, irkind.Long, irkind.LongLong}
		} else {
			candidates = []Kind{irkind.Int, irkind.UInt, irkind.Long, irkind.ULong, irkind.LongLong, irkind.ULongLong}
		}
	case "u":
		candidates = []Kind{irkind.UInt, irkind.ULong, irkind.ULongLong}
	case "l":
		if decimal {
			candidates = []Kind{irkind.Long, irkind.LongLong}
		} else {
			candidates = []Kind{irkind.Long, irkind.ULong, irkind.LongLong, irkind.ULongLong}
		}
	case "ul", "lu":
		candidates = []Kind{irkind.ULong, irkind.ULongLong}
	case "ll":
		if decimal {
			candidates = []Kind{irkind.LongLong}
		} else {
			candidates = []Kind{irkind.LongLong, irkind.ULongLong}
		}
	case "ull", "llu":
		candidates = []Kind{irkind.ULongLong}
	default:
		return 0, InvalidType(), errors.Errorf("invalid suffix %q on integer constant %s", suffix, text)
	}
	for _, kind := range candidates {
		if fitsKind(val, kind) {
			return int64(val), TypeFromKind(kind), nil
		}
	}
	return 0, InvalidType(), errors.Errorf("integer constant %s is too large", text)
}

// ParseFloatLiteral returns the value and the type of a floating point literal.
func ParseFloatLiteral(text string) (float64, Type, error) {
	typ := DoubleType()
	digits := text
	switch {
	case strings.HasSuffix(text, "f"), strings.HasSuffix(text, "F"):
		typ = FloatType()
		digits = text[:len(text)-1]
	case strings.HasSuffix(text, "l"), strings.HasSuffix(text, "L"):
		digits = text[:len(text)-1]
	}
	val, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, InvalidType(), errors.Errorf("invalid floating constant %s", text)
	}
	return val, typ, nil
}
