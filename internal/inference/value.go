package inference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindText
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Kind returns the value kind a premise of type t is answered with.
func (t PremiseType) Kind() Kind {
	switch t {
	case PremiseBoolean:
		return KindBool
	case PremiseText:
		return KindText
	case PremiseNumber:
		return KindNumber
	default:
		return KindAbsent
	}
}

// Value is an answer or a condition operand. The zero Value is absent.
type Value struct {
	kind Kind
	b    bool
	s    string
	n    float64
}

func Absent() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Text(s string) Value { return Value{kind: KindText, s: s} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Blank reports whether v counts as unanswered: absent or empty text.
func (v Value) Blank() bool {
	return v.kind == KindAbsent || (v.kind == KindText && v.s == "")
}

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsText returns the text payload.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// AsNumber returns the number payload.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// StrictEqual compares kind and payload. Absent equals absent and NaN equals
// nothing, matching `===`.
func StrictEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.b == b.b
	case KindText:
		return a.s == b.s
	case KindNumber:
		return a.n == b.n
	default:
		return true
	}
}

// ToNumber coerces v the way `Number(v)` does: absent is NaN, booleans are
// 0 or 1, text must be a numeric literal after trimming (empty text is 0).
func ToNumber(v Value) float64 {
	switch v.kind {
	case KindNumber:
		return v.n
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindText:
		return parseNumeric(v.s)
	default:
		return math.NaN()
	}
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

func parseNumeric(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range literals still parse to ±Inf.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return n
		}
		return math.NaN()
	}
	return n
}

// String renders v for display in snapshots and logs.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindText:
		return v.s
	case KindNumber:
		return formatNumber(v.n)
	default:
		return ""
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// MarshalJSON writes the bare JSON literal. Absent and non-finite numbers
// become null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindText:
		return json.Marshal(v.s)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.n)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, booleans, strings and numbers.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Absent()
		return nil
	}
	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return fmt.Errorf("inference: invalid value %s", data)
		}
		*v = Absent()
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("inference: invalid value: %w", err)
		}
		*v = Bool(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("inference: invalid value: %w", err)
		}
		*v = Text(s)
	case '{', '[':
		return fmt.Errorf("inference: unsupported value %s", data)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("inference: invalid value: %w", err)
		}
		*v = Number(n)
	}
	return nil
}
