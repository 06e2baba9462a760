package num

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse decodes text produced by Value.String for the given kind.
func Parse(kind Kind, text string) (Value, error) {
	switch kind {
	case KindInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse int %q: %w", text, err)
		}
		return Int(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("parse float %q: %w", text, err)
		}
		return Float(f), nil
	case KindComplex:
		c, err := strconv.ParseComplex(text, 128)
		if err != nil {
			return nil, fmt.Errorf("parse complex %q: %w", text, err)
		}
		return Complex(c), nil
	case KindDecimal:
		d, err := ParseDecimal(text)
		if err != nil {
			return nil, fmt.Errorf("parse decimal %q: %w", text, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown kind %s", kind)
	}
}

// ParseOperand turns command-line text into an operand.
//
// Literal forms:
//
//	42        int
//	2.5, inf  float
//	1+2i, 3i  complex
//	0.1d      decimal
//	none      absent (nil)
//
// Text matching none of these is returned unchanged as a string operand so
// that operand validation can reject it by kind. An integer literal outside
// the int64 range is an error rather than a silent float.
func ParseOperand(s string) (any, error) {
	text := strings.TrimSpace(s)
	switch strings.ToLower(text) {
	case "none", "null", "nil":
		return nil, nil
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(n), nil
	} else if errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("integer literal %s overflows int64", text)
	}

	if body, ok := strings.CutSuffix(text, "d"); ok && body != "" {
		if d, err := ParseDecimal(body); err == nil {
			return d, nil
		}
	}

	if strings.HasSuffix(text, "i") {
		if c, err := strconv.ParseComplex(text, 128); err == nil {
			return Complex(c), nil
		}
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Float(f), nil
	}

	return s, nil
}
