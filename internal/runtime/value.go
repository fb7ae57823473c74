package runtime

import (
	"strconv"
	"strings"
)

// Value is the tagged-union runtime value described in spec.md §3: null,
// boolean, integer, float, string, callable, class, instance all satisfy
// this interface via Go's type system instead of an explicit tag field.
type Value interface {
	// Type returns a short type name, used in diagnostics.
	Type() string
	// String renders the value per spec.md §4.3's stringification rules.
	String() string
}

// Null is the single null value. A nil Go value (untyped) is never stored
// directly in an Environment; Null{} is used instead so Type()/String()
// stay total functions.
type Null struct{}

func (Null) Type() string   { return "NULL" }
func (Null) String() string { return "null" }

// Bool wraps a boolean.
type Bool bool

func (Bool) Type() string { return "BOOL" }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int wraps an integer number, preserving the integer/float split spec.md
// §3 requires for stringification.
type Int int64

func (Int) Type() string     { return "NUMBER" }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float wraps a floating-point number.
type Float float64

func (Float) Type() string { return "NUMBER" }
func (f Float) String() string {
	if float64(f) == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Str wraps a string value.
type Str string

func (Str) Type() string     { return "STRING" }
func (s Str) String() string { return string(s) }

// Truthy implements the total truthiness mapping from spec.md §4.3.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(val)
	case Int:
		return val != 0
	case Float:
		return val != 0
	case Str:
		return val != ""
	default:
		return true
	}
}

// IsNumeric reports whether v is an Int or Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	default:
		return false
	}
}

// AsFloat returns v's numeric value as a float64, and whether v is numeric.
// A string operand is accepted leniently by attempting to parse it as a
// number (spec.md §4.3: "coerce each operand to a number ... else attempt
// numeric parsing"), matching the reference interpreter's float(left)/
// float(right) coercion for the arithmetic and comparison operators.
func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	case Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NumberFromFloat packs f back into an Int if it has no fractional part,
// matching spec.md §3's "preserve the integer/fractional split" rule for
// values produced by arithmetic.
func NumberFromFloat(f float64) Value {
	if f == float64(int64(f)) {
		return Int(int64(f))
	}
	return Float(f)
}

// Equal implements the structural equality spec.md §4.3 defines for `==`
// and `!=`: two nulls are equal, null is unequal to anything else,
// otherwise values compare by type and content.
func Equal(a, b Value) bool {
	_, aNull := a.(Null)
	_, bNull := b.(Null)
	if aNull || bNull {
		return aNull && bNull
	}

	if IsNumeric(a) && IsNumeric(b) {
		af, _ := AsFloat(a)
		bf, _ := AsFloat(b)
		return af == bf
	}

	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	default:
		return a == b
	}
}
