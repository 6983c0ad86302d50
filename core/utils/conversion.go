package utils

import "github.com/spf13/cast"

// ToString converts an id-like value to its canonical string form.
// Integral floats (as produced by encoding/json) print without a fraction or exponent,
// so 42, int64(42), float64(42), "42" and []byte("42") all become "42". Values cast
// cannot convert yield "".
func ToString(val any) string {
	return cast.ToString(val)
}
