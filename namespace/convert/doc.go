// Package convert coerces stored strings into typed values.
//
// A document marks a typed entry with a companion "<key>.type" entry naming a
// converter. Lists are converted element by element, keeping order and length.
//
//	conv := convert.New()
//	v, err := conv.Convert("13", "int")            // 13 (int)
//	v, err = conv.Convert([]string{"1", "2"}, "long") // []any{int64(1), int64(2)}
//
// Type names are case-insensitive. Unknown names fail with ErrUnsupportedType and
// values that do not parse fail with ErrInvalidValue.
package convert
