package wire

import (
	"fmt"

	"github.com/richardartoul/molecule"
	"github.com/richardartoul/molecule/src/codec"

	"github.com/osmforge/pbf/errs"
)

// parseError wraps a low-level decode failure with the shared parse sentinel
// and the message being decoded.
func parseError(msg string, err error) error {
	return fmt.Errorf("%w: decode %s: %w", errs.ErrParse, msg, err)
}

// The append* helpers below collect one repeated scalar field occurrence.
// A WireBytes occurrence is a packed run; anything else is a single value.
// Proto3 parsers must accept both encodings for the same field.

func appendSint64(dst []int64, v molecule.Value) ([]int64, error) {
	if v.WireType == codec.WireBytes {
		packed, err := v.AsBytesUnsafe()
		if err != nil {
			return dst, err
		}
		err = molecule.PackedRepeatedEach(codec.NewBuffer(packed), codec.FieldType_SINT64, func(pv molecule.Value) (bool, error) {
			n, err := pv.AsSint64()
			if err != nil {
				return false, err
			}
			dst = append(dst, n)

			return true, nil
		})

		return dst, err
	}

	n, err := v.AsSint64()
	if err != nil {
		return dst, err
	}

	return append(dst, n), nil
}

func appendSint32(dst []int32, v molecule.Value) ([]int32, error) {
	if v.WireType == codec.WireBytes {
		packed, err := v.AsBytesUnsafe()
		if err != nil {
			return dst, err
		}
		err = molecule.PackedRepeatedEach(codec.NewBuffer(packed), codec.FieldType_SINT32, func(pv molecule.Value) (bool, error) {
			n, err := pv.AsSint32()
			if err != nil {
				return false, err
			}
			dst = append(dst, n)

			return true, nil
		})

		return dst, err
	}

	n, err := v.AsSint32()
	if err != nil {
		return dst, err
	}

	return append(dst, n), nil
}

func appendInt32(dst []int32, v molecule.Value) ([]int32, error) {
	if v.WireType == codec.WireBytes {
		packed, err := v.AsBytesUnsafe()
		if err != nil {
			return dst, err
		}
		err = molecule.PackedRepeatedEach(codec.NewBuffer(packed), codec.FieldType_INT32, func(pv molecule.Value) (bool, error) {
			n, err := pv.AsInt32()
			if err != nil {
				return false, err
			}
			dst = append(dst, n)

			return true, nil
		})

		return dst, err
	}

	n, err := v.AsInt32()
	if err != nil {
		return dst, err
	}

	return append(dst, n), nil
}

func appendUint32(dst []uint32, v molecule.Value) ([]uint32, error) {
	if v.WireType == codec.WireBytes {
		packed, err := v.AsBytesUnsafe()
		if err != nil {
			return dst, err
		}
		err = molecule.PackedRepeatedEach(codec.NewBuffer(packed), codec.FieldType_UINT32, func(pv molecule.Value) (bool, error) {
			n, err := pv.AsUint32()
			if err != nil {
				return false, err
			}
			dst = append(dst, n)

			return true, nil
		})

		return dst, err
	}

	n, err := v.AsUint32()
	if err != nil {
		return dst, err
	}

	return append(dst, n), nil
}

func appendBool(dst []bool, v molecule.Value) ([]bool, error) {
	if v.WireType == codec.WireBytes {
		packed, err := v.AsBytesUnsafe()
		if err != nil {
			return dst, err
		}
		err = molecule.PackedRepeatedEach(codec.NewBuffer(packed), codec.FieldType_BOOL, func(pv molecule.Value) (bool, error) {
			b, err := pv.AsBool()
			if err != nil {
				return false, err
			}
			dst = append(dst, b)

			return true, nil
		})

		return dst, err
	}

	b, err := v.AsBool()
	if err != nil {
		return dst, err
	}

	return append(dst, b), nil
}
