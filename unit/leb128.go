package unit

import (
	"errors"
	"io"
)

// LEB128 helpers for the wasm section framing used by the descriptor codec.

// errOverflow is returned when a LEB128 value exceeds 32 bits.
var errOverflow = errors.New("leb128: overflow")

// readUleb128 reads an unsigned LEB128 value
func readUleb128(r io.ByteReader) (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, errOverflow
		}
	}
}

// appendUleb128 appends v as unsigned LEB128
func appendUleb128(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}
