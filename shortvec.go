package solana

import (
	"fmt"
	"io"
)

// EncodeCompactU16Length writes n using Solana's "compact-u16" shortvec
// length-prefix encoding (§4.B): seven bits per byte, continuation bit set
// on all but the last byte.
func EncodeCompactU16Length(w io.ByteWriter, n int) error {
	if n < 0 {
		return fmt.Errorf("negative length %d", n)
	}
	v := uint32(n)
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
			if err := w.WriteByte(b); err != nil {
				return err
			}
			continue
		}
		return w.WriteByte(b)
	}
}

// DecodeCompactU16Length reads a compact-u16 length prefix.
func DecodeCompactU16Length(r io.ByteReader) (int, error) {
	var out uint32
	for shift := uint(0); ; shift += 7 {
		if shift > 28 {
			return 0, fmt.Errorf("compact-u16 length overflow")
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		out |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
	}
	return int(out), nil
}
