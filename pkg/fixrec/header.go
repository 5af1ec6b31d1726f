// Package fixrec frames fixed-width record fields for storage or transport.
// A record is a header, a width table, the field payloads back to back, and
// a CRC32 trailer. Field widths are carried in the record itself, so the
// decoder can slice fields back out with no schema; consumers that keep
// their fields in fixbuf.Buffer storage decode straight into them through
// views, one code path for every field width.
package fixrec

import (
	"encoding/binary"
	"errors"
)

const (
	MagicV1   uint32 = 0x31525846 // "FXR1" little-endian
	VersionV1 uint16 = 1

	HeaderSize = 8

	// FlagZstd marks the payload section as zstd-compressed, prefixed with
	// a varint of the raw size.
	FlagZstd uint16 = 0x0001
)

var (
	ErrTruncated   = errors.New("fixrec: record truncated")
	ErrBadMagic    = errors.New("fixrec: bad magic")
	ErrBadVersion  = errors.New("fixrec: unsupported version")
	ErrBadChecksum = errors.New("fixrec: checksum mismatch")
)

type Header struct {
	Magic   uint32
	Version uint16
	Flags   uint16
}

func encodeHeader(buf []byte, h Header) []byte {
	buf = append(buf, make([]byte, HeaderSize)...)
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	binary.LittleEndian.PutUint16(buf[6:], h.Flags)
	return buf
}

// ParseHeader reads the fixed header from buf; zero copy.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrTruncated
	}
	h := Header{}
	h.Magic = binary.LittleEndian.Uint32(buf[0:])
	h.Version = binary.LittleEndian.Uint16(buf[4:])
	h.Flags = binary.LittleEndian.Uint16(buf[6:])
	return h, nil
}
