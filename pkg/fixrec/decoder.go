package fixrec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/fixbuf"
	"github.com/rawbytedev/fixbuf/internal/common"
)

var ErrWidthMismatch = errors.New("fixrec: field width mismatch")

// Decoder splits records back into their fields, reusing its buffers across
// calls.
type Decoder struct {
	widths []int
	fields [][]byte
	raw    []byte
	zdec   *zstd.Decoder
}

// DecodeRecord verifies the trailer and header, then slices buf into its
// fixed-width fields. The returned slices alias buf (or the decoder's
// decompression buffer) and stay valid until the next decode call.
func (d *Decoder) DecodeRecord(buf []byte) ([][]byte, error) {
	// 1) CRC trailer
	if len(buf) < HeaderSize+4 {
		return nil, ErrTruncated
	}
	body := buf[:len(buf)-4]
	want := binary.LittleEndian.Uint32(buf[len(buf)-4:])
	if crc32.ChecksumIEEE(body) != want {
		return nil, ErrBadChecksum
	}

	// 2) Header
	h, err := ParseHeader(body)
	if err != nil {
		return nil, err
	}
	if h.Magic != MagicV1 {
		return nil, ErrBadMagic
	}
	if h.Version != VersionV1 {
		return nil, ErrBadVersion
	}
	cursor := HeaderSize

	// 3) Width table. Every entry costs at least one byte, and the running
	// total must stay a valid slice length, so anything past those bounds
	// is truncated junk; reject it before a cast can wrap negative.
	cnt, n := common.ReadVarUint(body[cursor:])
	if n == 0 {
		return nil, ErrTruncated
	}
	cursor += n
	if cnt > uint64(len(body)) {
		return nil, ErrTruncated
	}
	d.widths = d.widths[:0]
	total := 0
	for range int(cnt) {
		w, n := common.ReadVarUint(body[cursor:])
		if n == 0 {
			return nil, ErrTruncated
		}
		cursor += n
		if w > uint64(math.MaxInt-total) {
			return nil, ErrTruncated
		}
		d.widths = append(d.widths, int(w))
		total += int(w)
	}

	// 4) Payload section
	payload := body[cursor:]
	if h.Flags&FlagZstd != 0 {
		rawSize, n := common.ReadVarUint(payload)
		if n == 0 {
			return nil, ErrTruncated
		}
		if d.zdec == nil {
			d.zdec, err = zstd.NewReader(nil)
			if err != nil {
				return nil, err
			}
		}
		d.raw, err = d.zdec.DecodeAll(payload[n:], d.raw[:0])
		if err != nil {
			return nil, err
		}
		payload = d.raw
		if len(payload) != int(rawSize) {
			return nil, ErrTruncated
		}
	}
	if len(payload) != total {
		return nil, ErrTruncated
	}

	// 5) Slice out fields
	d.fields = d.fields[:0]
	off := 0
	for _, w := range d.widths {
		d.fields = append(d.fields, payload[off:off+w])
		off += w
	}
	return d.fields, nil
}

// DecodeInto decodes buf and copies each field into the matching view. A
// view's length must equal its field's recorded width; sizing is part of
// the record contract, nothing is clamped or padded here. All views are
// checked before any is written, so an error leaves every destination
// untouched.
func (d *Decoder) DecodeInto(buf []byte, dst ...fixbuf.View[byte]) error {
	fields, err := d.DecodeRecord(buf)
	if err != nil {
		return err
	}
	if len(fields) != len(dst) {
		return fmt.Errorf("%w: %d fields into %d views", ErrWidthMismatch, len(fields), len(dst))
	}
	for i, f := range fields {
		if dst[i].Len() != len(f) {
			return fmt.Errorf("%w: field %d is %dB, view is %dB", ErrWidthMismatch, i, len(f), dst[i].Len())
		}
	}
	for i, f := range fields {
		copy(dst[i].Raw(), f)
	}
	return nil
}
