package fixrec

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"

	"github.com/rawbytedev/fixbuf/internal/common"
)

// Encoder builds records into reused buffers, one record at a time. The
// returned slice is valid until the next EncodeRecord call.
type Encoder struct {
	widthBuf []byte
	dataBuf  []byte
	out      []byte
	flags    uint16
	zenc     *zstd.Encoder
}

// NewEncoder returns an Encoder producing records with the given header
// flags. Pass FlagZstd to compress the payload section.
func NewEncoder(flags uint16) *Encoder {
	return &Encoder{flags: flags}
}

// EncodeRecord frames the given fixed-width fields into a single record.
// Field i occupies exactly len(fields[i]) bytes; widths go into the record
// so the decoder needs no schema.
func (e *Encoder) EncodeRecord(fields ...[]byte) ([]byte, error) {
	// Reset buffers
	e.widthBuf = e.widthBuf[:0]
	e.dataBuf = e.dataBuf[:0]
	e.out = e.out[:0]

	// --- Width table + payloads ---
	e.widthBuf = common.WriteVarUintTo(e.widthBuf, uint64(len(fields)))
	for _, f := range fields {
		e.widthBuf = common.WriteVarUintTo(e.widthBuf, uint64(len(f)))
		e.dataBuf = append(e.dataBuf, f...)
	}

	// --- Header + width table ---
	e.out = encodeHeader(e.out, Header{
		Magic:   MagicV1,
		Version: VersionV1,
		Flags:   e.flags,
	})
	e.out = append(e.out, e.widthBuf...)

	// --- Payload section ---
	if e.flags&FlagZstd != 0 {
		if e.zenc == nil {
			var err error
			e.zenc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
			if err != nil {
				return nil, err
			}
		}
		e.out = common.WriteVarUintTo(e.out, uint64(len(e.dataBuf)))
		e.out = e.zenc.EncodeAll(e.dataBuf, e.out)
	} else {
		e.out = append(e.out, e.dataBuf...)
	}

	// --- CRC32 trailer over everything before it ---
	crc := crc32.ChecksumIEEE(e.out)
	e.out = append(e.out, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(e.out[len(e.out)-4:], crc)
	return e.out, nil
}
