package snapshot

import (
	"encoding/binary"

	"github.com/DrMaserLie/temporium/pkg/codec"
)

// Magic identifies the snapshot format family. Checked before any
// other header field is trusted.
const Magic uint32 = 0x54454D50 // "TEMP"

// Header geometry. The on-disk header is exactly HeaderSize bytes:
// magic(4) + version(2) + record_count(4) + hash(64) + reserved(26).
const (
	HeaderSize   = 100
	HashSlotSize = 64

	reservedSize = HeaderSize - 4 - 2 - 4 - HashSlotSize
)

// Header is the fixed-size structure at the start of every snapshot.
// The hash slot holds the ASCII-hex digest of the record payload,
// zero-padded to the slot's full width; the reserved region is
// zero-filled on write and ignored on read.
type Header struct {
	Magic       uint32
	Version     uint16
	RecordCount uint32
	Hash        [HashSlotSize]byte
}

// NewHeader builds a current-version header sealing the given payload
// digest. The digest is truncated or zero-padded to fit the hash slot
// exactly.
func NewHeader(recordCount uint32, digest string) Header {
	h := Header{
		Magic:       Magic,
		Version:     codec.VersionCurrent,
		RecordCount: recordCount,
	}
	copy(h.Hash[:], digest)
	return h
}

// HashMatches compares a computed digest against the stored hash slot
// across the slot's full width, padding included. A short digest with
// trailing zeros and a corrupted slot are therefore never confused.
func (h *Header) HashMatches(digest string) bool {
	var want [HashSlotSize]byte
	copy(want[:], digest)
	return h.Hash == want
}

// Encode serializes the header into HeaderSize bytes.
func (h *Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	binary.LittleEndian.PutUint32(buf[6:], h.RecordCount)
	copy(buf[10:10+HashSlotSize], h.Hash[:])
	// reserved region stays zero
	return buf
}

// DecodeHeader deserializes a header from exactly HeaderSize bytes.
func DecodeHeader(data []byte) Header {
	var h Header
	h.Magic = binary.LittleEndian.Uint32(data[0:4])
	h.Version = binary.LittleEndian.Uint16(data[4:6])
	h.RecordCount = binary.LittleEndian.Uint32(data[6:10])
	copy(h.Hash[:], data[10:10+HashSlotSize])
	return h
}
