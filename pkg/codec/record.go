package codec

import (
	"encoding/binary"
	"math"

	"github.com/DrMaserLie/temporium/pkg/catalog"
)

// ErrShortRecord is returned when a byte slice is smaller than the
// layout it is decoded with.
var ErrShortRecord = &catalog.CatalogError{Message: "data too short for record layout"}

// GameCodec converts between variable-length catalog games and
// fixed-width on-disk records. Text fields are right-padded with zero
// bytes and silently truncated to capacity-1 bytes; numeric and
// boolean fields are copied verbatim with no range validation.
type GameCodec struct{}

// NewGameCodec creates a new game codec instance.
func NewGameCodec() *GameCodec {
	return &GameCodec{}
}

// Encode serializes a game into one current-version on-disk record.
func (c *GameCodec) Encode(g *catalog.Game) []byte {
	buf := make([]byte, RecordSize)
	encodePrefix(buf, g)
	binary.LittleEndian.PutUint32(buf[offRating:], uint32(g.Rating))
	buf[offFavorite] = encodeBool(g.IsFavorite)
	buf[offInstalled] = encodeBool(g.IsInstalled)
	PutFixedString(buf[offNotes:offNotes+NotesCap], g.Notes)
	PutFixedString(buf[offTags:offTags+TagsCap], g.Tags)
	return buf
}

// EncodeLegacy serializes a game into one legacy-version record.
// Nothing in the application writes legacy snapshots anymore; this is
// retained for compatibility tooling and test fixtures.
func (c *GameCodec) EncodeLegacy(g *catalog.Game) []byte {
	buf := make([]byte, LegacyRecordSize)
	encodePrefix(buf, g)
	return buf
}

// encodePrefix fills the fields shared by both layouts.
func encodePrefix(buf []byte, g *catalog.Game) {
	binary.LittleEndian.PutUint32(buf[offID:], uint32(g.ID))
	PutFixedString(buf[offName:offName+NameCap], g.Name)
	binary.LittleEndian.PutUint64(buf[offDiskSpace:], math.Float64bits(g.DiskSpace))
	binary.LittleEndian.PutUint64(buf[offRAMUsage:], math.Float64bits(g.RAMUsage))
	binary.LittleEndian.PutUint64(buf[offVRAM:], math.Float64bits(g.VRAMRequired))
	PutFixedString(buf[offGenre:offGenre+GenreCap], g.Genre)
	buf[offCompleted] = encodeBool(g.Completed)
	PutFixedString(buf[offURL:offURL+URLCap], g.URL)
	binary.LittleEndian.PutUint32(buf[offOwner:], uint32(g.OwnerID))
}

func decodeCurrent(data []byte) *catalog.Game {
	g := decodePrefix(data)
	g.Rating = int32(binary.LittleEndian.Uint32(data[offRating:]))
	g.IsFavorite = data[offFavorite] != 0
	g.IsInstalled = data[offInstalled] != 0
	g.Notes = FixedString(data[offNotes : offNotes+NotesCap])
	g.Tags = FixedString(data[offTags : offTags+TagsCap])
	return g
}

// decodeLegacy reads the version 1 record shape. Fields the legacy
// layout never carried keep their catalog defaults.
func decodeLegacy(data []byte) *catalog.Game {
	g := decodePrefix(data)
	g.Rating = catalog.RatingNone
	return g
}

func decodePrefix(data []byte) *catalog.Game {
	return &catalog.Game{
		ID:           int32(binary.LittleEndian.Uint32(data[offID:])),
		Name:         FixedString(data[offName : offName+NameCap]),
		DiskSpace:    math.Float64frombits(binary.LittleEndian.Uint64(data[offDiskSpace:])),
		RAMUsage:     math.Float64frombits(binary.LittleEndian.Uint64(data[offRAMUsage:])),
		VRAMRequired: math.Float64frombits(binary.LittleEndian.Uint64(data[offVRAM:])),
		Genre:        FixedString(data[offGenre : offGenre+GenreCap]),
		Completed:    data[offCompleted] != 0,
		URL:          FixedString(data[offURL : offURL+URLCap]),
		OwnerID:      int32(binary.LittleEndian.Uint32(data[offOwner:])),
	}
}

// PutFixedString copies s into the fixed-capacity slot dst, reserving
// one byte for the terminator and zero-filling the remainder. It
// reports how many bytes of s were written and whether s was
// truncated. Truncation is accepted policy, not an error.
func PutFixedString(dst []byte, s string) (n int, truncated bool) {
	limit := len(dst) - 1
	n = copy(dst[:limit], s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return n, len(s) > limit
}

// FixedString reads a zero-terminated byte run from a fixed-capacity
// slot. Trailing zero padding collapses to the empty string.
func FixedString(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}
	return string(src)
}

func encodeBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}
