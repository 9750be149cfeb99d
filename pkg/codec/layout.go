package codec

import "github.com/DrMaserLie/temporium/pkg/catalog"

// Format versions whose record layouts this codec understands.
// VersionCurrent is the only version ever written; VersionLegacy is
// kept for backward read compatibility.
const (
	VersionCurrent uint16 = 3
	VersionLegacy  uint16 = 1
)

// Fixed byte capacities of the text fields. Each capacity includes one
// byte reserved for the terminator, so at most capacity-1 bytes of
// text survive encoding.
const (
	NameCap  = 256
	GenreCap = 64
	URLCap   = 512
	NotesCap = 1024
	TagsCap  = 256
)

// Field offsets within the current on-disk record. The legacy record
// is a strict byte-prefix of the current one, ending after offOwner.
const (
	offID        = 0
	offName      = offID + 4
	offDiskSpace = offName + NameCap
	offRAMUsage  = offDiskSpace + 8
	offVRAM      = offRAMUsage + 8
	offGenre     = offVRAM + 8
	offCompleted = offGenre + GenreCap
	offURL       = offCompleted + 1
	offOwner     = offURL + URLCap
	offRating    = offOwner + 4
	offFavorite  = offRating + 4
	offInstalled = offFavorite + 1
	offNotes     = offInstalled + 1
	offTags      = offNotes + NotesCap

	// RecordSize is the encoded size of one current-version record.
	RecordSize = offTags + TagsCap

	// LegacyRecordSize is the encoded size of one legacy-version
	// record (fields through the owner reference).
	LegacyRecordSize = offOwner + 4
)

// Layout describes one on-disk record shape. The closed set of layouts
// is selected by a snapshot header's declared version; each layout owns
// its decode function so version handling never branches
// field-by-field elsewhere.
type Layout struct {
	Version uint16
	Size    int
	decode  func(data []byte) *catalog.Game
}

// Decode deserializes one on-disk record in this layout. The data slice
// must hold exactly Size bytes.
func (l Layout) Decode(data []byte) (*catalog.Game, error) {
	if len(data) < l.Size {
		return nil, ErrShortRecord
	}
	return l.decode(data[:l.Size]), nil
}

// LayoutFor returns the record layout for a declared format version.
func LayoutFor(version uint16) (Layout, bool) {
	switch version {
	case VersionCurrent:
		return Layout{Version: VersionCurrent, Size: RecordSize, decode: decodeCurrent}, true
	case VersionLegacy:
		return Layout{Version: VersionLegacy, Size: LegacyRecordSize, decode: decodeLegacy}, true
	default:
		return Layout{}, false
	}
}
