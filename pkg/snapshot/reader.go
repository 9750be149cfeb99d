package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/DrMaserLie/temporium/pkg/catalog"
	"github.com/DrMaserLie/temporium/pkg/codec"
)

// GameAdder is the slice of the catalog store the importer hands
// decoded records to, one at a time.
type GameAdder interface {
	AddGame(g *catalog.Game) error
}

// ErrNotSnapshot is returned by Read when the file's magic value does
// not identify the snapshot format.
var ErrNotSnapshot = fmt.Errorf("invalid file format (not a Temporium snapshot)")

// ImportResult reports how many records the importer handed to the
// store and how many individual inserts the store refused.
type ImportResult struct {
	Imported int
	Failed   int
}

// Read decodes a snapshot for read-only preview. Only the magic value
// is checked; version and hash problems are tolerated and whatever
// parses is returned, with stored identifiers and owner references
// intact. Preview output is for inspection, never for persistence.
func Read(path string) ([]catalog.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot: %w", err)
	}
	defer f.Close()

	hdr := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, hdr); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	h := DecodeHeader(hdr)

	if h.Magic != Magic {
		return nil, ErrNotSnapshot
	}

	// Unknown versions fall back to the current layout: preview trades
	// safety for availability.
	layout, ok := codec.LayoutFor(h.Version)
	if !ok {
		layout, _ = codec.LayoutFor(codec.VersionCurrent)
	}

	// Preallocate by the declared count, capped by what the file can
	// actually hold: the count is untrusted input.
	fit := int64(h.RecordCount)
	if info, err := f.Stat(); err == nil {
		if held := (info.Size() - HeaderSize) / int64(layout.Size); fit > held {
			fit = held
		}
	}
	if fit < 0 {
		fit = 0
	}

	games := make([]catalog.Game, 0, fit)
	buf := make([]byte, layout.Size)
	for i := uint32(0); i < h.RecordCount; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			// Truncated payload: return what decoded so far.
			break
		}
		g, err := layout.Decode(buf)
		if err != nil {
			break
		}
		games = append(games, *g)
	}
	return games, nil
}

// Import verifies a snapshot and merges its records into the store.
// Any verification outcome other than OK aborts with that outcome's
// error text and nothing is imported. Each decoded record is re-homed
// to the supplied owner, its stored identifier cleared so the store
// assigns a fresh one, and handed individually to the store's add
// operation. Individual insert refusals (for example a duplicate name
// for that owner) are counted, not fatal.
func Import(path string, owner int32, store GameAdder) (*ImportResult, error) {
	if res := Verify(path); res != OK {
		return nil, fmt.Errorf("snapshot verification failed: %w", res.Err())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot: %w", err)
	}
	defer f.Close()

	hdr := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, hdr); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	h := DecodeHeader(hdr)

	// Verification accepted the version, so the layout exists.
	layout, _ := codec.LayoutFor(h.Version)

	result := &ImportResult{}
	buf := make([]byte, layout.Size)
	for i := uint32(0); i < h.RecordCount; i++ {
		if _, err := io.ReadFull(f, buf); err != nil {
			return result, fmt.Errorf("read snapshot record %d: %w", i, err)
		}
		g, err := layout.Decode(buf)
		if err != nil {
			return result, fmt.Errorf("decode snapshot record %d: %w", i, err)
		}

		g.ID = 0
		g.OwnerID = owner
		if err := store.AddGame(g); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}
	return result, nil
}
