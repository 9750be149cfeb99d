package snapshot

import (
	"fmt"
	"os"

	"github.com/DrMaserLie/temporium/pkg/catalog"
	"github.com/DrMaserLie/temporium/pkg/codec"
)

// GameLister is the slice of the catalog store the writer consumes to
// obtain records for export. The snapshot subsystem performs no
// queries of its own.
type GameLister interface {
	ListGames(owner int32) ([]catalog.Game, error)
	ListFiltered(owner int32, filter *catalog.Filter) ([]catalog.Game, error)
}

// Writer assembles snapshots: a sealed header followed by the encoded
// records, written in one pass. There is no temporary-file or
// atomic-rename discipline; a crash mid-write leaves a truncated,
// unverifiable file and any write failure means the output is
// unusable.
type Writer struct {
	codec *codec.GameCodec
}

// NewWriter creates a snapshot writer.
func NewWriter() *Writer {
	return &Writer{codec: codec.NewGameCodec()}
}

// Write encodes the games and writes a current-version snapshot to
// path, overwriting any existing file. An empty record set is valid
// and produces a sealed zero-record snapshot.
func (w *Writer) Write(path string, games []catalog.Game) error {
	payload := make([]byte, 0, len(games)*codec.RecordSize)
	for i := range games {
		payload = append(payload, w.codec.Encode(&games[i])...)
	}

	header := NewHeader(uint32(len(games)), PayloadDigest(payload))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot open snapshot for writing: %w", err)
	}
	if _, err := f.Write(header.Encode()); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot header: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		return fmt.Errorf("write snapshot records: %w", err)
	}
	return f.Close()
}

// Export writes a snapshot of every game the store holds for owner.
func (w *Writer) Export(path string, owner int32, store GameLister) error {
	games, err := store.ListGames(owner)
	if err != nil {
		return fmt.Errorf("list games for export: %w", err)
	}
	return w.Write(path, games)
}

// ExportFiltered writes a snapshot of the owner's games matching the
// filter.
func (w *Writer) ExportFiltered(path string, owner int32, filter *catalog.Filter, store GameLister) error {
	games, err := store.ListFiltered(owner, filter)
	if err != nil {
		return fmt.Errorf("list filtered games for export: %w", err)
	}
	return w.Write(path, games)
}
