// Package store is the authoritative catalog store: a pebble-backed
// key-value layout holding games, users and sessions. The snapshot
// subsystem consumes it only through its add/list operations and knows
// nothing about the key scheme.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/DrMaserLie/temporium/pkg/catalog"
)

// Errors
var (
	ErrGameNotFound  = &StoreError{"game not found"}
	ErrDuplicateName = &StoreError{"a game with this name already exists for this user"}
	ErrNotOpen       = &StoreError{"store is not open"}
)

// StoreError represents a catalog store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

// Config holds configuration for the catalog store.
type Config struct {
	DataDir string // Directory for the pebble database
}

// CatalogStore provides CRUD access to games and users.
type CatalogStore struct {
	db     *pebble.DB
	mutex  sync.Mutex
	isOpen bool
}

// Open opens (creating if necessary) the catalog store under the
// configured data directory.
func Open(config Config) (*CatalogStore, error) {
	db, err := pebble.Open(filepath.Join(config.DataDir, "catalog"), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open catalog store: %w", err)
	}
	return &CatalogStore{db: db, isOpen: true}, nil
}

// Close shuts down the store.
func (s *CatalogStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil
	}
	s.isOpen = false
	return s.db.Close()
}

// Key layout:
//
//	game:<owner>:<id>        -> game JSON
//	gamename:<owner>:<name>  -> game id (4 bytes LE)
//	user:<id>                -> user JSON
//	username:<name>          -> user id (4 bytes LE)
//	session:<token>          -> user id (4 bytes LE)
//	seq:game / seq:user      -> last assigned id (4 bytes LE)
func gameKey(owner, id int32) []byte {
	return []byte(fmt.Sprintf("game:%010d:%010d", owner, id))
}

func gamePrefix(owner int32) []byte {
	return []byte(fmt.Sprintf("game:%010d:", owner))
}

func gameNameKey(owner int32, name string) []byte {
	return []byte(fmt.Sprintf("gamename:%010d:%s", owner, strings.ToLower(name)))
}

// prefixUpperBound returns the smallest key greater than every key
// with the given prefix.
func prefixUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// nextSeq increments and returns the sequence counter stored under key.
// Callers must hold the mutex.
func (s *CatalogStore) nextSeq(key string) (int32, error) {
	var next uint32 = 1
	data, closer, err := s.db.Get([]byte(key))
	if err == nil {
		next = binary.LittleEndian.Uint32(data) + 1
		closer.Close()
	} else if !errors.Is(err, pebble.ErrNotFound) {
		return 0, err
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, next)
	if err := s.db.Set([]byte(key), buf, pebble.Sync); err != nil {
		return 0, err
	}
	return int32(next), nil
}

func idValue(id int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(id))
	return buf
}

// getID reads a 4-byte id value under key, reporting found=false for
// a missing key.
func (s *CatalogStore) getID(key []byte) (int32, bool, error) {
	data, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	id := int32(binary.LittleEndian.Uint32(data))
	closer.Close()
	return id, true, nil
}

// AddGame inserts a game, assigning it a fresh identifier. Names are
// unique per owner; a duplicate insert is refused with
// ErrDuplicateName.
func (s *CatalogStore) AddGame(g *catalog.Game) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}

	if _, exists, err := s.getID(gameNameKey(g.OwnerID, g.Name)); err != nil {
		return fmt.Errorf("check game name: %w", err)
	} else if exists {
		return ErrDuplicateName
	}

	id, err := s.nextSeq("seq:game")
	if err != nil {
		return fmt.Errorf("assign game id: %w", err)
	}
	g.ID = id

	data, err := g.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	if err := s.db.Set(gameKey(g.OwnerID, g.ID), data, pebble.Sync); err != nil {
		return fmt.Errorf("store game: %w", err)
	}
	if err := s.db.Set(gameNameKey(g.OwnerID, g.Name), idValue(g.ID), pebble.Sync); err != nil {
		return fmt.Errorf("store game name: %w", err)
	}
	return nil
}

// UpdateGame replaces a stored game. Renames re-check the per-owner
// name uniqueness.
func (s *CatalogStore) UpdateGame(g *catalog.Game) error {
	if err := g.Validate(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}

	old, err := s.getGame(g.OwnerID, g.ID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(old.Name, g.Name) {
		if _, exists, err := s.getID(gameNameKey(g.OwnerID, g.Name)); err != nil {
			return fmt.Errorf("check game name: %w", err)
		} else if exists {
			return ErrDuplicateName
		}
		if err := s.db.Delete(gameNameKey(g.OwnerID, old.Name), pebble.Sync); err != nil {
			return fmt.Errorf("drop old game name: %w", err)
		}
		if err := s.db.Set(gameNameKey(g.OwnerID, g.Name), idValue(g.ID), pebble.Sync); err != nil {
			return fmt.Errorf("store game name: %w", err)
		}
	}

	data, err := g.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	if err := s.db.Set(gameKey(g.OwnerID, g.ID), data, pebble.Sync); err != nil {
		return fmt.Errorf("store game: %w", err)
	}
	return nil
}

// UpdateNotes replaces just the free-text notes of a stored game.
func (s *CatalogStore) UpdateNotes(owner, id int32, notes string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}

	g, err := s.getGame(owner, id)
	if err != nil {
		return err
	}
	g.Notes = notes
	data, err := g.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	return s.db.Set(gameKey(owner, id), data, pebble.Sync)
}

// DeleteGame removes a game by identifier.
func (s *CatalogStore) DeleteGame(owner, id int32) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}
	return s.deleteGame(owner, id)
}

// DeleteGameByName removes a game by its per-owner unique name.
func (s *CatalogStore) DeleteGameByName(owner int32, name string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}

	id, exists, err := s.getID(gameNameKey(owner, name))
	if err != nil {
		return err
	}
	if !exists {
		return ErrGameNotFound
	}
	return s.deleteGame(owner, id)
}

func (s *CatalogStore) deleteGame(owner, id int32) error {
	g, err := s.getGame(owner, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(gameNameKey(owner, g.Name), pebble.Sync); err != nil {
		return fmt.Errorf("drop game name: %w", err)
	}
	return s.db.Delete(gameKey(owner, id), pebble.Sync)
}

// GetGame fetches one game by identifier.
func (s *CatalogStore) GetGame(owner, id int32) (*catalog.Game, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	return s.getGame(owner, id)
}

func (s *CatalogStore) getGame(owner, id int32) (*catalog.Game, error) {
	data, closer, err := s.db.Get(gameKey(owner, id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return catalog.GameFromJSON(data)
}

// GetGameByName fetches one game by its per-owner unique name.
func (s *CatalogStore) GetGameByName(owner int32, name string) (*catalog.Game, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}

	id, exists, err := s.getID(gameNameKey(owner, name))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGameNotFound
	}
	return s.getGame(owner, id)
}

// ListGames returns every game the owner holds, ordered by name.
func (s *CatalogStore) ListGames(owner int32) ([]catalog.Game, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	return s.listGames(owner)
}

func (s *CatalogStore) listGames(owner int32) ([]catalog.Game, error) {
	prefix := gamePrefix(owner)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	defer iter.Close()

	games := []catalog.Game{}
	for iter.First(); iter.Valid(); iter.Next() {
		g, err := catalog.GameFromJSON(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("unmarshal game %q: %w", iter.Key(), err)
		}
		games = append(games, *g)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool {
		return strings.ToLower(games[i].Name) < strings.ToLower(games[j].Name)
	})
	return games, nil
}

// ListFiltered returns the owner's games matching the filter, ordered
// by name. Filters are evaluated in memory against the decoded games;
// the store has no query language.
func (s *CatalogStore) ListFiltered(owner int32, filter *catalog.Filter) ([]catalog.Game, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	games, err := s.ListGames(owner)
	if err != nil {
		return nil, err
	}
	if filter.IsZero() {
		return games, nil
	}

	matched := games[:0]
	for i := range games {
		if filter.Matches(&games[i]) {
			matched = append(matched, games[i])
		}
	}
	return matched, nil
}

// ListTags returns the sorted set of distinct tags across the owner's
// games.
func (s *CatalogStore) ListTags(owner int32) ([]string, error) {
	games, err := s.ListGames(owner)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for i := range games {
		for _, t := range games[i].TagList() {
			seen[t] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

// Stats summarizes the owner's catalog.
func (s *CatalogStore) Stats(owner int32) (*catalog.Stats, error) {
	games, err := s.ListGames(owner)
	if err != nil {
		return nil, err
	}

	stats := &catalog.Stats{TotalGames: len(games)}
	for i := range games {
		g := &games[i]
		if g.IsFavorite {
			stats.FavoritesCount++
		}
		if g.Completed {
			stats.CompletedCount++
		}
		if !g.HasRating() {
			stats.NoRatingCount++
		}
		if g.IsInstalled {
			stats.InstalledCount++
			stats.InstalledDiskSpace += g.DiskSpace
		}
		if g.URL == "" {
			stats.NoURLCount++
		}
	}
	return stats, nil
}

// CountGames returns the number of games the owner holds.
func (s *CatalogStore) CountGames(owner int32) (int, error) {
	games, err := s.ListGames(owner)
	if err != nil {
		return 0, err
	}
	return len(games), nil
}
