package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/DrMaserLie/temporium/pkg/catalog"
)

// User errors
var (
	ErrUserNotFound      = &StoreError{"user not found"}
	ErrUserExists        = &StoreError{"a user with this name already exists"}
	ErrBadCredentials    = &StoreError{"invalid username or password"}
	ErrCannotDeleteAdmin = &StoreError{"cannot delete admin user"}
	ErrSessionNotFound   = &StoreError{"session not found"}
)

// HashPassword computes the salted SHA-256 hex digest used for stored
// credentials. The username doubles as the salt, so a rename recomputes
// the hash.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password + salt))
	return hex.EncodeToString(sum[:])
}

func userKey(id int32) []byte {
	return []byte(fmt.Sprintf("user:%010d", id))
}

func usernameKey(name string) []byte {
	return []byte("username:" + strings.ToLower(name))
}

func sessionKey(token string) []byte {
	return []byte("session:" + token)
}

// RegisterUser creates a user with a hashed password. Usernames are
// unique, case-insensitively.
func (s *CatalogStore) RegisterUser(username, password string, isAdmin bool) (*catalog.User, error) {
	if username == "" || password == "" {
		return nil, ErrBadCredentials
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}

	if _, exists, err := s.getID(usernameKey(username)); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if exists {
		return nil, ErrUserExists
	}

	id, err := s.nextSeq("seq:user")
	if err != nil {
		return nil, fmt.Errorf("assign user id: %w", err)
	}

	user := &catalog.User{
		ID:           id,
		Username:     username,
		PasswordHash: HashPassword(password, username),
		IsAdmin:      isAdmin,
	}
	if err := s.putUser(user); err != nil {
		return nil, err
	}
	if err := s.db.Set(usernameKey(username), idValue(id), pebble.Sync); err != nil {
		return nil, fmt.Errorf("store username: %w", err)
	}
	return user, nil
}

func (s *CatalogStore) putUser(user *catalog.User) error {
	data, err := user.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.db.Set(userKey(user.ID), data, pebble.Sync); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Authenticate verifies credentials and returns the matching user.
func (s *CatalogStore) Authenticate(username, password string) (*catalog.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}

	user, err := s.getUserByName(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if user.PasswordHash != HashPassword(password, user.Username) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// GetUser fetches one user by identifier.
func (s *CatalogStore) GetUser(id int32) (*catalog.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	return s.getUser(id)
}

func (s *CatalogStore) getUser(id int32) (*catalog.User, error) {
	data, closer, err := s.db.Get(userKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return catalog.UserFromJSON(data)
}

func (s *CatalogStore) getUserByName(username string) (*catalog.User, error) {
	id, exists, err := s.getID(usernameKey(username))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return s.getUser(id)
}

// ListUsers returns every user, ordered by username.
func (s *CatalogStore) ListUsers() ([]catalog.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}

	prefix := []byte("user:")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	defer iter.Close()

	users := []catalog.User{}
	for iter.First(); iter.Valid(); iter.Next() {
		u, err := catalog.UserFromJSON(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("unmarshal user %q: %w", iter.Key(), err)
		}
		users = append(users, *u)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		return strings.ToLower(users[i].Username) < strings.ToLower(users[j].Username)
	})
	return users, nil
}

// DeleteUser removes a user and every game they own. Admin accounts
// cannot be deleted.
func (s *CatalogStore) DeleteUser(id int32) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}

	user, err := s.getUser(id)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return ErrCannotDeleteAdmin
	}

	games, err := s.listGames(id)
	if err != nil {
		return err
	}
	for i := range games {
		if err := s.deleteGame(id, games[i].ID); err != nil {
			return err
		}
	}

	if err := s.db.Delete(usernameKey(user.Username), pebble.Sync); err != nil {
		return fmt.Errorf("drop username: %w", err)
	}
	return s.db.Delete(userKey(id), pebble.Sync)
}

// ChangePassword stores a new password hash for the user.
func (s *CatalogStore) ChangePassword(id int32, newPassword string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}

	user, err := s.getUser(id)
	if err != nil {
		return err
	}
	user.PasswordHash = HashPassword(newPassword, user.Username)
	return s.putUser(user)
}

// EnsureAdmin bootstraps the admin account if no admin exists yet. A
// failing scan aborts the bootstrap rather than concluding "no admin"
// and registering a second one.
func (s *CatalogStore) EnsureAdmin(username, password string) error {
	s.mutex.Lock()
	hasAdmin, err := s.hasAdmin()
	s.mutex.Unlock()
	if err != nil {
		return err
	}

	if hasAdmin {
		return nil
	}
	_, err = s.RegisterUser(username, password, true)
	if errors.Is(err, ErrUserExists) {
		return nil
	}
	return err
}

// hasAdmin scans the user records for an admin account. Callers must
// hold the mutex.
func (s *CatalogStore) hasAdmin() (bool, error) {
	if !s.isOpen {
		return false, ErrNotOpen
	}

	prefix := []byte("user:")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return false, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		u, err := catalog.UserFromJSON(iter.Value())
		if err != nil {
			return false, fmt.Errorf("unmarshal user %q: %w", iter.Key(), err)
		}
		if u.IsAdmin {
			return true, nil
		}
	}
	return false, iter.Error()
}

// NewSession issues an opaque session token for an authenticated user.
func (s *CatalogStore) NewSession(userID int32) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return "", ErrNotOpen
	}

	token := ksuid.New().String()
	if err := s.db.Set(sessionKey(token), idValue(userID), pebble.Sync); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// SessionUser resolves a session token back to its user.
func (s *CatalogStore) SessionUser(token string) (*catalog.User, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}

	id, exists, err := s.getID(sessionKey(token))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s.getUser(id)
}

// DeleteSession invalidates a session token.
func (s *CatalogStore) DeleteSession(token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return ErrNotOpen
	}
	return s.db.Delete(sessionKey(token), pebble.Sync)
}
