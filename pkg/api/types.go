package api

import (
	"github.com/DrMaserLie/temporium/pkg/catalog"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}

// LoginRequest carries credentials for session creation
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the issued session token
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int32  `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// SnapshotRequest names a server-side snapshot path and optionally a
// filter restricting what gets exported
type SnapshotRequest struct {
	Path   string          `json:"path"`
	Filter *catalog.Filter `json:"filter,omitempty"`
}

// VerifyResponse reports a snapshot verification outcome
type VerifyResponse struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
	OK      bool   `json:"ok"`
}

// ImportResponse reports per-record import feedback
type ImportResponse struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

// CatalogStore defines the store operations the API server consumes
type CatalogStore interface {
	AddGame(g *catalog.Game) error
	UpdateGame(g *catalog.Game) error
	DeleteGame(owner, id int32) error
	GetGame(owner, id int32) (*catalog.Game, error)
	ListGames(owner int32) ([]catalog.Game, error)
	ListFiltered(owner int32, filter *catalog.Filter) ([]catalog.Game, error)
	ListTags(owner int32) ([]string, error)
	Stats(owner int32) (*catalog.Stats, error)

	Authenticate(username, password string) (*catalog.User, error)
	NewSession(userID int32) (string, error)
}
