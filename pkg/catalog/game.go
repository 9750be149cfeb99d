package catalog

import (
	"encoding/json"
	"strings"
)

// Resource bounds shared by validation across the application (GB).
const (
	MinDiskSpace = 0.1
	MaxDiskSpace = 500.0

	MinRAMUsage = 0.5
	MaxRAMUsage = 128.0

	MinVRAMRequired = 0.5
	MaxVRAMRequired = 48.0
)

// RatingNone is the sentinel value for "unrated". Valid ratings are 0-10.
const RatingNone = -1

// Game represents one catalog item owned by a user.
type Game struct {
	ID           int32   `json:"id"`
	Name         string  `json:"name"`
	DiskSpace    float64 `json:"disk_space"`    // GB
	RAMUsage     float64 `json:"ram_usage"`     // GB
	VRAMRequired float64 `json:"vram_required"` // GB
	Genre        string  `json:"genre"`
	Completed    bool    `json:"completed"`
	URL          string  `json:"url"`
	OwnerID      int32   `json:"owner_id"`
	Rating       int32   `json:"rating"` // RatingNone when unrated
	IsFavorite   bool    `json:"is_favorite"`
	IsInstalled  bool    `json:"is_installed"`
	Notes        string  `json:"notes"`
	Tags         string  `json:"tags"` // comma-separated
}

// NewGame creates a game with the defaults the store expects for
// unset fields.
func NewGame(name string, owner int32) *Game {
	return &Game{
		Name:    name,
		OwnerID: owner,
		Rating:  RatingNone,
	}
}

// HasRating reports whether the game carries a real rating rather
// than the RatingNone sentinel.
func (g *Game) HasRating() bool {
	return g.Rating != RatingNone
}

// TagList splits the comma-separated tag field into trimmed tags,
// dropping empty entries.
func (g *Game) TagList() []string {
	if g.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(g.Tags, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Validate checks the fields the store requires before insert.
func (g *Game) Validate() error {
	if g.Name == "" {
		return ErrNameRequired
	}
	if g.OwnerID == 0 {
		return ErrOwnerRequired
	}
	if g.Rating != RatingNone && (g.Rating < 0 || g.Rating > 10) {
		return ErrInvalidRating
	}
	return nil
}

// ToJSON converts the game to JSON bytes for storage.
func (g *Game) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}

// GameFromJSON creates a game from JSON bytes.
func GameFromJSON(data []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Genres is the canonical genre list offered by the application shell.
var Genres = []string{
	"Action",
	"Adventure",
	"RPG",
	"Strategy",
	"Simulation",
	"Sports",
	"Racing",
	"Puzzle",
	"Horror",
	"Shooter",
	"Fighting",
	"Platformer",
	"Sandbox",
	"MMO",
	"Other",
}

// Stats summarizes one owner's catalog.
type Stats struct {
	TotalGames         int     `json:"total_games"`
	FavoritesCount     int     `json:"favorites_count"`
	CompletedCount     int     `json:"completed_count"`
	NoRatingCount      int     `json:"no_rating_count"`
	InstalledCount     int     `json:"installed_count"`
	InstalledDiskSpace float64 `json:"installed_disk_space"`
	NoURLCount         int     `json:"no_url_count"`
}
