package catalog

import "strings"

// Filter holds optional predicates for browsing a catalog. A nil field
// means the predicate is not applied; all set predicates must match.
type Filter struct {
	Completed *bool `json:"completed,omitempty"`

	Genre *string `json:"genre,omitempty"`

	DiskSpaceMin *float64 `json:"disk_space_min,omitempty"`
	DiskSpaceMax *float64 `json:"disk_space_max,omitempty"`

	RAMMin *float64 `json:"ram_min,omitempty"`
	RAMMax *float64 `json:"ram_max,omitempty"`

	VRAMMin *float64 `json:"vram_min,omitempty"`
	VRAMMax *float64 `json:"vram_max,omitempty"`

	Tag *string `json:"tag,omitempty"`

	Favorite  *bool `json:"favorite,omitempty"`
	Installed *bool `json:"installed,omitempty"`

	RatingMin *int32 `json:"rating_min,omitempty"`
	RatingMax *int32 `json:"rating_max,omitempty"`

	// HasRating filters for rated (true) or unrated (false) games.
	HasRating *bool `json:"has_rating,omitempty"`
}

// IsZero reports whether no predicate is set.
func (f *Filter) IsZero() bool {
	return f == nil || *f == (Filter{})
}

// Validate checks that the set predicates are properly formed.
func (f *Filter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Genre != nil && *f.Genre == "" {
		return ErrInvalidFilter
	}
	if f.Tag != nil && *f.Tag == "" {
		return ErrInvalidFilter
	}
	if f.DiskSpaceMin != nil && f.DiskSpaceMax != nil && *f.DiskSpaceMin > *f.DiskSpaceMax {
		return ErrInvalidFilter
	}
	if f.RAMMin != nil && f.RAMMax != nil && *f.RAMMin > *f.RAMMax {
		return ErrInvalidFilter
	}
	if f.VRAMMin != nil && f.VRAMMax != nil && *f.VRAMMin > *f.VRAMMax {
		return ErrInvalidFilter
	}
	if f.RatingMin != nil && (*f.RatingMin < 0 || *f.RatingMin > 10) {
		return ErrInvalidFilter
	}
	if f.RatingMax != nil && (*f.RatingMax < 0 || *f.RatingMax > 10) {
		return ErrInvalidFilter
	}
	if f.RatingMin != nil && f.RatingMax != nil && *f.RatingMin > *f.RatingMax {
		return ErrInvalidFilter
	}
	return nil
}

// Matches reports whether the game satisfies every set predicate.
func (f *Filter) Matches(g *Game) bool {
	if f == nil {
		return true
	}
	if f.Completed != nil && g.Completed != *f.Completed {
		return false
	}
	if f.Genre != nil && g.Genre != *f.Genre {
		return false
	}
	if f.DiskSpaceMin != nil && g.DiskSpace < *f.DiskSpaceMin {
		return false
	}
	if f.DiskSpaceMax != nil && g.DiskSpace > *f.DiskSpaceMax {
		return false
	}
	if f.RAMMin != nil && g.RAMUsage < *f.RAMMin {
		return false
	}
	if f.RAMMax != nil && g.RAMUsage > *f.RAMMax {
		return false
	}
	if f.VRAMMin != nil && g.VRAMRequired < *f.VRAMMin {
		return false
	}
	if f.VRAMMax != nil && g.VRAMRequired > *f.VRAMMax {
		return false
	}
	if f.Tag != nil && !strings.Contains(g.Tags, *f.Tag) {
		return false
	}
	if f.Favorite != nil && g.IsFavorite != *f.Favorite {
		return false
	}
	if f.Installed != nil && g.IsInstalled != *f.Installed {
		return false
	}
	if f.RatingMin != nil && (g.Rating == RatingNone || g.Rating < *f.RatingMin) {
		return false
	}
	if f.RatingMax != nil && (g.Rating == RatingNone || g.Rating > *f.RatingMax) {
		return false
	}
	if f.HasRating != nil && g.HasRating() != *f.HasRating {
		return false
	}
	return true
}
