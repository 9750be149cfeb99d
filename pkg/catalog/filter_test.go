package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool      { return &b }
func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func i32Ptr(i int32) *int32     { return &i }

func TestFilter_IsZero(t *testing.T) {
	var nilFilter *Filter
	assert.True(t, nilFilter.IsZero())
	assert.True(t, (&Filter{}).IsZero())
	assert.False(t, (&Filter{Completed: boolPtr(true)}).IsZero())
}

func TestFilter_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		filter *Filter
		valid  bool
	}{
		{"nil filter", nil, true},
		{"empty filter", &Filter{}, true},
		{"well formed ranges", &Filter{DiskSpaceMin: f64Ptr(1), DiskSpaceMax: f64Ptr(10), RatingMin: i32Ptr(5)}, true},
		{"empty genre", &Filter{Genre: strPtr("")}, false},
		{"empty tag", &Filter{Tag: strPtr("")}, false},
		{"inverted disk range", &Filter{DiskSpaceMin: f64Ptr(10), DiskSpaceMax: f64Ptr(1)}, false},
		{"inverted ram range", &Filter{RAMMin: f64Ptr(8), RAMMax: f64Ptr(4)}, false},
		{"inverted vram range", &Filter{VRAMMin: f64Ptr(4), VRAMMax: f64Ptr(2)}, false},
		{"inverted rating range", &Filter{RatingMin: i32Ptr(8), RatingMax: i32Ptr(3)}, false},
		{"rating min out of range", &Filter{RatingMin: i32Ptr(11)}, false},
		{"rating max negative", &Filter{RatingMax: i32Ptr(-1)}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.filter.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFilter)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	game := &Game{
		Name:         "Subnautica",
		DiskSpace:    20,
		RAMUsage:     8,
		VRAMRequired: 2,
		Genre:        "Adventure",
		Completed:    true,
		Rating:       8,
		IsFavorite:   true,
		IsInstalled:  false,
		Tags:         "survival,underwater",
	}

	testCases := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"nil filter matches all", nil, true},
		{"empty filter matches all", &Filter{}, true},
		{"completed matches", &Filter{Completed: boolPtr(true)}, true},
		{"completed mismatch", &Filter{Completed: boolPtr(false)}, false},
		{"genre matches", &Filter{Genre: strPtr("Adventure")}, true},
		{"genre mismatch", &Filter{Genre: strPtr("RPG")}, false},
		{"disk in range", &Filter{DiskSpaceMin: f64Ptr(10), DiskSpaceMax: f64Ptr(30)}, true},
		{"disk below min", &Filter{DiskSpaceMin: f64Ptr(25)}, false},
		{"disk above max", &Filter{DiskSpaceMax: f64Ptr(15)}, false},
		{"ram in range", &Filter{RAMMin: f64Ptr(4), RAMMax: f64Ptr(16)}, true},
		{"vram above max", &Filter{VRAMMax: f64Ptr(1)}, false},
		{"tag matches", &Filter{Tag: strPtr("survival")}, true},
		{"tag mismatch", &Filter{Tag: strPtr("racing")}, false},
		{"favorite matches", &Filter{Favorite: boolPtr(true)}, true},
		{"installed mismatch", &Filter{Installed: boolPtr(true)}, false},
		{"rating in range", &Filter{RatingMin: i32Ptr(5), RatingMax: i32Ptr(10)}, true},
		{"rating below min", &Filter{RatingMin: i32Ptr(9)}, false},
		{"has rating", &Filter{HasRating: boolPtr(true)}, true},
		{"conjunction all match", &Filter{Completed: boolPtr(true), Genre: strPtr("Adventure"), Favorite: boolPtr(true)}, true},
		{"conjunction one fails", &Filter{Completed: boolPtr(true), Genre: strPtr("RPG")}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(game))
		})
	}
}

func TestFilter_RatingPredicatesSkipUnrated(t *testing.T) {
	unrated := &Game{Name: "Backlog", Rating: RatingNone}

	// An unrated game never satisfies a rating range, even one that
	// would span the sentinel value numerically.
	assert.False(t, (&Filter{RatingMin: i32Ptr(0)}).Matches(unrated))
	assert.False(t, (&Filter{RatingMax: i32Ptr(10)}).Matches(unrated))

	assert.True(t, (&Filter{HasRating: boolPtr(false)}).Matches(unrated))
	assert.False(t, (&Filter{HasRating: boolPtr(true)}).Matches(unrated))
}
