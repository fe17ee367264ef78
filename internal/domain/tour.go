package domain

import (
	"time"

	"github.com/google/uuid"
)

type TourDifficulty string

const (
	TourDifficultyEasy      TourDifficulty = "easy"
	TourDifficultyMedium    TourDifficulty = "medium"
	TourDifficultyDifficult TourDifficulty = "difficult"
)

func ParseTourDifficulty(raw string) (TourDifficulty, bool) {
	switch TourDifficulty(raw) {
	case TourDifficultyEasy, TourDifficultyMedium, TourDifficultyDifficult:
		return TourDifficulty(raw), true
	}
	return "", false
}

type Tour struct {
	ID         uuid.UUID      `db:"id" json:"id"`
	Name       string         `db:"name" json:"name"`
	Summary    *string        `db:"summary" json:"summary,omitempty"`
	Price      float64        `db:"price" json:"price"`
	Difficulty TourDifficulty `db:"difficulty" json:"difficulty"`
	Rating     float64        `db:"rating" json:"rating"`
	Tags       []string       `db:"-" json:"tags,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

type TourSort string

const (
	TourSortNewest    TourSort = "newest"
	TourSortOldest    TourSort = "oldest"
	TourSortPriceAsc  TourSort = "price_asc"
	TourSortPriceDesc TourSort = "price_desc"
	TourSortRatingAsc TourSort = "rating_asc"
	TourSortRating    TourSort = "rating_desc"
	TourSortNameAsc   TourSort = "name_asc"
	TourSortNameDesc  TourSort = "name_desc"
)

// TourFilter narrows and orders tour listings.
type TourFilter struct {
	Search     string
	Difficulty *TourDifficulty
	PriceMin   *float64
	PriceMax   *float64
	RatingMin  *float64
	Sort       []TourSort
	Limit      int
	Offset     int
}
