package order

import (
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
)

const (
	// MinRating and MaxRating bound the 1-5 star scale.
	MinRating = 1
	MaxRating = 5
	// MaxRatingCommentLength bounds the optional free-text comment.
	MaxRatingCommentLength = 500
)

// StatusChange is a single entry in the append-only status history.
// Location is optional; it is recorded when the partner reported one
// alongside the transition.
type StatusChange struct {
	Status    Status
	Timestamp time.Time
	Location  *kernel.GeoPoint
}

// RoutePoint is a timestamped coordinate in the order's route trail.
type RoutePoint struct {
	Point     kernel.GeoPoint
	Timestamp time.Time
}

// RatingEntry is one side's rating of the other after delivery.
// Each side may record at most one entry per order.
type RatingEntry struct {
	Rating  int
	Comment string
}

// Validate enforces the 1-5 scale and the comment length bound.
func (r RatingEntry) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", r.Rating, MinRating, MaxRating)
	}
	if len(r.Comment) > MaxRatingCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", len(r.Comment), 0, MaxRatingCommentLength)
	}
	return nil
}
