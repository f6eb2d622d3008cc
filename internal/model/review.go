package model

import (
	"math"
	"time"
)

// Review is a user's rating of a product. A user reviews a product at most once.
type Review struct {
	ID        string    `json:"id" db:"id"`
	Rating    int       `json:"rating" db:"rating" validate:"required,min=1,max=5"`
	Title     string    `json:"title" db:"title" validate:"required,max=100"`
	Comment   string    `json:"comment" db:"comment" validate:"required"`
	UserID    string    `json:"user" db:"user_id"`
	ProductID string    `json:"product" db:"product_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ReviewInput is the request payload for creating a review.
type ReviewInput struct {
	Product string `json:"product"`
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ReviewPatch is the request payload for updating a review.
type ReviewPatch struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

// Apply merges the patch into r.
func (rp *ReviewPatch) Apply(r *Review) {
	if rp.Rating != nil {
		r.Rating = *rp.Rating
	}
	if rp.Title != nil {
		r.Title = *rp.Title
	}
	if rp.Comment != nil {
		r.Comment = *rp.Comment
	}
}

// ReviewStats aggregates the reviews of one product.
type ReviewStats struct {
	AverageRating float64
	NumOfReviews  int
}

// Rounded returns the stats with the average rounded to one decimal place.
func (s ReviewStats) Rounded() ReviewStats {
	s.AverageRating = math.Round(s.AverageRating*10) / 10
	return s
}
