// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements manga reviews with nine rating dimensions and a
per-user up/down vote on each review.

Vote states per (user, review): none, up, down. Toggling the held direction
clears it; toggling the other direction flips it and moves one count between
the two counters.
*/
package review

import (
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 10
)

// Ratings holds the nine scored dimensions of a review.
type Ratings struct {
	Rating        float64 `json:"rating"`
	Art           float64 `json:"art"`
	Story         float64 `json:"story"`
	Characters    float64 `json:"characters"`
	Worldbuilding float64 `json:"worldbuilding"`
	Pacing        float64 `json:"pacing"`
	Emotion       float64 `json:"emotion"`
	Originality   float64 `json:"originality"`
	Dialogues     float64 `json:"dialogues"`
}

// field pairs a dimension's wire name with its value.
type field struct {
	name  string
	value float64
}

func (r Ratings) fields() []field {
	return []field{
		{"rating", r.Rating},
		{"art", r.Art},
		{"story", r.Story},
		{"characters", r.Characters},
		{"worldbuilding", r.Worldbuilding},
		{"pacing", r.Pacing},
		{"emotion", r.Emotion},
		{"originality", r.Originality},
		{"dialogues", r.Dialogues},
	}
}

// Review is one user's review of one manga.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username,omitempty"`
	MangaID   int64     `json:"mangaId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Votes     []Vote    `json:"votes,omitempty"`
	Ratings
}

// Vote is a user's vote on a review.
type Vote struct {
	UserID    string    `json:"userId"`
	ReviewID  string    `json:"reviewId"`
	IsUpvote  bool      `json:"isUpvote"`
	CreatedAt time.Time `json:"createdAt"`
}

// Changes carries optional review fields. Nil leaves a field untouched.
type Changes struct {
	Title         *string
	Content       *string
	Rating        *float64
	Art           *float64
	Story         *float64
	Characters    *float64
	Worldbuilding *float64
	Pacing        *float64
	Emotion       *float64
	Originality   *float64
	Dialogues     *float64
}

type optionalField struct {
	name  string
	value *float64
}

func (c Changes) ratingFields() []optionalField {
	return []optionalField{
		{"rating", c.Rating},
		{"art", c.Art},
		{"story", c.Story},
		{"characters", c.Characters},
		{"worldbuilding", c.Worldbuilding},
		{"pacing", c.Pacing},
		{"emotion", c.Emotion},
		{"originality", c.Originality},
		{"dialogues", c.Dialogues},
	}
}

// Overview is the per-manga average of every dimension, rounded to two decimals.
type Overview struct {
	MangaID      int64 `json:"mangaId"`
	TotalReviews int   `json:"totalReviews"`
	Ratings
}

// Totals are the raw aggregates behind an [Overview].
type Totals struct {
	Count int
	Sums  Ratings
}

// # Errors

// RatingRangeMessage is the combined message for any out-of-range rating.
const RatingRangeMessage = "As notas devem estar entre 1 e 10"

var (
	ErrNotFound      = apperr.NotFound("Avaliação não encontrada")
	ErrAlreadyExists = apperr.Conflict("Você já avaliou este mangá")
)

func ratingRangeError(name string) error {
	return apperr.ValidationError(RatingRangeMessage, apperr.FieldError{Field: name, Message: RatingRangeMessage})
}

func inRange(value float64) bool {
	return value >= MinRating && value <= MaxRating
}

// Validate reports the first dimension outside [MinRating, MaxRating].
func (r Ratings) Validate() error {
	for _, f := range r.fields() {
		if !inRange(f.value) {
			return ratingRangeError(f.name)
		}
	}
	return nil
}

// Validate applies the rating bound to every provided dimension.
func (c Changes) Validate() error {
	for _, f := range c.ratingFields() {
		if f.value != nil && !inRange(*f.value) {
			return ratingRangeError(f.name)
		}
	}
	return nil
}
