// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library tracks the per-user reading state of each manga.

An entry holds four independent flags. The wire name of a listing or toggle
"type" maps to exactly one flag:

  - progress  -> isRead
  - complete  -> isComplete
  - favorite  -> isLiked
  - following -> isFollowed
*/
package library

import (
	"time"

	"github.com/taibuivan/mangashelf/internal/platform/apperr"
	"github.com/taibuivan/mangashelf/internal/platform/validate"
)

// Flag names one boolean column of an entry.
type Flag string

const (
	FlagRead     Flag = "isread"
	FlagComplete Flag = "iscomplete"
	FlagLiked    Flag = "isliked"
	FlagFollowed Flag = "isfollowed"
)

var typeFlags = map[string]Flag{
	"progress":  FlagRead,
	"complete":  FlagComplete,
	"favorite":  FlagLiked,
	"following": FlagFollowed,
}

// ParseType resolves a listing or toggle type to its flag.
func ParseType(value string) (Flag, error) {
	flag, ok := typeFlags[value]
	if !ok {
		return "", ErrInvalidType
	}
	return flag, nil
}

// Entry is one user's state for one manga.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MangaID    int64     `json:"mangaId"`
	IsRead     bool      `json:"isRead"`
	IsLiked    bool      `json:"isLiked"`
	IsFollowed bool      `json:"isFollowed"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Get returns the value of flag.
func (e *Entry) Get(flag Flag) bool {
	switch flag {
	case FlagRead:
		return e.IsRead
	case FlagComplete:
		return e.IsComplete
	case FlagLiked:
		return e.IsLiked
	case FlagFollowed:
		return e.IsFollowed
	}
	return false
}

// Set assigns flag.
func (e *Entry) Set(flag Flag, value bool) {
	switch flag {
	case FlagRead:
		e.IsRead = value
	case FlagComplete:
		e.IsComplete = value
	case FlagLiked:
		e.IsLiked = value
	case FlagFollowed:
		e.IsFollowed = value
	}
}

// Changes carries optional flag values. Nil leaves a flag untouched.
type Changes struct {
	IsRead     *bool
	IsLiked    *bool
	IsFollowed *bool
	IsComplete *bool
}

// apply copies every provided value onto entry.
func (c Changes) apply(entry *Entry) {
	if c.IsRead != nil {
		entry.IsRead = *c.IsRead
	}
	if c.IsLiked != nil {
		entry.IsLiked = *c.IsLiked
	}
	if c.IsFollowed != nil {
		entry.IsFollowed = *c.IsFollowed
	}
	if c.IsComplete != nil {
		entry.IsComplete = *c.IsComplete
	}
}

// Status is the flag set reported for a user and manga.
type Status struct {
	IsRead     bool `json:"isRead"`
	IsLiked    bool `json:"isLiked"`
	IsFollowed bool `json:"isFollowed"`
	IsComplete bool `json:"isComplete"`
}

// Item is one row of a library listing.
type Item struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Title     string `json:"title"`
	Cover     string `json:"cover"`
	ViewCount int64  `json:"viewCount"`
}

// # Errors

var (
	ErrEntryNotFound = apperr.NotFound("Entrada não encontrada na biblioteca")
	ErrInvalidType   = apperr.ValidationError(validate.Message, apperr.FieldError{
		Field:   "type",
		Message: "Tipo inválido. Use progress, complete, favorite ou following",
	})
)
