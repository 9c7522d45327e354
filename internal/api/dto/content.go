package dto

import (
	"errors"
	"time"

	"github.com/puentehua/centro-admin/internal/api/validation"
)

type ClassRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Schedule    string `json:"schedule"`
	Locale      string `json:"locale"`
	Capacity    int    `json:"capacity"`
	PriceCents  int64  `json:"price_cents"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

func (r *ClassRequest) Validate() error {
	if r.Title == "" || len(r.Title) > validation.MaxTitleLength {
		return errors.New("title is required")
	}
	if len(r.Description) > validation.MaxDescriptionLength {
		return errors.New("description is too long")
	}
	if r.Locale != "" && !validation.IsValidLocale(r.Locale) {
		return errors.New("unsupported locale")
	}
	if r.Capacity < 0 {
		return errors.New("capacity cannot be negative")
	}
	if r.PriceCents < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// EventRequest carries a rich-text Content document. Content is stored
// as-is; only the flat string fields go through the sanitizer.
type EventRequest struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Location  string    `json:"location"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Published *bool     `json:"published,omitempty"`
}

func (r *EventRequest) Validate() error {
	if r.Title == "" || len(r.Title) > validation.MaxTitleLength {
		return errors.New("title is required")
	}
	if r.StartsAt.IsZero() {
		return errors.New("start time is required")
	}
	if !r.EndsAt.IsZero() && r.EndsAt.Before(r.StartsAt) {
		return errors.New("end time cannot precede start time")
	}
	return nil
}

type TeamMemberRequest struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio"`
	PhotoURL     string `json:"photo_url"`
	DisplayOrder int    `json:"display_order"`
}

func (r *TeamMemberRequest) Validate() error {
	if r.Name == "" || len(r.Name) > validation.MaxNameLength {
		return errors.New("name is required")
	}
	if len(r.Title) > validation.MaxTitleLength {
		return errors.New("title is too long")
	}
	if len(r.Bio) > validation.MaxBioLength {
		return errors.New("bio is too long")
	}
	return nil
}
