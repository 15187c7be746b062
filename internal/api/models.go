package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/vortex-api/internal/service/review"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
	UserName string `json:"user_name,omitempty" validate:"max=64"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization.
	AccessToken string `json:"token"`
}

// CreateWordRequest defines the payload for adding a word to the library.
type CreateWordRequest struct {
	Term       string   `json:"term"       validate:"required,max=128"`
	Definition string   `json:"definition" validate:"required,max=2048"`
	Example    string   `json:"example,omitempty"   validate:"max=2048"`
	IPA        string   `json:"ipa,omitempty"       validate:"max=128"`
	Tags       []string `json:"tags,omitempty"      validate:"dive,max=64"`
	ImageURL   string   `json:"image_url,omitempty" validate:"omitempty,url"`
}

// StartSessionRequest defines the payload for starting a review session.
type StartSessionRequest struct {
	Mode review.SessionMode `json:"mode" validate:"required,oneof=regular mission recovery"`
}

// AnswerRequest defines the payload for answering the current exposure.
type AnswerRequest struct {
	KnewIt       bool   `json:"knew_it"`
	SelectedTerm string `json:"selected_term,omitempty" validate:"max=128"`
}

// CreateCollectionRequest defines the payload for creating a collection.
type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	Icon string `json:"icon,omitempty" validate:"max=16"`
}

// RenameCollectionRequest defines the payload for renaming a collection.
type RenameCollectionRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	Icon string `json:"icon,omitempty" validate:"max=16"`
}

// CollectionWordsRequest defines the payload for adding or removing
// word IDs from a collection.
type CollectionWordsRequest struct {
	WordIDs []uuid.UUID `json:"word_ids" validate:"required,min=1"`
}
