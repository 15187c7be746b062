package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/vortex-api/internal/service/collections"
)

// CollectionHandler handles collection management API requests.
type CollectionHandler struct {
	collectionsService *collections.Service
	validator          *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionsService *collections.Service) *CollectionHandler {
	return &CollectionHandler{
		collectionsService: collectionsService,
		validator:          validator.New(),
	}
}

// List handles GET /api/collections.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	listed, err := h.collectionsService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, listed)
}

// Create handles POST /api/collections.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCollectionRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := h.collectionsService.Create(r.Context(), userID, req.Name, req.Icon)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, created)
}

// Rename handles PUT /api/collections/{id}.
func (h *CollectionHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	collectionID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	var req RenameCollectionRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	renamed, err := h.collectionsService.Rename(r.Context(), userID, collectionID, req.Name, req.Icon)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, renamed)
}

// Delete handles DELETE /api/collections/{id}.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	collectionID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	if err := h.collectionsService.Delete(r.Context(), userID, collectionID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddWords handles POST /api/collections/{id}/words.
func (h *CollectionHandler) AddWords(w http.ResponseWriter, r *http.Request) {
	h.updateWords(w, r, true)
}

// RemoveWords handles DELETE /api/collections/{id}/words.
func (h *CollectionHandler) RemoveWords(w http.ResponseWriter, r *http.Request) {
	h.updateWords(w, r, false)
}

func (h *CollectionHandler) updateWords(w http.ResponseWriter, r *http.Request, add bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	collectionID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	var req CollectionWordsRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	var updated interface{}
	if add {
		updated, err = h.collectionsService.AddWords(r.Context(), userID, collectionID, req.WordIDs)
	} else {
		updated, err = h.collectionsService.RemoveWords(r.Context(), userID, collectionID, req.WordIDs)
	}
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, updated)
}
