package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/vortex-api/internal/service/words"
)

// WordHandler handles word library API requests.
type WordHandler struct {
	wordsService *words.Service
	validator    *validator.Validate
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(wordsService *words.Service) *WordHandler {
	return &WordHandler{
		wordsService: wordsService,
		validator:    validator.New(),
	}
}

// List handles GET /api/words.
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	library, err := h.wordsService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, library)
}

// Create handles POST /api/words.
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateWordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	word, err := h.wordsService.Create(r.Context(), userID, words.CreateWordInput{
		Term:       req.Term,
		Definition: req.Definition,
		Example:    req.Example,
		IPA:        req.IPA,
		Tags:       req.Tags,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, word)
}

// Delete handles DELETE /api/words/{id}.
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	if err := h.wordsService.Delete(r.Context(), userID, wordID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QuickStart handles POST /api/words/quickstart.
func (h *WordHandler) QuickStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	added, err := h.wordsService.QuickStart(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, added)
}
