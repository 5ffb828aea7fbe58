package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dkellner/daybook/internal/api/middleware"
	"github.com/dkellner/daybook/internal/api/response"
	"github.com/dkellner/daybook/internal/domain"
	"github.com/dkellner/daybook/internal/service"
	"github.com/go-chi/chi/v5"
)

// NoteHandler handles journal note endpoints
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List returns all notes of the authenticated user, newest day first
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	notes, err := h.noteService.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"notes": notes,
		"count": len(notes),
	})
}

// Search finds notes matching the query. Short queries are matched by
// substring, longer ones by full-text search with a substring fallback.
func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	query := r.URL.Query().Get("q")

	notes, mode, err := h.noteService.Search(r.Context(), userID, query)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"notes": notes,
		"count": len(notes),
		"mode":  string(mode),
	})
}

// Get returns the note for a single day
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	date := chi.URLParam(r, "date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	note, err := h.noteService.GetByDate(r.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			response.NotFound(w, "no note for this date")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, note)
}

// Save upserts the note for a single day. Only today's note is writable;
// past days are read-only.
func (h *NoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	date := chi.URLParam(r, "date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		response.BadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}
	if date != domain.Today(time.Now()) {
		response.BadRequest(w, "only today's note can be edited")
		return
	}

	var input domain.NoteSave
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.noteService.Save(r.Context(), userID, date, input.Content)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, note)
}
