package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clinicare/clinic-backend/internal/api/middleware"
	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/service"
	"github.com/go-playground/validator/v10"
)

type NoteHandler struct {
	noteService *service.NoteService
	validate    *validator.Validate
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

type CreateNoteRequest struct {
	Title   string           `json:"title" validate:"required,min=1,max=255"`
	Content string           `json:"content"`
	Codes   []CodeKeyRequest `json:"codes" validate:"dive"`
}

type CodeKeyRequest struct {
	ChapterCode     string `json:"chapter_code" validate:"required,len=1"`
	CategoryCode    string `json:"category_code" validate:"required,len=2"`
	SubcategoryCode string `json:"subcategory_code" validate:"omitempty,len=1"`
}

// Create stores a consultation note for the authenticated user. The owner is
// always the guard's identity; a client-supplied email would be ignored.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Invalid note fields", http.StatusBadRequest)
		return
	}

	keys := make([]service.CodeKey, 0, len(req.Codes))
	for _, c := range req.Codes {
		keys = append(keys, service.CodeKey{
			ChapterCode:     c.ChapterCode,
			CategoryCode:    c.CategoryCode,
			SubcategoryCode: c.SubcategoryCode,
		})
	}

	note, err := h.noteService.Create(r.Context(), user.Email, service.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
		Codes:   keys,
	})
	if err != nil {
		log.Printf("ERROR [handlers.NoteCreate] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// List returns the authenticated user's notes with their codes attached. An
// empty history is a 200 with an empty list, not an error.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	notes, err := h.noteService.List(r.Context(), user.Email)
	if err != nil {
		log.Printf("ERROR [handlers.NoteList] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if notes == nil {
		notes = []*domain.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}
