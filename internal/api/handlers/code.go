package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/clinicare/clinic-backend/internal/domain"
	"github.com/clinicare/clinic-backend/internal/service"
)

type CodeHandler struct {
	codeService *service.CodeService
}

func NewCodeHandler(codeService *service.CodeService) *CodeHandler {
	return &CodeHandler{codeService: codeService}
}

// Search looks up diagnosis codes by chapter, optionally narrowed by
// category and subcategory query parameters.
func (h *CodeHandler) Search(w http.ResponseWriter, r *http.Request) {
	chapter := r.URL.Query().Get("chapter_code")
	if chapter == "" {
		http.Error(w, "chapter_code is required", http.StatusBadRequest)
		return
	}

	category := r.URL.Query().Get("category_code")
	subcategory := r.URL.Query().Get("subcategory_code")

	codes, err := h.codeService.Search(r.Context(), chapter, category, subcategory)
	if err != nil {
		if errors.Is(err, domain.ErrCodesNotFound) {
			http.Error(w, "Codes not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [handlers.CodeSearch] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, codes)
}
