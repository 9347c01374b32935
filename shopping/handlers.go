package shopping

import (
	"fmt"
	"net/http"

	"ladle/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetShoppingList returns the aggregated purchase list as JSON.
func (h *Handler) GetShoppingList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())

	items, err := h.svc.Aggregate(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build shopping list")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items, "count": len(items)})
}

// DownloadShoppingList renders the purchase list as a plain-text attachment.
func (h *Handler) DownloadShoppingList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromContext(r.Context())

	items, err := h.svc.Aggregate(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build shopping list")
		return
	}

	filename := fmt.Sprintf("shopping_list_%s.txt", uuid.NewString()[:8])
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(RenderText(items)))
}
