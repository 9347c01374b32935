package collections

import (
	"errors"
	"net/http"

	"ladle/models"
	"ladle/mq"
	"ladle/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the toggle service over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func kindLabel(kind models.CollectionKind) string {
	if kind == models.KindCart {
		return "shopping cart"
	}
	return "favorites"
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request, ps httprouter.Params, kind models.CollectionKind) {
	userID := utils.GetUserIDFromContext(r.Context())
	recipeID := ps.ByName("id")

	outcome, preview, err := h.svc.Add(r.Context(), userID, recipeID, kind)
	if errors.Is(err, ErrRecipeNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update "+kindLabel(kind))
		return
	}

	if outcome == AlreadyExists {
		utils.RespondWithError(w, http.StatusConflict, "Recipe already in "+kindLabel(kind))
		return
	}

	mq.Emit("collection-added", mq.Index{
		EntityType: string(kind), Method: "POST", EntityId: recipeID, ItemType: "recipe",
	})
	utils.RespondWithJSON(w, http.StatusCreated, preview)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params, kind models.CollectionKind) {
	userID := utils.GetUserIDFromContext(r.Context())
	recipeID := ps.ByName("id")

	outcome, err := h.svc.Remove(r.Context(), userID, recipeID, kind)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update "+kindLabel(kind))
		return
	}

	if outcome == NotAMember {
		utils.RespondWithError(w, http.StatusBadRequest, "Recipe not in "+kindLabel(kind))
		return
	}

	mq.Emit("collection-removed", mq.Index{
		EntityType: string(kind), Method: "DELETE", EntityId: recipeID, ItemType: "recipe",
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, kind models.CollectionKind) {
	userID := utils.GetUserIDFromContext(r.Context())

	previews, err := h.svc.ListPreviews(r.Context(), userID, kind)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list "+kindLabel(kind))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, previews)
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.add(w, r, ps, models.KindFavorite)
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.remove(w, r, ps, models.KindFavorite)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.add(w, r, ps, models.KindCart)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.remove(w, r, ps, models.KindCart)
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, models.KindFavorite)
}

func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, models.KindCart)
}
