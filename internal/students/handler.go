package students

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/shared/server/middleware"
	"skillbridge-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.GET("/dashboard/overview", h.overview)
}

func (h *Handler) me(c *gin.Context) {
	roll := middleware.RollFromContext(c)
	me, err := h.Svc.GetMe(c.Request.Context(), roll)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "repository_error", "failed to load user", nil)
		return
	}
	respond.OK(c, me)
}

func (h *Handler) overview(c *gin.Context) {
	roll := middleware.RollFromContext(c)
	overview, err := h.Svc.GetOverview(c.Request.Context(), roll)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "repository_error", "failed to load overview", nil)
		return
	}
	respond.OK(c, overview)
}
