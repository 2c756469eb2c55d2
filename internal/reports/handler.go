package reports

import (
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
	rg.GET("/admin/analytics/skills-achievements", h.skillsAchievements)
}

func (h *Handler) skillsAchievements(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin only", nil)
		return
	}
	report, err := h.Svc.GetSkillsAchievements(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "repository_error", "failed to compute analytics", nil)
		return
	}
	respond.OK(c, report)
}
