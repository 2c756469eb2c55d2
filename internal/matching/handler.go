package matching

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/candidates"
	"skillbridge-backend/internal/shared/server/middleware"
	"skillbridge-backend/internal/shared/server/respond"
)

// Handler wires the mentor-match routes to the ranking service and the
// candidate detail lookup.
type Handler struct {
	Svc     *Service
	Details *candidates.Service
}

func NewHandler(svc *Service, details *candidates.Service) *Handler {
	return &Handler{Svc: svc, Details: details}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/mentor-matches/:rollNumber", h.list)
	rg.POST("/mentor-matches/filter", h.filter)
	rg.GET("/mentor-matches/detail/:rollNumber", h.detail)
}

func (h *Handler) list(c *gin.Context) {
	referenceRoll := strings.TrimSpace(c.Param("rollNumber"))
	if referenceRoll == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "reference roll number is required", nil)
		return
	}
	if !canQueryReference(c, referenceRoll) {
		respond.Error(c, http.StatusForbidden, "forbidden", "not permitted to query this reference", nil)
		return
	}

	results, err := h.Svc.RankMentorMatches(c.Request.Context(), referenceRoll, nil)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "repository_error", "failed to compute mentor matches", nil)
		return
	}
	respond.OK(c, results)
}

// filterRequest tolerates loosely-typed input: invalid optional fields are
// normalized to absent instead of rejecting the request.
type filterRequest struct {
	ReferenceID string `json:"referenceId"`
	SeniorRoll  string `json:"seniorRoll"`
	Domain      string `json:"domain"`
	BatchYear   any    `json:"batchYear"`
	Skills      []any  `json:"skills"`
	Interests   []any  `json:"interests"`
}

func (h *Handler) filter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	referenceRoll := strings.TrimSpace(req.ReferenceID)
	if referenceRoll == "" {
		// Accepted for compatibility with older clients.
		referenceRoll = strings.TrimSpace(req.SeniorRoll)
	}
	if referenceRoll == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "referenceId is required", nil)
		return
	}
	if !canQueryReference(c, referenceRoll) {
		respond.Error(c, http.StatusForbidden, "forbidden", "not permitted to query this reference", nil)
		return
	}

	filter := &Filter{
		Domain:    strings.TrimSpace(req.Domain),
		BatchYear: coerceBatchYear(req.BatchYear),
		Skills:    coerceStrings(req.Skills),
		Interests: coerceStrings(req.Interests),
	}

	results, err := h.Svc.RankMentorMatches(c.Request.Context(), referenceRoll, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "repository_error", "failed to filter mentor matches", nil)
		return
	}
	respond.OK(c, results)
}

func (h *Handler) detail(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin only", nil)
		return
	}
	roll := strings.TrimSpace(c.Param("rollNumber"))
	profile, err := h.Details.GetDetail(c.Request.Context(), roll)
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "repository_error", "failed to load candidate detail", nil)
		return
	}
	respond.OK(c, profile)
}

// canQueryReference allows admins, or the referenced senior themselves.
func canQueryReference(c *gin.Context, referenceRoll string) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	return middleware.RollFromContext(c) == referenceRoll
}

// coerceBatchYear accepts a JSON number or numeric string; anything else is
// treated as absent.
func coerceBatchYear(raw any) *int {
	switch v := raw.(type) {
	case float64:
		if v == float64(int(v)) {
			year := int(v)
			return &year
		}
	case string:
		if year, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return &year
		}
	}
	return nil
}

// coerceStrings keeps string entries and drops everything else.
func coerceStrings(raw []any) []string {
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
