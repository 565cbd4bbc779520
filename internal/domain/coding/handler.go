package coding

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/RakeshEPC/tshla-medical-sub002/internal/platform/auth"
	"github.com/RakeshEPC/tshla-medical-sub002/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Read endpoints – admin, provider, billing
	readGroup := api.Group("", auth.RequireRole("admin", "provider", "billing"))
	readGroup.GET("/coding/analyses", h.ListAnalyses)
	readGroup.GET("/coding/analyses/:id", h.GetAnalysis)
	readGroup.GET("/coding/analyses/:id/reviews", h.GetReviews)

	// Analyze/review endpoints – admin, provider
	writeGroup := api.Group("", auth.RequireRole("admin", "provider"))
	writeGroup.POST("/coding/analyze", h.Analyze)
	writeGroup.POST("/coding/analyses", h.CreateAnalysis)
	writeGroup.POST("/coding/analyses/:id/review", h.ReviewAnalysis)
}

// Analyze runs the engine without storing the result (live preview).
func (h *Handler) Analyze(c echo.Context) error {
	var in EncounterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Analyze(in))
}

func (h *Handler) CreateAnalysis(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	record, err := h.svc.CreateAnalysis(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *Handler) GetAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	record, err := h.svc.GetAnalysis(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "analysis not found")
	}
	return c.JSON(http.StatusOK, record)
}

func (h *Handler) ListAnalyses(c echo.Context) error {
	pg := pagination.FromContext(c)
	if patientID := c.QueryParam("patient_id"); patientID != "" {
		pid, err := uuid.Parse(patientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		items, total, err := h.svc.ListAnalysesByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.ListAnalyses(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ReviewAnalysis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var rev CodingAnalysisReview
	if err := c.Bind(&rev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rev.AnalysisID = id
	// The authenticated caller is the reviewer of record; a body-supplied
	// reviewer_id only stands in development mode, where subjects are not
	// UUIDs.
	if uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context())); err == nil {
		rev.ReviewerID = uid
	}
	if err := h.svc.ReviewAnalysis(c.Request().Context(), &rev); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rev)
}

func (h *Handler) GetReviews(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reviews, err := h.svc.GetReviews(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}
