package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tourista/tourista-api/internal/domain"
	"github.com/tourista/tourista-api/internal/service"
	"github.com/tourista/tourista-api/internal/util"
)

type TourHandler struct {
	tours *service.TourService
}

func RegisterTours(e *echo.Echo, auth *service.AuthService, tours *service.TourService) {
	handler := &TourHandler{tours: tours}

	public := e.Group("/api/v1/tours")
	public.GET("", handler.list)
	public.GET("/:id", handler.get)

	staff := e.Group("/api/v1/tours",
		RequireAuth(auth),
		RequireRoles(auth, domain.NewRoleSet(domain.RoleAdmin, domain.RoleGuide)))
	staff.POST("", handler.create)

	admin := e.Group("/api/v1/tours",
		RequireAuth(auth),
		RequireRoles(auth, domain.NewRoleSet(domain.RoleAdmin)))
	admin.DELETE("/:id", handler.delete)
}

func (h *TourHandler) list(c echo.Context) error {
	filter, err := parseTourListFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	tours, err := h.tours.List(c.Request().Context(), filter)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{
		"tours": tours,
		"count": len(tours),
	})
}

func (h *TourHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour id"))
	}
	tour, err := h.tours.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tour", tour))
}

func (h *TourHandler) create(c echo.Context) error {
	var req struct {
		Name       string   `json:"name"`
		Summary    *string  `json:"summary"`
		Price      float64  `json:"price"`
		Difficulty string   `json:"difficulty"`
		Tags       []string `json:"tags"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	var difficulty domain.TourDifficulty
	if req.Difficulty != "" {
		parsed, ok := domain.ParseTourDifficulty(req.Difficulty)
		if !ok {
			return c.JSON(http.StatusBadRequest, util.Error("unknown difficulty"))
		}
		difficulty = parsed
	}

	tour, err := h.tours.Create(c.Request().Context(), service.TourInput{
		Name:       req.Name,
		Summary:    req.Summary,
		Price:      req.Price,
		Difficulty: difficulty,
		Tags:       req.Tags,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("tour", tour))
}

func (h *TourHandler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour id"))
	}
	if err := h.tours.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
