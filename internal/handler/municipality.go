package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MunicipalityHandler answers which prefectures hold a municipality name
type MunicipalityHandler struct {
	service MunicipalityService
}

// MunicipalityService interface for dependency injection
type MunicipalityService interface {
	Prefectures(ctx context.Context, municipality string) ([]string, error)
}

// PrefecturesResponse is the body of GET /municipalities/:name/prefectures
type PrefecturesResponse struct {
	Municipality string   `json:"municipality"`
	Prefectures  []string `json:"prefectures"`
}

// NewMunicipalityHandler creates a new municipality handler
func NewMunicipalityHandler(svc MunicipalityService) *MunicipalityHandler {
	return &MunicipalityHandler{service: svc}
}

// Prefectures handles GET /municipalities/:name/prefectures requests
//
//	@Summary		Prefectures of a municipality
//	@Description	Lists every prefecture that has a municipality with this name, in gazetteer order.
//	@Tags			municipality
//	@Produce		json
//	@Param			name	path		string	true	"municipality name"
//	@Success		200		{object}	PrefecturesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/municipalities/{name}/prefectures [get]
func (h *MunicipalityHandler) Prefectures(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing municipality name"})
		return
	}

	prefectures, err := h.service.Prefectures(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	if len(prefectures) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no prefecture has a municipality with this name"})
		return
	}

	c.JSON(http.StatusOK, PrefecturesResponse{Municipality: name, Prefectures: prefectures})
}
