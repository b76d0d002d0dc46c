package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"address-normalizer/internal/models"
	"address-normalizer/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressHandler handles address decomposition requests
type AddressHandler struct {
	service AddressService
}

// AddressService interface for dependency injection
type AddressService interface {
	Parse(ctx context.Context, address string, withReading bool) (models.ParseResult, error)
	Cleanse(ctx context.Context, address string) (string, error)
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// CleanseResponse is the body of GET /cleanse
type CleanseResponse struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{service: svc}
}

// Parse handles GET /parse requests
//
//	@Summary		Decompose an address
//	@Description	Splits a free-form Japanese address into prefecture, municipality, street, town-area, block and extension.
//	@Tags			address
//	@Produce		json
//	@Param			q		query		string	true	"address"
//	@Param			reading	query		bool	false	"include katakana readings"
//	@Success		200		{object}	models.ParseResult
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/parse [get]
func (h *AddressHandler) Parse(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameter 'q'"})
		return
	}

	withReading := false
	if v := c.Query("reading"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid value for query parameter 'reading'"})
			return
		}
		withReading = b
	}

	result, err := h.service.Parse(c.Request.Context(), query, withReading)
	if err != nil {
		if errors.Is(err, service.ErrReadingDisabled) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "readings are not enabled on this server"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Cleanse handles GET /cleanse requests
//
//	@Summary	Normalize an address
//	@Tags		address
//	@Produce	json
//	@Param		q	query		string	true	"address"
//	@Success	200	{object}	CleanseResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/cleanse [get]
func (h *AddressHandler) Cleanse(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameter 'q'"})
		return
	}

	normalized, err := h.service.Cleanse(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, CleanseResponse{Input: query, Normalized: normalized})
}
