// Package response provides the canonical JSON envelope for every API reply.
// All success and error responses go through this package so clients can
// branch uniformly on success/status, and so internal details (stack traces,
// driver errors) are never leaked.
package response

import (
	"errors"
	"net/http"

	"github.com/snc99/Pay-Wise-BE/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Body is the response envelope: {success, status, message, data?, errors?, pagination?}.
type Body struct {
	Success    bool                `json:"success"`
	Status     int                 `json:"status"`
	Message    string              `json:"message"`
	Data       any                 `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// NewPagination derives page math from a total row count and the page size.
func NewPagination(page, pageSize int, totalItems int64) *Pagination {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	return &Pagination{CurrentPage: page, TotalPages: totalPages, TotalItems: totalItems}
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Body{Success: true, Status: status, Message: message, Data: data})
}

func Paginated(c *gin.Context, message string, data any, p *Pagination) {
	c.JSON(http.StatusOK, Body{
		Success: true, Status: http.StatusOK, Message: message,
		Data: data, Pagination: p,
	})
}

func Err(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Success: false, Status: status, Message: message})
}

func AbortErr(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Body{Success: false, Status: status, Message: message})
}

// ValidationErr reports per-field messages as {field: [messages]}.
func ValidationErr(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusBadRequest, Body{
		Success: false, Status: http.StatusBadRequest,
		Message: "Validasi gagal", Errors: fields,
	})
}

// FromError is the shared error-translation layer: apperr kinds keep their
// status and message, store-level constraint violations become 409/400, and
// anything else collapses into a generic 500.
func FromError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		c.JSON(ae.Status(), Body{
			Success: false, Status: ae.Status(),
			Message: ae.Message, Errors: ae.Fields,
		})
		return
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		Err(c, http.StatusNotFound, "Data tidak ditemukan.")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Err(c, http.StatusConflict, "Data sudah digunakan.")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		Err(c, http.StatusBadRequest, "Data yang dipilih tidak ditemukan.")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		Err(c, http.StatusInternalServerError, "Terjadi kesalahan pada server.")
	}
}
