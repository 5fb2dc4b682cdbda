package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"

	"github.com/gin-gonic/gin"
)

type DebtsHandler struct{ svc service.DebtService }

func NewDebtsHandler(svc service.DebtService) *DebtsHandler {
	return &DebtsHandler{svc: svc}
}

// Create godoc
// @Summary Catat utang baru
// @Tags debts
// @Accept json
// @Produce json
// @Param body body dto.CreateDebtRequest true "Utang"
// @Success 201 {object} response.Body
// @Failure 400 {object} response.Body
// @Router /debt [post]
func (h *DebtsHandler) Create(c *gin.Context) {
	var req dto.CreateDebtRequest
	if !bindAndValidate(c, &req) {
		return
	}
	debt, err := h.svc.CreateDebt(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Utang berhasil dicatat.", debt)
}

func (h *DebtsHandler) List(c *gin.Context) {
	filter := dto.ListFilter{Search: c.Query("search"), Page: pageQuery(c)}
	items, total, err := h.svc.ListCycles(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, "Berhasil mengambil data utang.", items,
		response.NewPagination(filter.Page, listPageSize, total))
}

// ListOpen serves the unpaid cycles feeding the payment entry dropdown.
func (h *DebtsHandler) ListOpen(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.svc.ListOpenCycles(c.Request.Context(), c.Query("search"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Berhasil mengambil utang aktif.", items)
}

// Public is the unauthenticated listing of unpaid debts.
func (h *DebtsHandler) Public(c *gin.Context) {
	items, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Berhasil mengambil data utang.", items)
}

func (h *DebtsHandler) Delete(c *gin.Context) {
	userName, err := h.svc.DeleteCycle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, fmt.Sprintf("Utang milik %s berhasil dihapus.", userName), nil)
}
