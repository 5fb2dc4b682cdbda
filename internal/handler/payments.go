package handler

import (
	"fmt"
	"net/http"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

// Create godoc
// @Summary Catat pelunasan utang
// @Tags payments
// @Accept json
// @Produce json
// @Param body body dto.CreatePaymentRequest true "Pembayaran"
// @Success 201 {object} response.Body
// @Failure 400 {object} response.Body
// @Router /payment [post]
func (h *PaymentsHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	payment, err := h.svc.CreatePayment(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Pembayaran berhasil dicatat.", payment)
}

func (h *PaymentsHandler) List(c *gin.Context) {
	filter := dto.ListFilter{Search: c.Query("search"), Page: pageQuery(c)}
	items, total, err := h.svc.ListPayments(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, "Berhasil mengambil data pembayaran.", items,
		response.NewPagination(filter.Page, listPageSize, total))
}

// ListDeleted shows the soft-deleted history until the purge job removes it.
func (h *PaymentsHandler) ListDeleted(c *gin.Context) {
	items, err := h.svc.ListDeleted(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Berhasil mengambil riwayat pembayaran terhapus.", items)
}

func (h *PaymentsHandler) Delete(c *gin.Context) {
	userName, err := h.svc.DeletePayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, fmt.Sprintf("Pembayaran milik %s berhasil dihapus.", userName), nil)
}
