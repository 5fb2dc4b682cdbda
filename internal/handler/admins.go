package handler

import (
	"net/http"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/middleware"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminsHandler struct{ svc service.AdminService }

func NewAdminsHandler(svc service.AdminService) *AdminsHandler {
	return &AdminsHandler{svc: svc}
}

func (h *AdminsHandler) List(c *gin.Context) {
	filter := dto.ListFilter{Search: c.Query("search"), Page: pageQuery(c)}
	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, "Berhasil mengambil data admin.", items,
		response.NewPagination(filter.Page, listPageSize, total))
}

func (h *AdminsHandler) Create(c *gin.Context) {
	var req dto.CreateAdminRequest
	if !bindAndValidate(c, &req) {
		return
	}
	admin, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Admin berhasil dibuat.", admin)
}

func (h *AdminsHandler) Update(c *gin.Context) {
	var req dto.UpdateAdminRequest
	if !bindAndValidate(c, &req) {
		return
	}
	admin, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Admin berhasil diperbarui.", admin)
}

func (h *AdminsHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), claims.ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Admin berhasil dihapus.", nil)
}
