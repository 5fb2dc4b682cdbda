package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/dto"
	"github.com/snc99/Pay-Wise-BE/internal/response"
	"github.com/snc99/Pay-Wise-BE/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultTrendDays = 7
	maxTrendDays     = 90
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Cards(c *gin.Context) {
	cards, err := h.svc.Cards(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Berhasil mengambil data dashboard.", cards)
}

// Comparison sums debts against payments, optionally windowed by
// ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *DashboardHandler) Comparison(c *gin.Context) {
	from, ok := optionalDate(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDate(c, "to")
	if !ok {
		return
	}
	if to != nil {
		// make the upper bound inclusive for whole-day queries
		end := to.Add(24 * time.Hour)
		to = &end
	}
	comparison, err := h.svc.Comparison(c.Request.Context(), from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Berhasil mengambil perbandingan.", comparison)
}

// Trend returns per-day payment totals for the last ?days= days (default 7).
func (h *DashboardHandler) Trend(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultTrendDays)))
	if err != nil || days < 1 || days > maxTrendDays {
		days = defaultTrendDays
	}
	now := time.Now()
	rng := dto.TrendRange{From: now.AddDate(0, 0, -(days - 1)), To: now}
	trend, err := h.svc.DailyTrend(c.Request.Context(), rng)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Berhasil mengambil tren pembayaran.", trend)
}

func optionalDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.ValidationErr(c, map[string][]string{name: {"Format tanggal tidak valid."}})
		return nil, false
	}
	return &t, true
}
