package handler

import (
	"net/http"
	"strconv"
	"time"

	"finance-ledger/internal/ledger"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Svc *ledger.StatsService
}

func NewStatsHandler(svc *ledger.StatsService) *StatsHandler {
	return &StatsHandler{Svc: svc}
}

// Summary returns per-user account totals.
func (h *StatsHandler) Summary(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := targetUserID(c, user)
	if !ok {
		return
	}

	summary, err := h.Svc.Summary(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

// ByCategory returns category totals for a type and date range,
// e.g. ?type=EXPENDITURE&start=2025-01-01&end=2025-01-31&limit=5
func (h *StatsHandler) ByCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := targetUserID(c, user)
	if !ok {
		return
	}

	start, ok := queryDate(c, "start")
	if !ok {
		return
	}
	end, ok := queryDate(c, "end")
	if !ok {
		return
	}
	// default to the last 30 days
	if start == nil || end == nil {
		now := time.Now()
		from := now.AddDate(0, 0, -30)
		if start == nil {
			start = &from
		}
		if end == nil {
			end = &now
		}
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid limit")
			return
		}
		limit = v
	}

	summaries, err := h.Svc.SummaryByCategory(userID, c.Query("type"), *start, *end, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"by_category": summaries})
}

// Monthly returns income/expense flow for the last N months (default 6).
func (h *StatsHandler) Monthly(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := targetUserID(c, user)
	if !ok {
		return
	}

	months := 6
	if s := c.Query("months"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 || v > 120 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid months")
			return
		}
		months = v
	}

	flow, err := h.Svc.MonthlyCashFlow(userID, months)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"monthly": flow})
}
