package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance-ledger/internal/ledger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser fetches the authenticated user placed in the context by the
// auth middleware. Writes the 401 response itself when absent.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}
	return user, true
}

// respondError maps the ledger error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and its details stay out of the
// response.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, ledger.ErrForbidden):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, err.Error())
	case errors.Is(err, ledger.ErrValidation):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, ledger.ErrInvalidOperation):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

var dateLayouts = []string{
	time.RFC3339,          // 2025-12-03T00:00:00+08:00
	"2006-01-02T15:04:05", // 2025-12-03T00:00:00
	"2006-01-02",          // 2025-12-03
}

// parseDate accepts the date formats clients send; empty means absent.
func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// targetUserID resolves which user's data a list endpoint should return.
// Admins may pass ?user_id= to inspect another user; everyone else is
// scoped to themselves.
func targetUserID(c *gin.Context, user *models.User) (uint, bool) {
	idStr := c.Query("user_id")
	if idStr == "" {
		return user.ID, true
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid user_id")
		return 0, false
	}
	if uint(id) != user.ID && !user.IsAdmin {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "cannot list another user's data")
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional numeric query parameter.
func queryUint(c *gin.Context, name string) (*uint, bool) {
	s := c.Query(name)
	if s == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid "+name)
		return nil, false
	}
	u := uint(v)
	return &u, true
}

// queryDate parses an optional date query parameter.
func queryDate(c *gin.Context, name string) (*time.Time, bool) {
	t, ok := parseDate(c.Query(name))
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, name+" must be a date like 2006-01-02")
		return nil, false
	}
	return t, true
}
