package handler

import (
	"net/http"

	"finance-ledger/internal/ledger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionHandler struct {
	Svc *ledger.TransactionService
}

func NewTransactionHandler(svc *ledger.TransactionService) *TransactionHandler {
	return &TransactionHandler{Svc: svc}
}

type transactionReq struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Date           string          `json:"date"`
	Description    string          `json:"description" binding:"max=255"`
	CategoryID     uint            `json:"category_id" binding:"required"`
	MoneyAccountID uint            `json:"money_account_id" binding:"required"`
}

func transactionResp(t *models.Transaction) gin.H {
	return gin.H{
		"id":               t.ID,
		"amount":           t.Amount,
		"date":             t.Date,
		"description":      t.Description,
		"user_id":          t.UserID,
		"category_id":      t.CategoryID,
		"money_account_id": t.MoneyAccountID,
		"transfer_id":      t.TransferID,
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
		return
	}

	txn, err := h.Svc.Add(ledger.CreateTransactionInput{
		Amount:         req.Amount,
		Date:           date,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		MoneyAccountID: req.MoneyAccountID,
	}, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, util.Response{"transaction": transactionResp(txn)})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
		return
	}

	txn, err := h.Svc.Update(id, ledger.UpdateTransactionInput{
		Amount:         req.Amount,
		Date:           date,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		MoneyAccountID: req.MoneyAccountID,
	}, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.Response{"transaction": transactionResp(txn)})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(id, ledger.ActorFor(user)); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "transaction deleted"})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	txn, err := h.Svc.GetByID(id, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": transactionResp(txn)})
}

func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := targetUserID(c, user)
	if !ok {
		return
	}

	accountID, ok := queryUint(c, "account_id")
	if !ok {
		return
	}
	categoryID, ok := queryUint(c, "category_id")
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

	txns, err := h.Svc.ListByUser(userID, ledger.TransactionFilter{
		MoneyAccountID: accountID,
		CategoryID:     categoryID,
		StartDate:      start,
		EndDate:        end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(txns))
	for i := range txns {
		items = append(items, transactionResp(&txns[i]))
	}
	util.Success(c, util.Response{"transactions": items})
}
