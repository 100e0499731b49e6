package handler

import (
	"net/http"

	"finance-ledger/internal/ledger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransferHandler struct {
	Svc *ledger.TransferService
}

func NewTransferHandler(svc *ledger.TransferService) *TransferHandler {
	return &TransferHandler{Svc: svc}
}

type createTransferReq struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Date             string          `json:"date"`
	Description      string          `json:"description" binding:"max=255"`
	SendAccountID    uint            `json:"send_account_id" binding:"required"`
	ReceiveAccountID uint            `json:"receive_account_id" binding:"required"`
}

func transferResp(t *models.Transfer) gin.H {
	return gin.H{
		"id":                 t.ID,
		"amount":             t.Amount,
		"date":               t.Date,
		"description":        t.Description,
		"user_id":            t.UserID,
		"send_account_id":    t.SendAccountID,
		"receive_account_id": t.ReceiveAccountID,
	}
}

func (h *TransferHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createTransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid date")
		return
	}

	transfer, err := h.Svc.Add(ledger.CreateTransferInput{
		Amount:           req.Amount,
		Date:             date,
		Description:      req.Description,
		SendAccountID:    req.SendAccountID,
		ReceiveAccountID: req.ReceiveAccountID,
	}, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, util.Response{"transfer": transferResp(transfer)})
}

func (h *TransferHandler) Delete(c *gin.Context) {
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
	util.Success(c, util.Response{"message": "transfer deleted"})
}

func (h *TransferHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	transfer, err := h.Svc.GetByID(id, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"transfer": transferResp(transfer)})
}

func (h *TransferHandler) List(c *gin.Context) {
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
	start, ok := queryDate(c, "start")
	if !ok {
		return
	}
	end, ok := queryDate(c, "end")
	if !ok {
		return
	}

	transfers, err := h.Svc.ListByUser(userID, ledger.TransferFilter{
		MoneyAccountID: accountID,
		StartDate:      start,
		EndDate:        end,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(transfers))
	for i := range transfers {
		items = append(items, transferResp(&transfers[i]))
	}
	util.Success(c, util.Response{"transfers": items})
}
