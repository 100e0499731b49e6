package handler

import (
	"net/http"

	"finance-ledger/internal/ledger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	Svc *ledger.AccountService
}

func NewAccountHandler(svc *ledger.AccountService) *AccountHandler {
	return &AccountHandler{Svc: svc}
}

type createAccountReq struct {
	Name        string           `json:"name" binding:"required,max=64"`
	AccountType string           `json:"account_type" binding:"required"`
	Balance     decimal.Decimal  `json:"balance"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	UserID      uint             `json:"user_id"` // admin only, defaults to actor
}

type updateAccountReq struct {
	Name        string           `json:"name" binding:"max=64"`
	AccountType string           `json:"account_type"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

func accountResp(a *models.MoneyAccount) gin.H {
	return gin.H{
		"id":           a.ID,
		"name":         a.Name,
		"account_type": a.AccountType,
		"balance":      a.Balance,
		"credit_limit": a.CreditLimit,
		"user_id":      a.UserID,
	}
}

func (h *AccountHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	account, err := h.Svc.Create(ledger.CreateAccountInput{
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     req.Balance,
		CreditLimit: req.CreditLimit,
		OwnerID:     req.UserID,
	}, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, util.Response{"account": accountResp(account)})
}

func (h *AccountHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	account, err := h.Svc.Update(id, ledger.UpdateAccountInput{
		Name:        req.Name,
		AccountType: req.AccountType,
		CreditLimit: req.CreditLimit,
	}, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.Response{"account": accountResp(account)})
}

func (h *AccountHandler) Delete(c *gin.Context) {
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
	util.Success(c, util.Response{"message": "account deleted"})
}

func (h *AccountHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	account, err := h.Svc.GetByID(id, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"account": accountResp(account)})
}

func (h *AccountHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := targetUserID(c, user)
	if !ok {
		return
	}

	accounts, err := h.Svc.ListByUser(userID, c.Query("name"), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(accounts))
	for i := range accounts {
		items = append(items, accountResp(&accounts[i]))
	}
	util.Success(c, util.Response{"accounts": items})
}
