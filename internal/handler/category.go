package handler

import (
	"net/http"

	"finance-ledger/internal/ledger"
	"finance-ledger/internal/models"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Svc *ledger.CategoryService
}

func NewCategoryHandler(svc *ledger.CategoryService) *CategoryHandler {
	return &CategoryHandler{Svc: svc}
}

type createCategoryReq struct {
	Name   string `json:"name" binding:"required,max=64"`
	Type   string `json:"type" binding:"required"`
	Global bool   `json:"global"`
}

type updateCategoryReq struct {
	Name string `json:"name" binding:"max=64"`
	Type string `json:"type"`
}

func categoryResp(cat *models.Category) gin.H {
	return gin.H{
		"id":      cat.ID,
		"name":    cat.Name,
		"type":    cat.Type,
		"user_id": cat.UserID,
		"global":  cat.IsGlobal(),
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	category, err := h.Svc.Create(ledger.CreateCategoryInput{
		Name:   req.Name,
		Type:   req.Type,
		Global: req.Global,
	}, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, util.Response{"category": categoryResp(category)})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	category, err := h.Svc.Update(id, ledger.UpdateCategoryInput{
		Name: req.Name,
		Type: req.Type,
	}, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.Response{"category": categoryResp(category)})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
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
	util.Success(c, util.Response{"message": "category deleted"})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.Svc.GetByID(id, ledger.ActorFor(user))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"category": categoryResp(category)})
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := targetUserID(c, user)
	if !ok {
		return
	}

	categories, err := h.Svc.ListByUser(userID, c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResp(&categories[i]))
	}
	util.Success(c, util.Response{"categories": items})
}
