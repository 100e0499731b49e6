package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"finance-ledger/internal/models"
	"finance-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler dumps a user's transactions as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

type exportRow struct {
	Txn          models.Transaction
	CategoryName string
	CategoryType string
	AccountName  string
}

func (h *ExportHandler) loadRows(c *gin.Context) ([]exportRow, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	start, ok := queryDate(c, "start")
	if !ok {
		return nil, false
	}
	end, ok := queryDate(c, "end")
	if !ok {
		return nil, false
	}

	query := h.DB.Where("user_id = ?", user.ID)
	if start != nil {
		query = query.Where("date >= ?", *start)
	}
	if end != nil {
		query = query.Where("date <= ?", *end)
	}

	var txns []models.Transaction
	if err := query.Order("date DESC, id DESC").Find(&txns).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load transactions")
		return nil, false
	}

	// resolve names once instead of per row
	categories := map[uint]models.Category{}
	accounts := map[uint]models.MoneyAccount{}
	rows := make([]exportRow, 0, len(txns))
	for _, txn := range txns {
		cat, ok := categories[txn.CategoryID]
		if !ok {
			if err := h.DB.First(&cat, txn.CategoryID).Error; err == nil {
				categories[txn.CategoryID] = cat
			}
		}
		acc, ok := accounts[txn.MoneyAccountID]
		if !ok {
			if err := h.DB.First(&acc, txn.MoneyAccountID).Error; err == nil {
				accounts[txn.MoneyAccountID] = acc
			}
		}
		rows = append(rows, exportRow{
			Txn:          txn,
			CategoryName: cat.Name,
			CategoryType: cat.Type,
			AccountName:  acc.Name,
		})
	}
	return rows, true
}

var exportHeaders = []string{"Date", "Type", "Category", "Account", "Amount", "Description"}

func (r *exportRow) cells() []string {
	return []string{
		r.Txn.Date.Format("2006-01-02"),
		r.CategoryType,
		r.CategoryName,
		r.AccountName,
		r.Txn.Amount.StringFixed(2),
		r.Txn.Description,
	}
}

// ExportCSV streams the transaction list as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.loadRows(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range rows {
		writer.Write(rows[i].cells())
	}
}

// ExportXLSX writes the transaction list as a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.loadRows(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}
	for idx := range rows {
		rowNum := idx + 2
		for i, value := range rows[idx].cells() {
			cell := fmt.Sprintf("%c%d", 'A'+i, rowNum)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 15)
	f.SetColWidth(sheetName, "D", "D", 15)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write spreadsheet")
	}
}
