package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"asset-inventory/internal/models"
	"asset-inventory/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler 导出资产台账
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Asset Tag", "Name", "Category", "Status", "Manufacturer", "Model", "Serial Number", "Created"}

func assetRow(a models.Asset) []string {
	return []string{
		a.AssetTag,
		a.Name,
		a.Category.Name,
		a.Status,
		a.Manufacturer,
		a.Model,
		a.SerialNumber,
		a.CreatedAt.Format("2006-01-02"),
	}
}

func (h *ExportHandler) loadAssets(c *gin.Context) ([]models.Asset, bool) {
	var assets []models.Asset
	if err := h.DB.WithContext(c.Request.Context()).
		Preload("Category").
		Order("asset_tag ASC").
		Find(&assets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch assets")
		return nil, false
	}
	return assets, true
}

// ExportCSV 导出资产为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	assets, ok := h.loadAssets(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"assets_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM（让 Excel 正确识别编码）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for _, a := range assets {
		writer.Write(assetRow(a))
	}
}

// ExportXLSX 导出资产为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	assets, ok := h.loadAssets(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Assets"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, title := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, title)
	}
	for idx, a := range assets {
		for col, v := range assetRow(a) {
			cell, _ := excelize.CoordinatesToCellName(col+1, idx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "G", 16)
	f.SetColWidth(sheetName, "H", "H", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"assets_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
