package handler

import (
	"errors"
	"net/http"
	"strings"

	"asset-inventory/internal/models"
	"asset-inventory/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AssetHandler 负责资产相关接口
type AssetHandler struct {
	DB *gorm.DB
}

func NewAssetHandler(db *gorm.DB) *AssetHandler {
	return &AssetHandler{DB: db}
}

type createAssetReq struct {
	AssetTag     string `json:"asset_tag" binding:"required"`
	Name         string `json:"name" binding:"required,max=128"`
	CategoryID   uint   `json:"category_id" binding:"required"`
	SerialNumber string `json:"serial_number" binding:"max=128"`
	Model        string `json:"model" binding:"max=128"`
	Manufacturer string `json:"manufacturer" binding:"max=128"`
	Status       string `json:"status" binding:"omitempty,oneof=AVAILABLE IN_USE MAINTENANCE RETIRED"`
	Notes        string `json:"notes"`
}

// ListAssets 列出资产，可按 category_id 过滤
func (h *AssetHandler) ListAssets(c *gin.Context) {
	q := h.DB.WithContext(c.Request.Context()).Preload("Category").Order("asset_tag ASC")
	if cid := c.Query("category_id"); cid != "" {
		q = q.Where("category_id = ?", cid)
	}

	var assets []models.Asset
	if err := q.Find(&assets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch assets")
		return
	}
	util.Success(c, util.Response{"assets": assets})
}

// CreateAsset 新建资产。标签全局唯一；并发下建议标签可能已被占用，此时返回 400。
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req createAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name, asset tag, and category are required")
		return
	}

	req.AssetTag = strings.TrimSpace(req.AssetTag)
	if err := util.ValidateAssetTag(req.AssetTag); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var cat models.Category
	if err := db.First(&cat, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create asset")
		}
		return
	}

	var count int64
	if err := db.Model(&models.Asset{}).Where("asset_tag = ?", req.AssetTag).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create asset")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "an asset with this tag already exists")
		return
	}

	status := req.Status
	if status == "" {
		status = models.AssetAvailable
	}
	asset := models.Asset{
		AssetTag:     req.AssetTag,
		Name:         strings.TrimSpace(req.Name),
		SerialNumber: req.SerialNumber,
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		Status:       status,
		Notes:        req.Notes,
		CategoryID:   cat.ID,
		Category:     cat,
	}
	if err := db.Omit("Category").Create(&asset).Error; err != nil {
		// lost a race against another insert of the same tag
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "an asset with this tag already exists")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create asset")
		return
	}

	util.Created(c, util.Response{
		"message": "asset created",
		"asset":   asset,
	})
}
