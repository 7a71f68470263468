package handler

import (
	"net/http"
	"strconv"
	"strings"

	"asset-inventory/internal/assettag"
	"asset-inventory/internal/models"
	"asset-inventory/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler 负责分类相关接口
type CategoryHandler struct {
	DB  *gorm.DB
	Tag *assettag.Sequencer
}

func NewCategoryHandler(db *gorm.DB, tag *assettag.Sequencer) *CategoryHandler {
	return &CategoryHandler{DB: db, Tag: tag}
}

type createCategoryReq struct {
	Name           string `json:"name" binding:"required,max=64"`
	Description    string `json:"description" binding:"max=255"`
	AssetTagPrefix string `json:"asset_tag_prefix" binding:"max=32"`
}

// ListCategories 列出全部分类
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var cats []models.Category
	if err := h.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&cats).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to fetch categories")
		return
	}
	util.Success(c, util.Response{"categories": cats})
}

// CreateCategory 新建分类
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name is required")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.AssetTagPrefix = strings.TrimSpace(req.AssetTagPrefix)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name is required")
		return
	}
	if err := util.ValidateAssetTagPrefix(req.AssetTagPrefix); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create category")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "a category with this name already exists")
		return
	}

	cat := models.Category{
		Name:           req.Name,
		Description:    strings.TrimSpace(req.Description),
		AssetTagPrefix: req.AssetTagPrefix,
	}
	if err := db.Create(&cat).Error; err != nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "failed to create category")
		return
	}
	util.Created(c, util.Response{"category": cat})
}

// SuggestAssetTag 根据分类前缀建议下一个资产标签，无法建议时返回空字符串
func (h *CategoryHandler) SuggestAssetTag(c *gin.Context) {
	suggested := ""
	if id, err := strconv.ParseUint(c.Param("id"), 10, 0); err == nil {
		suggested = h.Tag.Suggest(c.Request.Context(), uint(id))
	}
	c.JSON(http.StatusOK, gin.H{"suggestedAssetTag": suggested})
}
