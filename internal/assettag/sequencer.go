// Package assettag suggests the next free asset tag for a category.
//
// Tags look like "{prefix}-{NNNN}". The latest tag is found by ordering
// asset_tag descending, which only works while every tag in a category is
// zero-padded under one prefix. Whenever an existing tag breaks that shape
// the sequencer returns "" and leaves the choice to the operator.
package assettag

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"asset-inventory/internal/logging"
	"asset-inventory/internal/models"

	"gorm.io/gorm"
)

// MinDigits is the zero-padding width of the numeric part.
const MinDigits = 4

// Sequencer reads categories and assets to propose tags. A suggestion is
// advisory: two operators may receive the same one, and the unique index on
// assets.asset_tag rejects the second insert.
type Sequencer struct {
	db  *gorm.DB
	log logging.Logger
}

func NewSequencer(db *gorm.DB, log logging.Logger) *Sequencer {
	return &Sequencer{db: db, log: log.With("component", "assettag")}
}

// Suggest returns the next tag for categoryID, or "" when none can be
// derived safely.
func (s *Sequencer) Suggest(ctx context.Context, categoryID uint) string {
	db := s.db.WithContext(ctx)

	var cat models.Category
	if err := db.First(&cat, categoryID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error(ctx, "load category", "category_id", categoryID, "error", err)
		}
		return ""
	}
	if cat.AssetTagPrefix == "" {
		return ""
	}

	var last []models.Asset
	if err := db.Where("category_id = ?", categoryID).
		Order("asset_tag DESC").
		Limit(1).
		Find(&last).Error; err != nil {
		s.log.Error(ctx, "load latest asset", "category_id", categoryID, "error", err)
		return ""
	}

	if len(last) == 0 {
		return Format(cat.AssetTagPrefix, 1)
	}

	next, ok := NextTag(cat.AssetTagPrefix, last[0].AssetTag)
	if !ok {
		s.log.Debug(ctx, "latest tag has unexpected shape", "category_id", categoryID, "tag", last[0].AssetTag)
		return ""
	}

	var taken int64
	if err := db.Model(&models.Asset{}).Where("asset_tag = ?", next).Count(&taken).Error; err != nil {
		s.log.Error(ctx, "check asset tag", "tag", next, "error", err)
		return ""
	}
	if taken > 0 {
		s.log.Warn(ctx, "asset tag already exists", "tag", next, "category_id", categoryID)
		return ""
	}
	return next
}

// NextTag derives the tag following lastTag under prefix. The number is the
// text after the last '-' in lastTag and must be plain decimal digits.
func NextTag(prefix, lastTag string) (string, bool) {
	i := strings.LastIndex(lastTag, "-")
	if i < 0 {
		return "", false
	}
	n, err := strconv.ParseUint(lastTag[i+1:], 10, 63)
	if err != nil {
		return "", false
	}
	return Format(prefix, n+1), true
}

// Format renders "{prefix}-{n}" with n padded to at least MinDigits.
// Wider numbers are never truncated: 10000 stays 10000.
func Format(prefix string, n uint64) string {
	return fmt.Sprintf("%s-%0*d", prefix, MinDigits, n)
}
