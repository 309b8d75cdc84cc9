package assessment

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/khriencreation-ship-it/Learning-Management-System-sub002/backend/models"
)

// Catalog is the read-only curriculum tree the engine consumes.
type Catalog interface {
	Item(itemID uint) (*models.ModuleItem, error)
	QuizConfig(item *models.ModuleItem) (QuizConfig, error)
	CourseItemIDs(courseID uint) ([]uint, error)
}

type gormCatalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) Catalog {
	return &gormCatalog{db: db}
}

func (c *gormCatalog) Item(itemID uint) (*models.ModuleItem, error) {
	var item models.ModuleItem
	if err := c.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("item %d", itemID)
		}
		return nil, storeErr(err)
	}
	return &item, nil
}

func (c *gormCatalog) QuizConfig(item *models.ModuleItem) (QuizConfig, error) {
	if item.Type != models.ItemTypeQuiz {
		return QuizConfig{}, notFoundf("item %d is not a quiz", item.ID)
	}
	return DecodeQuizConfig(item.Metadata)
}

func (c *gormCatalog) CourseItemIDs(courseID uint) ([]uint, error) {
	var ids []uint
	err := c.db.Model(&models.ModuleItem{}).
		Where("course_id = ?", courseID).
		Order("sequence_order").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

// DecodeQuizConfig parses the quiz metadata blob once, at the catalog
// boundary, and normalizes it: MaxAttempts is at least 1, PassingGrade is
// clamped to [0,100]. Malformed question entries are kept and grade as
// incorrect; a quiz nobody can decode at all is a data error.
func DecodeQuizConfig(raw datatypes.JSON) (QuizConfig, error) {
	var cfg QuizConfig
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return QuizConfig{}, &ValidationError{Field: "metadata", Reason: "malformed quiz config"}
		}
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.PassingGrade < 0 {
		cfg.PassingGrade = 0
	}
	if cfg.PassingGrade > 100 {
		cfg.PassingGrade = 100
	}
	return cfg, nil
}
