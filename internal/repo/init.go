package repo

import (
	"github.com/KNICEX/price-alert-agent/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.AlertRule{}, &entity.RunMarker{})
}
