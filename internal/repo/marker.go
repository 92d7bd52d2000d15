package repo

import (
	"context"

	"github.com/KNICEX/price-alert-agent/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MarkerRepo interface {
	Upsert(ctx context.Context, key, value string) error
	Find(ctx context.Context, key string) (string, error)
}

type markerRepo struct {
	db *gorm.DB
}

func NewMarkerRepo(db *gorm.DB) MarkerRepo {
	return &markerRepo{
		db: db,
	}
}

func (r *markerRepo) Upsert(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entity.RunMarker{Key: key, Value: value}).Error
}

func (r *markerRepo) Find(ctx context.Context, key string) (string, error) {
	var marker entity.RunMarker
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&marker).Error
	if err != nil {
		return "", err
	}
	return marker.Value, nil
}
