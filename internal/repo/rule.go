package repo

import (
	"context"

	"github.com/KNICEX/price-alert-agent/internal/entity"
	"gorm.io/gorm"
)

type RuleRepo interface {
	FindAll(ctx context.Context) ([]entity.AlertRule, error)
	Create(ctx context.Context, rule entity.AlertRule) (int64, error)
	DeleteByIds(ctx context.Context, ids []int64) error
}

type ruleRepo struct {
	db *gorm.DB
}

func NewRuleRepo(db *gorm.DB) RuleRepo {
	return &ruleRepo{
		db: db,
	}
}

func (r *ruleRepo) FindAll(ctx context.Context) ([]entity.AlertRule, error) {
	var rules []entity.AlertRule
	err := r.db.WithContext(ctx).Order("id").Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepo) Create(ctx context.Context, rule entity.AlertRule) (int64, error) {
	err := r.db.WithContext(ctx).Create(&rule).Error
	if err != nil {
		return 0, err
	}
	return rule.Id, nil
}

func (r *ruleRepo) DeleteByIds(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entity.AlertRule{}).Error
}
