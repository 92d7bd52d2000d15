package dbstore

import (
	"context"
	"strings"

	"github.com/KNICEX/price-alert-agent/internal/entity"
	"github.com/KNICEX/price-alert-agent/internal/repo"
	"github.com/KNICEX/price-alert-agent/internal/service/alert"
	"github.com/samber/lo"
)

// LastExecutionKey identifies the run marker record.
const LastExecutionKey = "last_execution"

// Store keeps alert rules in a database table. Commit only deletes the
// triggered rows and upserts the run marker; surviving rows stay untouched.
type Store struct {
	rules   repo.RuleRepo
	markers repo.MarkerRepo
}

func NewStore(rules repo.RuleRepo, markers repo.MarkerRepo) alert.RuleStore {
	return &Store{
		rules:   rules,
		markers: markers,
	}
}

func (s *Store) LoadAll(ctx context.Context) ([]alert.Rule, error) {
	rows, err := s.rules.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, alert.ErrNoRules
	}
	return lo.Map(rows, func(row entity.AlertRule, index int) alert.Rule {
		return alert.Rule{
			Id:       row.Id,
			Symbol:   strings.ToUpper(strings.TrimSpace(row.Symbol)),
			Operator: alert.ParseOperator(row.Operator),
			Value:    row.Price,
		}
	}), nil
}

func (s *Store) Commit(ctx context.Context, surviving []alert.Rule, triggeredIds []int64, lastRun string) error {
	if err := s.rules.DeleteByIds(ctx, triggeredIds); err != nil {
		return err
	}
	return s.markers.Upsert(ctx, LastExecutionKey, lastRun)
}
