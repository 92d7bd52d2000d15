package sheetstore

import (
	"context"
	"sort"
	"strings"

	"github.com/KNICEX/price-alert-agent/internal/service/alert"
	"github.com/samber/lo"
)

const markerPrefix = "last execution"

var header = []string{"symbol", "operator", "value"}

// Api is the narrow slice of the spreadsheet surface the store needs.
type Api interface {
	Get(ctx context.Context) ([][]string, error)
	Clear(ctx context.Context) error
	Update(ctx context.Context, rows [][]string) error
}

// Store keeps alert rules in a single sheet: a header row, one rule per row,
// and a "Last Execution" marker row at the bottom. Commit rewrites the whole
// sheet, so triggered rules disappear simply by not being written back.
type Store struct {
	api Api
}

func NewStore(api Api) alert.RuleStore {
	return &Store{
		api: api,
	}
}

func (s *Store) LoadAll(ctx context.Context) ([]alert.Rule, error) {
	rows, err := s.api.Get(ctx)
	if err != nil {
		return nil, err
	}

	rows = lo.Filter(rows, func(row []string, index int) bool {
		if blankRow(row) {
			return false
		}
		return !strings.HasPrefix(strings.ToLower(strings.TrimSpace(row[0])), markerPrefix)
	})
	// first remaining row is the header
	if len(rows) < 2 {
		return nil, alert.ErrNoRules
	}

	rules := make([]alert.Rule, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rules = append(rules, alert.Rule{
			Symbol:   strings.ToUpper(strings.TrimSpace(cell(row, 0))),
			Operator: alert.ParseOperator(cell(row, 1)),
			Value:    strings.TrimSpace(cell(row, 2)),
		})
	}
	return rules, nil
}

func (s *Store) Commit(ctx context.Context, surviving []alert.Rule, triggeredIds []int64, lastRun string) error {
	sorted := make([]alert.Rule, len(surviving))
	copy(sorted, surviving)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Symbol < sorted[j].Symbol
	})

	rows := make([][]string, 0, len(sorted)+3)
	rows = append(rows, header)
	for _, rule := range sorted {
		rows = append(rows, []string{rule.Symbol, string(rule.Operator), rule.Value})
	}
	rows = append(rows, []string{}, []string{"Last Execution: " + lastRun})

	if err := s.api.Clear(ctx); err != nil {
		return err
	}
	return s.api.Update(ctx, rows)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
