package alert

import (
	"context"
	"errors"
	"strings"
)

type Operator string

const (
	OperatorGreaterOrEqual Operator = "gt"
	OperatorLessOrEqual    Operator = "lt"
)

// ParseOperator normalizes a raw operator token. Unknown tokens are carried
// through unchanged so the evaluator can report them.
func ParseOperator(raw string) Operator {
	return Operator(strings.ToLower(strings.TrimSpace(raw)))
}

// Rule is one persisted alert definition. Id is only meaningful for the
// database-backed store; the sheet store identifies rules by row content.
type Rule struct {
	Id       int64
	Symbol   string
	Operator Operator
	Value    string
}

// ErrNoRules reports a store with no usable header or data rows.
var ErrNoRules = errors.New("alert store has no usable rules")

// RuleStore abstracts the persisted rule collection. Commit persists the
// surviving set, removes triggered rules and records the last run timestamp;
// each implementation uses whichever of the arguments its backend needs.
type RuleStore interface {
	LoadAll(ctx context.Context) ([]Rule, error)
	Commit(ctx context.Context, surviving []Rule, triggeredIds []int64, lastRun string) error
}
