package alert

import (
	"fmt"

	"github.com/KNICEX/price-alert-agent/internal/service/quote"
	"github.com/shopspring/decimal"
)

// Result of evaluating one rule against the fetched quotes.
// IsError marks Message as an error report rather than a trigger announcement.
type Result struct {
	Triggered bool
	Message   string
	IsError   bool
}

// Evaluate decides whether a rule fires against the quote map.
// A missing quote keeps the rule silently. A malformed threshold or an
// unknown operator always triggers removal so the rule cannot fail on every
// run forever. Evaluate never returns an error.
func Evaluate(rule Rule, quotes map[string]quote.Quote) Result {
	q, ok := quotes[rule.Symbol]
	if !ok {
		return Result{}
	}

	target, err := decimal.NewFromString(rule.Value)
	if err != nil {
		return Result{
			Triggered: true,
			Message:   fmt.Sprintf("validating quote %s", rule.Symbol),
			IsError:   true,
		}
	}

	switch rule.Operator {
	case OperatorGreaterOrEqual:
		if q.Price.GreaterThanOrEqual(target) {
			return Result{
				Triggered: true,
				Message:   fmt.Sprintf("%s is greater or equal than %s", rule.Symbol, target),
			}
		}
	case OperatorLessOrEqual:
		if q.Price.LessThanOrEqual(target) {
			return Result{
				Triggered: true,
				Message:   fmt.Sprintf("%s is less or equal than %s", rule.Symbol, target),
			}
		}
	default:
		return Result{
			Triggered: true,
			Message:   fmt.Sprintf("quote %s has invalid operator %s", rule.Symbol, rule.Operator),
			IsError:   true,
		}
	}
	return Result{}
}
