package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KNICEX/price-alert-agent/internal/service/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRuleStore struct {
	mock.Mock
}

func (m *MockRuleStore) LoadAll(ctx context.Context) ([]Rule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Rule), args.Error(1)
}

func (m *MockRuleStore) Commit(ctx context.Context, surviving []Rule, triggeredIds []int64, lastRun string) error {
	args := m.Called(ctx, surviving, triggeredIds, lastRun)
	return args.Error(0)
}

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Fetch(ctx context.Context, symbols []string) (map[string]quote.Quote, error) {
	args := m.Called(ctx, symbols)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]quote.Quote), args.Error(1)
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Send(ctx context.Context, text string) error {
	n.messages = append(n.messages, text)
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 3, 4, 5, 0, time.UTC)
}

// 30-08-2026 03:04:05 UTC is 10:04:05 AM in Asia/Jakarta (UTC+7).
const fixedTimestamp = "30-08-2026 10:04:05 AM"

func TestRunner_TriggerAndSurvive(t *testing.T) {
	store := new(MockRuleStore)
	quoteSvc := new(MockQuoteService)
	notifier := &recordingNotifier{}

	rules := []Rule{
		{Id: 1, Symbol: "AAPL", Operator: OperatorGreaterOrEqual, Value: "150"},
		{Id: 2, Symbol: "MSFT", Operator: OperatorLessOrEqual, Value: "300"},
	}
	store.On("LoadAll", mock.Anything).Return(rules, nil)
	quoteSvc.On("Fetch", mock.Anything, []string{"AAPL", "MSFT"}).
		Return(quoteMap(map[string]string{"AAPL": "151", "MSFT": "310"}), nil)
	store.On("Commit", mock.Anything, []Rule{rules[1]}, []int64{1}, fixedTimestamp).Return(nil)

	task := NewRunner(store, quoteSvc, WithNotifier(notifier), WithClock(fixedClock))
	err := task.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"✔ AAPL is greater or equal than 150"}, notifier.messages)
	store.AssertExpectations(t)
	quoteSvc.AssertExpectations(t)
}

func TestRunner_InvalidOperatorRemoved(t *testing.T) {
	store := new(MockRuleStore)
	quoteSvc := new(MockQuoteService)
	notifier := &recordingNotifier{}

	rules := []Rule{
		{Id: 7, Symbol: "TSLA", Operator: ParseOperator("badop"), Value: "10"},
	}
	store.On("LoadAll", mock.Anything).Return(rules, nil)
	quoteSvc.On("Fetch", mock.Anything, []string{"TSLA"}).
		Return(quoteMap(map[string]string{"TSLA": "20"}), nil)
	store.On("Commit", mock.Anything, []Rule{}, []int64{7}, fixedTimestamp).Return(nil)

	task := NewRunner(store, quoteSvc, WithNotifier(notifier), WithClock(fixedClock))
	err := task.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"❗ ERROR: quote TSLA has invalid operator badop"}, notifier.messages)
	store.AssertExpectations(t)
}

func TestRunner_NoRules(t *testing.T) {
	store := new(MockRuleStore)
	quoteSvc := new(MockQuoteService)
	notifier := &recordingNotifier{}

	store.On("LoadAll", mock.Anything).Return(nil, ErrNoRules)

	task := NewRunner(store, quoteSvc, WithNotifier(notifier), WithClock(fixedClock))
	err := task.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"❗ ERROR: alert store has no header columns"}, notifier.messages)
	quoteSvc.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunner_QuoteFetchFailed(t *testing.T) {
	store := new(MockRuleStore)
	quoteSvc := new(MockQuoteService)
	notifier := &recordingNotifier{}

	rules := []Rule{
		{Id: 1, Symbol: "AAPL", Operator: OperatorGreaterOrEqual, Value: "150"},
		{Id: 2, Symbol: "AAPL", Operator: OperatorLessOrEqual, Value: "120"},
	}
	store.On("LoadAll", mock.Anything).Return(rules, nil)
	// duplicate symbols collapse to one fetch entry
	quoteSvc.On("Fetch", mock.Anything, []string{"AAPL"}).Return(nil, quote.ErrFetchFailed)

	task := NewRunner(store, quoteSvc, WithNotifier(notifier), WithClock(fixedClock))
	err := task.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"❗ ERROR: 3 attempts have failed reading quotes [AAPL]"}, notifier.messages)
	store.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunner_MissingQuoteKeepsRule(t *testing.T) {
	store := new(MockRuleStore)
	quoteSvc := new(MockQuoteService)
	notifier := &recordingNotifier{}

	rules := []Rule{
		{Id: 1, Symbol: "AAPL", Operator: OperatorGreaterOrEqual, Value: "150"},
	}
	store.On("LoadAll", mock.Anything).Return(rules, nil)
	quoteSvc.On("Fetch", mock.Anything, []string{"AAPL"}).
		Return(map[string]quote.Quote{}, nil)
	store.On("Commit", mock.Anything, rules, []int64(nil), fixedTimestamp).Return(nil)

	task := NewRunner(store, quoteSvc, WithNotifier(notifier), WithClock(fixedClock))
	err := task.Run(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, notifier.messages)
	store.AssertExpectations(t)
}

func TestRunner_CommitFailureNotified(t *testing.T) {
	store := new(MockRuleStore)
	quoteSvc := new(MockQuoteService)
	notifier := &recordingNotifier{}

	rules := []Rule{
		{Id: 1, Symbol: "AAPL", Operator: OperatorGreaterOrEqual, Value: "150"},
	}
	store.On("LoadAll", mock.Anything).Return(rules, nil)
	quoteSvc.On("Fetch", mock.Anything, []string{"AAPL"}).
		Return(quoteMap(map[string]string{"AAPL": "151"}), nil)
	store.On("Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("sheet gone"))

	task := NewRunner(store, quoteSvc, WithNotifier(notifier), WithClock(fixedClock))
	err := task.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"✔ AAPL is greater or equal than 150",
		"❗ ERROR: reading quotes [AAPL]",
	}, notifier.messages)
}
