package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/docrank/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/docrank/pkg/kafka"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event kafka.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestIndexComplete_PublishesEvent(t *testing.T) {
	pub := new(MockPublisher)
	var captured kafka.Event
	pub.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(1).(kafka.Event) }).
		Return(nil)

	corpus := index.NewCorpus()
	corpus.Add("docs/a.txt", index.Analyze("alpha"))
	corpus.Add("docs/b.txt", index.Analyze("beta"))
	corpus.EntryCount = 3
	report := indexer.ScanReport{
		Directory:    "docs",
		Visited:      3,
		Indexed:      1,
		Skipped:      1,
		NewDocuments: []string{"docs/b.txt"},
	}

	require.NoError(t, New(pub).IndexComplete(context.Background(), "run-1", report, corpus))
	pub.AssertNumberOfCalls(t, "Publish", 1)

	assert.Equal(t, "docs", captured.Key)
	assert.Equal(t, "run-1", captured.Headers["run-id"])
	event, ok := captured.Value.(IndexCompleteEvent)
	require.True(t, ok)
	assert.Equal(t, "run-1", event.RunID)
	assert.Equal(t, []string{"docs/b.txt"}, event.NewDocuments)
	assert.Equal(t, 3, event.EntryCount)
	assert.Equal(t, 2, event.CorpusDocuments)
	assert.False(t, event.IndexedAt.IsZero())
}

func TestIndexComplete_NothingIndexed(t *testing.T) {
	pub := new(MockPublisher)
	err := New(pub).IndexComplete(context.Background(), "run-2", indexer.ScanReport{Directory: "docs", Skipped: 4}, index.NewCorpus())
	require.NoError(t, err)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestIndexComplete_PublishError(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	report := indexer.ScanReport{Directory: "docs", Indexed: 1, NewDocuments: []string{"docs/a.txt"}}
	err := New(pub).IndexComplete(context.Background(), "run-3", report, index.NewCorpus())
	assert.Error(t, err)
}
