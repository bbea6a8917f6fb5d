package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

func TestNewSession(t *testing.T) {
	s := newTestSession()

	require.NotNil(t, s)
	assert.Equal(t, domain.StatusReady, s.Status())
	assert.Empty(t, s.Banner())
	assert.Empty(t, s.Progress())
	assert.Empty(t, s.Messages())
}

func TestSession_BeginRejectsWhenBusy(t *testing.T) {
	s := newTestSession()

	op, err := s.begin(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, s.Status())

	_, err = s.begin(nil)
	assert.ErrorIs(t, err, domain.ErrPipelineBusy)

	s.finish(op)
	assert.Equal(t, domain.StatusReady, s.Status())
}

func TestSession_BeginClearsBanner(t *testing.T) {
	s := newTestSession()
	s.setBanner("old failure")

	op, err := s.begin(nil)
	require.NoError(t, err)
	defer s.finish(op)

	assert.Empty(t, s.Banner())
}

func TestSession_BeginCheckFailureLeavesState(t *testing.T) {
	s := newTestSession()
	s.setBanner("keep me")

	_, err := s.begin(func() error { return domain.ErrNoDocuments })

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
	assert.Equal(t, domain.StatusReady, s.Status())
	assert.Equal(t, "keep me", s.Banner())
}

func TestSession_AdvanceRejectsStaleOperation(t *testing.T) {
	s := newTestSession()

	first, err := s.begin(nil)
	require.NoError(t, err)
	s.finish(first)

	second, err := s.begin(nil)
	require.NoError(t, err)

	err = s.advance(first, domain.StatusRetrieving)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.StatusProcessing, s.Status())

	s.finish(second)
}

func TestSession_AdvanceRejectsInvalidTransition(t *testing.T) {
	s := newTestSession()

	op, err := s.begin(nil)
	require.NoError(t, err)
	defer s.finish(op)

	err = s.advance(op, domain.StatusGenerating)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.StatusProcessing, s.Status())
}

func TestSession_NextTimestampIsStrictlyIncreasing(t *testing.T) {
	clock := newFakeClock()
	s := newTestSession(WithClock(clock.Now))

	a := s.nextTimestamp()
	b := s.nextTimestamp()
	c := s.nextTimestamp()

	assert.Less(t, a, b)
	assert.Less(t, b, c)

	clock.Advance(time.Second)
	d := s.nextTimestamp()
	assert.Equal(t, clock.Now().UnixMilli(), d)
}

func TestSession_ProgressOnlyMovesForward(t *testing.T) {
	s := newTestSession()
	obs := newRecordingObserver()
	s.Subscribe(obs)

	s.setProgress("a.txt", 0)
	s.setProgress("a.txt", 40)
	s.setProgress("a.txt", 20)
	s.setProgress("a.txt", 40)
	s.setProgress("a.txt", 90)

	assert.Equal(t, map[string]int{"a.txt": 90}, s.Progress())
	assert.Equal(t, []int{0, 40, 90}, obs.progress["a.txt"])

	s.settle("a.txt")
	assert.Empty(t, s.Progress())
	assert.Equal(t, []string{"a.txt"}, obs.settled)
}

func TestSession_ProgressReturnsCopy(t *testing.T) {
	s := newTestSession()
	s.setProgress("a.txt", 10)

	p := s.Progress()
	p["a.txt"] = 99

	assert.Equal(t, 10, s.Progress()["a.txt"])
}

func TestSession_RecordFeedback(t *testing.T) {
	s := newTestSession()
	s.log.Append(domain.Message{Role: domain.RoleUser, Content: "q", Timestamp: 1})
	s.log.Append(domain.Message{Role: domain.RoleAssistant, Content: "a", Timestamp: 2})
	s.log.Append(domain.Message{Role: domain.RoleAssistant, Content: domain.QueryFailedText, Timestamp: 3, IsError: true})

	require.NoError(t, s.RecordFeedback(2, domain.Positive))
	p, ok := s.Feedback(2)
	assert.True(t, ok)
	assert.Equal(t, domain.Positive, p)
	assert.Equal(t, 100, s.Stats().PositiveRatePercent)

	assert.ErrorIs(t, s.RecordFeedback(1, domain.Positive), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.RecordFeedback(3, domain.Positive), domain.ErrInvalidInput)
	assert.ErrorIs(t, s.RecordFeedback(42, domain.Positive), domain.ErrNotFound)
}

func TestSession_ClearChatResetsFeedback(t *testing.T) {
	s := newTestSession()
	s.log.Append(domain.Message{Role: domain.RoleAssistant, Content: "a", Timestamp: 5})
	require.NoError(t, s.RecordFeedback(5, domain.Positive))

	s.ClearChat()

	assert.Empty(t, s.Messages())
	_, ok := s.Feedback(5)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Stats().PositiveRatePercent)
}

func TestSession_DismissBanner(t *testing.T) {
	s := newTestSession()
	s.setBanner("boom")

	s.DismissBanner()

	assert.Empty(t, s.Banner())
}

func TestSession_ObserverSeesStatusChanges(t *testing.T) {
	s := newTestSession()
	obs := newRecordingObserver()
	s.Subscribe(obs)

	op, err := s.begin(nil)
	require.NoError(t, err)
	require.NoError(t, s.advance(op, domain.StatusRetrieving))
	s.finish(op)

	assert.Equal(t, []domain.PipelineStatus{
		domain.StatusProcessing,
		domain.StatusRetrieving,
		domain.StatusReady,
	}, obs.Statuses())
}

func TestSession_FeedbackNeverOutlivesClearChat(t *testing.T) {
	s := newTestSession()

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for ts := int64(1); ts <= rounds; ts++ {
			s.log.Append(domain.Message{Role: domain.RoleAssistant, Content: "a", Timestamp: ts})
			_ = s.RecordFeedback(ts, domain.Positive)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			s.ClearChat()
		}
	}()
	wg.Wait()

	for ts := int64(1); ts <= rounds; ts++ {
		if _, ok := s.Feedback(ts); ok {
			_, present := s.log.Find(ts)
			assert.True(t, present, "vote for message %d survived a clear", ts)
		}
	}
	if s.log.Len() == 0 {
		assert.Equal(t, 0, s.Stats().PositiveRatePercent)
	}
}
