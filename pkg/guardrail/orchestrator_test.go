package guardrail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mindhaven/guardrail/pkg/domain/guardraillog"
	logMocks "github.com/mindhaven/guardrail/pkg/domain/guardraillog/mocks"
	"github.com/mindhaven/guardrail/pkg/domain/keyword"
	"github.com/mindhaven/guardrail/pkg/guardrail"
	guardrailMocks "github.com/mindhaven/guardrail/pkg/guardrail/mocks"
	"github.com/mindhaven/guardrail/pkg/moderation"
	moderationMocks "github.com/mindhaven/guardrail/pkg/moderation/mocks"
)

type checkerFixture struct {
	keywords  *guardrailMocks.Detector
	watchlist *guardrailMocks.Detector
	moderator *moderationMocks.Moderator
	logs      *logMocks.Repository
	alerter   *guardrailMocks.Alerter
	checker   guardrail.Checker
}

func setupChecker(t *testing.T) *checkerFixture {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	f := &checkerFixture{
		keywords:  new(guardrailMocks.Detector),
		watchlist: new(guardrailMocks.Detector),
		moderator: new(moderationMocks.Moderator),
		logs:      new(logMocks.Repository),
		alerter:   new(guardrailMocks.Alerter),
	}
	f.checker = guardrail.NewChecker(f.keywords, f.watchlist, f.moderator, f.logs, f.alerter, logger)
	return f
}

func TestChecker_Check_AllowsCleanMessage(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()
	clientID := uuid.New()

	f.watchlist.On("Detect", ctx, "feeling a bit better today").Return(nil, nil)
	f.keywords.On("Detect", ctx, "feeling a bit better today").Return(nil, nil)
	f.moderator.On("Moderate", ctx, "feeling a bit better today").
		Return(moderation.Verdict{FlaggedUnsafe: false, RawReply: "SAFE"}, nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  clientID,
		Direction: guardraillog.DirectionIn,
		Text:      "feeling a bit better today",
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Empty(t, result.Reason)
	f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.alerter.AssertNotCalled(t, "RaiseAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChecker_Check_BlocksOnCriticalKeyword(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()
	clientID := uuid.New()

	f.watchlist.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.keywords.On("Detect", ctx, mock.Anything).Return(&guardrail.Signal{
		Source:   guardrail.KeywordDetectorName,
		Keyword:  "kill myself",
		Severity: keyword.SeverityCritical,
	}, nil)
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(e *guardraillog.Entry) bool {
		return e.Reason == "in_crisis_keyword_critical" && e.ClientID == clientID
	})).Return(nil)
	f.alerter.On("RaiseAlert", mock.Anything, clientID, "crisis_keyword_critical", mock.Anything).
		Return(nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  clientID,
		Direction: guardraillog.DirectionIn,
		Text:      "some text",
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, "crisis_keyword_critical", result.Reason)
	assert.Equal(t, keyword.SeverityCritical, result.Severity)
	f.moderator.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
	f.logs.AssertExpectations(t)
	f.alerter.AssertExpectations(t)
}

func TestChecker_Check_LowSeverityKeywordDoesNotAlert(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()

	f.watchlist.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.keywords.On("Detect", ctx, mock.Anything).Return(&guardrail.Signal{
		Source:   guardrail.KeywordDetectorName,
		Keyword:  "give up",
		Severity: keyword.SeverityLow,
	}, nil)
	f.logs.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionIn,
		Text:      "I want to give up",
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, "crisis_keyword_low", result.Reason)
	f.alerter.AssertNotCalled(t, "RaiseAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChecker_Check_FailsClosedOnModerationError(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()

	f.keywords.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.moderator.On("Moderate", ctx, mock.Anything).
		Return(moderation.Verdict{}, errors.New("provider timeout"))
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(e *guardraillog.Entry) bool {
		return e.Reason == "out_safety_check_failed"
	})).Return(nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionOut,
		Text:      "assistant reply",
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, guardrail.ReasonSafetyCheckFail, result.Reason)
	f.watchlist.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
	f.logs.AssertExpectations(t)
}

func TestChecker_Check_BlocksOnModerationFlag(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()

	f.watchlist.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.keywords.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.moderator.On("Moderate", ctx, mock.Anything).
		Return(moderation.Verdict{FlaggedUnsafe: true, RawReply: "UNSAFE"}, nil)
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(e *guardraillog.Entry) bool {
		return e.Reason == "in_moderation_flag"
	})).Return(nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionIn,
		Text:      "some text",
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, guardrail.ReasonSafetyViolation, result.Reason)
	f.logs.AssertExpectations(t)
}

func TestChecker_Check_SystemErrorWhenKeywordLookupFails(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()

	f.watchlist.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.keywords.On("Detect", ctx, mock.Anything).Return(nil, errors.New("database down"))
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(e *guardraillog.Entry) bool {
		return e.Reason == guardrail.ReasonSystemError
	})).Return(nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionIn,
		Text:      "some text",
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, guardrail.ReasonSystemError, result.Reason)
	f.moderator.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
}

func TestChecker_Check_ReturnsAlertPersistenceFailure(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()
	persistErr := errors.New("insert failed")

	f.watchlist.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.keywords.On("Detect", ctx, mock.Anything).Return(&guardrail.Signal{
		Source:   guardrail.KeywordDetectorName,
		Keyword:  "end my life",
		Severity: keyword.SeverityHigh,
	}, nil)
	f.logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.alerter.On("RaiseAlert", mock.Anything, mock.Anything, "crisis_keyword_high", mock.Anything).
		Return(persistErr)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionIn,
		Text:      "some text",
	})

	assert.ErrorIs(t, err, persistErr)
	assert.False(t, result.Allowed)
	assert.Equal(t, "crisis_keyword_high", result.Reason)
}

func TestChecker_Check_LogWriteFailureDoesNotChangeDecision(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()

	f.watchlist.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.keywords.On("Detect", ctx, mock.Anything).Return(&guardrail.Signal{
		Source:   guardrail.KeywordDetectorName,
		Keyword:  "give up",
		Severity: keyword.SeverityLow,
	}, nil)
	f.logs.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionIn,
		Text:      "some text",
	})

	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, "crisis_keyword_low", result.Reason)
}

func TestChecker_Check_WatchlistRaisesAlertWithoutBlocking(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()
	clientID := uuid.New()

	f.watchlist.On("Detect", ctx, mock.Anything).Return(&guardrail.Signal{
		Source:   guardrail.WatchlistDetectorName,
		Keyword:  "suicide",
		Severity: keyword.SeverityCritical,
	}, nil)
	f.alerter.On("RaiseAlert", mock.Anything, clientID, guardrail.ReasonWatchlistMatch, mock.Anything).
		Return(nil)
	f.keywords.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.moderator.On("Moderate", ctx, mock.Anything).
		Return(moderation.Verdict{FlaggedUnsafe: false}, nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  clientID,
		Direction: guardraillog.DirectionIn,
		Text:      "talking about suicide prevention resources",
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	f.alerter.AssertExpectations(t)
}

func TestChecker_Check_WatchlistAlertFailurePropagates(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()
	persistErr := errors.New("insert failed")

	f.watchlist.On("Detect", ctx, mock.Anything).Return(&guardrail.Signal{
		Source:   guardrail.WatchlistDetectorName,
		Keyword:  "hurt myself",
		Severity: keyword.SeverityCritical,
	}, nil)
	f.alerter.On("RaiseAlert", mock.Anything, mock.Anything, guardrail.ReasonWatchlistMatch, mock.Anything).
		Return(persistErr)
	f.keywords.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.moderator.On("Moderate", ctx, mock.Anything).
		Return(moderation.Verdict{FlaggedUnsafe: false}, nil)

	_, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionIn,
		Text:      "some text",
	})

	assert.ErrorIs(t, err, persistErr)
}

func TestChecker_Check_WatchlistSkippedForOutboundMessages(t *testing.T) {
	f := setupChecker(t)
	ctx := context.Background()

	f.keywords.On("Detect", ctx, mock.Anything).Return(nil, nil)
	f.moderator.On("Moderate", ctx, mock.Anything).
		Return(moderation.Verdict{FlaggedUnsafe: false}, nil)

	result, err := f.checker.Check(ctx, guardrail.Message{
		ClientID:  uuid.New(),
		Direction: guardraillog.DirectionOut,
		Text:      "assistant reply",
	})

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	f.watchlist.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything)
}
