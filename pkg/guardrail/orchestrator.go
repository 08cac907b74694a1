package guardrail

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/guardrail/pkg/domain/alert"
	"github.com/mindhaven/guardrail/pkg/domain/guardraillog"
	"github.com/mindhaven/guardrail/pkg/domain/keyword"
	"github.com/mindhaven/guardrail/pkg/infra/prometheus"
	"github.com/mindhaven/guardrail/pkg/moderation"
)

const (
	ReasonSystemError     = "system_error"
	ReasonSafetyCheckFail = "safety_check_failed"
	ReasonSafetyViolation = "safety_violation"
	ReasonWatchlistMatch  = "crisis_keywords_detected"
	keywordReasonPrefix   = "crisis_keyword_"
	moderationFlagSuffix  = "moderation_flag"
	outcomeAllowed        = "allowed"
	outcomeBlockedKeyword = "blocked_keyword"
	outcomeBlockedFlag    = "blocked_moderation"
	outcomeBlockedError   = "blocked_error"
)

// Message is one chat message entering the pipeline, in either direction.
type Message struct {
	ClientID  uuid.UUID
	Direction guardraillog.Direction
	Text      string
}

// Result is the pipeline decision for a single message. It is never
// persisted; blocked and erroring messages leave a guardrail log entry.
type Result struct {
	Allowed  bool             `json:"allowed"`
	Reason   string           `json:"reason,omitempty"`
	Severity keyword.Severity `json:"severity,omitempty"`
}

// Checker runs a message through keyword matching and AI moderation.
//
// The per-message progression is: keyword check, then (only if clean)
// moderation, then allow. Each stage gates the next, so the stages are
// strictly sequential. The ordinary call never returns an error; every
// failure inside the pipeline collapses into a blocked Result. The one
// exception is a failed alert write, which is returned so the caller can
// surface it instead of silently losing a safety-critical record.
//
//go:generate mockery --name=Checker --dir=. --output=./mocks --filename=checker_mock.go --case=underscore --with-expecter
type Checker interface {
	Check(ctx context.Context, msg Message) (Result, error)
}

type checker struct {
	keywords  Detector
	watchlist Detector
	moderator moderation.Moderator
	logs      guardraillog.Repository
	alerter   Alerter
	logger    *logrus.Logger
}

func NewChecker(
	keywords Detector,
	watchlist Detector,
	moderator moderation.Moderator,
	logs guardraillog.Repository,
	alerter Alerter,
	logger *logrus.Logger,
) Checker {
	return &checker{
		keywords:  keywords,
		watchlist: watchlist,
		moderator: moderator,
		logs:      logs,
		alerter:   alerter,
		logger:    logger,
	}
}

func (c *checker) Check(ctx context.Context, msg Message) (Result, error) {
	// The hard-coded watchlist runs on every user message independently of
	// the keyword table and of the moderation verdict. It only raises an
	// alert; the block decision belongs to the stages below.
	var alertErr error
	if msg.Direction == guardraillog.DirectionIn {
		if err := c.checkWatchlist(ctx, msg); err != nil {
			alertErr = err
		}
	}

	signal, err := c.keywords.Detect(ctx, msg.Text)
	if err != nil {
		c.logger.WithError(err).Error("keyword detection failed")
		return c.blockOnSystemError(ctx, msg, alertErr)
	}

	if signal != nil {
		result, err := c.blockOnKeyword(ctx, msg, signal)
		if alertErr != nil {
			return result, alertErr
		}
		return result, err
	}

	verdict, err := c.moderator.Moderate(ctx, msg.Text)
	if err != nil {
		c.writeLog(ctx, msg, string(msg.Direction)+"_"+ReasonSafetyCheckFail)
		c.observe(msg.Direction, outcomeBlockedError, ReasonSafetyCheckFail)
		return Result{Allowed: false, Reason: ReasonSafetyCheckFail}, alertErr
	}

	if verdict.FlaggedUnsafe {
		c.writeLog(ctx, msg, string(msg.Direction)+"_"+moderationFlagSuffix)
		c.observe(msg.Direction, outcomeBlockedFlag, ReasonSafetyViolation)
		return Result{Allowed: false, Reason: ReasonSafetyViolation}, alertErr
	}

	prometheus.ChecksTotal.WithLabelValues(string(msg.Direction), outcomeAllowed).Inc()
	return Result{Allowed: true}, alertErr
}

func (c *checker) checkWatchlist(ctx context.Context, msg Message) error {
	signal, err := c.watchlist.Detect(ctx, msg.Text)
	if err != nil || signal == nil {
		return nil
	}
	return c.alerter.RaiseAlert(ctx, msg.ClientID, ReasonWatchlistMatch, alert.DetailsJSON{
		"source":   signal.Source,
		"keyword":  signal.Keyword,
		"severity": string(signal.Severity),
	})
}

func (c *checker) blockOnKeyword(ctx context.Context, msg Message, signal *Signal) (Result, error) {
	reason := keywordReasonPrefix + string(signal.Severity)
	c.writeLog(ctx, msg, string(msg.Direction)+"_"+reason)
	c.observe(msg.Direction, outcomeBlockedKeyword, reason)

	result := Result{
		Allowed:  false,
		Reason:   reason,
		Severity: signal.Severity,
	}

	if !signal.Severity.AlertWorthy() {
		return result, nil
	}

	err := c.alerter.RaiseAlert(ctx, msg.ClientID, reason, alert.DetailsJSON{
		"source":    signal.Source,
		"keyword":   signal.Keyword,
		"severity":  string(signal.Severity),
		"direction": string(msg.Direction),
	})
	return result, err
}

func (c *checker) blockOnSystemError(ctx context.Context, msg Message, alertErr error) (Result, error) {
	c.writeLog(ctx, msg, ReasonSystemError)
	c.observe(msg.Direction, outcomeBlockedError, ReasonSystemError)
	return Result{Allowed: false, Reason: ReasonSystemError}, alertErr
}

// writeLog appends the audit record for a blocked or erroring message.
// Best effort: a failed write must not turn a block into an internal error.
func (c *checker) writeLog(ctx context.Context, msg Message, reason string) {
	id, err := uuid.NewV6()
	if err != nil {
		c.logger.WithError(err).Error("failed to generate log entry ID")
		return
	}
	entry := &guardraillog.Entry{
		ID:        id,
		ClientID:  msg.ClientID,
		Direction: msg.Direction,
		Reason:    reason,
		RawText:   msg.Text,
		CreatedAt: time.Now(),
	}
	if err := c.logs.Create(ctx, entry); err != nil {
		c.logger.WithError(err).WithField("reason", reason).Error("failed to write guardrail log entry")
	}
}

func (c *checker) observe(direction guardraillog.Direction, outcome, reason string) {
	prometheus.ChecksTotal.WithLabelValues(string(direction), outcome).Inc()
	prometheus.BlocksTotal.WithLabelValues(reason).Inc()
}
