package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/guardrail/pkg/config"
	"github.com/mindhaven/guardrail/pkg/infra/providers"
	providerMocks "github.com/mindhaven/guardrail/pkg/infra/providers/mocks"
)

func moderationConfig() *config.ModerationConfig {
	return &config.ModerationConfig{
		Provider:    "google",
		Model:       "gemini-2.0-flash",
		APIKey:      "test-key",
		Timeout:     time.Second,
		MaxTokens:   16,
		Temperature: 0,
	}
}

func setupAdapter(t *testing.T, client providers.Client, cfg *config.ModerationConfig) Moderator {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	moderator, err := NewAdapter(client, cfg, logger)
	require.NoError(t, err)
	return moderator
}

func TestAdapter_Moderate_SafeReply(t *testing.T) {
	client := new(providerMocks.Client)
	client.On("Ask", mock.Anything, mock.Anything, "MESSAGE:\nhello there").
		Return(&providers.CompletionResponse{Response: "SAFE"}, nil)

	moderator := setupAdapter(t, client, moderationConfig())
	verdict, err := moderator.Moderate(context.Background(), "hello there")

	assert.NoError(t, err)
	assert.False(t, verdict.FlaggedUnsafe)
	assert.Equal(t, "SAFE", verdict.RawReply)
}

func TestAdapter_Moderate_FlagsUnsafeMarkers(t *testing.T) {
	replies := []string{
		"UNSAFE",
		"unsafe",
		"This message was flagged by policy.",
		"The content is inappropriate for this context.",
	}

	for _, reply := range replies {
		client := new(providerMocks.Client)
		client.On("Ask", mock.Anything, mock.Anything, mock.Anything).
			Return(&providers.CompletionResponse{Response: reply}, nil)

		moderator := setupAdapter(t, client, moderationConfig())
		verdict, err := moderator.Moderate(context.Background(), "some text")

		assert.NoError(t, err)
		assert.True(t, verdict.FlaggedUnsafe, "reply %q must flag the message", reply)
		assert.Equal(t, reply, verdict.RawReply)
	}
}

func TestAdapter_Moderate_ProviderErrorIsReturned(t *testing.T) {
	client := new(providerMocks.Client)
	client.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	moderator := setupAdapter(t, client, moderationConfig())
	verdict, err := moderator.Moderate(context.Background(), "some text")

	assert.Error(t, err)
	assert.False(t, verdict.FlaggedUnsafe)
	assert.Empty(t, verdict.RawReply)
}

func TestAdapter_Moderate_NilResponseIsAnError(t *testing.T) {
	client := new(providerMocks.Client)
	client.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil)

	moderator := setupAdapter(t, client, moderationConfig())
	_, err := moderator.Moderate(context.Background(), "some text")

	assert.Error(t, err)
}

func TestAdapter_Moderate_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	client := new(providerMocks.Client)
	client.On("Ask", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("provider down"))

	moderator := setupAdapter(t, client, moderationConfig())

	for i := 0; i < 6; i++ {
		_, err := moderator.Moderate(context.Background(), "some text")
		assert.Error(t, err)
	}

	// The sixth call never reaches the provider: the breaker is open.
	client.AssertNumberOfCalls(t, "Ask", 5)
}

func TestNewAdapter_CustomSystemPromptFromSettings(t *testing.T) {
	cfg := moderationConfig()
	cfg.Settings = map[string]interface{}{
		"system_prompt": "custom reviewer prompt",
	}

	client := new(providerMocks.Client)
	client.On("Ask", mock.Anything, mock.MatchedBy(func(pc *providers.Config) bool {
		return pc.SystemPrompt == "custom reviewer prompt" && pc.Credentials.ApiKey == "test-key"
	}), mock.Anything).Return(&providers.CompletionResponse{Response: "SAFE"}, nil)

	moderator := setupAdapter(t, client, cfg)
	_, err := moderator.Moderate(context.Background(), "some text")

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestNewAdapter_InvalidSettingsRejected(t *testing.T) {
	cfg := moderationConfig()
	cfg.Settings = map[string]interface{}{
		"instructions": 42,
	}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	_, err := NewAdapter(new(providerMocks.Client), cfg, logger)
	assert.Error(t, err)
}
