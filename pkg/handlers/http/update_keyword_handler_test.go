package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/mindhaven/guardrail/pkg/domain/errors"
	"github.com/mindhaven/guardrail/pkg/domain/keyword"
	keywordMocks "github.com/mindhaven/guardrail/pkg/domain/keyword/mocks"
)

func setupUpdateKeywordApp(repo *keywordMocks.Repository) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	app := fiber.New()
	app.Put("/api/v1/keywords/:keyword_id", NewUpdateKeywordHandler(logger, repo).Handle)
	return app
}

func putKeyword(t *testing.T, app *fiber.App, id string, body map[string]interface{}) (int, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", "/api/v1/keywords/"+id, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestUpdateKeywordHandler_TogglesActive(t *testing.T) {
	repo := new(keywordMocks.Repository)
	id := uuid.New()

	repo.On("Get", mock.Anything, id).Return(&keyword.CrisisKeyword{
		ID:       id,
		Keyword:  "hopeless",
		Severity: keyword.SeverityMedium,
		Active:   true,
	}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *keyword.CrisisKeyword) bool {
		return e.ID == id && !e.Active
	})).Return(nil)

	app := setupUpdateKeywordApp(repo)
	status, body := putKeyword(t, app, id.String(), map[string]interface{}{
		"active": false,
	})

	assert.Equal(t, fiber.StatusOK, status)

	var updated keyword.CrisisKeyword
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.False(t, updated.Active)
	repo.AssertExpectations(t)
}

func TestUpdateKeywordHandler_UnknownKeywordReturns404(t *testing.T) {
	repo := new(keywordMocks.Repository)
	id := uuid.New()

	repo.On("Get", mock.Anything, id).
		Return(nil, domainerrors.NewNotFoundError("crisis_keyword", id))

	app := setupUpdateKeywordApp(repo)
	status, _ := putKeyword(t, app, id.String(), map[string]interface{}{
		"active": false,
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateKeywordHandler_RejectsInvalidSeverity(t *testing.T) {
	repo := new(keywordMocks.Repository)
	id := uuid.New()

	repo.On("Get", mock.Anything, id).Return(&keyword.CrisisKeyword{
		ID:       id,
		Keyword:  "hopeless",
		Severity: keyword.SeverityMedium,
		Active:   true,
	}, nil)

	app := setupUpdateKeywordApp(repo)
	status, _ := putKeyword(t, app, id.String(), map[string]interface{}{
		"severity": "extreme",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateKeywordHandler_EmptyBodyIsRejected(t *testing.T) {
	repo := new(keywordMocks.Repository)

	app := setupUpdateKeywordApp(repo)
	status, _ := putKeyword(t, app, uuid.New().String(), map[string]interface{}{})

	assert.Equal(t, fiber.StatusBadRequest, status)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
