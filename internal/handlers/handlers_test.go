package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ascend-app/ascend-api/internal/config"
	"github.com/ascend-app/ascend-api/internal/database"
	"github.com/ascend-app/ascend-api/internal/middleware"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/ascend-app/ascend-api/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, models.User, string) {
	t.Helper()

	cfg := &config.Config{
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
		Env:         "test",
	}
	require.NoError(t, database.Connect(cfg))
	require.NoError(t, database.Migrate())

	user := models.User{Email: "ana@example.com", Password: "hashed", Name: "Ana"}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := middleware.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	routes.Setup(app)
	return app, user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type completeResponse struct {
	Data        models.Action           `json:"data"`
	Record      *models.CompletedAction `json:"record"`
	SharePrompt bool                    `json:"sharePrompt"`
}

func TestCompleteActionIsIdempotent(t *testing.T) {
	app, user, token := setupApp(t)

	action := models.Action{UserID: user.ID, Title: "Morning run", Kind: models.ActionCommitment}
	require.NoError(t, database.DB.Create(&action).Error)

	path := "/api/actions/" + action.ID.String() + "/complete"
	body := models.CompleteActionRequest{Visibility: "public", ContentType: "photo"}

	resp := doRequest(t, app, http.MethodPut, path, token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first completeResponse
	decodeBody(t, resp, &first)
	assert.True(t, first.Data.Done)
	assert.Equal(t, 1, first.Data.Streak)
	assert.True(t, first.SharePrompt)
	require.NotNil(t, first.Record)
	assert.Equal(t, models.RecordPhoto, first.Record.Type)

	// Repeat call returns current state without another increment or record.
	resp = doRequest(t, app, http.MethodPut, path, token, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second completeResponse
	decodeBody(t, resp, &second)
	assert.True(t, second.Data.Done)
	assert.Equal(t, 1, second.Data.Streak)
	assert.False(t, second.SharePrompt)
	assert.Nil(t, second.Record)

	var records int64
	database.DB.Model(&models.CompletedAction{}).Count(&records)
	assert.EqualValues(t, 1, records)
}

func TestCompleteActionDefaultsToPrivateCheck(t *testing.T) {
	app, user, token := setupApp(t)

	action := models.Action{UserID: user.ID, Title: "Meditate", Kind: models.ActionCommitment}
	require.NoError(t, database.DB.Create(&action).Error)

	resp := doRequest(t, app, http.MethodPut, "/api/actions/"+action.ID.String()+"/complete", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got completeResponse
	decodeBody(t, resp, &got)
	require.NotNil(t, got.Record)
	assert.Equal(t, models.RecordCheck, got.Record.Type)
	assert.True(t, got.Record.IsPrivate)
	assert.False(t, got.SharePrompt)
	assert.Nil(t, got.Record.MediaURL)
}

func TestUpdateGoalRejectsMalformedID(t *testing.T) {
	app, _, token := setupApp(t)

	resp := doRequest(t, app, http.MethodPut, "/api/goals/not-a-uuid", token, fiber.Map{"title": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid goal ID", body["error"])
}

func TestUpdateGoalUnknownIDIsNotFound(t *testing.T) {
	app, _, token := setupApp(t)

	resp := doRequest(t, app, http.MethodPut, "/api/goals/"+uuid.NewString(), token, fiber.Map{"title": "x"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Goal not found", body["error"])
}

func TestDeleteGoalUnknownIDIsNotFound(t *testing.T) {
	app, _, token := setupApp(t)

	resp := doRequest(t, app, http.MethodDelete, "/api/goals/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMilestoneLookupMisses(t *testing.T) {
	app, user, token := setupApp(t)

	goal := models.Goal{UserID: user.ID, Title: "Lose 10kg", Status: models.StatusOnTrack}
	require.NoError(t, database.DB.Create(&goal).Error)

	base := "/api/goals/" + goal.ID.String() + "/milestones/"

	resp := doRequest(t, app, http.MethodPost, base+"not-a-uuid/toggle", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, base+uuid.NewString()+"/toggle", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/goals/"+uuid.NewString()+"/milestones/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReplaceMilestonesUnknownGoalIsNotFound(t *testing.T) {
	app, _, token := setupApp(t)

	resp := doRequest(t, app, http.MethodPut, "/api/goals/"+uuid.NewString()+"/milestones", token,
		models.ReplaceMilestonesRequest{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
