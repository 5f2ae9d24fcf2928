package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/farm-helpdesk/internal/api/dto"
	httptransport "github.com/spec-kit/farm-helpdesk/internal/api/http"
	"github.com/spec-kit/farm-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/farm-helpdesk/internal/auth"
	"github.com/spec-kit/farm-helpdesk/internal/config"
	"github.com/spec-kit/farm-helpdesk/internal/events"
	"github.com/spec-kit/farm-helpdesk/internal/observability"
	"github.com/spec-kit/farm-helpdesk/internal/repository"
	"github.com/spec-kit/farm-helpdesk/internal/service"
)

type stubSummarizer struct {
	text string
	err  error
}

func (s stubSummarizer) Summarize(context.Context, string, string, string) (string, error) {
	return s.text, s.err
}

// envelope mirrors dto.Envelope but defers data decoding to the caller.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{Name: "farm-helpdesk", Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:             "integration-test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}

	logger := zap.NewNop()
	users := repository.NewMemoryUserRepository()
	issues := repository.NewMemoryIssueRepository(users)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg, users)
	issueService := service.NewIssueService(service.IssueDependencies{
		IssueRepo:  issues,
		UserRepo:   users,
		Summarizer: stubSummarizer{text: "Likely a pest infestation. Apply neem-based treatment."},
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	analyticsService := service.NewAnalyticsService(issues)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		FarmerIssues:   handlers.NewFarmerIssuesHandler(issueService),
		AdminIssues:    handlers.NewAdminIssuesHandler(issueService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp, env
}

func registerAccount(t *testing.T, app *fiber.App, name, email, role string) (userID, token string) {
	t.Helper()

	resp, env := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "plowshare",
		"role":     role,
		"district": "Nakuru",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	var authResp dto.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &authResp))
	require.NotEmpty(t, authResp.Token)
	return authResp.User.ID, authResp.Token
}

func createIssue(t *testing.T, app *fiber.App, token, title string) dto.IssueResponse {
	t.Helper()

	resp, env := doRequest(t, app, http.MethodPost, "/api/v1/farmer/issues", token, fiber.Map{
		"title":       title,
		"description": "Leaves are covered with small white insects.",
		"category":    "pests",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)
	assert.Equal(t, "Issue created successfully", env.Message)

	var issue dto.IssueResponse
	require.NoError(t, json.Unmarshal(env.Data, &issue))
	return issue
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, env := doRequest(t, app, http.MethodGet, "/api/v1/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "alive", env.Message)
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)
	registerAccount(t, app, "Amina", "amina@farm.test", "farmer")

	resp, env := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "amina@farm.test",
		"password": "plowshare",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	var authResp dto.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &authResp))
	assert.Equal(t, "Amina", authResp.User.Name)
	assert.NotEmpty(t, authResp.Token)
}

func TestLoginBadPassword(t *testing.T) {
	app := newTestApp(t)
	registerAccount(t, app, "Amina", "amina@farm.test", "farmer")

	resp, env := doRequest(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "amina@farm.test",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid credentials", env.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	registerAccount(t, app, "Amina", "amina@farm.test", "farmer")

	resp, env := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     "Other",
		"email":    "amina@farm.test",
		"password": "plowshare",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestFarmerIssueLifecycle(t *testing.T) {
	app := newTestApp(t)
	farmerID, farmerToken := registerAccount(t, app, "Amina", "amina@farm.test", "farmer")

	issue := createIssue(t, app, farmerToken, "Whiteflies on tomatoes")
	assert.Equal(t, farmerID, issue.FarmerID)
	assert.Equal(t, "pending", string(issue.Status))
	assert.Equal(t, "medium", string(issue.Priority))
	require.NotNil(t, issue.Summary)
	assert.Contains(t, *issue.Summary, "pest infestation")
	require.NotNil(t, issue.Farmer)
	assert.Equal(t, "Amina", issue.Farmer.Name)

	resp, env := doRequest(t, app, http.MethodGet, "/api/v1/farmer/issues", farmerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list dto.IssueListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 10, list.Limit)
	assert.Equal(t, 1, list.TotalPages)
	require.Len(t, list.Issues, 1)

	resp, env = doRequest(t, app, http.MethodGet, "/api/v1/farmer/issues/"+issue.ID, farmerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched dto.IssueResponse
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, issue.ID, fetched.ID)
}

func TestFarmerCannotSeeForeignIssue(t *testing.T) {
	app := newTestApp(t)
	_, aminaToken := registerAccount(t, app, "Amina", "amina@farm.test", "farmer")
	_, bashirToken := registerAccount(t, app, "Bashir", "bashir@farm.test", "farmer")

	issue := createIssue(t, app, aminaToken, "Whiteflies on tomatoes")

	resp, env := doRequest(t, app, http.MethodGet, "/api/v1/farmer/issues/"+issue.ID, bashirToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "foreign issues look like missing issues")
	assert.False(t, env.Success)

	resp, env = doRequest(t, app, http.MethodGet, "/api/v1/farmer/issues", bashirToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.IssueListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Zero(t, list.Total)
}

func TestCreateIssueValidation(t *testing.T) {
	app := newTestApp(t)
	_, farmerToken := registerAccount(t, app, "Amina", "amina@farm.test", "farmer")

	resp, env := doRequest(t, app, http.MethodPost, "/api/v1/farmer/issues", farmerToken, fiber.Map{
		"title":    "",
		"category": "pests",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
	assert.Equal(t, "null", string(env.Data), "failures carry a null payload")
}

func TestAdminStatusAndResponse(t *testing.T) {
	app := newTestApp(t)
	_, farmerToken := registerAccount(t, app, "Amina", "amina@farm.test", "farmer")
	_, adminToken := registerAccount(t, app, "Root", "root@helpdesk.test", "admin")

	issue := createIssue(t, app, farmerToken, "Whiteflies on tomatoes")

	resp, env := doRequest(t, app, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/issues/%s/status", issue.ID), adminToken,
		fiber.Map{"status": "in_progress"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.IssueResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "in_progress", string(updated.Status))

	resp, env = doRequest(t, app, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/issues/%s/respond", issue.ID), adminToken,
		fiber.Map{"adminResponse": "Spray neem oil twice a week."})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.NotNil(t, updated.AdminResponse)
	assert.Equal(t, "Spray neem oil twice a week.", *updated.AdminResponse)

	resp, env = doRequest(t, app, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/issues/%s/status", issue.ID), adminToken,
		fiber.Map{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = doRequest(t, app, http.MethodPatch,
		"/api/v1/admin/issues/does-not-exist/status", adminToken,
		fiber.Map{"status": "resolved"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminListSeesAllFarmers(t *testing.T) {
	app := newTestApp(t)
	_, aminaToken := registerAccount(t, app, "Amina", "amina@farm.test", "farmer")
	_, bashirToken := registerAccount(t, app, "Bashir", "bashir@farm.test", "farmer")
	_, adminToken := registerAccount(t, app, "Root", "root@helpdesk.test", "admin")

	createIssue(t, app, aminaToken, "Whiteflies on tomatoes")
	createIssue(t, app, bashirToken, "Broken irrigation pump")

	resp, env := doRequest(t, app, http.MethodGet, "/api/v1/admin/issues", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Issues fetched successfully", env.Message)

	var list dto.IssueListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Issues, 2)
}

func TestAnalyticsEndpoints(t *testing.T) {
	app := newTestApp(t)
	_, farmerToken := registerAccount(t, app, "Amina", "amina@farm.test", "farmer")
	_, adminToken := registerAccount(t, app, "Root", "root@helpdesk.test", "admin")

	issue := createIssue(t, app, farmerToken, "Whiteflies on tomatoes")
	createIssue(t, app, farmerToken, "Broken irrigation pump")

	resp, _ := doRequest(t, app, http.MethodPatch,
		fmt.Sprintf("/api/v1/admin/issues/%s/status", issue.ID), adminToken,
		fiber.Map{"status": "resolved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodGet, "/api/v1/admin/analytics/summary", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary dto.AnalyticsSummaryResponse
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.TotalCount)
	assert.ElementsMatch(t, []string{"pending", "resolved"}, summary.StatusData.Labels)
	require.NotEmpty(t, summary.CategoryData.Labels)
	assert.Equal(t, "pests", summary.CategoryData.Labels[0])

	resp, env = doRequest(t, app, http.MethodGet, "/api/v1/admin/analytics/trends?months=3", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trends dto.AnalyticsTrendsResponse
	require.NoError(t, json.Unmarshal(env.Data, &trends))
	require.Len(t, trends.TrendsData.Labels, 1, "all issues were created this month")
	require.Len(t, trends.TrendsData.Datasets, 2)
	assert.Equal(t, []int{2}, trends.TrendsData.Datasets[0].Data)
	assert.Equal(t, []int{1}, trends.TrendsData.Datasets[1].Data)
	assert.GreaterOrEqual(t, trends.AverageResolutionTimeHours, 0.0)
}

func TestAuthGuards(t *testing.T) {
	app := newTestApp(t)
	_, farmerToken := registerAccount(t, app, "Amina", "amina@farm.test", "farmer")
	_, adminToken := registerAccount(t, app, "Root", "root@helpdesk.test", "admin")

	resp, env := doRequest(t, app, http.MethodGet, "/api/v1/farmer/issues", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	resp, env = doRequest(t, app, http.MethodGet, "/api/v1/admin/issues", farmerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)

	resp, env = doRequest(t, app, http.MethodGet, "/api/v1/farmer/issues", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/farmer/issues", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
