package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"venus-backend/application/services"
	"venus-backend/infrastructure/di"
	"venus-backend/infrastructure/persistence"
	"venus-backend/infrastructure/persistence/cache"
	"venus-backend/interfaces/http/rest"
	"venus-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminSecret = "letmein"

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequentialIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type siteAPI struct {
	server     *httptest.Server
	controller *services.StateController
}

func newSiteAPI(t *testing.T, initialize bool) *siteAPI {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewCollector("venus")

	gateway := persistence.NewGateway(nil, cache.NewMemoryCache(), logger, metrics)
	controller := services.NewStateController(gateway, time.Second, logger, metrics)
	if initialize {
		_, err := controller.Initialize(context.Background())
		require.NoError(t, err)
	}

	commandBus, err := di.ProvideCommandBus(controller, logger)
	require.NoError(t, err)
	queryBus, err := di.ProvideQueryBus(controller, logger)
	require.NoError(t, err)

	router := rest.NewRouter(rest.RouterDeps{
		CommandBus:  commandBus,
		QueryBus:    queryBus,
		Readiness:   controller,
		Auth:        services.NewAdminAuthenticator(adminSecret),
		IDs:         &sequentialIDs{},
		Metrics:     metrics,
		CORSOrigins: []string{"*"},
		Logger:      logger,
	})

	server := httptest.NewServer(router.Setup())
	t.Cleanup(func() {
		server.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = controller.Close(ctx)
	})

	return &siteAPI{server: server, controller: controller}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorBody struct {
	Error   bool   `json:"error"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (a *siteAPI) do(t *testing.T, method, path, body string, admin bool) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("X-Admin-Password", adminSecret)
	}
	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeData(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

type publicSite struct {
	Topics []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"topics"`
	Stories []struct {
		ID       string `json:"id"`
		Comments []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"comments"`
	} `json:"stories"`
	Settings struct {
		HeroTitle    string `json:"heroTitle"`
		ContactEmail string `json:"contactEmail"`
	} `json:"settings"`
}

func TestHealthAndReadiness(t *testing.T) {
	api := newSiteAPI(t, false)

	resp := api.do(t, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/ready", "", false)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	before := time.Now()
	_, err := api.controller.Initialize(context.Background())
	require.NoError(t, err)

	resp = api.do(t, http.MethodGet, "/ready", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ready map[string]string
	decodeData(t, resp, &ready)
	assert.Equal(t, "seed", ready["source"])

	loadedAt, err := time.Parse(time.RFC3339Nano, ready["loadedAt"])
	require.NoError(t, err)
	assert.False(t, loadedAt.Before(before.Truncate(time.Second)))
	assert.True(t, loadedAt.Equal(api.controller.LoadedAt()))
}

func TestMutationBeforeLoadIsUnavailable(t *testing.T) {
	api := newSiteAPI(t, false)

	resp := api.do(t, http.MethodPost, "/api/v1/stories/s1/comments",
		`{"name":"Ann","email":"ann@example.com","text":"Hello"}`, false)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "UNAVAILABLE", decodeError(t, resp).Type)
}

func TestPublicSite_CommentFlow(t *testing.T) {
	api := newSiteAPI(t, true)

	resp := api.do(t, http.MethodPost, "/api/v1/stories/s1/comments",
		`{"name":"Ann","email":"ann@example.com","text":"Hello"}`, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &created)
	assert.Equal(t, "id-1", created.ID)

	resp = api.do(t, http.MethodGet, "/api/v1/site", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var site publicSite
	decodeData(t, resp, &site)

	require.Len(t, site.Stories, 2)
	require.Len(t, site.Stories[0].Comments, 2)
	assert.Equal(t, "id-1", site.Stories[0].Comments[1].ID)
	assert.Equal(t, "Hello", site.Stories[0].Comments[1].Text)

	// hiding the comment removes it from the public view only
	resp = api.do(t, http.MethodPost, "/api/v1/admin/stories/s1/comments/id-1/visibility", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/v1/site", "", false)
	decodeData(t, resp, &site)
	require.Len(t, site.Stories[0].Comments, 1)
	assert.Equal(t, "c1", site.Stories[0].Comments[0].ID)
}

func TestPublicSite_UnknownStoryIsNoOp(t *testing.T) {
	api := newSiteAPI(t, true)
	before, err := api.controller.Snapshot()
	require.NoError(t, err)

	resp := api.do(t, http.MethodPost, "/api/v1/stories/missing/comments",
		`{"name":"Ann","email":"ann@example.com","text":"Hello"}`, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	after, err := api.controller.Snapshot()
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestSubmitBooking_Validation(t *testing.T) {
	api := newSiteAPI(t, true)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "valid booking",
			body:   `{"name":"Cy","email":"cy@example.com","phone":"555","date":"2025-03-01","topicId":"t1"}`,
			status: http.StatusCreated,
		},
		{
			name:   "malformed date",
			body:   `{"name":"Cy","email":"cy@example.com","phone":"555","date":"03/01/2025","topicId":"t1"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing email",
			body:   `{"name":"Cy","phone":"555","date":"2025-03-01","topicId":"t1"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			body:   `{"name":"Cy","email":"cy@example.com","phone":"555","date":"2025-03-01","topicId":"t1","extra":1}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "not json",
			body:   `booking please`,
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.do(t, http.MethodPost, "/api/v1/bookings", tt.body, false)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdmin_RequiresPassword(t *testing.T) {
	api := newSiteAPI(t, true)

	resp := api.do(t, http.MethodGet, "/api/v1/admin/state", "", false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Password", decodeError(t, resp).Message)

	resp = api.do(t, http.MethodPost, "/api/v1/admin/login", `{"password":"nope"}`, false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Password", decodeError(t, resp).Message)

	resp = api.do(t, http.MethodPost, "/api/v1/admin/login", `{"password":"`+adminSecret+`"}`, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Authenticated bool `json:"authenticated"`
	}
	decodeData(t, resp, &login)
	assert.True(t, login.Authenticated)
}

func TestAdmin_BookingsKeepDeletedTopicLabel(t *testing.T) {
	api := newSiteAPI(t, true)

	resp := api.do(t, http.MethodPost, "/api/v1/bookings",
		`{"name":"Cy","email":"cy@example.com","phone":"555","date":"2025-03-01","topicId":"t2"}`, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodPut, "/api/v1/admin/bookings/id-1/status", `{"status":"confirmed"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodPut, "/api/v1/admin/bookings/id-1/status", `{"status":"archived"}`, true)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/api/v1/admin/topics/t2", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/v1/admin/bookings?status=confirmed", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var bookings struct {
		Bookings []struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			TopicID    string `json:"topicId"`
			TopicTitle string `json:"topicTitle"`
		} `json:"bookings"`
		Total int `json:"total"`
	}
	decodeData(t, resp, &bookings)

	require.Equal(t, 1, bookings.Total)
	assert.Equal(t, "confirmed", bookings.Bookings[0].Status)
	assert.Equal(t, "t2", bookings.Bookings[0].TopicID)
	assert.Equal(t, "Unknown Topic", bookings.Bookings[0].TopicTitle)

	resp = api.do(t, http.MethodGet, "/api/v1/admin/bookings?status=archived", "", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdmin_CatalogueAndSettings(t *testing.T) {
	api := newSiteAPI(t, true)

	resp := api.do(t, http.MethodPost, "/api/v1/admin/topics",
		`{"title":"Negotiation","description":"Win-win","imageUrl":"https://example.com/n.jpg"}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodPut, "/api/v1/admin/topics/id-1",
		`{"title":"Negotiation II","description":"Harder","imageUrl":"https://example.com/n2.jpg"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/v1/admin/stories",
		`{"author":"Dee","role":"COO","content":"Great sessions"}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/v1/admin/stories/s2/visibility", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/api/v1/admin/stories/s1/comments/c1", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodPut, "/api/v1/admin/settings",
		`{"heroTitle":"Hello","heroSubtitle":"","heroImage":"","contactEmail":"new@example.com","contactPhone":"","contactAddress":""}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/v1/site", "", false)
	var site publicSite
	decodeData(t, resp, &site)

	require.Len(t, site.Topics, 5)
	assert.Equal(t, "Negotiation II", site.Topics[4].Title)

	var storyIDs []string
	for _, s := range site.Stories {
		storyIDs = append(storyIDs, s.ID)
	}
	assert.Equal(t, []string{"s1", "id-2"}, storyIDs)
	assert.Empty(t, site.Stories[0].Comments)

	assert.Equal(t, "Hello", site.Settings.HeroTitle)
	assert.Equal(t, "new@example.com", site.Settings.ContactEmail)

	resp = api.do(t, http.MethodDelete, "/api/v1/admin/stories/id-2", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/v1/admin/state", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var admin struct {
		State struct {
			Stories []struct {
				ID        string `json:"id"`
				IsVisible bool   `json:"isVisible"`
			} `json:"stories"`
		} `json:"state"`
	}
	decodeData(t, resp, &admin)
	require.Len(t, admin.State.Stories, 2)
	assert.False(t, admin.State.Stories[1].IsVisible)
}

func TestAssistantContext(t *testing.T) {
	api := newSiteAPI(t, true)

	resp := api.do(t, http.MethodGet, "/api/v1/assistant/context", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var grounding struct {
		Topics []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"topics"`
	}
	decodeData(t, resp, &grounding)
	require.Len(t, grounding.Topics, 4)
	assert.Equal(t, "Effective Communication Mastery", grounding.Topics[1].Title)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newSiteAPI(t, true)

	api.do(t, http.MethodGet, "/api/v1/site", "", false)

	resp := api.do(t, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `venus_http_requests_total{method="GET",route="/api/v1/site",status="200"} 1`)
	assert.Contains(t, buf.String(), `venus_gateway_loads_total{source="seed"} 1`)
}
