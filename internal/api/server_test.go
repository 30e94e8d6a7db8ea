package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymlink-api/internal/catalog"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/observability"
	"gymlink-api/internal/models"
	"gymlink-api/internal/service"
	"gymlink-api/internal/vocabulary"
	extractfilters "gymlink-api/internal/workers/search/extract-filters"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.BusinessRecord{
		{ID: 1, Name: "Iron Temple", Category: "Gym", Location: "Sydney", Price: 30, Vibe: "Intense", Rating: 4.6,
			Services: []string{"Personal Training", "Sauna"}, Description: "Heavy lifting floor"},
		{ID: 2, Name: "Still Waters Yoga", Category: "Yoga", Location: "Melbourne", Price: 25, Vibe: "Calm", Rating: 4.8,
			Services: []string{"Meditation"}, Description: "Slow flow classes"},
		{ID: 3, Name: "Harbour Boxing", Category: "Boxing", Location: "Sydney", Price: 50, Vibe: "Community", Rating: 4.8,
			Services: []string{"Boxing Classes"}, Description: "Pad work and sparring"},
	})
}

func newTestRouter(t *testing.T, cat *catalog.Catalog) http.Handler {
	vocab := vocabulary.Default()
	log := logger.NewTestLogger(t)
	obs := observability.NewNoop()
	cache := service.DisabledCache()

	return NewRouter(Dependencies{
		Directory: service.NewDirectoryService(cat),
		Search:    service.NewSearchService(cat, extractfilters.NewExtractor(vocab), cache, obs, log),
		Chatbot:   service.NewChatbotService(cat, vocab, cache, obs, log),
		Cache:     cache,
		Logger:    log,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, code, errBody["code"])
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, float64(3), body["catalogRecords"])
	assert.Equal(t, "disabled", body["cache"])
}

func TestReady_EmptyCatalog(t *testing.T) {
	router := newTestRouter(t, catalog.Empty())

	rec := do(t, router, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListBusinesses(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	t.Run("all records", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/businesses", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(3), body["total"])
	})

	t.Run("filters combine", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/businesses?location=sydney&maxPrice=40", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, float64(1), body["total"])
		data := body["data"].([]any)
		assert.Equal(t, "Iron Temple", data[0].(map[string]any)["name"])
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/businesses?search=pilates", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":[],"total":0}`, rec.Body.String())
	})

	t.Run("non-numeric price", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/businesses?minPrice=cheap", "")

		assertError(t, rec, http.StatusBadRequest, "INVALID_FILTER_VALUE")
	})
}

func TestGetBusiness(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	rec := do(t, router, http.MethodGet, "/api/businesses/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Still Waters Yoga", data["name"])

	assertError(t, do(t, router, http.MethodGet, "/api/businesses/abc", ""), http.StatusBadRequest, "INVALID_BUSINESS_ID")
	assertError(t, do(t, router, http.MethodGet, "/api/businesses/0", ""), http.StatusBadRequest, "INVALID_BUSINESS_ID")
	assertError(t, do(t, router, http.MethodGet, "/api/businesses/99", ""), http.StatusNotFound, "BUSINESS_NOT_FOUND")
}

func TestFilterOptions(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	rec := do(t, router, http.MethodGet, "/api/businesses/search/filter", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, []any{"Gym", "Yoga", "Boxing"}, data["categories"])
	assert.Equal(t, []any{"Sydney", "Melbourne"}, data["locations"])
	assert.Equal(t, map[string]any{"min": float64(25), "max": float64(50)}, data["priceRange"])
}

func TestNaturalSearch(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	t.Run("extracted filters are applied", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/businesses/search/natural", `{"query":"cheap yoga in Melbourne"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, float64(1), body["total"])
		assert.Equal(t, "cheap yoga in Melbourne", body["originalQuery"])
		assert.Equal(t, map[string]any{"category": "Yoga", "location": "Melbourne", "maxPrice": float64(35)}, body["appliedFilters"])
	})

	t.Run("missing query", func(t *testing.T) {
		assertError(t, do(t, router, http.MethodPost, "/api/businesses/search/natural", `{}`), http.StatusBadRequest, "QUERY_REQUIRED")
	})

	t.Run("blank query", func(t *testing.T) {
		assertError(t, do(t, router, http.MethodPost, "/api/businesses/search/natural", `{"query":"   "}`), http.StatusBadRequest, "QUERY_REQUIRED")
	})

	t.Run("malformed body", func(t *testing.T) {
		assertError(t, do(t, router, http.MethodPost, "/api/businesses/search/natural", `{"query":`), http.StatusBadRequest, "INVALID_REQUEST_BODY")
	})

	t.Run("long query within the body limit", func(t *testing.T) {
		query := "cheap yoga in Melbourne " + strings.Repeat("z", 1500)
		rec := do(t, router, http.MethodPost, "/api/businesses/search/natural", `{"query":"`+query+`"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, float64(1), decode(t, rec)["total"])
	})

	t.Run("body over the limit", func(t *testing.T) {
		body := `{"query":"` + strings.Repeat("z", maxBodyBytes) + `"}`
		assertError(t, do(t, router, http.MethodPost, "/api/businesses/search/natural", body), http.StatusBadRequest, "INVALID_REQUEST_BODY")
	})
}

func TestChatbot(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	t.Run("small talk", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/chatbot", `{"question":"  hello  "}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "hello", body["question"])
		assert.Equal(t, vocabulary.Default().Conversation.Replies[0].Answer, body["answer"])
		assert.Equal(t, []any{}, body["data"])
		assert.Equal(t, map[string]any{}, body["appliedFilters"])
		assert.Equal(t, float64(0), body["total"])
	})

	t.Run("catalog question", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/chatbot", `{"question":"where can I box in sydney"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "I found businesses in: Sydney. There are 2 total businesses in these locations.", body["answer"])
		assert.Equal(t, float64(2), body["total"])
	})

	t.Run("missing question", func(t *testing.T) {
		assertError(t, do(t, router, http.MethodPost, "/api/chatbot", `{"question":""}`), http.StatusBadRequest, "QUERY_REQUIRED")
	})

	t.Run("long question", func(t *testing.T) {
		question := "where can I box in sydney " + strings.Repeat("z", 1500)
		rec := do(t, router, http.MethodPost, "/api/chatbot", `{"question":"`+question+`"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, float64(2), decode(t, rec)["total"])
	})

	t.Run("capabilities", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/chatbot/capabilities", "")

		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec)["data"].(map[string]any)
		assert.Equal(t, "Fitness businesses database with 3 businesses across Australia", data["dataSource"])
		assert.LessOrEqual(t, len(data["exampleQuestions"].([]any)), 8)
	})
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	req := httptest.NewRequest(http.MethodOptions, "/api/chatbot", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, testCatalog())

	do(t, router, http.MethodGet, "/api/businesses", "")
	rec := do(t, router, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
