package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/day-reel/app/browser"
	"github.com/lysyi3m/day-reel/app/content"
	"github.com/lysyi3m/day-reel/app/source"
	"github.com/lysyi3m/day-reel/app/tasks"
)

type mockScheduler struct {
	enqueued int
	err      error
}

func (m *mockScheduler) Start() {}
func (m *mockScheduler) Stop()  {}

func (m *mockScheduler) EnqueueTask(task tasks.TaskInterface) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued++
	return nil
}

func (m *mockScheduler) EnqueueRefresh() (tasks.TaskInterface, error) {
	task := tasks.NewRefreshCollectionsTask(browser.NewState(), nil)
	if err := m.EnqueueTask(task); err != nil {
		return nil, err
	}
	return task, nil
}

func testSequence() content.Sequence {
	return content.Sequence{
		{Date: "2025-06-17", Items: []content.Item{
			content.NewVideo("https://www.youtube.com/watch?v=pOsFdlStD7U"),
			content.NewVideo("https://youtu.be/short"),
			content.NewPost("1934567890123456789"),
			content.NewPost("1934567890123456790"),
		}},
		{Date: "2025-06-16", Items: []content.Item{
			content.NewVideo("https://youtu.be/aaaaaaaaaaa"),
		}},
	}
}

func setupServer(t *testing.T, state *browser.State, scheduler *mockScheduler, perMinute int) *gin.Engine {
	t.Helper()
	server := NewServer(NewHandler(state, scheduler, perMinute, "test"))
	gin.SetMode(gin.TestMode)
	return server
}

func perform(server *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestGetPage(t *testing.T) {
	state := browser.NewState()
	state.Replace(testSequence())
	server := setupServer(t, state, &mockScheduler{}, 1)

	w := perform(server, http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Tuesday, June 17, 2025") {
		t.Error("Page should contain the formatted date")
	}
	if !strings.Contains(body, `src="https://www.youtube.com/embed/pOsFdlStD7U"`) {
		t.Error("Page should embed the extracted video")
	}
	if strings.Contains(body, "youtu.be/short") {
		t.Error("Page should skip videos without a valid identifier")
	}
	if strings.Count(body, "platform.twitter.com/widgets.js") != 1 {
		t.Errorf("Expected the widget script exactly once, got %d", strings.Count(body, "platform.twitter.com/widgets.js"))
	}
	if !strings.Contains(body, "https://twitter.com/x/status/1934567890123456790") {
		t.Error("Page should embed every post")
	}
	if !strings.Contains(body, `aria-label="Next day" disabled`) {
		t.Error("Next control should be disabled on the newest day")
	}
	if strings.Contains(body, `aria-label="Previous day" disabled`) {
		t.Error("Previous control should be enabled when older days exist")
	}
}

func TestGetPageEmpty(t *testing.T) {
	server := setupServer(t, browser.NewState(), &mockScheduler{}, 1)

	w := perform(server, http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No videos available") {
		t.Error("Empty page should say no videos are available")
	}
}

func TestNavigation(t *testing.T) {
	state := browser.NewState()
	state.Replace(testSequence())
	server := setupServer(t, state, &mockScheduler{}, 1)

	w := perform(server, http.MethodPost, "/previous")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("Expected redirect to /, got %d %s", w.Code, w.Header().Get("Location"))
	}
	if state.CurrentIndex() != 1 {
		t.Errorf("Expected index 1, got %d", state.CurrentIndex())
	}

	perform(server, http.MethodPost, "/previous")
	if state.CurrentIndex() != 1 {
		t.Errorf("Expected index to stay at 1, got %d", state.CurrentIndex())
	}

	w = perform(server, http.MethodGet, "/")
	if !strings.Contains(w.Body.String(), "Monday, June 16, 2025") {
		t.Error("Page should show the older day")
	}
	if !strings.Contains(w.Body.String(), `aria-label="Previous day" disabled`) {
		t.Error("Previous control should be disabled on the oldest day")
	}

	perform(server, http.MethodPost, "/next")
	perform(server, http.MethodPost, "/next")
	if state.CurrentIndex() != 0 {
		t.Errorf("Expected index 0, got %d", state.CurrentIndex())
	}
}

func TestGetDay(t *testing.T) {
	state := browser.NewState()
	state.Replace(testSequence())
	server := setupServer(t, state, &mockScheduler{}, 1)

	w := perform(server, http.MethodGet, "/days/2025-06-16")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if state.CurrentIndex() != 1 {
		t.Errorf("Expected index 1, got %d", state.CurrentIndex())
	}

	w = perform(server, http.MethodGet, "/days/1999-01-01")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestAPIStateAndCollections(t *testing.T) {
	state := browser.NewState()
	generation, _ := state.BeginRefresh()
	state.CompleteRefresh(generation, source.Result{
		Collections:  source.DefaultFallback(),
		UsedFallback: true,
		Err:          errors.New("fetch failed"),
		ResolvedAt:   time.Now(),
	})
	server := setupServer(t, state, &mockScheduler{}, 1)

	w := perform(server, http.MethodGet, "/api/state")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got["fallback"] != true || got["last_error"] != "fetch failed" {
		t.Errorf("Expected fallback state, got %v", got)
	}
	if got["date"] != source.DefaultFallback()[0].Date {
		t.Errorf("Expected fallback date, got %v", got["date"])
	}

	w = perform(server, http.MethodGet, "/api/collections")
	var collections struct {
		Collections content.Sequence `json:"collections"`
		Total       int              `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &collections); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if collections.Total != 1 || collections.Collections[0].Items[0].Type != content.ItemTypeVideo {
		t.Errorf("Unexpected collections %+v", collections)
	}

	w = perform(server, http.MethodGet, "/")
	if !strings.Contains(w.Body.String(), "showing saved collection: fetch failed") {
		t.Error("Page should show the fallback indicator")
	}
}

func TestAPIRefresh(t *testing.T) {
	scheduler := &mockScheduler{}
	server := setupServer(t, browser.NewState(), scheduler, 1)

	w := perform(server, http.MethodPost, "/api/refresh")
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d", w.Code)
	}
	if scheduler.enqueued != 1 {
		t.Errorf("Expected 1 enqueued task, got %d", scheduler.enqueued)
	}

	w = perform(server, http.MethodPost, "/api/refresh")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
}

func TestAPIRefreshDisabledAndFailing(t *testing.T) {
	server := setupServer(t, browser.NewState(), &mockScheduler{}, 0)
	if w := perform(server, http.MethodPost, "/api/refresh"); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 when manual refresh is disabled, got %d", w.Code)
	}

	server = setupServer(t, browser.NewState(), &mockScheduler{err: errors.New("task queue is full")}, 5)
	if w := perform(server, http.MethodPost, "/api/refresh"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestHealthAndFavicon(t *testing.T) {
	state := browser.NewState()
	state.Replace(testSequence())
	server := setupServer(t, state, &mockScheduler{}, 1)

	w := perform(server, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if health["collections"] != float64(2) || health["version"] != "test" {
		t.Errorf("Unexpected health response %v", health)
	}

	if w := perform(server, http.MethodGet, "/favicon.ico"); w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}

func TestBuildEmbedsWidgetGuard(t *testing.T) {
	embeds := buildEmbeds([]content.Item{
		content.NewPost("1"),
		content.NewVideo("not a video"),
		content.NewPost("2"),
		content.NewVideo("https://youtu.be/pOsFdlStD7U"),
	})

	if len(embeds) != 3 {
		t.Fatalf("Expected 3 embeds, got %d", len(embeds))
	}
	if !embeds[0].LoadWidget || embeds[1].LoadWidget {
		t.Error("Expected only the first post to load the widget")
	}
	if embeds[2].Number != 3 || embeds[2].EmbedURL != "https://www.youtube.com/embed/pOsFdlStD7U" {
		t.Errorf("Unexpected video embed %+v", embeds[2])
	}
}
