package mock

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"testing"

	"skillswap/internal/db"
	"skillswap/internal/domain"
	"skillswap/internal/engine"
	"skillswap/internal/migrate"
)

type testServer struct {
	URL     string
	Engine  engine.Engine
	Handler http.Handler
	logs    *bytes.Buffer
	close   func()
}

func newHandler(t *testing.T) (http.Handler, engine.Engine, *bytes.Buffer) {
	t.Helper()
	conn, err := db.Open(db.Config{InMemory: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	ctx := context.Background()
	if _, err := migrate.Migrate(ctx, conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := engine.New(conn)
	for _, id := range []string{"ana", "kim"} {
		if _, err := e.CreateUser(ctx, id, engine.UserInput{FullName: strings.ToUpper(id), Email: id + "@example.com", Skill: "gardening"}); err != nil {
			t.Fatalf("create user %s: %v", id, err)
		}
	}
	var logs bytes.Buffer
	handler, err := New(Config{Engine: e, Logger: log.New(&logs, "", 0)})
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	return handler, e, &logs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	handler, e, logs := newHandler(t)
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &http.Server{Handler: handler}
	go srv.Serve(ln)
	ts := &testServer{
		URL:     "http://" + ln.Addr().String(),
		Engine:  e,
		Handler: handler,
		logs:    logs,
		close: func() {
			srv.Shutdown(context.Background())
			ln.Close()
		},
	}
	t.Cleanup(ts.close)
	return ts
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, userID string) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, data
}

func detailOf(t *testing.T, data []byte) any {
	t.Helper()
	var env struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal error body %s: %v", string(data), err)
	}
	return env.Detail
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t)
	res, data := doJSON(t, http.DefaultClient, http.MethodGet, srv.URL+"/health", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health status %d: %s", res.StatusCode, string(data))
	}
	if !strings.Contains(string(data), `"healthy"`) {
		t.Fatalf("unexpected health body: %s", string(data))
	}
}

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	srv := newTestServer(t)
	res, data := doJSON(t, http.DefaultClient, http.MethodGet, srv.URL+"/tasks/open", nil, "")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", res.StatusCode, string(data))
	}
	if got := detailOf(t, data); got != missingAuthDetail {
		t.Fatalf("unexpected detail %v", got)
	}
	res, _ = doJSON(t, http.DefaultClient, http.MethodGet, srv.URL+"/tasks/open", nil, "   ")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("blank identity: expected 401, got %d", res.StatusCode)
	}
}

func TestTaskFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	client := http.DefaultClient

	res, data := doJSON(t, client, http.MethodPost, srv.URL+"/tasks/", map[string]any{
		"title":       "Water plants",
		"description": "Two weeks while I travel",
		"tags":        []string{"Garden", "garden", " pets "},
	}, "ana")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("create task status %d: %s", res.StatusCode, string(data))
	}
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("unmarshal task: %v", err)
	}
	if task.Status != domain.StatusOpen || task.PostedBy != "ana" {
		t.Fatalf("unexpected task %+v", task)
	}

	res, data = doJSON(t, client, http.MethodPost, srv.URL+"/tasks/"+task.TaskID+"/accept", nil, "ana")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("self accept: expected 400, got %d: %s", res.StatusCode, string(data))
	}
	if got := detailOf(t, data); got != "You cannot accept your own task" {
		t.Fatalf("unexpected detail %v", got)
	}

	res, data = doJSON(t, client, http.MethodPost, srv.URL+"/tasks/"+task.TaskID+"/accept", nil, "kim")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("accept status %d: %s", res.StatusCode, string(data))
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/tasks/my/accepted", nil, "kim")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("accepted list status %d: %s", res.StatusCode, string(data))
	}
	var items TaskItemsResponse
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("unmarshal items: %v", err)
	}
	if items.Count != 1 || items.Items[0].TaskID != task.TaskID {
		t.Fatalf("unexpected accepted list %+v", items)
	}

	res, data = doJSON(t, client, http.MethodGet, srv.URL+"/tasks/missing", nil, "kim")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing task: expected 404, got %d: %s", res.StatusCode, string(data))
	}
	if got := detailOf(t, data); got != "Task not found" {
		t.Fatalf("unexpected detail %v", got)
	}
}

func TestRequestValidationListsDetails(t *testing.T) {
	srv := newTestServer(t)
	res, data := doJSON(t, http.DefaultClient, http.MethodPost, srv.URL+"/users/", map[string]any{
		"full_name": "Nobody",
		"email":     "not-an-email",
		"skill":     "none",
	}, "zed")
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", res.StatusCode, string(data))
	}
	items, ok := detailOf(t, data).([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected detail list, got %s", string(data))
	}
	first, _ := items[0].(map[string]any)
	if first["msg"] == "" || first["loc"] == nil {
		t.Fatalf("unexpected detail entry %v", first)
	}
}

func TestFlagRatingUsesQueryReason(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	task, err := srv.Engine.CreateTask(ctx, "ana", engine.TaskInput{Title: "Paint fence", Description: "Needs two coats"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := srv.Engine.AcceptTask(ctx, "kim", task.TaskID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := srv.Engine.CompleteTask(ctx, "kim", task.TaskID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	rt, err := srv.Engine.CreateRating(ctx, "kim", engine.RatingInput{ToUserID: "ana", TaskID: task.TaskID, Rating: 2, Comment: "Paint was missing"})
	if err != nil {
		t.Fatalf("create rating: %v", err)
	}

	res, data := doJSON(t, http.DefaultClient, http.MethodPost, srv.URL+"/ratings/"+rt.RatingID+"/flag?flag_reason=short", nil, "ana")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("short reason: expected 400, got %d: %s", res.StatusCode, string(data))
	}
	res, data = doJSON(t, http.DefaultClient, http.MethodPost, srv.URL+"/ratings/"+rt.RatingID+"/flag?flag_reason=Paint+was+provided+upfront", nil, "ana")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("flag status %d: %s", res.StatusCode, string(data))
	}
	var flagged FlagResponse
	if err := json.Unmarshal(data, &flagged); err != nil {
		t.Fatalf("unmarshal flag: %v", err)
	}
	if flagged.RatingID != rt.RatingID || flagged.FlaggedAt == "" {
		t.Fatalf("unexpected flag response %+v", flagged)
	}
	res, _ = doJSON(t, http.DefaultClient, http.MethodPost, srv.URL+"/ratings/"+rt.RatingID+"/flag?flag_reason=Paint+was+provided+upfront", nil, "ana")
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("second flag: expected 409, got %d", res.StatusCode)
	}
}

func TestRequestsAreLogged(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.DefaultClient, http.MethodGet, srv.URL+"/tasks/", nil, "ana")
	if !strings.Contains(srv.logs.String(), "mock: GET /tasks/ 200") || !strings.Contains(srv.logs.String(), "actor_id=ana") {
		t.Fatalf("unexpected log output: %q", srv.logs.String())
	}
}

func TestOpenAPIDocumentsIdentityHeader(t *testing.T) {
	srv := newTestServer(t)
	res, data := doJSON(t, http.DefaultClient, http.MethodGet, srv.URL+"/openapi.json", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("openapi status %d", res.StatusCode)
	}
	if !strings.Contains(string(data), `"userIdHeader"`) || !strings.Contains(string(data), HeaderUserID) {
		t.Fatalf("openapi lacks identity scheme")
	}
}
