package mock

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	skillswapsdk "skillswap/sdk/go"
)

func newSDKClient(t *testing.T) (*skillswapsdk.Client, *skillswapsdk.Session) {
	t.Helper()
	handler, _, _ := newHandler(t)
	session := skillswapsdk.NewSession(nil)
	client := skillswapsdk.New(BaseURL, session.Store())
	client.HTTPClient = NewClient(handler)
	return client, session
}

func TestSDKRoundTripThroughTransport(t *testing.T) {
	client, session := newSDKClient(t)
	ctx := context.Background()

	session.Start(skillswapsdk.User{ID: "ana"})
	res, err := client.CreateTask(ctx, skillswapsdk.TaskDraft{Title: "Walk dog", Description: "Every morning", Tags: []string{"pets"}})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	var task skillswapsdk.Task
	if err := res.Decode(&task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	session.Login(skillswapsdk.User{ID: "kim"})
	res, err = client.GetOpenTasks(ctx, skillswapsdk.TaskQuery{Tag: "pets"})
	if err != nil {
		t.Fatalf("open tasks: %v", err)
	}
	open := skillswapsdk.TransformTaskList(res.Body)
	if open.Count != 1 || open.Tasks[0].TaskID != task.TaskID {
		t.Fatalf("unexpected open tasks %+v", open)
	}
	if _, err := client.AcceptTask(ctx, task.TaskID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := client.CompleteTask(ctx, task.TaskID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	res, err = client.GetMyAcceptedTasks(ctx)
	if err != nil {
		t.Fatalf("accepted: %v", err)
	}
	accepted := skillswapsdk.TransformTaskList(res.Body)
	if accepted.Count != 1 || accepted.Tasks[0].Status != skillswapsdk.TaskCompleted {
		t.Fatalf("unexpected accepted tasks %+v", accepted)
	}

	if _, err := client.CreateRating(ctx, skillswapsdk.RatingDraft{ToUserID: "ana", TaskID: task.TaskID, Rating: 5, Comment: "Lovely dog"}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	_, err = client.CreateRating(ctx, skillswapsdk.RatingDraft{ToUserID: "ana", TaskID: task.TaskID, Rating: 4})
	if skillswapsdk.StatusCode(err) != http.StatusConflict {
		t.Fatalf("duplicate rating: expected 409, got %v", err)
	}

	session.Login(skillswapsdk.User{ID: "ana"})
	res, err = client.GetMyRatings(ctx)
	if err != nil {
		t.Fatalf("received ratings: %v", err)
	}
	received := skillswapsdk.TransformRatingList(res.Body)
	if received.Count != 1 || received.Statistics.TotalRatings != 1 || received.Statistics.AverageRating != 5 {
		t.Fatalf("unexpected received ratings %+v", received)
	}
}

func TestSDKReadsRuleErrors(t *testing.T) {
	client, session := newSDKClient(t)
	session.Start(skillswapsdk.User{ID: "kim"})

	_, err := client.GetTask(context.Background(), "nope")
	var apiErr *skillswapsdk.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Detail != "Task not found" {
		t.Fatalf("unexpected error %+v", apiErr)
	}

	_, err = client.CreateReport(context.Background(), skillswapsdk.ReportDraft{ToUserID: "kim", Reason: "spam"})
	if !errors.As(err, &apiErr) || apiErr.Detail != "You cannot report yourself" {
		t.Fatalf("unexpected report error %v", err)
	}
}

func TestSDKFallbackIdentityIsAccepted(t *testing.T) {
	client, _ := newSDKClient(t)
	res, err := client.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks with fallback identity: %v", err)
	}
	if list := skillswapsdk.TransformTaskList(res.Body); list.Count != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

type blockingHandler struct{ release chan struct{} }

func (h blockingHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	<-h.release
	w.WriteHeader(http.StatusOK)
}

func TestTransportHonorsContext(t *testing.T) {
	h := blockingHandler{release: make(chan struct{})}
	defer close(h.release)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BaseURL+"/health", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	_, err = NewClient(h).Do(req)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestTransportWithoutHandler(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, BaseURL+"/health", nil)
	if _, err := (&Transport{}).RoundTrip(req); err == nil {
		t.Fatalf("expected error without handler")
	}
}
