package engine_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"skillswap/internal/db"
	"skillswap/internal/domain"
	"skillswap/internal/engine"
	"skillswap/internal/migrate"
	"skillswap/internal/repo"
)

type testEnv struct {
	Engine engine.Engine
	Ctx    context.Context
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	ctx := context.Background()
	if _, err := migrate.Migrate(ctx, conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	eng := engine.New(conn)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	eng.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	seq := 0
	eng.NewID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	for _, id := range []string{"ana", "kim", "lee"} {
		if _, err := eng.CreateUser(ctx, id, engine.UserInput{FullName: strings.ToUpper(id), Email: id + "@example.com", Skill: "cooking"}); err != nil {
			t.Fatalf("create user %s: %v", id, err)
		}
	}
	return testEnv{Engine: eng, Ctx: ctx}
}

func requireKind(t *testing.T, err, kind error, msg string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	if msg != "" && err.Error() != msg {
		t.Fatalf("expected message %q, got %q", msg, err.Error())
	}
}

// completedTask creates a task posted by ana, accepted and completed by kim.
func completedTask(t *testing.T, env testEnv) domain.Task {
	t.Helper()
	task, err := env.Engine.CreateTask(env.Ctx, "ana", engine.TaskInput{Title: "Fix bike", Description: "flat tyre"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := env.Engine.AcceptTask(env.Ctx, "kim", task.TaskID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	task, err = env.Engine.CompleteTask(env.Ctx, "kim", task.TaskID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	return task
}

func TestTaskLifecycle(t *testing.T) {
	env := newTestEnv(t)
	task, err := env.Engine.CreateTask(env.Ctx, "ana", engine.TaskInput{
		Title: " Fix bike ", Description: "flat tyre", Tags: []string{"repair", " Repair ", "", "bike"},
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Status != domain.StatusOpen || task.PostedBy != "ana" || task.Title != "Fix bike" {
		t.Fatalf("unexpected task %+v", task)
	}
	if len(task.Tags) != 2 {
		t.Fatalf("expected deduplicated tags, got %v", task.Tags)
	}

	_, err = env.Engine.AcceptTask(env.Ctx, "ana", task.TaskID)
	requireKind(t, err, engine.ErrInvalid, "You cannot accept your own task")

	accepted, err := env.Engine.AcceptTask(env.Ctx, "kim", task.TaskID)
	if err != nil || accepted.Status != domain.StatusAccepted || *accepted.AcceptedBy != "kim" || accepted.AcceptedAt == nil {
		t.Fatalf("accept: %v %+v", err, accepted)
	}
	_, err = env.Engine.AcceptTask(env.Ctx, "lee", task.TaskID)
	requireKind(t, err, engine.ErrInvalid, "Task is already accepted or completed")

	_, err = env.Engine.CompleteTask(env.Ctx, "lee", task.TaskID)
	requireKind(t, err, engine.ErrForbidden, "Not allowed to complete this task")

	done, err := env.Engine.CompleteTask(env.Ctx, "kim", task.TaskID)
	if err != nil || done.Status != domain.StatusCompleted || done.CompletedAt == nil {
		t.Fatalf("complete: %v %+v", err, done)
	}
	err = env.Engine.DeleteTask(env.Ctx, "ana", task.TaskID)
	requireKind(t, err, engine.ErrInvalid, "Only open tasks can be deleted")
}

func TestTaskNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Engine.GetTask(env.Ctx, "missing")
	requireKind(t, err, repo.ErrNotFound, "Task not found")
	_, err = env.Engine.AcceptTask(env.Ctx, "kim", "missing")
	requireKind(t, err, repo.ErrNotFound, "Task not found")
	err = env.Engine.DeleteTask(env.Ctx, "kim", "missing")
	requireKind(t, err, repo.ErrNotFound, "Task not found")
}

func TestDeleteTaskRules(t *testing.T) {
	env := newTestEnv(t)
	task, err := env.Engine.CreateTask(env.Ctx, "ana", engine.TaskInput{Title: "Paint", Description: "fence"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	err = env.Engine.DeleteTask(env.Ctx, "kim", task.TaskID)
	requireKind(t, err, engine.ErrForbidden, "You can only delete your own tasks")
	if err := env.Engine.DeleteTask(env.Ctx, "ana", task.TaskID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = env.Engine.GetTask(env.Ctx, task.TaskID)
	requireKind(t, err, repo.ErrNotFound, "")
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Engine.CreateTask(env.Ctx, "ana", engine.TaskInput{Title: "  ", Description: "x"})
	requireKind(t, err, engine.ErrInvalid, "title is required")
	_, err = env.Engine.CreateTask(env.Ctx, "ana", engine.TaskInput{Title: "x"})
	requireKind(t, err, engine.ErrInvalid, "description is required")
}

func TestTaskListings(t *testing.T) {
	env := newTestEnv(t)
	done := completedTask(t, env)
	open, err := env.Engine.CreateTask(env.Ctx, "kim", engine.TaskInput{Title: "Bake bread", Description: "sourdough", Tags: []string{"Cooking"}})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	openTasks, err := env.Engine.OpenTasks(env.Ctx, repo.TaskFilters{PostedBy: "ignored"})
	if err != nil || len(openTasks) != 1 || openTasks[0].TaskID != open.TaskID {
		t.Fatalf("open tasks: %v %+v", err, openTasks)
	}
	posted, err := env.Engine.PostedTasks(env.Ctx, "ana")
	if err != nil || len(posted) != 1 || posted[0].TaskID != done.TaskID {
		t.Fatalf("posted: %v %+v", err, posted)
	}
	accepted, err := env.Engine.AcceptedTasks(env.Ctx, "kim")
	if err != nil || len(accepted) != 1 || accepted[0].TaskID != done.TaskID {
		t.Fatalf("accepted: %v %+v", err, accepted)
	}
	all, err := env.Engine.AllTasks(env.Ctx)
	if err != nil || len(all) != 2 || all[0].TaskID != open.TaskID {
		t.Fatalf("all: %v %+v", err, all)
	}
}

func TestUserProfileRules(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Engine.GetUser(env.Ctx, "ghost")
	requireKind(t, err, repo.ErrNotFound, "User not found")

	blank := "   "
	_, err = env.Engine.UpdateUser(env.Ctx, "ana", repo.UserUpdate{Bio: &blank})
	requireKind(t, err, engine.ErrInvalid, "No valid fields to update.")

	skill := "baking"
	u, err := env.Engine.UpdateUser(env.Ctx, "ana", repo.UserUpdate{Skill: &skill})
	if err != nil || u.Skill != "baking" || u.FullName != "ANA" {
		t.Fatalf("update: %v %+v", err, u)
	}

	if err := env.Engine.SetActive(env.Ctx, "ana", "ana", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	users, err := env.Engine.ListUsers(env.Ctx, "", 0)
	if err != nil || len(users) != 2 {
		t.Fatalf("expected inactive user hidden: %v %+v", err, users)
	}
	if err := env.Engine.SetActive(env.Ctx, "kim", "ana", true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	bakers, err := env.Engine.ListUsers(env.Ctx, "BAK", 0)
	if err != nil || len(bakers) != 1 || bakers[0].ID != "ana" {
		t.Fatalf("skill filter: %v %+v", err, bakers)
	}
	err = env.Engine.SetActive(env.Ctx, "kim", "ghost", true)
	requireKind(t, err, repo.ErrNotFound, "User not found")

	again, err := env.Engine.CreateUser(env.Ctx, "ana", engine.UserInput{FullName: "Ana B", Email: "ana@b.example"})
	if err != nil || again.FullName != "Ana B" || !again.IsActive {
		t.Fatalf("re-signup: %v %+v", err, again)
	}
	_, err = env.Engine.CreateUser(env.Ctx, "zed", engine.UserInput{FullName: "Zed", Email: "nope"})
	requireKind(t, err, engine.ErrInvalid, "a valid email is required")
}

func TestCreateRatingRules(t *testing.T) {
	env := newTestEnv(t)
	task := completedTask(t, env)

	_, err := env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "ana", TaskID: task.TaskID, Rating: 5})
	requireKind(t, err, engine.ErrInvalid, "You cannot rate yourself. Please select a different user to rate.")

	_, err = env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "kim", TaskID: task.TaskID, Rating: 6})
	requireKind(t, err, engine.ErrInvalid, "Rating must be an integer between 1 and 5.")

	_, err = env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "kim", TaskID: task.TaskID, Rating: 4, Comment: " ok "})
	requireKind(t, err, engine.ErrInvalid, "Comment must be at least 3 characters long if provided.")

	_, err = env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "kim", TaskID: task.TaskID, Rating: 4, Comment: strings.Repeat("x", 501)})
	requireKind(t, err, engine.ErrInvalid, "")

	_, err = env.Engine.CreateRating(env.Ctx, "lee", engine.RatingInput{ToUserID: "kim", TaskID: task.TaskID, Rating: 4})
	requireKind(t, err, engine.ErrForbidden, "You can only rate users you have worked with on completed tasks.")

	_, err = env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "lee", TaskID: task.TaskID, Rating: 4})
	requireKind(t, err, engine.ErrInvalid, "You can only rate users who were involved in this task.")

	_, err = env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "ghost", TaskID: task.TaskID, Rating: 4})
	requireKind(t, err, repo.ErrNotFound, "User with ID 'ghost' does not exist in the system.")

	rt, err := env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "kim", TaskID: task.TaskID, Rating: 5, Comment: "  Quick and friendly  "})
	if err != nil || rt.Comment != "Quick and friendly" || rt.FromUserID != "ana" {
		t.Fatalf("create rating: %v %+v", err, rt)
	}
	_, err = env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "kim", TaskID: task.TaskID, Rating: 3})
	requireKind(t, err, engine.ErrConflict, "")

	back, err := env.Engine.CreateRating(env.Ctx, "kim", engine.RatingInput{ToUserID: "ana", TaskID: task.TaskID, Rating: 4})
	if err != nil || back.ToUserID != "ana" {
		t.Fatalf("rate back: %v %+v", err, back)
	}
}

func TestRatingOnOpenTaskRejected(t *testing.T) {
	env := newTestEnv(t)
	task, err := env.Engine.CreateTask(env.Ctx, "ana", engine.TaskInput{Title: "x", Description: "y"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	_, err = env.Engine.CreateRating(env.Ctx, "kim", engine.RatingInput{ToUserID: "ana", TaskID: task.TaskID, Rating: 4})
	requireKind(t, err, engine.ErrInvalid, "You can only rate completed tasks. This task is currently 'open'.")
}

func TestRatingListsAndFlagging(t *testing.T) {
	env := newTestEnv(t)
	task := completedTask(t, env)
	first, err := env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "kim", TaskID: task.TaskID, Rating: 5})
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	task2 := completedTask(t, env)
	if _, err := env.Engine.CreateRating(env.Ctx, "ana", engine.RatingInput{ToUserID: "kim", TaskID: task2.TaskID, Rating: 2}); err != nil {
		t.Fatalf("rating: %v", err)
	}

	page, err := env.Engine.ReceivedRatings(env.Ctx, "kim", 0)
	if err != nil || len(page.Ratings) != 2 || page.Statistics == nil {
		t.Fatalf("received: %v %+v", err, page)
	}
	if page.Statistics.AverageRating != 3.5 || page.Statistics.RatingDistribution["5"] != 1 || page.Message != "Found 2 ratings" {
		t.Fatalf("unexpected statistics %+v %q", page.Statistics, page.Message)
	}
	given, err := env.Engine.GivenRatings(env.Ctx, "ana", 0)
	if err != nil || len(given.Ratings) != 2 || given.Statistics != nil {
		t.Fatalf("given: %v %+v", err, given)
	}

	_, err = env.Engine.FlagRating(env.Ctx, "kim", first.RatingID, "too short")
	requireKind(t, err, engine.ErrInvalid, "")
	_, err = env.Engine.FlagRating(env.Ctx, "ana", first.RatingID, "I want to take this back")
	requireKind(t, err, engine.ErrForbidden, "")
	_, err = env.Engine.FlagRating(env.Ctx, "kim", "missing", "this rating does not exist")
	requireKind(t, err, repo.ErrNotFound, "Rating with ID 'missing' does not exist.")

	res, err := env.Engine.FlagRating(env.Ctx, "kim", first.RatingID, "this review is not about the task")
	if err != nil || res.RatingID != first.RatingID || res.FlaggedAt == "" {
		t.Fatalf("flag: %v %+v", err, res)
	}
	_, err = env.Engine.FlagRating(env.Ctx, "kim", first.RatingID, "flagging it a second time")
	requireKind(t, err, engine.ErrConflict, "This rating has already been flagged and is under review.")

	page, err = env.Engine.ReceivedRatings(env.Ctx, "kim", 0)
	if err != nil || len(page.Ratings) != 1 || page.Statistics.TotalRatings != 1 {
		t.Fatalf("flagged rating should be hidden: %v %+v", err, page)
	}
	withFlagged, err := env.Engine.UserRatings(env.Ctx, "kim", true, 0)
	if err != nil || len(withFlagged.Ratings) != 2 {
		t.Fatalf("include flagged: %v %+v", err, withFlagged)
	}

	_, err = env.Engine.TaskRatings(env.Ctx, "lee", task.TaskID, 0)
	requireKind(t, err, engine.ErrForbidden, "You can only view ratings for tasks you were involved in.")
	onTask, err := env.Engine.TaskRatings(env.Ctx, "ana", task2.TaskID, 0)
	if err != nil || len(onTask.Ratings) != 1 {
		t.Fatalf("task ratings: %v %+v", err, onTask)
	}
}

func TestSummarize(t *testing.T) {
	empty := engine.Summarize(nil)
	if empty.TotalRatings != 0 || empty.AverageRating != 0 || len(empty.RatingDistribution) != 5 {
		t.Fatalf("unexpected empty stats %+v", empty)
	}
	stats := engine.Summarize([]domain.Rating{{Rating: 5}, {Rating: 4}, {Rating: 4}})
	if stats.AverageRating != 4.33 || stats.RatingDistribution["4"] != 2 || stats.TotalRatings != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestReports(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Engine.CreateReport(env.Ctx, "ana", engine.ReportInput{ToUserID: "ana", Reason: "spam"})
	requireKind(t, err, engine.ErrInvalid, "You cannot report yourself")
	_, err = env.Engine.CreateReport(env.Ctx, "ana", engine.ReportInput{ToUserID: "kim"})
	requireKind(t, err, engine.ErrInvalid, "reason is required")

	rep, err := env.Engine.CreateReport(env.Ctx, "ana", engine.ReportInput{ToUserID: "kim", TaskID: "t-1", Reason: "no show"})
	if err != nil || rep.FromUserID != "ana" {
		t.Fatalf("report: %v %+v", err, rep)
	}
	sent, err := env.Engine.SentReports(env.Ctx, "ana")
	if err != nil || len(sent) != 1 {
		t.Fatalf("sent: %v %+v", err, sent)
	}
	received, err := env.Engine.ReceivedReports(env.Ctx, "kim")
	if err != nil || len(received) != 1 || received[0].ReportID != rep.ReportID {
		t.Fatalf("received: %v %+v", err, received)
	}
}

func TestMutationsAppendEvents(t *testing.T) {
	env := newTestEnv(t)
	completedTask(t, env)
	evts, err := env.Engine.LatestEvents(env.Ctx, 10, "")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	want := []string{"task.completed", "task.accepted", "task.created"}
	for i, typ := range want {
		if evts[i].Type != typ {
			t.Fatalf("event %d: expected %s, got %s", i, typ, evts[i].Type)
		}
	}
	created, err := env.Engine.LatestEvents(env.Ctx, 10, "user.created")
	if err != nil || len(created) != 3 {
		t.Fatalf("user events: %v %d", err, len(created))
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	profile := engine.UserInput{FullName: "Test User", Email: "test@example.com", Skill: "general"}
	for i := 0; i < 2; i++ {
		if err := env.Engine.Seed(env.Ctx, "test-user-123", profile); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}
	open, err := env.Engine.OpenTasks(env.Ctx, repo.TaskFilters{})
	if err != nil || len(open) != 3 {
		t.Fatalf("expected 3 sample tasks: %v %d", err, len(open))
	}
	if _, err := env.Engine.GetUser(env.Ctx, "test-user-123"); err != nil {
		t.Fatalf("seeded identity: %v", err)
	}
}
