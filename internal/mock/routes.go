package mock

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"skillswap/internal/domain"
	"skillswap/internal/engine"
	"skillswap/internal/repo"
)

type response[T any] struct {
	Body T
}

func reply[T any](v T) *response[T] {
	return &response[T]{Body: v}
}

type taskPath struct {
	TaskID string `path:"task_id"`
}

func registerRoot(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Welcome message",
	}, func(ctx context.Context, _ *struct{}) (*response[MessageResponse], error) {
		return reply(MessageResponse{Message: "Welcome to the SkillSwap API!"}), nil
	})
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*response[map[string]string], error) {
		return reply(map[string]string{"status": "healthy"}), nil
	})
}

func registerUsers(api huma.API, s *service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-me",
		Method:      http.MethodGet,
		Path:        "/users/me",
		Summary:     "Get own profile",
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, func(ctx context.Context, _ *struct{}) (*response[domain.User], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		u, err := s.engine.GetUser(ctx, actorID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(u), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/users/",
		Summary:     "Create own profile",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, func(ctx context.Context, input *struct {
		Body CreateUserRequest
	}) (*response[domain.User], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		u, err := s.engine.CreateUser(ctx, actorID, engine.UserInput{
			FullName: input.Body.FullName,
			Email:    input.Body.Email,
			Skill:    input.Body.Skill,
			Bio:      input.Body.Bio,
		})
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(u), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPut,
		Path:        "/users/",
		Summary:     "Update own profile",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		Body UpdateUserRequest
	}) (*response[domain.User], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		u, err := s.engine.UpdateUser(ctx, actorID, repo.UserUpdate{
			FullName: input.Body.FullName,
			Skill:    input.Body.Skill,
			Bio:      input.Body.Bio,
		})
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(u), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users/",
		Summary:     "List active users",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, input *struct {
		Skill string `query:"skill"`
		Limit int    `query:"limit" default:"10" minimum:"1" maximum:"100"`
	}) (*response[UserListResponse], error) {
		users, err := s.engine.ListUsers(ctx, input.Skill, input.Limit)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(UserListResponse{Items: users, Count: len(users)}), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "deactivate-user",
		Method:      http.MethodDelete,
		Path:        "/users/",
		Summary:     "Deactivate own account",
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, func(ctx context.Context, _ *struct{}) (*response[MessageResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		if err := s.engine.SetActive(ctx, actorID, actorID, false); err != nil {
			return nil, s.fail(err)
		}
		return reply(MessageResponse{Message: "User deactivated"}), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reactivate-user",
		Method:      http.MethodPost,
		Path:        "/users/{user_id}/reactivate",
		Summary:     "Reactivate a user",
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		UserID string `path:"user_id"`
	}) (*response[MessageResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		if err := s.engine.SetActive(ctx, actorID, input.UserID, true); err != nil {
			return nil, s.fail(err)
		}
		return reply(MessageResponse{Message: "User reactivated successfully"}), nil
	})
}

func registerTasks(api huma.API, s *service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-open-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks/open",
		Summary:     "List open tasks",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, input *struct {
		Q        string `query:"q"`
		Tag      string `query:"tag"`
		Location string `query:"location"`
		Limit    int    `query:"limit" minimum:"0" maximum:"200"`
	}) (*response[OpenTasksResponse], error) {
		tasks, err := s.engine.OpenTasks(ctx, repo.TaskFilters{
			Search:   input.Q,
			Tag:      input.Tag,
			Location: input.Location,
			Limit:    input.Limit,
		})
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(OpenTasksResponse{Tasks: tasks, Count: len(tasks)}), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-posted-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks/my/posted",
		Summary:     "List tasks I posted",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, _ *struct{}) (*response[TaskItemsResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		tasks, err := s.engine.PostedTasks(ctx, actorID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(TaskItemsResponse{Items: tasks, Count: len(tasks)}), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-accepted-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks/my/accepted",
		Summary:     "List tasks I accepted",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, _ *struct{}) (*response[TaskItemsResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		tasks, err := s.engine.AcceptedTasks(ctx, actorID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(TaskItemsResponse{Items: tasks, Count: len(tasks)}), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks/",
		Summary:     "List all tasks",
		Errors:      []int{http.StatusUnauthorized},
	}, func(ctx context.Context, _ *struct{}) (*response[[]domain.Task], error) {
		tasks, err := s.engine.AllTasks(ctx)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(tasks), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{task_id}",
		Summary:     "Get task",
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, func(ctx context.Context, input *taskPath) (*response[domain.Task], error) {
		t, err := s.engine.GetTask(ctx, input.TaskID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(t), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-task",
		Method:        http.MethodPost,
		Path:          "/tasks/",
		Summary:       "Post a task",
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, func(ctx context.Context, input *struct {
		Body CreateTaskRequest
	}) (*response[domain.Task], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		t, err := s.engine.CreateTask(ctx, actorID, engine.TaskInput{
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Tags:        input.Body.Tags,
			Location:    input.Body.Location,
			Time:        input.Body.Time,
		})
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(t), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "accept-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{task_id}/accept",
		Summary:     "Accept an open task",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound},
	}, func(ctx context.Context, input *taskPath) (*response[domain.Task], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		t, err := s.engine.AcceptTask(ctx, actorID, input.TaskID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(t), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "complete-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{task_id}/complete",
		Summary:     "Complete an accepted task",
		Errors:      []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound},
	}, func(ctx context.Context, input *taskPath) (*response[domain.Task], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		t, err := s.engine.CompleteTask(ctx, actorID, input.TaskID)
		if err != nil {
			return nil, s.fail(err)
		}
		return reply(t), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{task_id}",
		Summary:     "Delete an open task",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound},
	}, func(ctx context.Context, input *taskPath) (*response[MessageResponse], error) {
		actorID, authErr := actorFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		if err := s.engine.DeleteTask(ctx, actorID, input.TaskID); err != nil {
			return nil, s.fail(err)
		}
		return reply(MessageResponse{Message: "Task deleted successfully"}), nil
	})
}
