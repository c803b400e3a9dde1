package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/taskhive/backend/internal/domain"
	"github.com/taskhive/backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUploadEndpoint(t *testing.T) {
	validBody := `{"title":"Translate a page","description":"en to de","category":"translation","reward_per_completion":500,"assignment_type":"single","tags":["design"]}`

	t.Run("created for a verified tasksmith", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		tasks := &mockTasks{uploaded: &domain.Task{
			ID:             uuid.New(),
			UserID:         user.ID,
			Title:          "Translate a page",
			Status:         domain.TaskStatusPending,
			AssignmentType: domain.AssignmentTypeSingle,
			Tags:           []domain.Tag{{ID: uuid.New(), Name: "design"}},
		}}
		services, tm := fixtureServices(user, tasks, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPost, "/api/v1/tasks/task-upload", validBody, testToken)
		assertStatus(t, rec, http.StatusCreated)

		assert.Equal(t, []string{"design"}, tasks.lastUploadInput.Tags)

		var resp struct {
			Data struct {
				Status string   `json:"status"`
				Tags   []string `json:"tags"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Data.Status)
		assert.Equal(t, []string{"design"}, resp.Data.Tags)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		user := authedUser(domain.AccountTypeUser, true)
		services, tm := fixtureServices(user, nil, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPost, "/api/v1/tasks/task-upload", validBody, testToken)
		assertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("unverified tasksmith is forbidden", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, false)
		services, tm := fixtureServices(user, nil, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPost, "/api/v1/tasks/task-upload", validBody, testToken)
		assertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("bad assignment type", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		services, tm := fixtureServices(user, nil, nil)
		router := newTestRouter(t, services, tm)

		body := `{"title":"t","description":"d","category":"c","reward_per_completion":1,"assignment_type":"batch"}`
		rec := doJSON(router, http.MethodPost, "/api/v1/tasks/task-upload", body, testToken)
		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("missing phone number from the service", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		tasks := &mockTasks{uploadErr: service.ErrPhoneNumberRequired}
		services, tm := fixtureServices(user, tasks, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPost, "/api/v1/tasks/task-upload", validBody, testToken)
		assertStatus(t, rec, http.StatusBadRequest)
	})
}

func TestGetTasksEndpoint(t *testing.T) {
	t.Run("requires a token", func(t *testing.T) {
		services, tm := fixtureServices(nil, nil, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodGet, "/api/v1/tasks/get-tasks", "", "")
		assertStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("rejects a stale token for a deleted user", func(t *testing.T) {
		services, tm := fixtureServices(nil, nil, nil)
		tm.userID = uuid.New()
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodGet, "/api/v1/tasks/get-tasks", "", testToken)
		assertStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		user := authedUser(domain.AccountTypeUser, true)
		services, tm := fixtureServices(user, nil, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodGet, "/api/v1/tasks/get-tasks", "", testToken)
		assertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("returns the list", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		tasks := &mockTasks{list: []domain.Task{
			{ID: uuid.New(), UserID: user.ID, Title: "one"},
			{ID: uuid.New(), UserID: user.ID, Title: "two"},
		}}
		services, tm := fixtureServices(user, tasks, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodGet, "/api/v1/tasks/get-tasks", "", testToken)
		assertStatus(t, rec, http.StatusOK)

		var resp struct {
			Data []struct {
				Title string `json:"title"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
	})
}

func TestEditTaskEndpoint(t *testing.T) {
	t.Run("invalid task id", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		services, tm := fixtureServices(user, nil, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPatch, "/api/v1/tasks/edit-task/not-a-uuid", `{}`, testToken)
		assertStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("passes partial fields through", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		taskID := uuid.New()
		tasks := &mockTasks{edited: &domain.Task{ID: taskID, UserID: user.ID, Title: "new"}}
		services, tm := fixtureServices(user, tasks, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPatch, "/api/v1/tasks/edit-task/"+taskID.String(), `{"title":"new","status":"approved"}`, testToken)
		assertStatus(t, rec, http.StatusOK)

		assert.Equal(t, taskID, tasks.lastEditTaskID)
		require.NotNil(t, tasks.lastEditInput.Title)
		assert.Equal(t, "new", *tasks.lastEditInput.Title)
		require.NotNil(t, tasks.lastEditInput.Status)
		assert.Equal(t, domain.TaskStatusApproved, *tasks.lastEditInput.Status)
		assert.Nil(t, tasks.lastEditInput.Description)
	})

	t.Run("unknown task", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		tasks := &mockTasks{editErr: service.ErrTaskNotFound}
		services, tm := fixtureServices(user, tasks, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPatch, "/api/v1/tasks/edit-task/"+uuid.NewString(), `{"title":"new"}`, testToken)
		assertStatus(t, rec, http.StatusNotFound)
	})

	t.Run("bad status value", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		services, tm := fixtureServices(user, nil, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodPatch, "/api/v1/tasks/edit-task/"+uuid.NewString(), `{"status":"archived"}`, testToken)
		assertStatus(t, rec, http.StatusBadRequest)
	})
}

func TestDeleteTaskEndpoint(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		services, tm := fixtureServices(user, &mockTasks{}, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodDelete, "/api/v1/tasks/delete-task/"+uuid.NewString(), "", testToken)
		assertStatus(t, rec, http.StatusOK)
	})

	t.Run("unknown task", func(t *testing.T) {
		user := authedUser(domain.AccountTypeUser, true)
		tasks := &mockTasks{deleteErr: service.ErrTaskNotFound}
		services, tm := fixtureServices(user, tasks, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodDelete, "/api/v1/tasks/delete-task/"+uuid.NewString(), "", testToken)
		assertStatus(t, rec, http.StatusNotFound)
	})
}

func TestDashboardEndpoint(t *testing.T) {
	t.Run("plain user is forbidden", func(t *testing.T) {
		user := authedUser(domain.AccountTypeUser, true)
		services, tm := fixtureServices(user, nil, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodGet, "/api/v1/tasks/dashboard", "", testToken)
		assertStatus(t, rec, http.StatusForbidden)
	})

	t.Run("returns the counts", func(t *testing.T) {
		user := authedUser(domain.AccountTypeTasksmith, true)
		tasks := &mockTasks{counts: map[domain.TaskStatus]int64{
			domain.TaskStatusPending:  2,
			domain.TaskStatusRejected: 0,
		}}
		services, tm := fixtureServices(user, tasks, nil)
		router := newTestRouter(t, services, tm)

		rec := doJSON(router, http.MethodGet, "/api/v1/tasks/dashboard", "", testToken)
		assertStatus(t, rec, http.StatusOK)

		var resp struct {
			Data map[string]int64 `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.Data["pending"])
		assert.Contains(t, resp.Data, "rejected")
	})
}
