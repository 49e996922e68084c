package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/taskgraph-api/internal/config"
	"github.com/yukikurage/taskgraph-api/internal/database"
	"github.com/yukikurage/taskgraph-api/internal/dto"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/graph"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/relations"
	"github.com/yukikurage/taskgraph-api/internal/repository"
	"github.com/yukikurage/taskgraph-api/internal/services"
	"gorm.io/gorm"
)

// RouterTestSuite drives the full HTTP surface against an in-memory database.
type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupTest() {
	var err error
	suite.db, err = database.Connect(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	store := repository.NewStore(suite.db)
	svc := Services{
		Users:     services.NewUserService(store, []string{"dog"}),
		Projects:  services.NewProjectService(store),
		Tasks:     services.NewTaskService(store),
		Comments:  services.NewCommentService(store),
		Activity:  services.NewActivityService(store),
		Analytics: services.NewAnalyticsService(store, graph.Options{}, zerolog.Nop()),
	}
	suite.Require().NoError(svc.Users.SeedDefaults())

	gin.SetMode(gin.TestMode)
	suite.router = NewRouter(svc, cookie.NewStore([]byte("test-secret")), "sid", zerolog.Nop())
}

func (suite *RouterTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// do sends a request, optionally with a JSON body and the session cookies.
func (suite *RouterTestSuite) do(method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		default:
			var err error
			raw, err = json.Marshal(body)
			suite.Require().NoError(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) login(username string) []*http.Cookie {
	w := suite.do(http.MethodPost, "/api/session", gin.H{"username": username}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)
	return cookies
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.T().Helper()
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (suite *RouterTestSuite) assertError(w *httptest.ResponseRecorder, status int, message string) {
	suite.T().Helper()
	assert.Equal(suite.T(), status, w.Code, w.Body.String())
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	assert.Equal(suite.T(), message, apiErr.Message)
}

func (suite *RouterTestSuite) createProject(cookies []*http.Cookie, name string) dto.ProjectDTO {
	w := suite.do(http.MethodPost, "/api/projects", gin.H{"name": name}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Project dto.ProjectDTO `json:"project"`
	}
	suite.decode(w, &resp)
	return resp.Project
}

func (suite *RouterTestSuite) createTask(cookies []*http.Cookie, body gin.H) models.Task {
	w := suite.do(http.MethodPost, "/api/tasks", body, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Task models.Task `json:"task"`
	}
	suite.decode(w, &resp)
	return resp.Task
}

func (suite *RouterTestSuite) TestHealthAndMetrics() {
	w := suite.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "taskgraph_http_requests_total")
}

func (suite *RouterTestSuite) TestSessionLifecycle() {
	w := suite.do(http.MethodGet, "/api/session", nil, nil)
	suite.assertError(w, http.StatusUnauthorized, "auth-missing")

	cookies := suite.login("alice")

	w = suite.do(http.MethodGet, "/api/session", nil, cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var session dto.SessionResponse
	suite.decode(w, &session)
	assert.Equal(suite.T(), "alice", session.Username)
	assert.Equal(suite.T(), "alice", session.User.Username)

	w = suite.do(http.MethodDelete, "/api/session", nil, cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	cleared := w.Result().Cookies()

	w = suite.do(http.MethodGet, "/api/session", nil, cleared)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestLoginRejectsUnknownAndDeniedUsers() {
	w := suite.do(http.MethodPost, "/api/session", gin.H{"username": "nobody"}, nil)
	suite.assertError(w, http.StatusForbidden, "auth-insufficient")

	w = suite.do(http.MethodPost, "/api/users", gin.H{"username": "dog"}, nil)
	suite.assertError(w, http.StatusForbidden, "auth-insufficient")
}

func (suite *RouterTestSuite) TestRegisterAndListUsers() {
	w := suite.do(http.MethodPost, "/api/users", gin.H{"username": "dave", "fullName": "Dave"}, nil)
	assert.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/users", gin.H{"username": "dave"}, nil)
	suite.assertError(w, http.StatusConflict, "username-exists")

	w = suite.do(http.MethodPost, "/api/users", gin.H{"username": "bad name!"}, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/users", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/users", nil, suite.login("dave"))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp struct {
		Users []dto.UserDTO `json:"users"`
	}
	suite.decode(w, &resp)
	assert.Len(suite.T(), resp.Users, 4)
}

func (suite *RouterTestSuite) TestProtectedRoutesRequireSession() {
	for _, path := range []string{"/api/projects", "/api/tasks", "/api/comments", "/api/activity-logs", "/api/analytics/user"} {
		w := suite.do(http.MethodGet, path, nil, nil)
		assert.Equal(suite.T(), http.StatusUnauthorized, w.Code, path)
	}
}

func (suite *RouterTestSuite) TestProjectMembership() {
	alice := suite.login("alice")
	bob := suite.login("bob")

	project := suite.createProject(alice, "Website")
	assert.Equal(suite.T(), "alice", project.Owner)
	assert.Equal(suite.T(), dto.ProjectStatusActive, project.Status)
	assert.Equal(suite.T(), []string{"alice"}, project.Members)

	projectPath := fmt.Sprintf("/api/projects/%d", project.ID)

	w := suite.do(http.MethodGet, projectPath, nil, bob)
	suite.assertError(w, http.StatusForbidden, "auth-insufficient")

	w = suite.do(http.MethodPost, projectPath+"/members", gin.H{"username": "charlie"}, bob)
	suite.assertError(w, http.StatusForbidden, "not-project-owner")

	w = suite.do(http.MethodPost, projectPath+"/members", gin.H{"username": "bob"}, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	var members dto.MembersResponse
	suite.decode(w, &members)
	assert.True(suite.T(), members.Success)
	assert.Equal(suite.T(), []string{"alice", "bob"}, members.Members)

	w = suite.do(http.MethodPost, projectPath+"/members", gin.H{"username": "bob"}, alice)
	suite.assertError(w, http.StatusConflict, "already-member")

	w = suite.do(http.MethodPost, projectPath+"/members", gin.H{"username": "ghost"}, alice)
	suite.assertError(w, http.StatusBadRequest, "invalid-username")

	w = suite.do(http.MethodGet, projectPath, nil, bob)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/projects", nil, bob)
	var list struct {
		Projects []dto.ProjectDTO `json:"projects"`
	}
	suite.decode(w, &list)
	suite.Require().Len(list.Projects, 1)
	assert.Equal(suite.T(), project.ID, list.Projects[0].ID)

	w = suite.do(http.MethodDelete, projectPath+"/members/alice", nil, alice)
	suite.assertError(w, http.StatusBadRequest, "cannot-remove-owner")

	w = suite.do(http.MethodDelete, projectPath+"/members/charlie", nil, alice)
	suite.assertError(w, http.StatusNotFound, "not-a-member")

	w = suite.do(http.MethodDelete, projectPath+"/members/bob", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.decode(w, &members)
	assert.Equal(suite.T(), []string{"alice"}, members.Members)
}

func (suite *RouterTestSuite) TestProjectUpdateAndDelete() {
	alice := suite.login("alice")
	bob := suite.login("bob")
	project := suite.createProject(alice, "Website")
	projectPath := fmt.Sprintf("/api/projects/%d", project.ID)

	w := suite.do(http.MethodPut, projectPath, gin.H{"name": "Hijacked"}, bob)
	suite.assertError(w, http.StatusForbidden, "auth-insufficient")

	w = suite.do(http.MethodPut, projectPath, gin.H{"name": "Site", "status": "archived"}, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Project dto.ProjectDTO `json:"project"`
	}
	suite.decode(w, &resp)
	assert.Equal(suite.T(), "Site", resp.Project.Name)
	assert.Equal(suite.T(), dto.ProjectStatusArchived, resp.Project.Status)

	w = suite.do(http.MethodDelete, projectPath, nil, bob)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do(http.MethodDelete, projectPath, nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, projectPath, nil, alice)
	suite.assertError(w, http.StatusNotFound, "project-not-found")

	w = suite.do(http.MethodGet, "/api/projects/abc", nil, alice)
	suite.assertError(w, http.StatusNotFound, "project-not-found")
}

func (suite *RouterTestSuite) TestCreateTaskValidation() {
	alice := suite.login("alice")

	w := suite.do(http.MethodPost, "/api/tasks", gin.H{"title": "  ", "projectId": 1}, alice)
	suite.assertError(w, http.StatusBadRequest, "required-title")

	w = suite.do(http.MethodPost, "/api/tasks", gin.H{"title": "Write docs"}, alice)
	suite.assertError(w, http.StatusBadRequest, "required-project")

	w = suite.do(http.MethodPost, "/api/tasks", gin.H{"title": "Write docs", "projectId": 1, "status": "done"}, alice)
	suite.assertError(w, http.StatusBadRequest, "invalid-status")

	w = suite.do(http.MethodPost, "/api/tasks", gin.H{"title": "Write docs", "projectId": 1, "parentTaskId": 99}, alice)
	suite.assertError(w, http.StatusNotFound, "parent-task-not-found")
}

func (suite *RouterTestSuite) TestTaskLifecycle() {
	alice := suite.login("alice")
	bob := suite.login("bob")
	charlie := suite.login("charlie")
	project := suite.createProject(alice, "Website")

	task := suite.createTask(alice, gin.H{
		"title":     "Build landing page",
		"projectId": project.ID,
		"assignee":  "bob",
		"dueDate":   "2026-11-01T00:00:00Z",
		"tags":      []string{"frontend"},
	})
	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, task.Priority)
	assert.Equal(suite.T(), "bob", task.AssigneeID)
	suite.Require().NotNil(task.DueDate)

	subtask := suite.createTask(alice, gin.H{
		"title":        "Hero section",
		"projectId":    project.ID,
		"parentTaskId": task.ID,
	})

	taskPath := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.do(http.MethodGet, taskPath+"/subtasks", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var subtasks struct {
		Subtasks []models.Task `json:"subtasks"`
	}
	suite.decode(w, &subtasks)
	suite.Require().Len(subtasks.Subtasks, 1)
	assert.Equal(suite.T(), subtask.ID, subtasks.Subtasks[0].ID)

	// Charlie is neither creator nor assignee
	w = suite.do(http.MethodPut, taskPath, gin.H{"status": "in-progress"}, charlie)
	suite.assertError(w, http.StatusForbidden, "auth-insufficient")

	w = suite.do(http.MethodPut, taskPath, `{"status":"completed","dueDate":null}`, bob)
	assert.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	var updated struct {
		Task models.Task `json:"task"`
	}
	suite.decode(w, &updated)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Task.Status)
	assert.NotNil(suite.T(), updated.Task.CompletedAt)
	assert.Nil(suite.T(), updated.Task.DueDate)
	assert.Equal(suite.T(), []string{"frontend"}, updated.Task.Tags)

	w = suite.do(http.MethodPut, taskPath, gin.H{"priority": "extreme"}, bob)
	suite.assertError(w, http.StatusBadRequest, "invalid-priority")

	w = suite.do(http.MethodGet, "/api/tasks?status=completed", nil, bob)
	var list struct {
		Tasks []models.Task `json:"tasks"`
	}
	suite.decode(w, &list)
	suite.Require().Len(list.Tasks, 1)
	assert.Equal(suite.T(), task.ID, list.Tasks[0].ID)

	w = suite.do(http.MethodGet, "/api/tasks?projectId=abc", nil, bob)
	suite.assertError(w, http.StatusBadRequest, "invalid-project-id")

	// Only the creator may delete
	w = suite.do(http.MethodDelete, taskPath, nil, bob)
	suite.assertError(w, http.StatusForbidden, "auth-insufficient")

	w = suite.do(http.MethodDelete, taskPath, nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var deleted struct {
		Message string   `json:"message"`
		Deleted []uint64 `json:"deleted"`
	}
	suite.decode(w, &deleted)
	assert.Equal(suite.T(), "task-deleted", deleted.Message)
	assert.Equal(suite.T(), []uint64{subtask.ID, task.ID}, deleted.Deleted)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", subtask.ID), nil, alice)
	suite.assertError(w, http.StatusNotFound, "task-not-found")
}

func (suite *RouterTestSuite) TestTaskDueDateFromDateInput() {
	alice := suite.login("alice")
	project := suite.createProject(alice, "Website")

	task := suite.createTask(alice, gin.H{
		"title":     "Launch",
		"projectId": project.ID,
		"dueDate":   "2025-12-31",
	})
	suite.Require().NotNil(task.DueDate)
	assert.True(suite.T(), task.DueDate.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)), task.DueDate.String())

	taskPath := fmt.Sprintf("/api/tasks/%d", task.ID)
	var updated struct {
		Task models.Task `json:"task"`
	}

	w := suite.do(http.MethodPut, taskPath, gin.H{"dueDate": "2026-01-15"}, alice)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(w, &updated)
	suite.Require().NotNil(updated.Task.DueDate)
	assert.True(suite.T(), updated.Task.DueDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))

	// A cleared date input sends an empty string
	w = suite.do(http.MethodPut, taskPath, gin.H{"dueDate": ""}, alice)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	updated.Task = models.Task{}
	suite.decode(w, &updated)
	assert.Nil(suite.T(), updated.Task.DueDate)

	w = suite.do(http.MethodPost, "/api/tasks", gin.H{"title": "Bad", "projectId": project.ID, "dueDate": "31/12/2025"}, alice)
	suite.assertError(w, http.StatusBadRequest, "invalid-request")
}

func (suite *RouterTestSuite) TestTaskHierarchyRoutes() {
	alice := suite.login("alice")
	project := suite.createProject(alice, "Website")
	parent := suite.createTask(alice, gin.H{"title": "Epic", "projectId": project.ID})
	child := suite.createTask(alice, gin.H{"title": "Story", "projectId": project.ID, "parentTaskId": parent.ID})

	w := suite.do(http.MethodGet, "/api/tasks?rootsOnly=true", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var list struct {
		Tasks []models.Task `json:"tasks"`
	}
	suite.decode(w, &list)
	suite.Require().Len(list.Tasks, 1)
	assert.Equal(suite.T(), parent.ID, list.Tasks[0].ID)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d/parent", child.ID), nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp struct {
		Parent *models.Task `json:"parent"`
	}
	suite.decode(w, &resp)
	suite.Require().NotNil(resp.Parent)
	assert.Equal(suite.T(), parent.ID, resp.Parent.ID)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d/parent", parent.ID), nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	resp.Parent = nil
	suite.decode(w, &resp)
	assert.Nil(suite.T(), resp.Parent)
}

func (suite *RouterTestSuite) TestCommentRepliesAndFlatListing() {
	alice := suite.login("alice")
	bob := suite.login("bob")
	project := suite.createProject(alice, "Website")
	task := suite.createTask(alice, gin.H{"title": "Review copy", "projectId": project.ID})
	commentsPath := fmt.Sprintf("/api/tasks/%d/comments", task.ID)

	var created struct {
		Comment relations.CommentNode `json:"comment"`
	}
	w := suite.do(http.MethodPost, commentsPath, gin.H{"content": "Question"}, alice)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.decode(w, &created)
	root := created.Comment

	w = suite.do(http.MethodPost, commentsPath, gin.H{"content": "Answer", "parentCommentId": root.ID}, bob)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/comments/%d/replies", root.ID), nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var replies struct {
		Replies []relations.CommentNode `json:"replies"`
	}
	suite.decode(w, &replies)
	suite.Require().Len(replies.Replies, 1)
	assert.Equal(suite.T(), "Answer", replies.Replies[0].Text)
	assert.Equal(suite.T(), "bob", replies.Replies[0].Username)

	w = suite.do(http.MethodGet, "/api/comments/999/replies", nil, alice)
	suite.assertError(w, http.StatusNotFound, "comment-not-found")

	w = suite.do(http.MethodGet, commentsPath+"?flat=true", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var flat struct {
		Comments []relations.CommentNode `json:"comments"`
	}
	suite.decode(w, &flat)
	suite.Require().Len(flat.Comments, 2)
	assert.Equal(suite.T(), "Question", flat.Comments[0].Text)
	assert.Equal(suite.T(), "Answer", flat.Comments[1].Text)
	suite.Require().NotNil(flat.Comments[1].ParentCommentID)
	assert.Equal(suite.T(), root.ID, *flat.Comments[1].ParentCommentID)
}

func (suite *RouterTestSuite) TestComments() {
	alice := suite.login("alice")
	bob := suite.login("bob")
	project := suite.createProject(alice, "Website")
	task := suite.createTask(alice, gin.H{"title": "Review copy", "projectId": project.ID})
	commentsPath := fmt.Sprintf("/api/tasks/%d/comments", task.ID)

	w := suite.do(http.MethodPost, commentsPath, gin.H{"content": "   "}, alice)
	suite.assertError(w, http.StatusBadRequest, "required-content")

	w = suite.do(http.MethodPost, commentsPath, gin.H{"content": "First pass done"}, alice)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Comment relations.CommentNode `json:"comment"`
	}
	suite.decode(w, &created)
	root := created.Comment
	assert.Equal(suite.T(), "First pass done", root.Text)
	assert.Equal(suite.T(), "alice", root.Username)

	w = suite.do(http.MethodPost, commentsPath, gin.H{"content": "Thanks", "parentCommentId": root.ID}, bob)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, commentsPath, gin.H{"content": "Orphan", "parentCommentId": 999}, bob)
	suite.assertError(w, http.StatusNotFound, "parent-comment-not-found")

	w = suite.do(http.MethodGet, commentsPath, nil, bob)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var tree struct {
		Comments []relations.CommentNode `json:"comments"`
	}
	suite.decode(w, &tree)
	suite.Require().Len(tree.Comments, 1)
	suite.Require().Len(tree.Comments[0].Replies, 1)
	assert.Equal(suite.T(), "Thanks", tree.Comments[0].Replies[0].Text)

	commentPath := fmt.Sprintf("/api/comments/%d", root.ID)

	w = suite.do(http.MethodPut, commentPath, gin.H{"content": "Edited"}, bob)
	suite.assertError(w, http.StatusForbidden, "auth-insufficient")

	w = suite.do(http.MethodPut, commentPath, gin.H{"content": "Edited"}, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/comments", nil, alice)
	var mine struct {
		Comments []relations.CommentNode `json:"comments"`
	}
	suite.decode(w, &mine)
	suite.Require().Len(mine.Comments, 1)
	assert.Equal(suite.T(), "Edited", mine.Comments[0].Text)

	w = suite.do(http.MethodDelete, commentPath, nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, commentPath, nil, alice)
	suite.assertError(w, http.StatusNotFound, "comment-not-found")
}

func (suite *RouterTestSuite) TestActivityLogs() {
	alice := suite.login("alice")
	project := suite.createProject(alice, "Website")
	task := suite.createTask(alice, gin.H{"title": "Ship", "projectId": project.ID})

	w := suite.do(http.MethodGet, "/api/activity-logs?user=alice", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp struct {
		Logs []models.ActivityLog `json:"logs"`
	}
	suite.decode(w, &resp)
	suite.Require().Len(resp.Logs, 2)
	assert.Equal(suite.T(), models.ResourceTask, resp.Logs[0].ResourceType)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/activity-logs?resourceType=task&resourceId=%d", task.ID), nil, alice)
	suite.decode(w, &resp)
	suite.Require().Len(resp.Logs, 1)
	assert.Equal(suite.T(), task.ID, resp.Logs[0].ResourceID)

	w = suite.do(http.MethodGet, "/api/activity-logs?resourceType=project&limit=1", nil, alice)
	suite.decode(w, &resp)
	suite.Require().Len(resp.Logs, 1)
	assert.Equal(suite.T(), models.ResourceProject, resp.Logs[0].ResourceType)
}

func (suite *RouterTestSuite) TestAnalytics() {
	alice := suite.login("alice")
	bob := suite.login("bob")
	project := suite.createProject(alice, "Website")
	first := suite.createTask(alice, gin.H{
		"title":     "Design homepage layout",
		"projectId": project.ID,
		"tags":      []string{"design", "frontend"},
	})
	suite.createTask(alice, gin.H{
		"title":     "Design pricing layout",
		"projectId": project.ID,
		"tags":      []string{"design", "frontend"},
		"priority":  "high",
	})

	w := suite.do(http.MethodGet, "/api/analytics/user", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var summary struct {
		Analytics services.UserSummary `json:"analytics"`
	}
	suite.decode(w, &summary)
	assert.Equal(suite.T(), 2, summary.Analytics.TotalTasks)
	assert.Equal(suite.T(), 1, summary.Analytics.HighPriorityTasks)

	w = suite.do(http.MethodGet, "/api/analytics/knowledge-graph", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var g graph.Graph
	suite.decode(w, &g)
	assert.Len(suite.T(), g.Nodes, 3)
	counts := g.CountEdges()
	assert.Equal(suite.T(), 2, counts[graph.EdgeBelongsTo])
	assert.Equal(suite.T(), 2, counts[graph.EdgeSimilarTo])

	relatedPath := fmt.Sprintf("/api/analytics/related-tasks/%d", first.ID)
	w = suite.do(http.MethodGet, relatedPath, nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var related struct {
		RelatedTasks []map[string]interface{} `json:"relatedTasks"`
	}
	suite.decode(w, &related)
	suite.Require().Len(related.RelatedTasks, 1)
	assert.Equal(suite.T(), "Design pricing layout", related.RelatedTasks[0]["title"])

	w = suite.do(http.MethodGet, relatedPath, nil, bob)
	suite.assertError(w, http.StatusForbidden, "forbidden")

	w = suite.do(http.MethodPost, "/api/analytics/semantic-search", gin.H{"query": "pricing"}, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var search struct {
		Results []map[string]interface{} `json:"results"`
	}
	suite.decode(w, &search)
	suite.Require().Len(search.Results, 1)
	assert.Equal(suite.T(), "task", search.Results[0]["type"])
	assert.Equal(suite.T(), 100.0, search.Results[0]["relevanceScore"])

	w = suite.do(http.MethodPost, "/api/analytics/semantic-search", gin.H{"query": ""}, alice)
	suite.assertError(w, http.StatusBadRequest, "query-required")

	w = suite.do(http.MethodPost, "/api/analytics/semantic-search", gin.H{"query": "x", "mode": "fuzzy"}, alice)
	suite.assertError(w, http.StatusBadRequest, "invalid-mode")

	w = suite.do(http.MethodGet, "/api/analytics/recommendations", nil, alice)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var recs struct {
		Recommendations []map[string]interface{} `json:"recommendations"`
	}
	suite.decode(w, &recs)
	assert.Len(suite.T(), recs.Recommendations, 2)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
