package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/yukikurage/taskgraph-api/internal/middleware"
	"github.com/yukikurage/taskgraph-api/internal/services"
)

// Services groups the services the HTTP layer is built on.
type Services struct {
	Users     *services.UserService
	Projects  *services.ProjectService
	Tasks     *services.TaskService
	Comments  *services.CommentService
	Activity  *services.ActivityService
	Analytics *services.AnalyticsService
}

// NewRouter wires every route onto a new gin engine.
func NewRouter(svc Services, sessionStore sessions.Store, cookieName string, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(sessions.Sessions(cookieName, sessionStore))

	authHandler := NewAuthHandler(svc.Users, log)
	projectHandler := NewProjectHandler(svc.Projects, log)
	taskHandler := NewTaskHandler(svc.Tasks, log)
	commentHandler := NewCommentHandler(svc.Comments, log)
	activityHandler := NewActivityHandler(svc.Activity, log)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics, log)

	loadProject := middleware.LoadProject(svc.Projects, log)
	loadTask := middleware.LoadTask(svc.Tasks, log)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task tracker API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Session routes (public)
		session := api.Group("/session")
		{
			session.GET("", authHandler.GetSession)
			session.POST("", authHandler.Login)
			session.DELETE("", authHandler.Logout)
		}

		api.POST("/users", authHandler.Register)
		api.GET("/users", middleware.RequireAuth(), authHandler.ListUsers)

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:projectId", loadProject, projectHandler.GetProject)
			projects.PUT("/:projectId", loadProject, projectHandler.UpdateProject)
			projects.DELETE("/:projectId", loadProject, projectHandler.DeleteProject)
			projects.GET("/:projectId/members", loadProject, projectHandler.ListMembers)
			projects.POST("/:projectId/members", loadProject, projectHandler.AddMember)
			projects.DELETE("/:projectId/members/:username", loadProject, projectHandler.RemoveMember)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:taskId", loadTask, taskHandler.GetTask)
			tasks.PUT("/:taskId", loadTask, taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", loadTask, taskHandler.DeleteTask)
			tasks.GET("/:taskId/subtasks", loadTask, taskHandler.ListSubtasks)
			tasks.GET("/:taskId/parent", loadTask, taskHandler.GetParentTask)
			tasks.GET("/:taskId/comments", loadTask, commentHandler.ListTaskComments)
			tasks.POST("/:taskId/comments", loadTask, commentHandler.CreateComment)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth())
		{
			comments.GET("", commentHandler.ListMyComments)
			comments.GET("/:commentId/replies", commentHandler.ListReplies)
			comments.PUT("/:commentId", commentHandler.UpdateComment)
			comments.DELETE("/:commentId", commentHandler.DeleteComment)
		}

		api.GET("/activity-logs", middleware.RequireAuth(), activityHandler.ListLogs)

		// Analytics routes (protected)
		analytics := api.Group("/analytics")
		analytics.Use(middleware.RequireAuth())
		{
			analytics.GET("/user", analyticsHandler.UserSummary)
			analytics.GET("/knowledge-graph", analyticsHandler.KnowledgeGraph)
			analytics.GET("/related-tasks/:taskId", loadTask, analyticsHandler.RelatedTasks)
			analytics.POST("/semantic-search", analyticsHandler.Search)
			analytics.GET("/recommendations", analyticsHandler.Recommendations)
		}
	}

	return r
}
