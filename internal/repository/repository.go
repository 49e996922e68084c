package repository

import (
	"github.com/yukikurage/taskgraph-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns every user in registration order
	List() ([]models.User, error)

	// Update saves all fields of a user
	Update(user *models.User) error
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// ListByUser lists projects the user owns or is a member of
	ListByUser(username string) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and its membership rows
	Delete(id uint64) error

	// AddMember appends a member to a project's membership list
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID uint64, username string) error

	// FindMember finds a specific project member
	FindMember(projectID uint64, username string) (*models.ProjectMember, error)

	// ListMembers lists the members of a project in join order
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter in creation order
	List(filter TaskFilter) ([]models.Task, error)

	// ListByParent lists the direct subtasks of a task
	ListByParent(parentTaskID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes tasks by ID
	Delete(ids ...uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// Username matches tasks assigned to or created by the user.
	Username  string
	ProjectID *uint64
	Status    *models.TaskStatus
	Priority  *models.TaskPriority
	RootsOnly bool
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask lists a task's comments in creation order
	ListByTask(taskID uint64) ([]models.Comment, error)

	// ListByUser lists comments written by a user
	ListByUser(username string) ([]models.Comment, error)

	// ListReplies lists the direct replies to a comment
	ListReplies(commentID uint64) ([]models.Comment, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete deletes a comment
	Delete(id uint64) error
}

// ActivityRepository defines the interface for the append-only activity log
type ActivityRepository interface {
	// Create appends an entry
	Create(entry *models.ActivityLog) error

	// List returns the newest entries matching the filter
	List(filter ActivityFilter) ([]models.ActivityLog, error)
}

// ActivityFilter holds filtering options for listing activity logs
type ActivityFilter struct {
	Username     string
	ResourceType models.ResourceType
	ResourceID   *uint64
	Limit        int
}
