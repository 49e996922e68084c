package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
	"github.com/yukikurage/taskgraph-api/internal/models"
	"github.com/yukikurage/taskgraph-api/internal/repository"
)

var (
	ErrUsernameExists   = apierrors.New(apierrors.ErrConflict, "username-exists")
	ErrUserNotFound     = apierrors.New(apierrors.ErrNotFound, "user-not-found")
	ErrAuthInsufficient = apierrors.New(apierrors.ErrForbidden, "auth-insufficient")
)

var usernameCodes = validationCodes{
	"Username.notblank": "required-username",
	"Username.username": "invalid-username",
}

// UserService handles user registration and sign-in.
type UserService struct {
	store  *repository.Store
	denied map[string]bool
}

// NewUserService creates a new UserService. Denied usernames can neither
// register nor sign in.
func NewUserService(store *repository.Store, deniedUsernames []string) *UserService {
	denied := make(map[string]bool, len(deniedUsernames))
	for _, name := range deniedUsernames {
		if name = strings.TrimSpace(name); name != "" {
			denied[name] = true
		}
	}
	return &UserService{
		store:  store,
		denied: denied,
	}
}

// CreateUserInput represents the information needed to register a user.
type CreateUserInput struct {
	Username string `validate:"notblank,username"`
	FullName string
	Email    string
}

// CreateUser registers a user. FullName defaults to the username and Email
// to <username>@example.com.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if err := check(input, usernameCodes); err != nil {
		return nil, err
	}
	if s.denied[input.Username] {
		return nil, ErrAuthInsufficient
	}

	var user *models.User
	err := s.store.Write(func(tx *repository.Store) error {
		if _, err := tx.Users().FindByUsername(input.Username); err == nil {
			return ErrUsernameExists
		} else if !repository.IsNotFound(err) {
			return fmt.Errorf("failed to check username: %w", err)
		}

		user = newUser(input, time.Now())
		if err := tx.Users().Create(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func newUser(input CreateUserInput, now time.Time) *models.User {
	fullName := input.FullName
	if fullName == "" {
		fullName = input.Username
	}
	email := input.Email
	if email == "" {
		email = input.Username + "@example.com"
	}
	return &models.User{
		Username:    input.Username,
		FullName:    fullName,
		Email:       email,
		CreatedAt:   now,
		LastLoginAt: now,
	}
}

// GetUserByUsername retrieves a user.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user *models.User
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		user, err = r.Users().FindByUsername(username)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}
		return nil
	})
	return user, err
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.store.Read(func(r *repository.Store) error {
		var err error
		users, err = r.Users().List()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})
	return users, err
}

// TouchLastLogin stamps the user's last sign-in time.
func (s *UserService) TouchLastLogin(username string) (*models.User, error) {
	var user *models.User
	err := s.store.Write(func(tx *repository.Store) error {
		var err error
		user, err = tx.Users().FindByUsername(username)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		user.LastLoginAt = time.Now()
		if err := tx.Users().Update(user); err != nil {
			return fmt.Errorf("failed to update last login: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login validates username and signs the existing user in. There are no
// passwords: unknown and denied users are both refused.
func (s *UserService) Login(username string) (*models.User, error) {
	if err := check(CreateUserInput{Username: username}, usernameCodes); err != nil {
		return nil, err
	}
	if s.denied[username] {
		return nil, ErrAuthInsufficient
	}

	user, err := s.TouchLastLogin(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrAuthInsufficient
		}
		return nil, err
	}
	return user, nil
}

var defaultUsers = []CreateUserInput{
	{Username: "alice", FullName: "Alice Johnson", Email: "alice@example.com"},
	{Username: "bob", FullName: "Bob Smith", Email: "bob@example.com"},
	{Username: "charlie", FullName: "Charlie Brown", Email: "charlie@example.com"},
}

// SeedDefaults registers the demo accounts that do not exist yet.
func (s *UserService) SeedDefaults() error {
	for _, input := range defaultUsers {
		if _, err := s.CreateUser(input); err != nil && !errors.Is(err, ErrUsernameExists) {
			return fmt.Errorf("failed to seed user %s: %w", input.Username, err)
		}
	}
	return nil
}
