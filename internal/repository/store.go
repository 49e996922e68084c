package repository

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

// ErrWriteInRead is returned by Write when called on the store handed to a
// Read callback.
var ErrWriteInRead = errors.New("repository: write inside a read callback")

type scope int

const (
	unlocked scope = iota
	reading
	writing
)

// Store owns every entity table and serialises access to them: one writer
// at a time, and readers see a consistent snapshot for the duration of
// their callback.
type Store struct {
	mu    *sync.RWMutex
	db    *gorm.DB
	scope scope
	hooks *[]func()

	users    UserRepository
	projects ProjectRepository
	tasks    TaskRepository
	comments CommentRepository
	activity ActivityRepository
}

// NewStore creates a Store over db.
func NewStore(db *gorm.DB) *Store {
	return newStore(db, &sync.RWMutex{}, unlocked)
}

func newStore(db *gorm.DB, mu *sync.RWMutex, sc scope) *Store {
	return &Store{
		mu:       mu,
		db:       db,
		scope:    sc,
		users:    NewUserRepository(db),
		projects: NewProjectRepository(db),
		tasks:    NewTaskRepository(db),
		comments: NewCommentRepository(db),
		activity: NewActivityRepository(db),
	}
}

func (s *Store) Users() UserRepository        { return s.users }
func (s *Store) Projects() ProjectRepository  { return s.projects }
func (s *Store) Tasks() TaskRepository        { return s.tasks }
func (s *Store) Comments() CommentRepository  { return s.comments }
func (s *Store) Activity() ActivityRepository { return s.activity }

// Write runs fn under the write lock inside a single transaction. The
// transaction is rolled back when fn returns an error. Calling Write or
// Read on the store passed to fn runs inline.
func (s *Store) Write(fn func(tx *Store) error) error {
	switch s.scope {
	case writing:
		return fn(s)
	case reading:
		return ErrWriteInRead
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var hooks []func()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		w := newStore(tx, s.mu, writing)
		w.hooks = &hooks
		return fn(w)
	})
	if err != nil {
		return err
	}
	for _, hook := range hooks {
		hook()
	}
	return nil
}

// AfterCommit defers fn until the enclosing Write has committed; it is
// dropped if the transaction rolls back. Outside a Write, fn runs at once.
func (s *Store) AfterCommit(fn func()) {
	if s.scope != writing {
		fn()
		return
	}
	*s.hooks = append(*s.hooks, fn)
}

// Read runs fn under the read lock. Calling Read on the store passed to fn
// runs inline.
func (s *Store) Read(fn func(s *Store) error) error {
	if s.scope != unlocked {
		return fn(s)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(newStore(s.db, s.mu, reading))
}
