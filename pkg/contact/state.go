package contact

import (
	"sync"

	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	MsgLoadUsersFailed = "Failed to load users"
	MsgSubmitFailed    = "Failed to submit form"
)

// ViewState is the UI-facing snapshot consumed by renderers.
type ViewState struct {
	Loading       bool         `json:"loading"`
	Error         string       `json:"error"`
	Submitted     bool         `json:"submitted"`
	FormSubmitted bool         `json:"formSubmitted"`
	SelectedUser  *model.User  `json:"selectedUser"`
	Users         []model.User `json:"users"`
	Posts         []model.Post `json:"posts"`
}

// Store holds the mutable view state. Each users/posts load takes a
// generation number; completions from an older generation are dropped.
type Store struct {
	mu       sync.RWMutex
	state    ViewState
	usersGen uint64
	postsGen uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	out.Users = model.CloneUsers(s.state.Users)
	out.Posts = model.ClonePosts(s.state.Posts)
	if s.state.SelectedUser != nil {
		user := *s.state.SelectedUser
		out.SelectedUser = &user
	}
	return out
}

func (s *Store) beginUsers() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersGen++
	s.state.Loading = true
	return s.usersGen
}

func (s *Store) completeUsers(gen uint64, users []model.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.usersGen {
		return false
	}
	s.state.Users = model.CloneUsers(users)
	s.state.Loading = false
	return true
}

func (s *Store) failUsers(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.usersGen {
		return false
	}
	s.state.Error = MsgLoadUsersFailed
	s.state.Loading = false
	return true
}

func (s *Store) beginPosts() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postsGen++
	return s.postsGen
}

func (s *Store) completePosts(gen uint64, posts []model.Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.postsGen {
		return false
	}
	s.state.Posts = model.ClonePosts(posts)
	return true
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.state.Loading = loading
	s.mu.Unlock()
}

func (s *Store) submitFailed() {
	s.mu.Lock()
	s.state.Error = MsgSubmitFailed
	s.state.Loading = false
	s.mu.Unlock()
}

func (s *Store) submitSucceeded() {
	s.mu.Lock()
	s.state.FormSubmitted = true
	s.state.Loading = false
	s.mu.Unlock()
}

func (s *Store) clearFormSubmitted() {
	s.mu.Lock()
	s.state.FormSubmitted = false
	s.mu.Unlock()
}

func (s *Store) selectUser(user *model.User) {
	s.mu.Lock()
	s.state.SelectedUser = user
	s.mu.Unlock()
}

func (s *Store) users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneUsers(s.state.Users)
}
