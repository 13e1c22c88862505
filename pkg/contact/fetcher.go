package contact

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
)

// API is the remote collaborator used by the Fetcher. *jsonplaceholder.Client
// satisfies it.
type API interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListPosts(ctx context.Context, limit int) ([]model.Post, error)
	CreatePost(ctx context.Context, post model.NewPost) (model.Post, error)
}

// ErrStale is returned when a load completed after a newer load of the same
// collection started; its result was discarded.
var ErrStale = errors.New("contact: stale response discarded")

// Fetcher issues the remote reads and writes and records their outcome on the
// Store.
type Fetcher struct {
	api        API
	store      *Store
	postsLimit int
	logger     *zap.Logger
}

// NewFetcher builds a Fetcher writing into store.
func NewFetcher(api API, store *Store, postsLimit int, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if postsLimit <= 0 {
		postsLimit = DefaultPostsLimit
	}
	return &Fetcher{
		api:        api,
		store:      store,
		postsLimit: postsLimit,
		logger:     logger,
	}
}

// LoadUsers fetches the users collection. Loading is raised before the call
// and lowered on completion; a failure sets the error string and leaves the
// previous users in place.
func (f *Fetcher) LoadUsers(ctx context.Context) error {
	gen := f.store.beginUsers()

	users, err := f.api.ListUsers(ctx)
	if err != nil {
		if !f.store.failUsers(gen) {
			f.logger.Debug("Discarding stale users failure", zap.Uint64("generation", gen), zap.Error(err))
			return ErrStale
		}
		f.logger.Error("Error loading users", zap.Error(err))
		return err
	}
	if !f.store.completeUsers(gen, users) {
		f.logger.Debug("Discarding stale users response", zap.Uint64("generation", gen))
		return ErrStale
	}
	return nil
}

// LoadPosts fetches the first posts. It never touches the loading flag and a
// failure is only logged; the visible error is left unchanged.
func (f *Fetcher) LoadPosts(ctx context.Context) error {
	gen := f.store.beginPosts()

	posts, err := f.api.ListPosts(ctx, f.postsLimit)
	if err != nil {
		f.logger.Warn("Error loading posts", zap.Error(err))
		return err
	}
	if !f.store.completePosts(gen, posts) {
		f.logger.Debug("Discarding stale posts response", zap.Uint64("generation", gen))
		return ErrStale
	}
	return nil
}

// Create submits post and returns the created record.
func (f *Fetcher) Create(ctx context.Context, post model.NewPost) (model.Post, error) {
	return f.api.CreatePost(ctx, post)
}
