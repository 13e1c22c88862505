package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/jsonplaceholder"
	"github.com/goliatone/go-contactform/pkg/model"
)

var (
	ErrInvalidForm  = errors.New("contact: form is invalid")
	ErrUserNotFound = errors.New("contact: user not found")
)

// Controller owns the contact form and the view state of the page.
type Controller struct {
	opts    Options
	form    *form.Form
	store   *Store
	fetcher *Fetcher
	logger  *zap.Logger

	// submitMu serializes submissions and the delayed reset that follows a
	// successful one.
	submitMu sync.Mutex

	bannerMu  sync.Mutex
	banner    Timer
	bannerSeq uint64
}

// New builds a Controller backed by api with default options plus overrides.
func New(api API, fns ...Option) *Controller {
	opts := NewOptions(fns...)
	store := NewStore()
	return &Controller{
		opts:    opts,
		form:    form.NewContact(),
		store:   store,
		fetcher: NewFetcher(api, store, opts.PostsLimit, opts.Logger),
		logger:  opts.Logger,
	}
}

// Form exposes the contact form for field updates.
func (c *Controller) Form() *form.Form {
	return c.form
}

// Fetcher exposes the underlying data fetcher.
func (c *Controller) Fetcher() *Fetcher {
	return c.fetcher
}

// State returns the current view state.
func (c *Controller) State() ViewState {
	state := c.store.Snapshot()
	state.Submitted = c.form.Attempted()
	return state
}

// Init performs the initial users and posts loads.
func (c *Controller) Init(ctx context.Context) error {
	return c.loadAll(ctx)
}

// Refresh clears the selected user and reloads users and posts. The returned
// error is the first load failure; the view state already reflects it.
func (c *Controller) Refresh(ctx context.Context) error {
	c.store.selectUser(nil)
	return c.loadAll(ctx)
}

func (c *Controller) loadAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		return ignoreStale(c.fetcher.LoadUsers(ctx))
	})
	g.Go(func() error {
		return ignoreStale(c.fetcher.LoadPosts(ctx))
	})
	return g.Wait()
}

// SelectUser marks user as selected. The user is not validated.
func (c *Controller) SelectUser(user model.User) {
	c.store.selectUser(&user)
}

// SelectUserByID selects the loaded user with id.
func (c *Controller) SelectUserByID(id int) error {
	user, ok := model.FindUser(c.store.users(), id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	c.SelectUser(user)
	return nil
}

// ClearSelection drops the selected user.
func (c *Controller) ClearSelection() {
	c.store.selectUser(nil)
}

// Submit marks the form as attempted and, when every field is valid, creates
// a post from it. Invalid forms return ErrInvalidForm without side effects.
// On success the success banner is raised and the form keeps its values until
// the banner delay elapses, then both are cleared. On failure the form keeps
// its values and the view error is set.
func (c *Controller) Submit(ctx context.Context) (model.Post, error) {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()
	return c.submitLocked(ctx)
}

// SubmitValues assigns values to the form and submits it. No other
// submission can interleave between the two steps.
func (c *Controller) SubmitValues(ctx context.Context, values model.ContactForm) (model.Post, error) {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	if err := c.form.SetValues(values); err != nil {
		return model.Post{}, err
	}
	return c.submitLocked(ctx)
}

func (c *Controller) submitLocked(ctx context.Context) (model.Post, error) {
	c.form.MarkAttempted()
	if !c.form.Valid() {
		return model.Post{}, ErrInvalidForm
	}

	payload := c.form.Values().ToPost(c.opts.DefaultUserID)

	requestID := c.opts.NewRequestID()
	ctx = jsonplaceholder.WithRequestID(ctx, requestID)
	logger := c.logger.With(zap.String("request_id", requestID))

	c.store.setLoading(true)
	created, err := c.fetcher.Create(ctx, payload)
	if err != nil {
		c.store.submitFailed()
		logger.Error("Form submission error", zap.Error(err))
		return model.Post{}, err
	}

	c.store.submitSucceeded()
	c.scheduleBannerClear()
	logger.Info("Form submitted successfully", zap.Int("post_id", created.ID))
	return created, nil
}

// Close stops a pending banner timer.
func (c *Controller) Close() {
	c.bannerMu.Lock()
	defer c.bannerMu.Unlock()
	if c.banner != nil {
		c.banner.Stop()
		c.banner = nil
	}
}

func (c *Controller) scheduleBannerClear() {
	c.bannerMu.Lock()
	defer c.bannerMu.Unlock()

	if c.banner != nil {
		c.banner.Stop()
	}
	c.bannerSeq++
	seq := c.bannerSeq
	c.banner = c.opts.AfterFunc(c.opts.BannerDelay, func() {
		c.submitMu.Lock()
		defer c.submitMu.Unlock()

		c.bannerMu.Lock()
		current := seq == c.bannerSeq
		if current {
			c.banner = nil
		}
		c.bannerMu.Unlock()
		if !current {
			return
		}
		c.form.Reset()
		c.store.clearFormSubmitted()
	})
}

func ignoreStale(err error) error {
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}
