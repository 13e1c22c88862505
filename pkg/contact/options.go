package contact

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPostsLimit  = 5
	DefaultUserID      = 1
	DefaultBannerDelay = 3 * time.Second
)

// Timer is the handle returned by AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn after d. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, fn func()) Timer

// Options configures a Controller.
type Options struct {
	PostsLimit    int
	DefaultUserID int
	BannerDelay   time.Duration
	Logger        *zap.Logger
	AfterFunc     AfterFunc
	NewRequestID  func() string
}

// Option mutates Options before a Controller is built.
type Option func(*Options)

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		PostsLimit:    DefaultPostsLimit,
		DefaultUserID: DefaultUserID,
		BannerDelay:   DefaultBannerDelay,
	}
}

// NewOptions applies fns over the defaults and clamps invalid values.
func NewOptions(fns ...Option) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.PostsLimit <= 0 {
		opts.PostsLimit = DefaultPostsLimit
	}
	if opts.DefaultUserID <= 0 {
		opts.DefaultUserID = DefaultUserID
	}
	if opts.BannerDelay <= 0 {
		opts.BannerDelay = DefaultBannerDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		}
	}
	if opts.NewRequestID == nil {
		opts.NewRequestID = uuid.NewString
	}
	return opts
}

// WithPostsLimit sets how many posts LoadPosts requests.
func WithPostsLimit(limit int) Option {
	return func(o *Options) {
		o.PostsLimit = limit
	}
}

// WithDefaultUserID sets the userId attached to submitted posts.
func WithDefaultUserID(id int) Option {
	return func(o *Options) {
		o.DefaultUserID = id
	}
}

// WithBannerDelay sets how long the success banner stays visible.
func WithBannerDelay(delay time.Duration) Option {
	return func(o *Options) {
		o.BannerDelay = delay
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithAfterFunc replaces the timer used to clear the success banner.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *Options) {
		o.AfterFunc = fn
	}
}

// WithRequestIDFunc replaces the generator of per-submission request ids.
func WithRequestIDFunc(fn func() string) Option {
	return func(o *Options) {
		o.NewRequestID = fn
	}
}
