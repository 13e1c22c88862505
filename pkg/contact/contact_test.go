package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
)

type fakeAPI struct {
	mu sync.Mutex

	users    []model.User
	usersErr error
	posts    []model.Post
	postsErr error

	created    []model.NewPost
	createErr  error
	postLimits []int

	// usersGate and postsGate, when set, block the matching call until they
	// are closed. The started channels receive once the call has captured
	// its reply.
	usersGate    chan struct{}
	usersStarted chan struct{}
	postsGate    chan struct{}
	postsStarted chan struct{}
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	gate, started := f.usersGate, f.usersStarted
	users, err := f.users, f.usersErr
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return users, err
}

func (f *fakeAPI) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	f.mu.Lock()
	f.postLimits = append(f.postLimits, limit)
	gate, started := f.postsGate, f.postsStarted
	posts, err := f.posts, f.postsErr
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return posts, err
}

func (f *fakeAPI) CreatePost(ctx context.Context, post model.NewPost) (model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, post)
	if f.createErr != nil {
		return model.Post{}, f.createErr
	}
	return model.Post{ID: 101, Title: post.Title, Body: post.Body, UserID: post.UserID}, nil
}

func (f *fakeAPI) createdPosts() []model.NewPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.NewPost{}, f.created...)
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	timer := &fakeTimer{delay: d, fn: fn}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) fire(t *testing.T, idx int) {
	t.Helper()
	if idx >= len(c.timers) {
		t.Fatalf("expected timer %d to be scheduled, have %d", idx, len(c.timers))
	}
	c.timers[idx].fn()
}

var sampleUsers = []model.User{
	{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz"},
	{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv"},
}

var samplePosts = []model.Post{
	{ID: 1, Title: "first", Body: "body", UserID: 1},
}

func fillValid(t *testing.T, c *Controller) {
	t.Helper()
	err := c.Form().SetValues(model.ContactForm{
		Name:      "<b>Jane</b> Doe",
		Email:     "jane@example.com",
		Phone:     "1234567890",
		Message:   "Please call me back & soon.",
		Agreement: true,
	})
	if err != nil {
		t.Fatalf("set values: %v", err)
	}
}

func TestInit_LoadsUsersAndPosts(t *testing.T) {
	api := &fakeAPI{users: sampleUsers, posts: samplePosts}
	c := New(api)

	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	state := c.State()
	if diff := cmp.Diff(sampleUsers, state.Users); diff != "" {
		t.Fatalf("users mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(samplePosts, state.Posts); diff != "" {
		t.Fatalf("posts mismatch (-want +got):\n%s", diff)
	}
	if state.Loading {
		t.Fatalf("expected loading to be cleared")
	}
	if diff := cmp.Diff([]int{DefaultPostsLimit}, api.postLimits); diff != "" {
		t.Fatalf("posts limit mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUsers_FailureSetsErrorAndKeepsUsers(t *testing.T) {
	api := &fakeAPI{users: sampleUsers}
	c := New(api)
	if err := c.Fetcher().LoadUsers(context.Background()); err != nil {
		t.Fatalf("load users: %v", err)
	}

	api.usersErr = errors.New("network down")
	api.users = nil
	if err := c.Fetcher().LoadUsers(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}

	state := c.State()
	if state.Error != "Failed to load users" {
		t.Fatalf("unexpected error string: %q", state.Error)
	}
	if state.Loading {
		t.Fatalf("expected loading=false after failure")
	}
	if diff := cmp.Diff(sampleUsers, state.Users); diff != "" {
		t.Fatalf("previous users not preserved (-want +got):\n%s", diff)
	}
}

func TestLoadUsers_LoadingRaisedWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{users: sampleUsers, usersGate: gate}
	c := New(api)

	done := make(chan error, 1)
	go func() { done <- c.Fetcher().LoadUsers(context.Background()) }()

	deadline := time.After(time.Second)
	for !c.State().Loading {
		select {
		case <-deadline:
			t.Fatalf("expected loading to be raised while request is in flight")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("load users: %v", err)
	}
	if c.State().Loading {
		t.Fatalf("expected loading cleared after completion")
	}
}

func TestLoadPosts_FailureLeavesErrorUnchanged(t *testing.T) {
	api := &fakeAPI{posts: samplePosts}
	c := New(api)
	if err := c.Fetcher().LoadPosts(context.Background()); err != nil {
		t.Fatalf("load posts: %v", err)
	}

	api.postsErr = errors.New("boom")
	if err := c.Fetcher().LoadPosts(context.Background()); err == nil {
		t.Fatalf("expected posts error to be returned to the caller")
	}

	state := c.State()
	if state.Error != "" {
		t.Fatalf("expected posts failure to stay out of the view, got %q", state.Error)
	}
	if state.Loading {
		t.Fatalf("expected posts load to leave loading untouched")
	}
	if diff := cmp.Diff(samplePosts, state.Posts); diff != "" {
		t.Fatalf("posts should be preserved (-want +got):\n%s", diff)
	}
}

func TestLoadUsers_StaleCompletionDiscarded(t *testing.T) {
	store := NewStore()
	first := store.beginUsers()
	second := store.beginUsers()

	if store.completeUsers(first, sampleUsers[:1]) {
		t.Fatalf("expected stale generation to be rejected")
	}
	if !store.completeUsers(second, sampleUsers) {
		t.Fatalf("expected current generation to be applied")
	}
	if store.failUsers(first) {
		t.Fatalf("expected stale failure to be rejected")
	}

	state := store.Snapshot()
	if state.Error != "" || len(state.Users) != len(sampleUsers) {
		t.Fatalf("unexpected state after stale completions: %+v", state)
	}
}

func TestRefresh_SlowStaleUsersLoadIsDiscarded(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gate := make(chan struct{})
	api := &fakeAPI{
		users:        sampleUsers[:1],
		usersErr:     errors.New("slow failure"),
		posts:        samplePosts,
		usersGate:    gate,
		usersStarted: make(chan struct{}, 2),
	}
	c := New(api, WithLogger(zap.New(core)))

	slow := make(chan error, 1)
	go func() { slow <- c.Refresh(context.Background()) }()
	<-api.usersStarted

	api.mu.Lock()
	api.users, api.usersErr, api.usersGate = sampleUsers, nil, nil
	api.mu.Unlock()

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	close(gate)
	if err := <-slow; err != nil {
		t.Fatalf("expected stale refresh to finish quietly, got %v", err)
	}

	state := c.State()
	if state.Error != "" || state.Loading {
		t.Fatalf("stale failure leaked into the view: %+v", state)
	}
	if diff := cmp.Diff(sampleUsers, state.Users); diff != "" {
		t.Fatalf("users mismatch (-want +got):\n%s", diff)
	}

	stale := logs.FilterMessage("Discarding stale users failure").All()
	if len(stale) != 1 {
		t.Fatalf("expected one stale failure log, got %d", len(stale))
	}
	if got := stale[0].ContextMap()["error"]; got != "slow failure" {
		t.Fatalf("expected the discarded error to be logged, got %v", got)
	}
}

func TestLoadPosts_StaleCompletionDiscarded(t *testing.T) {
	gate := make(chan struct{})
	api := &fakeAPI{
		posts:        []model.Post{{ID: 9, Title: "old"}},
		postsGate:    gate,
		postsStarted: make(chan struct{}, 2),
	}
	c := New(api)

	slow := make(chan error, 1)
	go func() { slow <- c.Fetcher().LoadPosts(context.Background()) }()
	<-api.postsStarted

	api.mu.Lock()
	api.posts, api.postsGate = samplePosts, nil
	api.mu.Unlock()

	if err := c.Fetcher().LoadPosts(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	close(gate)
	if err := <-slow; !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for the slow load, got %v", err)
	}
	if diff := cmp.Diff(samplePosts, c.State().Posts); diff != "" {
		t.Fatalf("posts mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_InvalidFormHasNoSideEffects(t *testing.T) {
	api := &fakeAPI{}
	clock := &fakeClock{}
	c := New(api, WithAfterFunc(clock.AfterFunc))

	_, err := c.Submit(context.Background())
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}

	state := c.State()
	if !state.Submitted {
		t.Fatalf("expected submission attempt to be recorded")
	}
	if state.Loading || state.FormSubmitted || state.Error != "" {
		t.Fatalf("unexpected side effects: %+v", state)
	}
	if len(api.createdPosts()) != 0 || len(clock.timers) != 0 {
		t.Fatalf("expected no create call and no timer")
	}
	if !c.Form().FieldInvalid(form.FieldName) {
		t.Fatalf("expected fields to surface errors after an attempt")
	}
}

func TestSubmit_AgreementFalseAlwaysBlocks(t *testing.T) {
	api := &fakeAPI{}
	c := New(api)
	fillValid(t, c)
	if err := c.Form().Set(form.FieldAgreement, false); err != nil {
		t.Fatalf("set agreement: %v", err)
	}

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	if len(api.createdPosts()) != 0 {
		t.Fatalf("expected no create call without agreement")
	}
}

func TestSubmit_SuccessKeepsValuesUntilBannerClears(t *testing.T) {
	api := &fakeAPI{}
	clock := &fakeClock{}
	c := New(api,
		WithAfterFunc(clock.AfterFunc),
		WithRequestIDFunc(func() string { return "req-1" }),
	)
	fillValid(t, c)
	before := c.Form().Values()

	created, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != 101 {
		t.Fatalf("unexpected created record: %+v", created)
	}

	want := []model.NewPost{{
		Title:  "Contact from <b>Jane</b> Doe",
		Body:   "Please call me back & soon.",
		UserID: DefaultUserID,
	}}
	if diff := cmp.Diff(want, api.createdPosts()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	state := c.State()
	if !state.FormSubmitted || !state.Submitted {
		t.Fatalf("expected banner and attempt marker while the banner shows, got %+v", state)
	}
	if state.Loading {
		t.Fatalf("expected loading cleared after create")
	}
	if diff := cmp.Diff(before, c.Form().Values()); diff != "" {
		t.Fatalf("values should be kept until the banner clears (-want +got):\n%s", diff)
	}

	if len(clock.timers) != 1 || clock.timers[0].delay != DefaultBannerDelay {
		t.Fatalf("expected a single %s banner timer, got %+v", DefaultBannerDelay, clock.timers)
	}
	clock.fire(t, 0)

	state = c.State()
	if state.FormSubmitted || state.Submitted {
		t.Fatalf("expected banner and attempt marker cleared, got %+v", state)
	}
	if diff := cmp.Diff(model.ContactForm{}, c.Form().Values()); diff != "" {
		t.Fatalf("form not reset (-want +got):\n%s", diff)
	}
}

func TestSubmitValues_SendsValidatedTextUnchanged(t *testing.T) {
	cases := []struct {
		name    string
		message string
	}{
		{"Ada", "Please read <stdin> docs"},
		{"Ada", "if a<b and c>d then ok"},
		{"<b></b>", "<script>hello world</script>"},
		{"Zoë & Co", "caf&eacute; opens at 9"},
	}
	for _, tc := range cases {
		api := &fakeAPI{}
		c := New(api, WithAfterFunc((&fakeClock{}).AfterFunc))

		values := model.ContactForm{
			Name:      tc.name,
			Email:     "ada@example.com",
			Phone:     "1234567890",
			Message:   tc.message,
			Agreement: true,
		}
		if _, err := c.SubmitValues(context.Background(), values); err != nil {
			t.Fatalf("submit %q: %v", tc.message, err)
		}

		want := []model.NewPost{{
			Title:  "Contact from " + tc.name,
			Body:   tc.message,
			UserID: DefaultUserID,
		}}
		if diff := cmp.Diff(want, api.createdPosts()); diff != "" {
			t.Fatalf("payload mismatch for %q (-want +got):\n%s", tc.message, diff)
		}
	}
}

func TestSubmitValues_InvalidRecordsAttempt(t *testing.T) {
	api := &fakeAPI{}
	c := New(api)

	_, err := c.SubmitValues(context.Background(), model.ContactForm{Name: "A", Phone: "12"})
	if !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
	if got := c.Form().Values().Phone; got != "12" {
		t.Fatalf("expected submitted values to be kept, got %q", got)
	}
	if !c.State().Submitted || len(api.createdPosts()) != 0 {
		t.Fatalf("expected attempt recorded and nothing sent")
	}
}

func TestSubmit_SecondSuccessExtendsBanner(t *testing.T) {
	api := &fakeAPI{}
	clock := &fakeClock{}
	c := New(api, WithAfterFunc(clock.AfterFunc))

	fillValid(t, c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	fillValid(t, c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if !clock.timers[0].stopped {
		t.Fatalf("expected first banner timer to be stopped")
	}
	clock.fire(t, 0)
	if !c.State().FormSubmitted {
		t.Fatalf("expected superseded timer to leave the banner up")
	}
	clock.fire(t, 1)
	if c.State().FormSubmitted {
		t.Fatalf("expected current timer to clear the banner")
	}
}

func TestSubmit_FailureSetsErrorAndKeepsValues(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("503")}
	clock := &fakeClock{}
	c := New(api, WithAfterFunc(clock.AfterFunc))
	fillValid(t, c)
	before := c.Form().Values()

	if _, err := c.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}

	state := c.State()
	if state.Error != "Failed to submit form" {
		t.Fatalf("unexpected error string: %q", state.Error)
	}
	if state.Loading || state.FormSubmitted {
		t.Fatalf("unexpected flags after failure: %+v", state)
	}
	if diff := cmp.Diff(before, c.Form().Values()); diff != "" {
		t.Fatalf("form values should be kept (-want +got):\n%s", diff)
	}
	if len(clock.timers) != 0 {
		t.Fatalf("expected no banner timer on failure")
	}
}

func TestRefresh_ClearsSelectionRegardlessOfOutcome(t *testing.T) {
	api := &fakeAPI{users: sampleUsers, posts: samplePosts}
	c := New(api)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := c.SelectUserByID(2); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := c.State().SelectedUser; got == nil || got.ID != 2 {
		t.Fatalf("expected user 2 selected, got %+v", got)
	}

	api.usersErr = errors.New("down")
	api.postsErr = errors.New("down")
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh to report the load failure")
	}

	state := c.State()
	if state.SelectedUser != nil {
		t.Fatalf("expected selection cleared, got %+v", state.SelectedUser)
	}
	if state.Error != MsgLoadUsersFailed {
		t.Fatalf("unexpected error string: %q", state.Error)
	}
}

func TestSelectUser(t *testing.T) {
	c := New(&fakeAPI{})

	c.SelectUser(model.User{ID: 99, Name: "Unlisted"})
	if got := c.State().SelectedUser; got == nil || got.ID != 99 {
		t.Fatalf("expected unvalidated selection, got %+v", got)
	}

	if err := c.SelectUserByID(7); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	c.ClearSelection()
	if c.State().SelectedUser != nil {
		t.Fatalf("expected selection cleared")
	}
}

func TestSubmit_RealTimerDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := New(&fakeAPI{}, WithBannerDelay(10*time.Millisecond))
	fillValid(t, c)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	deadline := time.After(time.Second)
	for c.State().FormSubmitted {
		select {
		case <-deadline:
			t.Fatalf("expected banner to clear after the delay")
		default:
			time.Sleep(2 * time.Millisecond)
		}
	}
	c.Close()
}
