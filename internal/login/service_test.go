package login_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/portal/internal/authapi"
	"github.com/nfrund/portal/internal/domain"
	"github.com/nfrund/portal/internal/login"
	"github.com/nfrund/portal/internal/login/events"
	"github.com/nfrund/portal/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionCall struct {
	data         json.RawMessage
	keepLoggedIn bool
}

// fakeSessionStore records every Login call.
type fakeSessionStore struct {
	mu    sync.Mutex
	calls []sessionCall
	err   error
}

func (f *fakeSessionStore) Login(ctx context.Context, data json.RawMessage, keepLoggedIn bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sessionCall{data: data, keepLoggedIn: keepLoggedIn})
	return f.err
}

// fakeNavigator records every destination.
type fakeNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeNavigator) Navigate(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return nil
}

// backend starts a fake auth endpoint and records the decoded request bodies.
func backend(t *testing.T, status int, body string) (string, *[]domain.Credentials) {
	t.Helper()
	var mu sync.Mutex
	var bodies []domain.Credentials
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		mu.Lock()
		bodies = append(bodies, creds)
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &bodies
}

func newService(url string, publisher pubsub.Publisher) *login.Service {
	return login.NewService(authapi.NewClient(url, time.Second), login.NewGuard(), publisher, "/dashboard")
}

func TestSubmit_Success(t *testing.T) {
	url, _ := backend(t, http.StatusOK, `{"token":"abc"}`)
	svc := newService(url, nil)
	store := &fakeSessionStore{}
	nav := &fakeNavigator{}

	form := login.Form{Email: "user@example.com", Password: "secret", KeepLoggedIn: true}
	err := svc.Submit(context.Background(), login.ChannelWeb, form, store, nav)
	require.NoError(t, err)

	require.Len(t, store.calls, 1)
	assert.JSONEq(t, `{"token":"abc"}`, string(store.calls[0].data))
	assert.True(t, store.calls[0].keepLoggedIn)
	assert.Equal(t, []string{"/dashboard"}, nav.paths, "navigation should happen exactly once")
}

func TestSubmit_KeepLoggedInOnlyAffectsSessionHandler(t *testing.T) {
	for _, keep := range []bool{false, true} {
		url, bodies := backend(t, http.StatusOK, `{"token":"abc"}`)
		svc := newService(url, nil)
		store := &fakeSessionStore{}

		form := login.Form{Email: "user@example.com", Password: "secret", KeepLoggedIn: keep}
		require.NoError(t, svc.Submit(context.Background(), login.ChannelWeb, form, store, &fakeNavigator{}))

		require.Len(t, store.calls, 1)
		assert.Equal(t, keep, store.calls[0].keepLoggedIn)
		assert.Equal(t, []domain.Credentials{{Email: "user@example.com", Password: "secret"}}, *bodies)
	}
}

func TestSubmit_Rejected(t *testing.T) {
	url, _ := backend(t, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
	svc := newService(url, nil)
	store := &fakeSessionStore{}
	nav := &fakeNavigator{}

	err := svc.Submit(context.Background(), login.ChannelWeb, login.Form{Email: "user@example.com", Password: "wrong"}, store, nav)

	apiErr, ok := authapi.AsError(err)
	require.True(t, ok)
	assert.Equal(t, authapi.KindHTTP, apiErr.Kind)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, store.calls, "session handler must not be invoked")
	assert.Empty(t, nav.paths, "navigation must not occur")
}

func TestSubmit_ServerErrorWithEmptyBody(t *testing.T) {
	url, _ := backend(t, http.StatusInternalServerError, ``)
	svc := newService(url, nil)

	err := svc.Submit(context.Background(), login.ChannelWeb, login.Form{}, &fakeSessionStore{}, &fakeNavigator{})

	apiErr, ok := authapi.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Something went wrong", apiErr.Message)
}

func TestSubmit_EmptyFieldsAreStillSent(t *testing.T) {
	url, bodies := backend(t, http.StatusUnauthorized, `{"message":"Email is required"}`)
	svc := newService(url, nil)

	_ = svc.Submit(context.Background(), login.ChannelWeb, login.Form{}, &fakeSessionStore{}, &fakeNavigator{})

	assert.Equal(t, []domain.Credentials{{Email: "", Password: ""}}, *bodies)
}

func TestSubmit_SessionStoreFailure(t *testing.T) {
	url, _ := backend(t, http.StatusOK, `{"token":"abc"}`)
	svc := newService(url, nil)
	store := &fakeSessionStore{err: errors.New("cookie too large")}
	nav := &fakeNavigator{}

	err := svc.Submit(context.Background(), login.ChannelWeb, login.Form{}, store, nav)

	assert.ErrorContains(t, err, "failed to establish session")
	assert.Empty(t, nav.paths)
}

func TestSubmit_InFlightGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	defer srv.Close()

	svc := newService(srv.URL, nil)
	form := login.Form{Email: "user@example.com", SubmissionID: "form-1"}

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.Submit(context.Background(), login.ChannelWeb, form, &fakeSessionStore{}, &fakeNavigator{})
	}()
	<-started

	err := svc.Submit(context.Background(), login.ChannelWeb, form, &fakeSessionStore{}, &fakeNavigator{})
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-firstDone)

	// Once the first request finished the same form can be submitted again.
	go func() { <-started }()
	err = svc.Submit(context.Background(), login.ChannelWeb, form, &fakeSessionStore{}, &fakeNavigator{})
	assert.NoError(t, err)
}

func TestSubmit_PublishesEvents(t *testing.T) {
	bridge := pubsub.NewWatermillBridge()
	defer bridge.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	succeeded := make(chan events.LoginSucceeded, 1)
	failed := make(chan events.LoginFailed, 1)
	require.NoError(t, pubsub.Subscribe(ctx, bridge, events.Succeeded, func(ctx context.Context, p events.LoginSucceeded) error {
		succeeded <- p
		return nil
	}))
	require.NoError(t, pubsub.Subscribe(ctx, bridge, events.Failed, func(ctx context.Context, p events.LoginFailed) error {
		failed <- p
		return nil
	}))

	okURL, _ := backend(t, http.StatusOK, `{"token":"abc"}`)
	require.NoError(t, newService(okURL, bridge).Submit(ctx, login.ChannelCLI,
		login.Form{Email: "user@example.com", KeepLoggedIn: true}, &fakeSessionStore{}, &fakeNavigator{}))

	select {
	case p := <-succeeded:
		assert.Equal(t, events.LoginSucceeded{Email: "user@example.com", KeepLoggedIn: true, Channel: login.ChannelCLI}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for succeeded event")
	}

	badURL, _ := backend(t, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)
	_ = newService(badURL, bridge).Submit(ctx, login.ChannelWeb,
		login.Form{Email: "user@example.com"}, &fakeSessionStore{}, &fakeNavigator{})

	select {
	case p := <-failed:
		assert.Equal(t, "http", p.Kind)
		assert.Equal(t, http.StatusUnauthorized, p.Status)
		assert.Equal(t, "Invalid credentials", p.Message)
		assert.Equal(t, login.ChannelWeb, p.Channel)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for failed event")
	}
}
