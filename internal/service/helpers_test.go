package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/choretracker/internal/auth"
	"github.com/mmynk/choretracker/internal/middleware"
	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/storage/sqlite"
	"github.com/mmynk/choretracker/pkg/api"
	"github.com/mmynk/choretracker/pkg/api/apiconnect"
)

// testUserHeader names the caller in tests, standing in for a JWT.
const testUserHeader = "X-Test-User"

// testAuthInterceptor injects the caller named by testUserHeader into the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if username := req.Header().Get(testUserHeader); username != "" {
				ctx = middleware.WithUser(ctx, "id-"+username, username)
			}
			return next(ctx, req)
		}
	}
}

// as builds a request made by username.
func as[T any](username string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, username)
	return req
}

// withToken builds a request carrying a bearer token.
func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

type testEnv struct {
	store  *sqlite.SQLiteStore
	auth   apiconnect.AuthServiceClient
	groups apiconnect.GroupServiceClient
	events apiconnect.EventServiceClient
	costs  apiconnect.CostServiceClient

	// eventService is exposed so tests can fix its clock.
	eventService *EventService
}

// setupTestServer serves every service from a temp database.
func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	interceptors := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptors))
	eventService := NewEventService(store)
	mux.Handle(apiconnect.NewEventServiceHandler(eventService, interceptors))
	mux.Handle(apiconnect.NewCostServiceHandler(NewCostService(store), interceptors))

	server := httptest.NewServer(mux)

	env := &testEnv{
		store:  store,
		auth:   apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups: apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		events: apiconnect.NewEventServiceClient(http.DefaultClient, server.URL),
		costs:  apiconnect.NewCostServiceClient(http.DefaultClient, server.URL),

		eventService: eventService,
	}

	cleanup := func() {
		server.Close()
		store.Close()
	}
	return env, cleanup
}

// addUsers registers accounts directly in the store.
func (e *testEnv) addUsers(t *testing.T, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		user := models.NewUser(username, username+"@example.com", "", "not-a-hash")
		user.ID = "id-" + username
		if err := e.store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("failed to create user %s: %v", username, err)
		}
	}
}

// createGroup makes a group owned by the first username with the others as members.
func (e *testEnv) createGroup(t *testing.T, creator string, members ...string) *api.Group {
	t.Helper()
	resp, err := e.groups.CreateGroup(context.Background(), as(creator, &api.CreateGroupRequest{
		Name:    "Roommates",
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

// expectCode fails the test unless err carries the given Connect code.
func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}
