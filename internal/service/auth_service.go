package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/choretracker/internal/auth"
	"github.com/mmynk/choretracker/internal/middleware"
	"github.com/mmynk/choretracker/internal/storage"
	"github.com/mmynk/choretracker/pkg/api"
	"github.com/mmynk/choretracker/pkg/api/apiconnect"
)

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username)

	user, err := s.authenticator.Register(ctx, auth.Registration{
		Username:   req.Msg.Username,
		Email:      req.Msg.Email,
		Name:       req.Msg.Name,
		Credential: req.Msg.Password,
	})
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Msg.Username, "error", err)
		switch {
		case errors.Is(err, auth.ErrUsernameExists), errors.Is(err, auth.ErrEmailExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrInvalidUsername),
			errors.Is(err, auth.ErrInvalidEmail):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.RegisterResponse{
		Token: token,
		User:  toAPIUser(user),
	}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if strings.TrimSpace(req.Msg.Username) == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.LoginResponse{
		Token: token,
		User:  toAPIUser(user),
	}), nil
}

// Logout ends the session. Tokens are stateless, so the client discards its
// copy and the server only records the event.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error) {
	s.logger.Info("Logout request", "username", middleware.GetUsername(ctx))
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// GetCurrentUser returns the authenticated user with their groups and the
// events of those groups.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	s.logger.Info("GetCurrentUser request", "user_id", userID)

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The account was removed after the token was issued.
			return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
		}
		s.logger.Error("GetCurrentUser failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	groups, err := s.store.ListGroupsForMember(ctx, user.Username)
	if err != nil {
		s.logger.Error("GetCurrentUser failed to list groups", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.GetCurrentUserResponse{
		User:   toAPIUser(user),
		Groups: make([]*api.Group, 0, len(groups)),
		Events: []*api.Event{},
	}
	for _, group := range groups {
		resp.Groups = append(resp.Groups, toAPIGroup(group))

		events, err := s.store.ListEventsByGroup(ctx, group.ID)
		if err != nil {
			s.logger.Error("GetCurrentUser failed to list events", "group_id", group.ID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		resp.Events = append(resp.Events, toAPIEvents(events)...)
	}

	return connect.NewResponse(resp), nil
}

// UserExists reports whether a username is registered, ignoring case.
func (s *AuthService) UserExists(ctx context.Context, req *connect.Request[api.UserExistsRequest]) (*connect.Response[api.UserExistsResponse], error) {
	username := strings.TrimSpace(req.Msg.Username)
	if username == "" {
		return nil, invalidArgument("username required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewResponse(&api.UserExistsResponse{Exists: false}), nil
	}
	if err != nil {
		s.logger.Error("UserExists failed", "username", username, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.UserExistsResponse{
		Exists:   true,
		Username: user.Username,
	}), nil
}

// ListUsers returns every registered user. Callers must be signed in.
func (s *AuthService) ListUsers(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListUsersResponse], error) {
	if _, err := callerUsername(ctx); err != nil {
		return nil, err
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logger.Error("ListUsers failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListUsersResponse{Users: make([]*api.User, len(users))}
	for i, user := range users {
		resp.Users[i] = toAPIUser(user)
	}
	return connect.NewResponse(resp), nil
}
