package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/choretracker/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "choretracker.v1.AuthService"

// Procedure paths of the AuthService RPCs.
const (
	AuthServiceRegisterProcedure       = "/choretracker.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/choretracker.v1.AuthService/Login"
	AuthServiceLogoutProcedure         = "/choretracker.v1.AuthService/Logout"
	AuthServiceGetCurrentUserProcedure = "/choretracker.v1.AuthService/GetCurrentUser"
	AuthServiceUserExistsProcedure     = "/choretracker.v1.AuthService/UserExists"
	AuthServiceListUsersProcedure      = "/choretracker.v1.AuthService/ListUsers"
)

// AuthServiceClient is a client for the choretracker.v1.AuthService service.
type AuthServiceClient interface {
	// Register creates an account and returns a session token.
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	// Login exchanges a username and password for a session token.
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	// Logout ends the caller's session.
	Logout(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error)
	// GetCurrentUser returns the caller with their groups and events.
	GetCurrentUser(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error)
	// UserExists reports whether a username is registered.
	UserExists(context.Context, *connect.Request[api.UserExistsRequest]) (*connect.Response[api.UserExistsResponse], error)
	// ListUsers returns every registered user.
	ListUsers(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListUsersResponse], error)
}

// NewAuthServiceClient constructs a client for the choretracker.v1.AuthService service. The JSON
// codec is installed first, so opts may still override it.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
	return &authServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		logout:         connect.NewClient[emptypb.Empty, emptypb.Empty](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
		getCurrentUser: connect.NewClient[emptypb.Empty, api.GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
		userExists:     connect.NewClient[api.UserExistsRequest, api.UserExistsResponse](httpClient, baseURL+AuthServiceUserExistsProcedure, opts...),
		listUsers:      connect.NewClient[emptypb.Empty, api.ListUsersResponse](httpClient, baseURL+AuthServiceListUsersProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	logout         *connect.Client[emptypb.Empty, emptypb.Empty]
	getCurrentUser *connect.Client[emptypb.Empty, api.GetCurrentUserResponse]
	userExists     *connect.Client[api.UserExistsRequest, api.UserExistsResponse]
	listUsers      *connect.Client[emptypb.Empty, api.ListUsersResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) Logout(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *authServiceClient) UserExists(ctx context.Context, req *connect.Request[api.UserExistsRequest]) (*connect.Response[api.UserExistsResponse], error) {
	return c.userExists.CallUnary(ctx, req)
}

func (c *authServiceClient) ListUsers(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the server side of the choretracker.v1.AuthService service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error)
	GetCurrentUser(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error)
	UserExists(context.Context, *connect.Request[api.UserExistsRequest]) (*connect.Response[api.UserExistsResponse], error)
	ListUsers(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListUsersResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	registerHandler := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	logoutHandler := connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...)
	getCurrentUserHandler := connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)
	userExistsHandler := connect.NewUnaryHandler(AuthServiceUserExistsProcedure, svc.UserExists, opts...)
	listUsersHandler := connect.NewUnaryHandler(AuthServiceListUsersProcedure, svc.ListUsers, opts...)
	return "/choretracker.v1.AuthService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case AuthServiceLogoutProcedure:
			logoutHandler.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			getCurrentUserHandler.ServeHTTP(w, r)
		case AuthServiceUserExistsProcedure:
			userExistsHandler.ServeHTTP(w, r)
		case AuthServiceListUsersProcedure:
			listUsersHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("choretracker.v1.AuthService.Register is not implemented"))
}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("choretracker.v1.AuthService.Login is not implemented"))
}

func (UnimplementedAuthServiceHandler) Logout(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[emptypb.Empty], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("choretracker.v1.AuthService.Logout is not implemented"))
}

func (UnimplementedAuthServiceHandler) GetCurrentUser(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("choretracker.v1.AuthService.GetCurrentUser is not implemented"))
}

func (UnimplementedAuthServiceHandler) UserExists(context.Context, *connect.Request[api.UserExistsRequest]) (*connect.Response[api.UserExistsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("choretracker.v1.AuthService.UserExists is not implemented"))
}

func (UnimplementedAuthServiceHandler) ListUsers(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListUsersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("choretracker.v1.AuthService.ListUsers is not implemented"))
}
