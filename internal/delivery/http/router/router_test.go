package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"flock/internal/delivery/http/middleware"
	"flock/internal/delivery/http/router/handler"
	"flock/internal/delivery/http/validator"
	"flock/internal/domain/entity"
	"flock/internal/domain/repository"
	"flock/internal/usecase"
)

// envelope mirrors the response structure with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

// fakeAuthUsecase scripts the auth operations and records their inputs.
type fakeAuthUsecase struct {
	signupOutput *usecase.AuthOutput
	signupErr    error
	lastSignup   *usecase.SignupInput

	loginOutput *usecase.AuthOutput
	loginErr    error
	lastLogin   *usecase.LoginInput

	checkAuthUser *entity.User
	checkAuthErr  error
}

func (f *fakeAuthUsecase) Signup(_ context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	f.lastSignup = input
	if f.signupErr != nil {
		return nil, f.signupErr
	}

	return f.signupOutput, nil
}

func (f *fakeAuthUsecase) Login(_ context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	f.lastLogin = input
	if f.loginErr != nil {
		return nil, f.loginErr
	}

	return f.loginOutput, nil
}

func (f *fakeAuthUsecase) CheckAuth(_ context.Context, _ uuid.UUID) (*entity.User, error) {
	if f.checkAuthErr != nil {
		return nil, f.checkAuthErr
	}

	return f.checkAuthUser, nil
}

// fakeUserUsecase scripts the user-graph operations.
type fakeUserUsecase struct {
	profileUser *entity.User
	profileErr  error

	followOutput *usecase.FollowOutput
	followErr    error
	lastTarget   uuid.UUID

	suggested    []*entity.User
	suggestedErr error

	updatedUser *entity.User
	updateErr   error
	lastUpdate  *usecase.UpdateProfileInput

	notifications    []*entity.Notification
	notificationsErr error
}

func (f *fakeUserUsecase) GetProfile(_ context.Context, _ string) (*entity.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}

	return f.profileUser, nil
}

func (f *fakeUserUsecase) FollowUnfollow(_ context.Context, _, targetID uuid.UUID) (*usecase.FollowOutput, error) {
	f.lastTarget = targetID
	if f.followErr != nil {
		return nil, f.followErr
	}

	return f.followOutput, nil
}

func (f *fakeUserUsecase) SuggestedUsers(_ context.Context, _ uuid.UUID) ([]*entity.User, error) {
	if f.suggestedErr != nil {
		return nil, f.suggestedErr
	}

	return f.suggested, nil
}

func (f *fakeUserUsecase) UpdateProfile(_ context.Context, _ uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	f.lastUpdate = input
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	return f.updatedUser, nil
}

func (f *fakeUserUsecase) Notifications(_ context.Context, _ uuid.UUID) ([]*entity.Notification, error) {
	if f.notificationsErr != nil {
		return nil, f.notificationsErr
	}

	return f.notifications, nil
}

// fakeTokenService validates only the tokens registered in the valid map.
type fakeTokenService struct {
	valid map[string]uuid.UUID
}

func (s *fakeTokenService) Issue(subjectID uuid.UUID) (string, error) {
	return "token-for-" + subjectID.String(), nil
}

func (s *fakeTokenService) Validate(tokenString string) (uuid.UUID, error) {
	if id, ok := s.valid[tokenString]; ok {
		return id, nil
	}

	return uuid.Nil, echo.ErrUnauthorized
}

// fakeGateUserRepo backs the authorization gate's subject lookup.
type fakeGateUserRepo struct {
	users   map[uuid.UUID]*entity.User
	findErr error
}

func (r *fakeGateUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *fakeGateUserRepo) Update(context.Context, *entity.User) error { return nil }

func (r *fakeGateUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if user, ok := r.users[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeGateUserRepo) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *fakeGateUserRepo) FindByUsernameOrEmail(context.Context, string, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (r *fakeGateUserRepo) FindSuggested(context.Context, []uuid.UUID, int) ([]*entity.User, error) {
	return nil, nil
}

// routerFixture wires the full HTTP surface: routes, authorization gate,
// validator, and the error handler, all on scripted fakes.
type routerFixture struct {
	e        *echo.Echo
	authUC   *fakeAuthUsecase
	userUC   *fakeUserUsecase
	tokens   *fakeTokenService
	gateRepo *fakeGateUserRepo
}

func newRouterFixture() *routerFixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authUC := &fakeAuthUsecase{}
	userUC := &fakeUserUsecase{}
	tokens := &fakeTokenService{valid: make(map[string]uuid.UUID)}
	gateRepo := &fakeGateUserRepo{users: make(map[uuid.UUID]*entity.User)}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := NewRouter(RouterParams{
		AuthHandler:    handler.NewAuthHandler(authUC, logger),
		UserHandler:    handler.NewUserHandler(userUC, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens, gateRepo),
	})
	r.RegisterRoutes(e)

	return &routerFixture{
		e:        e,
		authUC:   authUC,
		userUC:   userUC,
		tokens:   tokens,
		gateRepo: gateRepo,
	}
}

// authorize registers a user and a valid session token for it, returning the
// session cookie a logged-in client would send.
func (fx *routerFixture) authorize(user *entity.User) *http.Cookie {
	token := "session-" + user.ID.String()
	fx.tokens.valid[token] = user.ID
	fx.gateRepo.users[user.ID] = user

	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func (fx *routerFixture) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	fx.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec, env
}

// sessionCookie extracts the session cookie from a response, or nil.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}

	return nil
}
