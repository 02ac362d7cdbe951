// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"flock/internal/domain/entity"
	domainerrors "flock/internal/domain/errors"
	"flock/internal/domain/repository"
	"flock/internal/domain/service"
	"flock/internal/usecase"
)

const minPasswordLength = 8

// emailPattern is a structural check only: local-part@domain.tld with an
// alphabetic TLD of length >= 2. Deliverability is not our problem.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// authService implements the AuthUsecase interface. It is stateless between
// calls; every request is handled independently.
type authService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	tokenSvc  service.TokenService
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all
// dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		tokenSvc:  tokenSvc,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Signup orchestrates account creation: field validation, the single
// username-or-email existence lookup, password hashing, token issuance, and
// persistence. A taken identity rejects before the password length is even
// looked at, and hashing only runs for requests that may succeed. The token
// is issued for the generated id before the record is written, so issuance
// never depends on persistence.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrFieldsRequired.WrapMessage("signup input incomplete")
	}

	if !emailPattern.MatchString(input.Email) {
		return nil, domainerrors.ErrInvalidEmail.WrapMessage("signup email rejected")
	}

	var newUser *entity.User
	var token string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		// Single lookup covering both unique identities.
		_, err := userRepo.FindByUsernameOrEmail(ctx, input.Username, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("signup rejected")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing user")
		}

		if len(input.Password) < minPasswordLength {
			return domainerrors.ErrPasswordTooShort.WrapMessage("signup password rejected")
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.logger.Error("Failed to hash password during signup", "error", err)

			return errors.Wrap(err, "failed to hash password during signup")
		}

		newUser = &entity.User{
			ID:           uuid.New(),
			Username:     input.Username,
			FullName:     input.FullName,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Followers:    []uuid.UUID{},
			Following:    []uuid.UUID{},
		}

		token, err = srv.tokenSvc.Issue(newUser.ID)
		if err != nil {
			return errors.Wrap(err, "failed to issue session token")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("User signed up", "userID", newUser.ID, "username", newUser.Username)

	return &usecase.AuthOutput{
		User:  newUser.Sanitized(),
		Token: token,
	}, nil
}

// Login checks credentials and issues a fresh session token. "User not
// found" and "invalid credentials" remain distinguishable responses; this
// mirrors the API's observable behavior and is accepted as a minor
// enumeration tradeoff.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrFieldsRequired.WrapMessage("login input incomplete")
	}

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrLoginUserNotFound.WrapMessage("login rejected")
		}

		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	// An absent hash fails the check rather than erroring.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.logger.Warn("Login failed", "username", input.Username)

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
	}

	token, err := srv.tokenSvc.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.logger.Debug("User logged in", "userID", user.ID)

	return &usecase.AuthOutput{
		User:  user.Sanitized(),
		Token: token,
	}, nil
}

// CheckAuth re-fetches the current record by its id. A lookup failure here
// surfaces as an internal error; the authorization gate has already vouched
// for the subject on this request.
func (srv *authService) CheckAuth(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch current user")
	}

	return user.Sanitized(), nil
}
