package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"flock/config"
	"flock/internal/domain/entity"
	domainerrors "flock/internal/domain/errors"
	"flock/internal/domain/repository"
	"flock/internal/domain/service"
	"flock/internal/usecase"
)

const (
	defaultSuggestionLimit = 5
	notificationsPageLimit = 50
	mediaKindProfile       = "profile"
	mediaKindCover         = "cover"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	followRepo       repository.FollowRepository
	notificationRepo repository.NotificationRepository
	hasher           service.PasswordHasher
	media            service.MediaStorage
	suggestionLimit  int
	logger           *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	cfg *config.Config,
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notificationRepo repository.NotificationRepository,
	hasher service.PasswordHasher,
	media service.MediaStorage,
	logger *slog.Logger,
) usecase.UserUsecase {
	suggestionLimit := defaultSuggestionLimit
	if cfg != nil && cfg.Suggestions != nil && cfg.Suggestions.Limit > 0 {
		suggestionLimit = cfg.Suggestions.Limit
	}

	return &userService{
		txManager:        txManager,
		userRepo:         userRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		hasher:           hasher,
		media:            media,
		suggestionLimit:  suggestionLimit,
		logger:           logger,
	}
}

// GetProfile retrieves a public profile by username.
func (srv *userService) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrProfileNotFound.WrapMessage("profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user profile")
	}

	return user.Sanitized(), nil
}

// FollowUnfollow toggles the follow edge from the current user to the
// target. The edge is a single row, so each direction of the toggle is one
// atomic write. A new follow records a notification inside the same
// transaction; a failure to record it is logged, not surfaced.
func (srv *userService) FollowUnfollow(ctx context.Context, currentUserID, targetID uuid.UUID) (*usecase.FollowOutput, error) {
	if currentUserID == targetID {
		return nil, domainerrors.ErrSelfFollow.WrapMessage("follow rejected")
	}

	if _, err := srv.userRepo.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrProfileNotFound.WrapMessage("follow target not found")
		}

		return nil, errors.Wrap(err, "failed to find follow target")
	}

	following, err := srv.followRepo.Exists(ctx, currentUserID, targetID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check follow state")
	}

	if following {
		if err := srv.followRepo.RemoveEdge(ctx, currentUserID, targetID); err != nil {
			return nil, errors.Wrap(err, "failed to unfollow")
		}
		srv.logger.Debug("User unfollowed", "follower", currentUserID, "followee", targetID)

		return &usecase.FollowOutput{Following: false}, nil
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewFollowRepository().AddEdge(ctx, currentUserID, targetID); err != nil {
			return errors.Wrap(err, "failed to follow")
		}

		notification := &entity.Notification{
			FromUserID: currentUserID,
			ToUserID:   targetID,
			Type:       entity.NotificationTypeFollow,
		}
		if err := repoFactory.NewNotificationRepository().Create(ctx, notification); err != nil {
			// Best-effort: the follow stands even if the notification is lost.
			srv.logger.Warn("Failed to record follow notification", "error", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Debug("User followed", "follower", currentUserID, "followee", targetID)

	return &usecase.FollowOutput{Following: true}, nil
}

// SuggestedUsers lists users the current user does not follow, excluding
// the current user themselves.
func (srv *userService) SuggestedUsers(ctx context.Context, currentUserID uuid.UUID) ([]*entity.User, error) {
	currentUser, err := srv.userRepo.FindByID(ctx, currentUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load current user")
	}

	excluded := append([]uuid.UUID{currentUserID}, currentUser.Following...)

	suggested, err := srv.userRepo.FindSuggested(ctx, excluded, srv.suggestionLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find suggested users")
	}

	sanitized := make([]*entity.User, 0, len(suggested))
	for _, user := range suggested {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, nil
}

// UpdateProfile applies a partial update. Password changes require both the
// current and the new password; image payloads are pushed to media storage
// and replaced, removing the previous object best-effort.
func (srv *userService) UpdateProfile(ctx context.Context, currentUserID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, currentUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrProfileNotFound.WrapMessage("update target not found")
		}

		return nil, errors.Wrap(err, "failed to load user for update")
	}

	if (input.CurrentPassword == "") != (input.NewPassword == "") {
		return nil, domainerrors.ErrPasswordPairRequired.WrapMessage("password update incomplete")
	}

	if input.CurrentPassword != "" {
		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return nil, domainerrors.ErrCurrentPasswordIncorrect.WrapMessage("password update rejected")
		}
		if len(input.NewPassword) < minPasswordLength {
			return nil, domainerrors.ErrPasswordTooShort.WrapMessage("password update rejected")
		}

		hashed, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash new password")
		}
		user.PasswordHash = hashed
	}

	if input.FullName == "" && input.Email == "" && input.Link == "" && input.Bio == "" &&
		input.ProfileImage == "" && input.CoverImage == "" {
		return nil, domainerrors.ErrNoUpdateFields.WrapMessage("update rejected")
	}

	if input.ProfileImage != "" {
		url, err := srv.replaceImage(ctx, mediaKindProfile, user.ProfileImage, input.ProfileImage)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = url
	}
	if input.CoverImage != "" {
		url, err := srv.replaceImage(ctx, mediaKindCover, user.CoverImage, input.CoverImage)
		if err != nil {
			return nil, err
		}
		user.CoverImage = url
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Link != "" {
		user.Link = input.Link
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	srv.logger.Info("User profile updated", "userID", user.ID)

	return user.Sanitized(), nil
}

// Notifications lists notifications for the current user, newest first.
func (srv *userService) Notifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	notifications, err := srv.notificationRepo.FindByRecipient(ctx, userID, notificationsPageLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// replaceImage uploads the new payload and removes the previous object. A
// failed removal only costs storage, so it is logged and ignored.
func (srv *userService) replaceImage(ctx context.Context, kind, oldURL, payload string) (string, error) {
	if oldURL != "" {
		if err := srv.media.Remove(ctx, oldURL); err != nil {
			srv.logger.Warn("Failed to remove previous image", "kind", kind, "error", err)
		}
	}

	url, err := srv.media.Upload(ctx, kind, payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to upload image")
	}

	return url, nil
}
