// Package postgres contains the concrete implementation of the persistence
// layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"flock/internal/domain/entity"
	domainerrors "flock/internal/domain/errors"
	"flock/internal/domain/repository"
	"flock/internal/infra/persistence/model"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository. It returns the
// repository as a repository.UserRepository interface, adhering to
// dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new user. The entity's ID is assigned by the caller
// before persistence.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user record.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their unique ID, including their
// follower and following id sets.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return repo.toDomainWithEdges(ctx, &userM)
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return repo.toDomainWithEdges(ctx, &userM)
}

// FindByUsernameOrEmail retrieves a user matching either identifier. This is
// the single existence lookup used during signup.
func (repo *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username or email")
	}

	return repo.toDomainWithEdges(ctx, &userM)
}

// FindSuggested retrieves up to limit users excluding the given ids.
func (repo *userRepository) FindSuggested(ctx context.Context, excludedIDs []uuid.UUID, limit int) ([]*entity.User, error) {
	var userModels []*model.UserModel

	query := repo.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if len(excludedIDs) > 0 {
		query = query.Where("id NOT IN ?", excludedIDs)
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find suggested users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		user, err := repo.toDomainWithEdges(ctx, userM)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// toDomainWithEdges maps a persistence model to a domain entity and attaches
// the user's follower and following id sets from the follows table.
func (repo *userRepository) toDomainWithEdges(ctx context.Context, userM *model.UserModel) (*entity.User, error) {
	user := toUserDomain(userM)

	followers := make([]uuid.UUID, 0)
	if err := repo.db.WithContext(ctx).
		Model(&model.FollowModel{}).
		Where("followee_id = ?", userM.ID).
		Pluck("follower_id", &followers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load followers")
	}

	following := make([]uuid.UUID, 0)
	if err := repo.db.WithContext(ctx).
		Model(&model.FollowModel{}).
		Where("follower_id = ?", userM.ID).
		Pluck("followee_id", &following).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load following")
	}

	user.Followers = followers
	user.Following = following

	return user, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Username:     data.Username,
		FullName:     data.FullName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Bio:          data.Bio,
		Link:         data.Link,
		ProfileImage: data.ProfileImage,
		CoverImage:   data.CoverImage,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Username:     data.Username,
		FullName:     data.FullName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Bio:          data.Bio,
		Link:         data.Link,
		ProfileImage: data.ProfileImage,
		CoverImage:   data.CoverImage,
	}
}
