package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"flock/internal/domain/entity"
	"flock/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository. Error fields, when set,
// override the normal behavior of the matching method.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User

	createErr error
	updateErr error
	findErr   error

	created []*entity.User
	updated []*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}

	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users[user.ID] = user
	r.created = append(r.created, user)

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.users[user.ID] = user
	r.updated = append(r.updated, user)

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if user, ok := r.users[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindSuggested(_ context.Context, excludedIDs []uuid.UUID, limit int) ([]*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	excluded := make(map[uuid.UUID]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	var suggested []*entity.User
	for _, user := range r.users {
		if _, skip := excluded[user.ID]; skip {
			continue
		}
		suggested = append(suggested, user)
		if len(suggested) == limit {
			break
		}
	}

	return suggested, nil
}

type followEdge struct {
	follower uuid.UUID
	followee uuid.UUID
}

// fakeFollowRepo is an in-memory FollowRepository.
type fakeFollowRepo struct {
	edges map[followEdge]struct{}

	addErr    error
	removeErr error
	existsErr error
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[followEdge]struct{})}
}

func (r *fakeFollowRepo) AddEdge(_ context.Context, followerID, followeeID uuid.UUID) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.edges[followEdge{followerID, followeeID}] = struct{}{}

	return nil
}

func (r *fakeFollowRepo) RemoveEdge(_ context.Context, followerID, followeeID uuid.UUID) error {
	if r.removeErr != nil {
		return r.removeErr
	}
	delete(r.edges, followEdge{followerID, followeeID})

	return nil
}

func (r *fakeFollowRepo) Exists(_ context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.edges[followEdge{followerID, followeeID}]

	return ok, nil
}

// fakeNotificationRepo records created notifications in order.
type fakeNotificationRepo struct {
	notifications []*entity.Notification

	createErr error
	findErr   error
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.notifications = append(r.notifications, notification)

	return nil
}

func (r *fakeNotificationRepo) FindByRecipient(_ context.Context, userID uuid.UUID, _ int) ([]*entity.Notification, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}

	var result []*entity.Notification
	for _, n := range r.notifications {
		if n.ToUserID == userID {
			result = append(result, n)
		}
	}

	return result, nil
}

// fakeFactory hands out the same fake repositories the test already holds,
// so assertions see every write made inside a transaction.
type fakeFactory struct {
	userRepo         *fakeUserRepo
	followRepo       *fakeFollowRepo
	notificationRepo *fakeNotificationRepo
}

func (f *fakeFactory) NewUserRepository() repository.UserRepository { return f.userRepo }

func (f *fakeFactory) NewFollowRepository() repository.FollowRepository { return f.followRepo }

func (f *fakeFactory) NewNotificationRepository() repository.NotificationRepository {
	return f.notificationRepo
}

// fakeTxManager runs the transactional function directly against the fakes.
type fakeTxManager struct {
	factory *fakeFactory

	beginErr error
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if tm.beginErr != nil {
		return tm.beginErr
	}

	return fn(tm.factory)
}

// fakeHasher produces reversible marker strings instead of real digests.
type fakeHasher struct {
	hashErr   error
	hashCalls int
}

func (h *fakeHasher) Hash(password string) (string, error) {
	h.hashCalls++
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues predictable tokens derived from the subject id.
type fakeTokenService struct {
	issueErr    error
	validateErr error
}

func (s *fakeTokenService) Issue(subjectID uuid.UUID) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	return "token-for-" + subjectID.String(), nil
}

func (s *fakeTokenService) Validate(tokenString string) (uuid.UUID, error) {
	if s.validateErr != nil {
		return uuid.Nil, s.validateErr
	}

	return uuid.Parse(strings.TrimPrefix(tokenString, "token-for-"))
}

// fakeMediaStorage records uploads and removals.
type fakeMediaStorage struct {
	uploadErr error
	removeErr error

	uploads int
	removed []string
}

func (s *fakeMediaStorage) Upload(_ context.Context, kind, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads++

	return fmt.Sprintf("https://media.test/%s/%d", kind, s.uploads), nil
}

func (s *fakeMediaStorage) Remove(_ context.Context, url string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, url)

	return nil
}
