package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"anoa.com/socialfeed/internal/entity"
	userDto "anoa.com/socialfeed/internal/modules/user/dto"
	userRepo "anoa.com/socialfeed/internal/modules/user/repository"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/cache"
	"anoa.com/socialfeed/pkg/storage"
)

type UserService interface {
	CreateUser(ctx context.Context, req userDto.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateProfilePicture(ctx context.Context, userID string, file storage.Upload) (*entity.User, error)
	DeleteUser(ctx context.Context, userID, requesterID string) error
}

type userService struct {
	repo   userRepo.UserRepository
	store  storage.BlobStore
	counts *cache.ReactionCounts
	logger *slog.Logger
}

func NewUserService(repo userRepo.UserRepository, store storage.BlobStore, counts *cache.ReactionCounts, logger *slog.Logger) UserService {
	return &userService{
		repo:   repo,
		store:  store,
		counts: counts,
		logger: logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, req userDto.CreateUserRequest) (*entity.User, error) {
	user := &entity.User{
		FirstName:  req.FirstName,
		ProfilePic: req.ProfilePic,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConstraintViolation) {
			return nil, apperror.ConstraintViolation("User creation failed", err)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfilePicture stores the new image before touching the row and only
// removes the previous image once the row points at the new one.
func (s *userService) UpdateProfilePicture(ctx context.Context, userID string, file storage.Upload) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !storage.IsImage(file.ContentType) {
		return nil, apperror.InvalidMediaType("File must be an image")
	}

	key, err := s.store.Put(ctx, file.Reader, storage.PutOptions{
		Prefix:      fmt.Sprintf("profile_%s_", userID),
		FileName:    file.FileName,
		ContentType: file.ContentType,
	})
	if err != nil {
		return nil, apperror.StorageFailure("failed to store profile picture", err)
	}

	path := storage.PublicPath(key)
	if err := s.repo.UpdateProfilePic(ctx, userID, &path); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned profile picture", "key", key, "err", delErr)
		}
		if errors.Is(err, apperror.ErrConstraintViolation) {
			return nil, apperror.ConstraintViolation("Profile picture update failed", err)
		}
		return nil, err
	}

	if old := user.ProfilePic; old != nil && *old != "" && *old != path {
		storage.Discard(ctx, s.store, s.logger, *old)
	}

	user.ProfilePic = &path
	return user, nil
}

// DeleteUser removes the user together with their posts, comments and
// reactions, plus reactions and comments left by others on those posts.
func (s *userService) DeleteUser(ctx context.Context, userID, requesterID string) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if userID != requesterID {
		return apperror.Forbidden("You can only delete your own account")
	}

	cascade, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return err
	}

	for _, ref := range cascade.BlobPaths {
		storage.Discard(ctx, s.store, s.logger, ref)
	}
	s.counts.Invalidate(ctx, cascade.PostIDs...)

	s.logger.InfoContext(ctx, "user deleted", "user_id", userID, "posts_affected", len(cascade.PostIDs))
	return nil
}
