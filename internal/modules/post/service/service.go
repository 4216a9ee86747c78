package post

import (
	"context"
	"errors"
	"log/slog"

	"anoa.com/socialfeed/internal/entity"
	postDto "anoa.com/socialfeed/internal/modules/post/dto"
	postRepo "anoa.com/socialfeed/internal/modules/post/repository"
	userRepo "anoa.com/socialfeed/internal/modules/user/repository"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/cache"
	"anoa.com/socialfeed/pkg/sanitizer"
	"anoa.com/socialfeed/pkg/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, req postDto.CreatePostRequest, image *storage.Upload) (*entity.Post, error)
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	DeletePost(ctx context.Context, postID, requesterID string) error
}

type postService struct {
	repo     postRepo.PostRepository
	userRepo userRepo.UserRepository
	store    storage.BlobStore
	counts   *cache.ReactionCounts
	logger   *slog.Logger
}

func NewPostService(repo postRepo.PostRepository, userRepo userRepo.UserRepository, store storage.BlobStore, counts *cache.ReactionCounts, logger *slog.Logger) PostService {
	return &postService{
		repo:     repo,
		userRepo: userRepo,
		store:    store,
		counts:   counts,
		logger:   logger,
	}
}

func (s *postService) CreatePost(ctx context.Context, req postDto.CreatePostRequest, image *storage.Upload) (*entity.Post, error) {
	content := sanitizer.Content(req.Content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}

	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	post := &entity.Post{
		UserID:  req.UserID,
		Content: content,
	}

	var key string
	if image != nil {
		if !storage.IsImage(image.ContentType) {
			return nil, apperror.InvalidMediaType("File must be an image")
		}

		var err error
		key, err = s.store.Put(ctx, image.Reader, storage.PutOptions{
			FileName:    image.FileName,
			ContentType: image.ContentType,
		})
		if err != nil {
			return nil, apperror.StorageFailure("failed to store image", err)
		}
		path := storage.PublicPath(key)
		post.ImageURL = &path
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if key != "" {
			if delErr := s.store.Delete(ctx, key); delErr != nil {
				s.logger.WarnContext(ctx, "failed to remove orphaned post image", "key", key, "err", delErr)
			}
		}
		if errors.Is(err, apperror.ErrConstraintViolation) {
			return nil, apperror.ConstraintViolation("Post creation failed", err)
		}
		return nil, err
	}

	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	return s.repo.FindAll(ctx)
}

func (s *postService) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// DeletePost commits the row deletion before touching the image, so a blob
// failure can only leave an orphaned file, never a dangling reference.
func (s *postService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != requesterID {
		return apperror.Forbidden("You can only delete your own posts")
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImageURL != nil && *post.ImageURL != "" {
		storage.Discard(ctx, s.store, s.logger, *post.ImageURL)
	}
	s.counts.Invalidate(ctx, postID)
	return nil
}
