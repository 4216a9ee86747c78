package comment

import (
	"context"
	"errors"

	"anoa.com/socialfeed/internal/entity"
	commentDto "anoa.com/socialfeed/internal/modules/comment/dto"
	commentRepo "anoa.com/socialfeed/internal/modules/comment/repository"
	postRepo "anoa.com/socialfeed/internal/modules/post/repository"
	userRepo "anoa.com/socialfeed/internal/modules/user/repository"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/sanitizer"
)

type CommentService interface {
	CreateComment(ctx context.Context, req commentDto.CreateCommentRequest) (*entity.Comment, error)
	ListComments(ctx context.Context, postID string) ([]*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID, requesterID string) error
}

type commentService struct {
	repo     commentRepo.CommentRepository
	postRepo postRepo.PostRepository
	userRepo userRepo.UserRepository
}

func NewCommentService(repo commentRepo.CommentRepository, postRepo postRepo.PostRepository, userRepo userRepo.UserRepository) CommentService {
	return &commentService{
		repo:     repo,
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, req commentDto.CreateCommentRequest) (*entity.Comment, error) {
	content := sanitizer.Content(req.Content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}

	if _, err := s.postRepo.FindByID(ctx, req.PostID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		PostID:  req.PostID,
		UserID:  req.UserID,
		Content: content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		if errors.Is(err, apperror.ErrConstraintViolation) {
			return nil, apperror.ConstraintViolation("Comment creation failed", err)
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	return s.repo.FindByPostID(ctx, postID)
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != requesterID {
		return apperror.Forbidden("You can only delete your own comments")
	}
	return s.repo.Delete(ctx, commentID)
}
