package reaction

import (
	"context"
	"errors"

	"anoa.com/socialfeed/internal/entity"
	postRepo "anoa.com/socialfeed/internal/modules/post/repository"
	reactionDto "anoa.com/socialfeed/internal/modules/reaction/dto"
	reactionRepo "anoa.com/socialfeed/internal/modules/reaction/repository"
	userRepo "anoa.com/socialfeed/internal/modules/user/repository"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/cache"
	"anoa.com/socialfeed/pkg/clock"
)

// RemovedReactionID marks the synthetic reaction returned after an "unlike".
const RemovedReactionID = "removed"

type ReactionService interface {
	ApplyReaction(ctx context.Context, req reactionDto.ReactionRequest) (*entity.Reaction, error)
	RemoveReaction(ctx context.Context, postID, userID string) error
	ListReactions(ctx context.Context, postID string) ([]*entity.Reaction, error)
	CountReactions(ctx context.Context, postID string) (int64, error)
}

type reactionService struct {
	repo     reactionRepo.ReactionRepository
	postRepo postRepo.PostRepository
	userRepo userRepo.UserRepository
	counts   *cache.ReactionCounts
	clock    clock.Clock
}

func NewReactionService(repo reactionRepo.ReactionRepository, postRepo postRepo.PostRepository, userRepo userRepo.UserRepository, counts *cache.ReactionCounts, clk clock.Clock) ReactionService {
	return &reactionService{
		repo:     repo,
		postRepo: postRepo,
		userRepo: userRepo,
		counts:   counts,
		clock:    clk,
	}
}

// ApplyReaction moves the (post, user) pair through its two states:
//
//	Absent + unlike -> NotFound
//	Absent + T      -> Liked(T), new row
//	Liked  + unlike -> Absent, synthetic "removed" reaction returned
//	Liked  + T      -> Liked(T), same row updated in place
func (s *reactionService) ApplyReaction(ctx context.Context, req reactionDto.ReactionRequest) (*entity.Reaction, error) {
	if req.Type == "" {
		req.Type = entity.ReactionLike
	}

	if _, err := s.postRepo.FindByID(ctx, req.PostID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	result, err := s.transition(ctx, req)
	if errors.Is(err, apperror.ErrConstraintViolation) {
		// Lost an insert race on (post_id, user_id): the row exists now, so a
		// second pass takes the update path.
		result, err = s.transition(ctx, req)
	}
	if err != nil {
		if errors.Is(err, apperror.ErrConstraintViolation) {
			return nil, apperror.ConstraintViolation("Reaction creation failed", err)
		}
		return nil, err
	}

	s.counts.Invalidate(ctx, req.PostID)
	return result, nil
}

func (s *reactionService) transition(ctx context.Context, req reactionDto.ReactionRequest) (*entity.Reaction, error) {
	var result *entity.Reaction

	err := s.repo.Transaction(ctx, func(repo reactionRepo.ReactionRepository) error {
		existing, err := repo.FindByPostAndUser(ctx, req.PostID, req.UserID)
		if err != nil {
			return err
		}

		if req.Type == entity.ReactionUnlike {
			if existing == nil {
				return apperror.NotFound("No reaction to remove")
			}
			deleted, err := repo.DeleteByPostAndUser(ctx, req.PostID, req.UserID)
			if err != nil {
				return err
			}
			if !deleted {
				return apperror.NotFound("No reaction to remove")
			}
			result = &entity.Reaction{
				ID:        RemovedReactionID,
				PostID:    req.PostID,
				UserID:    req.UserID,
				Type:      entity.ReactionUnlike,
				CreatedAt: s.clock.Now(),
			}
			return nil
		}

		if existing != nil {
			updated, err := repo.UpdateType(ctx, existing.ID, req.Type)
			if err != nil {
				return err
			}
			if updated {
				existing.Type = req.Type
				result = existing
				return nil
			}
		}

		reaction := &entity.Reaction{
			PostID: req.PostID,
			UserID: req.UserID,
			Type:   req.Type,
		}
		if err := repo.Create(ctx, reaction); err != nil {
			return err
		}
		result = reaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reactionService) RemoveReaction(ctx context.Context, postID, userID string) error {
	deleted, err := s.repo.DeleteByPostAndUser(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Reaction not found")
	}

	s.counts.Invalidate(ctx, postID)
	return nil
}

func (s *reactionService) ListReactions(ctx context.Context, postID string) ([]*entity.Reaction, error) {
	return s.repo.FindByPostID(ctx, postID)
}

func (s *reactionService) CountReactions(ctx context.Context, postID string) (int64, error) {
	if n, ok := s.counts.Get(ctx, postID); ok {
		return n, nil
	}

	n, err := s.repo.CountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	s.counts.Set(ctx, postID, n)
	return n, nil
}
