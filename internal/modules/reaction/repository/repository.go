package repository

import (
	"context"

	"anoa.com/socialfeed/internal/entity"
	"anoa.com/socialfeed/pkg/database"
	"gorm.io/gorm"
)

type ReactionRepository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction.
	Transaction(ctx context.Context, fn func(repo ReactionRepository) error) error
	// FindByPostAndUser returns nil without error when the pair has no reaction.
	FindByPostAndUser(ctx context.Context, postID, userID string) (*entity.Reaction, error)
	Create(ctx context.Context, reaction *entity.Reaction) error
	UpdateType(ctx context.Context, id, reactionType string) (bool, error)
	DeleteByPostAndUser(ctx context.Context, postID, userID string) (bool, error)
	FindByPostID(ctx context.Context, postID string) ([]*entity.Reaction, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Transaction(ctx context.Context, fn func(repo ReactionRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reactionRepository{db: tx})
	})
	return database.Translate(err)
}

func (r *reactionRepository) FindByPostAndUser(ctx context.Context, postID, userID string) (*entity.Reaction, error) {
	// Find with Limit avoids GORM logging "record not found" for the common absent case
	var existing []entity.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	if len(existing) == 0 {
		return nil, nil
	}
	return &existing[0], nil
}

func (r *reactionRepository) Create(ctx context.Context, reaction *entity.Reaction) error {
	return database.Translate(r.db.WithContext(ctx).Create(reaction).Error)
}

func (r *reactionRepository) UpdateType(ctx context.Context, id, reactionType string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Reaction{}).Where("id = ?", id).Update("type", reactionType)
	if res.Error != nil {
		return false, database.Translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) DeleteByPostAndUser(ctx context.Context, postID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&entity.Reaction{})
	if res.Error != nil {
		return false, database.Translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// FindByPostID returns the reactions of a post, oldest first.
func (r *reactionRepository) FindByPostID(ctx context.Context, postID string) ([]*entity.Reaction, error) {
	reactions := []*entity.Reaction{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return reactions, nil
}

func (r *reactionRepository) CountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Reaction{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, database.Translate(err)
	}
	return count, nil
}
