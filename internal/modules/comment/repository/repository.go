package repository

import (
	"context"
	"errors"

	"anoa.com/socialfeed/internal/entity"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/database"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id string) (*entity.Comment, error)
	FindByPostID(ctx context.Context, postID string) ([]*entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return database.Translate(r.db.WithContext(ctx).Create(comment).Error)
}

func (r *commentRepository) FindByID(ctx context.Context, id string) (*entity.Comment, error) {
	var comment entity.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Comment not found")
		}
		return nil, database.Translate(err)
	}
	return &comment, nil
}

// FindByPostID returns the comments of a post, oldest first.
func (r *commentRepository) FindByPostID(ctx context.Context, postID string) ([]*entity.Comment, error) {
	comments := []*entity.Comment{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Comment{})
	if res.Error != nil {
		return database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Comment not found")
	}
	return nil
}
