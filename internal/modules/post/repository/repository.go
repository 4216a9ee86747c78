package repository

import (
	"context"
	"errors"

	"anoa.com/socialfeed/internal/entity"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/database"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id string) (*entity.Post, error)
	FindAll(ctx context.Context) ([]*entity.Post, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return database.Translate(r.db.WithContext(ctx).Create(post).Error)
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, database.Translate(err)
	}
	return &post, nil
}

// FindAll returns every post, newest first.
func (r *postRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	posts := []*entity.Post{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, database.Translate(err)
	}
	return posts, nil
}

// Delete removes the post's reactions, then its comments, then the post.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&entity.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entity.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("Post not found")
		}
		return nil
	})
	return database.Translate(err)
}
