package repository

import (
	"context"
	"errors"

	"anoa.com/socialfeed/internal/entity"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/database"
	"gorm.io/gorm"
)

// Cascade describes what a user deletion removed besides the rows themselves:
// blob references that now need cleanup and the posts whose reaction counts
// changed.
type Cascade struct {
	BlobPaths []string
	PostIDs   []string
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	UpdateProfilePic(ctx context.Context, id string, path *string) error
	Delete(ctx context.Context, id string) (*Cascade, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return database.Translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, database.Translate(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateProfilePic(ctx context.Context, id string, path *string) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("profile_pic", path)
	if res.Error != nil {
		return database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}

// Delete removes the user and everything that references it, children first,
// in a single transaction.
func (r *userRepository) Delete(ctx context.Context, id string) (*Cascade, error) {
	cascade := &Cascade{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entity.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("User not found")
			}
			return err
		}
		if user.ProfilePic != nil && *user.ProfilePic != "" {
			cascade.BlobPaths = append(cascade.BlobPaths, *user.ProfilePic)
		}

		var posts []entity.Post
		if err := tx.Select("id", "image_url").Where("user_id = ?", id).Find(&posts).Error; err != nil {
			return err
		}
		ownPostIDs := make([]string, 0, len(posts))
		for _, p := range posts {
			ownPostIDs = append(ownPostIDs, p.ID)
			if p.ImageURL != nil && *p.ImageURL != "" {
				cascade.BlobPaths = append(cascade.BlobPaths, *p.ImageURL)
			}
		}

		var reactedPostIDs []string
		if err := tx.Model(&entity.Reaction{}).Where("user_id = ?", id).Distinct().Pluck("post_id", &reactedPostIDs).Error; err != nil {
			return err
		}
		cascade.PostIDs = mergeIDs(ownPostIDs, reactedPostIDs)

		if err := tx.Where("user_id = ?", id).Delete(&entity.Reaction{}).Error; err != nil {
			return err
		}
		if len(ownPostIDs) > 0 {
			if err := tx.Where("post_id IN ?", ownPostIDs).Delete(&entity.Reaction{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		if len(ownPostIDs) > 0 {
			if err := tx.Where("post_id IN ?", ownPostIDs).Delete(&entity.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.Post{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entity.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NotFound("User not found")
		}
		return nil
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return cascade, nil
}

func mergeIDs(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, ids := range [][]string{a, b} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
