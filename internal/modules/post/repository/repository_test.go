package repository

import (
	"context"
	"testing"

	"anoa.com/socialfeed/internal/entity"
	"anoa.com/socialfeed/internal/testutil"
	"anoa.com/socialfeed/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequiresExistingUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)

	err := repo.Create(context.Background(), &entity.Post{UserID: "ghost", Content: "hi"})
	assert.ErrorIs(t, err, apperror.ErrConstraintViolation)
}

func TestFindAllNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)

	user := testutil.CreateUser(t, db, "Ada")
	first := testutil.CreatePost(t, db, user.ID, "first", nil)
	second := testutil.CreatePost(t, db, user.ID, "second", nil)
	third := testutil.CreatePost(t, db, user.ID, "third", nil)

	posts, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestFindAllEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)

	posts, err := NewPostRepository(db).FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestDeleteRemovesExactlyThePostAndItsChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	ada := testutil.CreateUser(t, db, "Ada")
	bob := testutil.CreateUser(t, db, "Bob")
	target := testutil.CreatePost(t, db, ada.ID, "target", nil)
	other := testutil.CreatePost(t, db, ada.ID, "other", nil)

	testutil.CreateComment(t, db, target.ID, bob.ID, "c1")
	testutil.CreateComment(t, db, target.ID, ada.ID, "c2")
	testutil.CreateComment(t, db, other.ID, bob.ID, "c3")
	testutil.CreateReaction(t, db, target.ID, bob.ID, "like")
	testutil.CreateReaction(t, db, other.ID, bob.ID, "like")

	require.NoError(t, repo.Delete(ctx, target.ID))

	assert.Zero(t, testutil.Count(t, db, &entity.Post{}, "id = ?", target.ID))
	assert.Zero(t, testutil.Count(t, db, &entity.Comment{}, "post_id = ?", target.ID))
	assert.Zero(t, testutil.Count(t, db, &entity.Reaction{}, "post_id = ?", target.ID))

	assert.Equal(t, int64(1), testutil.Count(t, db, &entity.Post{}, "id = ?", other.ID))
	assert.Equal(t, int64(1), testutil.Count(t, db, &entity.Comment{}, "post_id = ?", other.ID))
	assert.Equal(t, int64(1), testutil.Count(t, db, &entity.Reaction{}, "post_id = ?", other.ID))
	assert.Equal(t, int64(2), testutil.Count(t, db, &entity.User{}, "1 = 1"))

	err := repo.Delete(ctx, target.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
