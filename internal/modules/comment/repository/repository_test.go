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

func TestFindByPostIDOldestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)

	user := testutil.CreateUser(t, db, "Ada")
	post := testutil.CreatePost(t, db, user.ID, "hi", nil)
	first := testutil.CreateComment(t, db, post.ID, user.ID, "first")
	second := testutil.CreateComment(t, db, post.ID, user.ID, "second")

	comments, err := repo.FindByPostID(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestCreateRequiresExistingPost(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)

	user := testutil.CreateUser(t, db, "Ada")
	err := repo.Create(context.Background(), &entity.Comment{PostID: "ghost", UserID: user.ID, Content: "x"})
	assert.ErrorIs(t, err, apperror.ErrConstraintViolation)
}

func TestDeleteTwice(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "Ada")
	post := testutil.CreatePost(t, db, user.ID, "hi", nil)
	comment := testutil.CreateComment(t, db, post.ID, user.ID, "bye")

	require.NoError(t, repo.Delete(ctx, comment.ID))
	assert.ErrorIs(t, repo.Delete(ctx, comment.ID), apperror.ErrNotFound)

	_, err := repo.FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
