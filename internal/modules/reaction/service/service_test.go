package reaction

import (
	"context"
	"testing"

	"anoa.com/socialfeed/internal/entity"
	postRepo "anoa.com/socialfeed/internal/modules/post/repository"
	reactionDto "anoa.com/socialfeed/internal/modules/reaction/dto"
	reactionRepo "anoa.com/socialfeed/internal/modules/reaction/repository"
	userRepo "anoa.com/socialfeed/internal/modules/user/repository"
	"anoa.com/socialfeed/internal/testutil"
	"anoa.com/socialfeed/pkg/apperror"
	"anoa.com/socialfeed/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	service ReactionService
	repo    reactionRepo.ReactionRepository
	post    *entity.Post
	user    *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)

	owner := testutil.CreateUser(t, db, "Ada")
	user := testutil.CreateUser(t, db, "Bob")
	post := testutil.CreatePost(t, db, owner.ID, "hi", nil)

	repo := reactionRepo.NewReactionRepository(db)
	return &fixture{
		db:      db,
		repo:    repo,
		service: newService(db, repo),
		post:    post,
		user:    user,
	}
}

func newService(db *gorm.DB, repo reactionRepo.ReactionRepository) ReactionService {
	return NewReactionService(
		repo,
		postRepo.NewPostRepository(db),
		userRepo.NewUserRepository(db),
		cache.NewReactionCounts(nil, nil),
		testutil.FixedClock(),
	)
}

func (f *fixture) apply(t *testing.T, reactionType string) (*entity.Reaction, error) {
	t.Helper()
	return f.service.ApplyReaction(context.Background(), reactionDto.ReactionRequest{
		PostID: f.post.ID,
		UserID: f.user.ID,
		Type:   reactionType,
	})
}

func (f *fixture) rows(t *testing.T) []entity.Reaction {
	t.Helper()
	var rows []entity.Reaction
	require.NoError(t, f.db.Where("post_id = ? AND user_id = ?", f.post.ID, f.user.ID).Find(&rows).Error)
	return rows
}

func TestApplyReactionCreatesRow(t *testing.T) {
	f := newFixture(t)

	res, err := f.apply(t, "like")
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "like", res.Type)
	assert.Equal(t, f.post.ID, res.PostID)
	assert.Equal(t, f.user.ID, res.UserID)

	rows := f.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, res.ID, rows[0].ID)
}

func TestApplyReactionDefaultsToLike(t *testing.T) {
	f := newFixture(t)

	res, err := f.apply(t, "")
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionLike, res.Type)
}

func TestApplyReactionUpdatesInPlace(t *testing.T) {
	f := newFixture(t)

	first, err := f.apply(t, "like")
	require.NoError(t, err)

	second, err := f.apply(t, "love")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "love", second.Type)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	rows := f.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "love", rows[0].Type)
}

func TestApplyReactionSameTypeStillSucceeds(t *testing.T) {
	f := newFixture(t)

	first, err := f.apply(t, "like")
	require.NoError(t, err)
	second, err := f.apply(t, "like")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.rows(t), 1)
}

func TestUnlikeRemovesRowAndReturnsMarker(t *testing.T) {
	f := newFixture(t)

	_, err := f.apply(t, "like")
	require.NoError(t, err)

	res, err := f.apply(t, "unlike")
	require.NoError(t, err)
	assert.Equal(t, RemovedReactionID, res.ID)
	assert.Equal(t, entity.ReactionUnlike, res.Type)
	assert.Equal(t, f.post.ID, res.PostID)
	assert.Equal(t, f.user.ID, res.UserID)
	assert.True(t, testutil.FixedClock().Now().Equal(res.CreatedAt))
	assert.Empty(t, f.rows(t))

	_, err = f.apply(t, "unlike")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUnlikeWithoutReaction(t *testing.T) {
	f := newFixture(t)

	_, err := f.apply(t, "unlike")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "No reaction to remove", err.Error())
}

func TestPreconditionsCheckedFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.ApplyReaction(ctx, reactionDto.ReactionRequest{PostID: "ghost", UserID: "ghost", Type: "unlike"})
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "Post not found", err.Error())

	_, err = f.service.ApplyReaction(ctx, reactionDto.ReactionRequest{PostID: f.post.ID, UserID: "ghost", Type: "unlike"})
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "User not found", err.Error())
}

func TestLastWriteWins(t *testing.T) {
	sequences := []struct {
		name     string
		types    []string
		wantType string // empty means no row
	}{
		{"like", []string{"like"}, "like"},
		{"like love", []string{"like", "love"}, "love"},
		{"like unlike", []string{"like", "unlike"}, ""},
		{"like unlike wow", []string{"like", "unlike", "wow"}, "wow"},
		{"love like love", []string{"love", "like", "love"}, "love"},
	}

	for _, tt := range sequences {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for _, typ := range tt.types {
				_, err := f.apply(t, typ)
				require.NoError(t, err)
			}

			rows := f.rows(t)
			if tt.wantType == "" {
				assert.Empty(t, rows)
				return
			}
			require.Len(t, rows, 1)
			assert.Equal(t, tt.wantType, rows[0].Type)
		})
	}
}

// staleReads makes the first N lookups report Absent even when a row exists,
// reproducing a request that lost the race to insert the pair.
type staleReads struct {
	reactionRepo.ReactionRepository
	remaining *int
}

func (r *staleReads) Transaction(ctx context.Context, fn func(repo reactionRepo.ReactionRepository) error) error {
	return r.ReactionRepository.Transaction(ctx, func(tx reactionRepo.ReactionRepository) error {
		return fn(&staleReads{ReactionRepository: tx, remaining: r.remaining})
	})
}

func (r *staleReads) FindByPostAndUser(ctx context.Context, postID, userID string) (*entity.Reaction, error) {
	if *r.remaining > 0 {
		*r.remaining--
		return nil, nil
	}
	return r.ReactionRepository.FindByPostAndUser(ctx, postID, userID)
}

func TestLostInsertRaceFallsBackToUpdate(t *testing.T) {
	f := newFixture(t)
	winner := testutil.CreateReaction(t, f.db, f.post.ID, f.user.ID, "like")

	stale := 1
	svc := newService(f.db, &staleReads{ReactionRepository: f.repo, remaining: &stale})

	res, err := svc.ApplyReaction(context.Background(), reactionDto.ReactionRequest{
		PostID: f.post.ID,
		UserID: f.user.ID,
		Type:   "love",
	})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, res.ID)
	assert.Equal(t, "love", res.Type)

	rows := f.rows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "love", rows[0].Type)
}

func TestRemoveReaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testutil.CreateReaction(t, f.db, f.post.ID, f.user.ID, "like")

	require.NoError(t, f.service.RemoveReaction(ctx, f.post.ID, f.user.ID))
	assert.Empty(t, f.rows(t))

	err := f.service.RemoveReaction(ctx, f.post.ID, f.user.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListAndCountReactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	count, err := f.service.CountReactions(ctx, f.post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.apply(t, "like")
	require.NoError(t, err)
	testutil.CreateReaction(t, f.db, f.post.ID, f.post.UserID, "wow")

	count, err = f.service.CountReactions(ctx, f.post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	reactions, err := f.service.ListReactions(ctx, f.post.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 2)
}
