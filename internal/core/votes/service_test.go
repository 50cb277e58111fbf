package votes

import (
	"context"
	"errors"
	"sync"
	"testing"

	"Votocon/internal/core/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVoteRepository struct {
	mock.Mock
}

func (m *mockVoteRepository) Find(ctx context.Context, postID, userID int64) (*Vote, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Vote), args.Error(1)
}

func (m *mockVoteRepository) Create(ctx context.Context, postID, userID int64) (*Vote, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Vote), args.Error(1)
}

func (m *mockVoteRepository) Delete(ctx context.Context, postID, userID int64) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockVoteRepository) CountByPost(ctx context.Context, postID int64) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

// memoryVotes is an in-memory Repository keyed by (post, user)
type memoryVotes struct {
	votes map[[2]int64]*Vote
	mu    sync.Mutex
}

func newMemoryVotes() *memoryVotes {
	return &memoryVotes{votes: make(map[[2]int64]*Vote)}
}

func (r *memoryVotes) Find(_ context.Context, postID, userID int64) (*Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.votes[[2]int64{postID, userID}]; ok {
		return v, nil
	}
	return nil, ErrVoteNotFound
}

func (r *memoryVotes) Create(_ context.Context, postID, userID int64) (*Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{postID, userID}
	if _, ok := r.votes[key]; ok {
		return nil, ErrVoteAlreadyExists
	}
	v := &Vote{PostID: postID, UserID: userID}
	r.votes[key] = v
	return v, nil
}

func (r *memoryVotes) Delete(_ context.Context, postID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int64{postID, userID}
	if _, ok := r.votes[key]; !ok {
		return false, nil
	}
	delete(r.votes, key)
	return true, nil
}

func (r *memoryVotes) CountByPost(_ context.Context, postID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for key := range r.votes {
		if key[0] == postID {
			n++
		}
	}
	return n, nil
}

func postsThatExist(ids ...int64) PostChecker {
	return PostExistsFunc(func(_ context.Context, postID int64) (bool, error) {
		for _, id := range ids {
			if id == postID {
				return true, nil
			}
		}
		return false, nil
	})
}

var voter = users.Caller{ID: 2}

func TestVoteService_StateMachine(t *testing.T) {
	repo := newMemoryVotes()
	svc := NewVoteService(repo, postsThatExist(1))
	ctx := context.Background()

	count := func() int {
		n, err := repo.CountByPost(ctx, 1)
		require.NoError(t, err)
		return n
	}
	require.Equal(t, 0, count())

	// NotVoted -> Voted
	resp, err := svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionUp})
	require.NoError(t, err)
	assert.True(t, resp.Added)
	assert.Equal(t, "successfully added vote", resp.Message)
	assert.Equal(t, 1, count())

	// Voted + add -> conflict, unchanged
	_, err = svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionUp})
	assert.ErrorIs(t, err, ErrVoteAlreadyExists)
	assert.Equal(t, 1, count())

	// Voted -> NotVoted
	resp, err = svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionDown})
	require.NoError(t, err)
	assert.False(t, resp.Added)
	assert.Equal(t, "successfully deleted vote", resp.Message)
	assert.Equal(t, 0, count())

	// NotVoted + remove -> not found, unchanged
	_, err = svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionDown})
	assert.ErrorIs(t, err, ErrVoteNotFound)
	assert.Equal(t, 0, count())
}

func TestVoteService_AnyNonUpDirectionRemoves(t *testing.T) {
	repo := newMemoryVotes()
	svc := NewVoteService(repo, postsThatExist(1))
	ctx := context.Background()

	_, err := svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionUp})
	require.NoError(t, err)

	_, err = svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: Direction(-1)})
	require.NoError(t, err)

	n, _ := repo.CountByPost(ctx, 1)
	assert.Zero(t, n)
}

func TestVoteService_VotesArePerUser(t *testing.T) {
	repo := newMemoryVotes()
	svc := NewVoteService(repo, postsThatExist(1))
	ctx := context.Background()

	_, err := svc.Vote(ctx, users.Caller{ID: 2}, VoteRequest{PostID: 1, Dir: DirectionUp})
	require.NoError(t, err)
	_, err = svc.Vote(ctx, users.Caller{ID: 3}, VoteRequest{PostID: 1, Dir: DirectionUp})
	require.NoError(t, err)

	n, _ := repo.CountByPost(ctx, 1)
	assert.Equal(t, 2, n)

	// User 3 removing their vote does not touch user 2's
	_, err = svc.Vote(ctx, users.Caller{ID: 3}, VoteRequest{PostID: 1, Dir: DirectionDown})
	require.NoError(t, err)
	_, err = repo.Find(ctx, 1, 2)
	assert.NoError(t, err)
}

func TestVoteService_PostNotFound(t *testing.T) {
	repo := new(mockVoteRepository)
	svc := NewVoteService(repo, postsThatExist())

	for _, dir := range []Direction{DirectionUp, DirectionDown} {
		_, err := svc.Vote(context.Background(), voter, VoteRequest{PostID: 99, Dir: dir})
		assert.ErrorIs(t, err, ErrPostNotFound)
	}
	repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoteService_RequiresCaller(t *testing.T) {
	repo := new(mockVoteRepository)
	svc := NewVoteService(repo, postsThatExist(1))

	_, err := svc.Vote(context.Background(), users.Caller{}, VoteRequest{PostID: 1, Dir: DirectionUp})
	assert.ErrorIs(t, err, users.ErrUnauthenticated)
}

func TestVoteService_ConcurrentInsertReportsConflict(t *testing.T) {
	repo := new(mockVoteRepository)
	svc := NewVoteService(repo, postsThatExist(1))
	ctx := context.Background()

	// Find saw no vote, but another request inserted before us
	repo.On("Find", ctx, int64(1), voter.ID).Return(nil, ErrVoteNotFound)
	repo.On("Create", ctx, int64(1), voter.ID).Return(nil, ErrVoteAlreadyExists)

	_, err := svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionUp})
	assert.ErrorIs(t, err, ErrVoteAlreadyExists)
	repo.AssertExpectations(t)
}

func TestVoteService_ConcurrentDeleteReportsNotFound(t *testing.T) {
	repo := new(mockVoteRepository)
	svc := NewVoteService(repo, postsThatExist(1))
	ctx := context.Background()

	repo.On("Find", ctx, int64(1), voter.ID).Return(&Vote{PostID: 1, UserID: voter.ID}, nil)
	repo.On("Delete", ctx, int64(1), voter.ID).Return(false, nil)

	_, err := svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionDown})
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestVoteService_StoreErrorsPropagate(t *testing.T) {
	storeErr := errors.New("connection refused")

	t.Run("post lookup", func(t *testing.T) {
		repo := new(mockVoteRepository)
		failing := PostExistsFunc(func(context.Context, int64) (bool, error) { return false, storeErr })
		svc := NewVoteService(repo, failing)

		_, err := svc.Vote(context.Background(), voter, VoteRequest{PostID: 1, Dir: DirectionUp})
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("vote lookup", func(t *testing.T) {
		repo := new(mockVoteRepository)
		svc := NewVoteService(repo, postsThatExist(1))
		ctx := context.Background()

		repo.On("Find", ctx, int64(1), voter.ID).Return(nil, storeErr)

		_, err := svc.Vote(ctx, voter, VoteRequest{PostID: 1, Dir: DirectionUp})
		assert.ErrorIs(t, err, storeErr)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}
