package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	celebrity "github.com/celebnet/backend/internal/modules/celebrity/domain"
	"github.com/celebnet/backend/internal/modules/follow/domain"
)

// memRepo is an in-memory edge set with the same uniqueness rule as follows_pkey.
type memRepo struct {
	mu     sync.Mutex
	edges  map[[2]uuid.UUID]domain.Follow
	celebs map[uuid.UUID]celebrity.Celebrity
}

func newMemRepo() *memRepo {
	return &memRepo{edges: map[[2]uuid.UUID]domain.Follow{}, celebs: map[uuid.UUID]celebrity.Celebrity{}}
}

func (m *memRepo) Create(_ context.Context, f *domain.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{f.UserID, f.CelebrityID}
	if _, ok := m.edges[key]; ok {
		return domain.ErrAlreadyFollowing
	}
	m.edges[key] = *f
	return nil
}

func (m *memRepo) Delete(_ context.Context, userID, celebrityID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{userID, celebrityID}
	if _, ok := m.edges[key]; !ok {
		return domain.ErrFollowNotFound
	}
	delete(m.edges, key)
	return nil
}

func (m *memRepo) Exists(_ context.Context, userID, celebrityID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.edges[[2]uuid.UUID{userID, celebrityID}]
	return ok, nil
}

func (m *memRepo) ListCelebrities(_ context.Context, userID uuid.UUID) ([]celebrity.Celebrity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []celebrity.Celebrity{}
	for key := range m.edges {
		if key[0] != userID {
			continue
		}
		if c, ok := m.celebs[key[1]]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockFinder struct {
	mock.Mock
}

func (m *mockFinder) FindByID(ctx context.Context, id uuid.UUID) (*celebrity.Celebrity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*celebrity.Celebrity), args.Error(1)
}

func (m *mockFinder) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *countingMetrics) RecordFollow(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}

func setup(t *testing.T) (*FollowService, *memRepo, *mockFinder, *countingMetrics) {
	t.Helper()
	repo := newMemRepo()
	finder := new(mockFinder)
	metrics := &countingMetrics{}
	svc := NewFollowService(repo, finder, metrics, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return svc, repo, finder, metrics
}

func TestFollow_ThenDuplicateConflicts(t *testing.T) {
	svc, _, finder, metrics := setup(t)
	userID := uuid.New()
	c := &celebrity.Celebrity{ID: uuid.New(), Name: "Adele"}
	finder.On("FindByID", mock.Anything, c.ID).Return(c, nil)

	res, err := svc.Follow(context.Background(), userID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, res.Follow.UserID)
	assert.Equal(t, c.ID, res.Follow.CelebrityID)
	assert.Equal(t, "Adele", res.Celebrity.Name)

	_, err = svc.Follow(context.Background(), userID, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFollowing)

	assert.Equal(t, 1, metrics.outcomes[OutcomeFollowed])
	assert.Equal(t, 1, metrics.outcomes[OutcomeConflict])
}

func TestFollow_MissingCelebrity(t *testing.T) {
	svc, repo, finder, _ := setup(t)
	id := uuid.New()
	finder.On("FindByID", mock.Anything, id).Return(nil, celebrity.ErrCelebrityNotFound)

	_, err := svc.Follow(context.Background(), uuid.New(), id)
	assert.ErrorIs(t, err, domain.ErrCelebrityNotFound)
	assert.Empty(t, repo.edges)
}

func TestFollow_ConcurrentSamePairCreatesOneEdge(t *testing.T) {
	svc, repo, finder, _ := setup(t)
	userID := uuid.New()
	c := &celebrity.Celebrity{ID: uuid.New(), Name: "Adele"}
	finder.On("FindByID", mock.Anything, c.ID).Return(c, nil)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Follow(context.Background(), userID, c.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			assert.ErrorIs(t, err, domain.ErrAlreadyFollowing)
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, repo.edges, 1)
}

func TestUnfollow(t *testing.T) {
	svc, repo, _, _ := setup(t)
	userID, celebID, other := uuid.New(), uuid.New(), uuid.New()
	repo.edges[[2]uuid.UUID{userID, celebID}] = domain.Follow{UserID: userID, CelebrityID: celebID}
	repo.edges[[2]uuid.UUID{userID, other}] = domain.Follow{UserID: userID, CelebrityID: other}

	require.NoError(t, svc.Unfollow(context.Background(), userID, celebID))
	assert.Len(t, repo.edges, 1)

	assert.ErrorIs(t, svc.Unfollow(context.Background(), userID, celebID), domain.ErrFollowNotFound)

	following, err := svc.IsFollowing(context.Background(), userID, other)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestListFollowed_SkipsDanglingEdges(t *testing.T) {
	svc, repo, _, _ := setup(t)
	userID := uuid.New()
	kept := celebrity.Celebrity{ID: uuid.New(), Name: "Adele"}
	repo.celebs[kept.ID] = kept
	repo.edges[[2]uuid.UUID{userID, kept.ID}] = domain.Follow{}
	repo.edges[[2]uuid.UUID{userID, uuid.New()}] = domain.Follow{}

	list, err := svc.ListFollowed(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Adele", list[0].Name)
}
