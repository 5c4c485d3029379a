package dream

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dreamboard-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockDreamRepo struct {
	CreateFunc  func(ctx context.Context, d *domain.Dream) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Dream, error)
	ListFunc    func(ctx context.Context, f domain.DreamFilter) ([]domain.Dream, error)
	UpdateFunc  func(ctx context.Context, d *domain.Dream) error
	DeleteFunc  func(ctx context.Context, id int64) error

	updateCalls int
}

func (m *mockDreamRepo) Create(ctx context.Context, d *domain.Dream) error {
	return m.CreateFunc(ctx, d)
}

func (m *mockDreamRepo) GetByID(ctx context.Context, id int64) (*domain.Dream, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockDreamRepo) List(ctx context.Context, f domain.DreamFilter) ([]domain.Dream, error) {
	return m.ListFunc(ctx, f)
}

func (m *mockDreamRepo) Update(ctx context.Context, d *domain.Dream) error {
	m.updateCalls++
	return m.UpdateFunc(ctx, d)
}

func (m *mockDreamRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(repo *mockDreamRepo) *Service {
	svc := NewService(slog.Default(), repo)
	return svc
}

func storedDream(id int64) *domain.Dream {
	return &domain.Dream{
		ID:       id,
		Name:     "run a marathon",
		Color:    "#22d3ee",
		Size:     100,
		Position: domain.Position{X: 50, Y: 50},
		Steps:    []domain.Step{},
		Spec:     domain.NewSpec(),
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	var created *domain.Dream
	repo := &mockDreamRepo{
		CreateFunc: func(ctx context.Context, d *domain.Dream) error {
			d.ID = 1
			created = d
			return nil
		},
	}
	svc := newTestService(repo)

	got, err := svc.Create(context.Background(), CreateInput{Name: "  learn piano  ", Color: "#fff"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "learn piano", got.Name)
	assert.Equal(t, DefaultSize, got.Size)
	require.NotNil(t, created)
	assert.NotNil(t, created.Steps)
	assert.NotNil(t, created.Spec.Select.Images)
}

func TestCreate_EmptyName(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockDreamRepo{})

	_, err := svc.Create(context.Background(), CreateInput{Name: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_PositionWithinBounds(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		CreateFunc: func(ctx context.Context, d *domain.Dream) error {
			d.ID = 1
			return nil
		},
	}
	svc := newTestService(repo)

	for i := 0; i < 50; i++ {
		got, err := svc.Create(context.Background(), CreateInput{Name: "bounded"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Position.X, 10.0)
		assert.LessOrEqual(t, got.Position.X, 90.0)
		assert.GreaterOrEqual(t, got.Position.Y, 15.0)
		assert.LessOrEqual(t, got.Position.Y, 85.0)
	}
}

func TestCreate_SizeClamped(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		CreateFunc: func(ctx context.Context, d *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	small, err := svc.Create(context.Background(), CreateInput{Name: "tiny", Size: 5})
	require.NoError(t, err)
	assert.Equal(t, MinSize, small.Size)

	big, err := svc.Create(context.Background(), CreateInput{Name: "huge", Size: 999})
	require.NoError(t, err)
	assert.Equal(t, MaxSize, big.Size)
}

// ---------------------------------------------------------------------------
// Update tests
// ---------------------------------------------------------------------------

func TestUpdate_PartialFields(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return storedDream(id), nil
		},
		UpdateFunc: func(ctx context.Context, d *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	name := "run an ultramarathon"
	got, err := svc.Update(context.Background(), 7, UpdateInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "run an ultramarathon", got.Name)
	assert.Equal(t, "#22d3ee", got.Color, "unset fields keep stored values")
}

func TestUpdate_ZeroID(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockDreamRepo{})

	_, err := svc.Update(context.Background(), 0, UpdateInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), 404, UpdateInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRename_EmptyNameAllowed(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return storedDream(id), nil
		},
		UpdateFunc: func(ctx context.Context, d *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	got, err := svc.Rename(context.Background(), 7, "   ")
	require.NoError(t, err, "clearing the name leaves an unnamed dream")
	assert.Equal(t, "", got.Name)

	got, err = svc.Rename(context.Background(), 7, "  sail the atlantic  ")
	require.NoError(t, err)
	assert.Equal(t, "sail the atlantic", got.Name)
}

// ---------------------------------------------------------------------------
// Step tests
// ---------------------------------------------------------------------------

func TestAddStep_Success(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return storedDream(id), nil
		},
		UpdateFunc: func(ctx context.Context, d *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	got, err := svc.AddStep(context.Background(), 1, "  sign up for a race  ")
	require.NoError(t, err)

	require.Len(t, got.Steps, 1)
	assert.Equal(t, "sign up for a race", got.Steps[0].Text)
	assert.False(t, got.Steps[0].Completed)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestAddStep_WhitespaceIsNoOp(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return storedDream(id), nil
		},
		UpdateFunc: func(ctx context.Context, d *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	got, err := svc.AddStep(context.Background(), 1, "   \t ")
	require.NoError(t, err)

	assert.Empty(t, got.Steps)
	assert.Zero(t, repo.updateCalls, "no-op must not write")
}

func TestToggleStep_FlipsBothWays(t *testing.T) {
	t.Parallel()

	d := storedDream(1)
	d.Steps = []domain.Step{{Text: "stretch"}}

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return d, nil
		},
		UpdateFunc: func(ctx context.Context, updated *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	got, err := svc.ToggleStep(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.True(t, got.Steps[0].Completed)

	got, err = svc.ToggleStep(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.False(t, got.Steps[0].Completed)
}

func TestToggleStep_IndexOutOfRange(t *testing.T) {
	t.Parallel()

	d := storedDream(1)
	d.Steps = []domain.Step{{Text: "only one"}}

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return d, nil
		},
		UpdateFunc: func(ctx context.Context, updated *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	for _, index := range []int{-1, 1, 42} {
		_, err := svc.ToggleStep(context.Background(), 1, index)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange, "index %d", index)
	}
	assert.Zero(t, repo.updateCalls, "failed toggles must not write")
}

// ---------------------------------------------------------------------------
// Fulfill tests
// ---------------------------------------------------------------------------

func TestFulfill_Success(t *testing.T) {
	t.Parallel()

	d := storedDream(1)
	d.Steps = []domain.Step{{Text: "a", Completed: true}, {Text: "b", Completed: true}}

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return d, nil
		},
		UpdateFunc: func(ctx context.Context, updated *domain.Dream) error { return nil },
	}
	svc := newTestService(repo)

	got, err := svc.Fulfill(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestFulfill_OpenStepsRejected(t *testing.T) {
	t.Parallel()

	d := storedDream(1)
	d.Steps = []domain.Step{{Text: "a", Completed: true}, {Text: "b"}}

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return d, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Fulfill(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFulfill_NoStepsRejected(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return storedDream(id), nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Fulfill(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFulfill_AlreadyFulfilledIsNoOp(t *testing.T) {
	t.Parallel()

	d := storedDream(1)
	d.Completed = true

	repo := &mockDreamRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Dream, error) {
			return d, nil
		},
	}
	svc := newTestService(repo)

	got, err := svc.Fulfill(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Zero(t, repo.updateCalls)
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestList_BadSortRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockDreamRepo{})

	_, err := svc.List(context.Background(), ListInput{SortBy: "steps"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_PassesFilter(t *testing.T) {
	t.Parallel()

	var gotFilter domain.DreamFilter
	repo := &mockDreamRepo{
		ListFunc: func(ctx context.Context, f domain.DreamFilter) ([]domain.Dream, error) {
			gotFilter = f
			return []domain.Dream{}, nil
		},
	}
	svc := newTestService(repo)

	completed := false
	_, err := svc.List(context.Background(), ListInput{Completed: &completed, SortBy: "name", Limit: 10})
	require.NoError(t, err)

	require.NotNil(t, gotFilter.Completed)
	assert.False(t, *gotFilter.Completed)
	assert.Equal(t, "name", gotFilter.SortBy)
	assert.Equal(t, uint64(10), gotFilter.Limit)
}

func TestDelete_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockDreamRepo{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return errors.New("dream 5: not found")
		},
	}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 5)
	require.Error(t, err)
}
