package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/resourcebox-go/apperror"
	"github.com/user/resourcebox-go/config"
)

func newTestResourceService() (*Service, *MemStore) {
	store := NewMemStore()
	svc := NewService(store, config.ResourceConfig{MaxCellLength: 512, MaxArrayLength: 10})
	return svc, store
}

func TestCreateAndList(t *testing.T) {
	svc, _ := newTestResourceService()
	ctx := context.Background()

	created, err := svc.Create(ctx, RawResource{ID: "r1", Data: []any{"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "r1", created.ID)
	assert.Len(t, created.Data, 2)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "r1", list[0].ID)
}

func TestCreate_DuplicateID(t *testing.T) {
	svc, _ := newTestResourceService()
	ctx := context.Background()

	_, err := svc.Create(ctx, RawResource{ID: "r1", Data: []any{"a"}})
	require.NoError(t, err)

	_, err = svc.Create(ctx, RawResource{ID: "r1", Data: []any{"b"}})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
}

func TestCreate_EmptyData(t *testing.T) {
	svc, store := newTestResourceService()
	ctx := context.Background()

	_, err := svc.Create(ctx, RawResource{ID: "r1"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))

	// Validation failures must precede any storage mutation.
	list, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestResourceService()
	ctx := context.Background()

	created, err := svc.Create(ctx, RawResource{ID: "r1", Data: []any{"1", "2"}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "r1", []any{"a", "b", "c"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Len(t, updated.Data, 3)
	assert.Equal(t, created.Created, updated.Created)
	assert.GreaterOrEqual(t, updated.Modified, created.Modified)
}

func TestUpdate_MissingTarget(t *testing.T) {
	svc, _ := newTestResourceService()

	res, err := svc.Update(context.Background(), "missing", []any{"a"})
	require.NoError(t, err)
	assert.Nil(t, res, "a missing edit target is a soft outcome, not an error")
}

func TestUpdate_EmptyData(t *testing.T) {
	svc, _ := newTestResourceService()
	ctx := context.Background()

	_, err := svc.Create(ctx, RawResource{ID: "r1", Data: []any{"1"}})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "r1", []any{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))

	// The rejected update must not have touched the stored row.
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Data, 1)
}

func TestSoftDelete(t *testing.T) {
	svc, _ := newTestResourceService()
	ctx := context.Background()

	_, err := svc.Create(ctx, RawResource{ID: "r1", Data: []any{"1", "2"}})
	require.NoError(t, err)

	deleted, err := svc.SoftDelete(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Empty(t, deleted.Data)
	require.NotNil(t, deleted.Deleted)
	assert.Equal(t, *deleted.Deleted, deleted.Modified)
}

func TestSoftDelete_Idempotent(t *testing.T) {
	svc, _ := newTestResourceService()
	ctx := context.Background()

	_, err := svc.Create(ctx, RawResource{ID: "r1", Data: []any{"1"}})
	require.NoError(t, err)

	first, err := svc.SoftDelete(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, first)
	firstDeleted := *first.Deleted

	// The second deletion matches no row and must not move the timestamp.
	second, err := svc.SoftDelete(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, second)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Deleted)
	assert.Equal(t, firstDeleted, *list[0].Deleted)
}

func TestList_IncludesSoftDeleted(t *testing.T) {
	svc, _ := newTestResourceService()
	ctx := context.Background()

	_, err := svc.Create(ctx, RawResource{ID: "live", Data: []any{"1"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, RawResource{ID: "gone", Data: []any{"2"}})
	require.NoError(t, err)

	_, err = svc.SoftDelete(ctx, "gone")
	require.NoError(t, err)

	// The listing path carries no deleted filter.
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSoftDelete_Unknown(t *testing.T) {
	svc, _ := newTestResourceService()

	res, err := svc.SoftDelete(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, res)
}
