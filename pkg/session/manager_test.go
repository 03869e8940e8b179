package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/folium"
	"github.com/aretw0/folium/pkg/adapters/memory"
	"github.com/aretw0/folium/pkg/adapters/redis"
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/aretw0/folium/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates IO latency to provoke lost updates if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Save(ctx context.Context, documentID string, state *editor.State) error {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Save(ctx, documentID, state)
}

func (s SlowStore) Load(ctx context.Context, documentID string) (*editor.State, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Load(ctx, documentID)
}

func insert(id string) domain.Action {
	return domain.Action{
		Type:   domain.ActionInsertBlocks,
		Blocks: []*domain.Block{domain.NewBlock(id, "core/paragraph", nil)},
	}
}

func TestManager_ApplySerializesWrites(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := manager.Apply(ctx, "doc", insert(string(rune('a'+i))))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	state, err := manager.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, 10, state.Editor.BlockOrder().Len(), "no update may be lost")
}

func TestManager_ApplyReturnsBeforeAndAfter(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	before, after, err := manager.Apply(ctx, "doc", insert("a"))
	require.NoError(t, err)
	assert.Empty(t, before.Blocks())
	assert.Len(t, after.Blocks(), 1)

	before, after, err = manager.Apply(ctx, "doc", domain.Action{Type: "UNKNOWN"})
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestManager_UpdateRequiresDocument(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	ctx := context.Background()

	_, _, err := manager.Update(ctx, "doc", domain.Action{Type: domain.ActionUndo})
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	_, err = manager.Load(ctx, "doc")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "update must not create the document")

	_, _, err = manager.Apply(ctx, "doc", insert("a"))
	require.NoError(t, err)

	before, after, err := manager.Update(ctx, "doc", domain.Action{Type: domain.ActionUndo})
	require.NoError(t, err)
	assert.Len(t, before.Blocks(), 1)
	assert.Empty(t, after.Blocks())
}

func TestManager_ApplyEmptyID(t *testing.T) {
	_, _, err := session.NewManager(memory.NewStore()).Apply(context.Background(), "", insert("a"))
	assert.ErrorIs(t, err, domain.ErrEmptyDocumentID)
}

func TestManager_ApplyUsesEditorOptions(t *testing.T) {
	var dispatched int
	manager := session.NewManager(memory.NewStore(), session.WithEditorOptions(
		folium.WithLifecycleHooks(domain.LifecycleHooks{
			OnDispatch: func(context.Context, *domain.DispatchEvent) { dispatched++ },
		}),
	))

	_, _, err := manager.Apply(context.Background(), "doc", insert("a"), insert("b"))
	require.NoError(t, err)
	assert.Equal(t, 2, dispatched)
}

func TestManager_LoadOrStart(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, err := manager.LoadOrStart(ctx, "fresh")
			assert.NoError(t, err)
			assert.NotNil(t, state)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, editor.DefaultPanel, state.Panel)
}

func TestManager_LoadMissing(t *testing.T) {
	_, err := session.NewManager(memory.NewStore()).Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

type failingStore struct{ *memory.Store }

func (failingStore) Load(context.Context, string) (*editor.State, error) {
	return nil, errors.New("disk on fire")
}

func TestManager_ApplyPropagatesStoreErrors(t *testing.T) {
	manager := session.NewManager(failingStore{memory.NewStore()})
	_, _, err := manager.Apply(context.Background(), "doc", insert("a"))
	assert.ErrorContains(t, err, "disk on fire")
}

func TestManager_DistributedLock(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := memory.NewStore()
	first := session.NewManager(store, session.WithLocker(redis.NewLocker(client, "test:")))
	second := session.NewManager(store, session.WithLocker(redis.NewLocker(client, "test:")))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i, m := range []*session.Manager{first, second, first, second} {
		wg.Add(1)
		go func(i int, m *session.Manager) {
			defer wg.Done()
			_, _, err := m.Apply(ctx, "doc", insert(string(rune('a'+i))))
			assert.NoError(t, err)
		}(i, m)
	}
	wg.Wait()

	state, err := first.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, 4, state.Editor.BlockOrder().Len())
	assert.False(t, mr.Exists("test:lock:doc"))
}
