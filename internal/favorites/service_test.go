package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/chrisdamba/takeaway/internal/preferences"
)

const testKey = "favourite_restaurants"

// ========================================
// MOCKS
// ========================================

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

func (m *mockStore) Set(ctx context.Context, key string, value []string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) WriteMessage(topic string, msg []byte) error {
	args := m.Called(topic, msg)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

// ========================================
// TESTS
// ========================================

func TestService_LoadMissingEntryIsEmpty(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, testKey).Return(nil, false, nil)

	svc := NewService(store, testKey, zaptest.NewLogger(t))
	set := svc.Load(context.Background())

	assert.Zero(t, set.Len())
	store.AssertExpectations(t)
}

func TestService_LoadErrorIsEmpty(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, testKey).Return(nil, false, errors.New("disk on fire"))

	svc := NewService(store, testKey, zaptest.NewLogger(t))

	assert.Zero(t, svc.Load(context.Background()).Len())
}

func TestService_LoadStoredEntry(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, testKey).Return([]string{"Royal Thai", "Mama Mia"}, true, nil)

	svc := NewService(store, testKey, zaptest.NewLogger(t))
	svc.Load(context.Background())

	assert.True(t, svc.Contains("Royal Thai"))
	assert.True(t, svc.Contains("Mama Mia"))
	assert.False(t, svc.Contains("Sushi One"))
}

func TestService_TogglePersistsImmediately(t *testing.T) {
	ctx := context.Background()
	store := preferences.NewMemoryStore()
	svc := NewService(store, testKey, zaptest.NewLogger(t))
	svc.Load(ctx)

	favorite, err := svc.Toggle(ctx, "Royal Thai")
	require.NoError(t, err)
	assert.True(t, favorite)

	stored, ok, err := store.Get(ctx, testKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Royal Thai"}, stored)

	favorite, err = svc.Toggle(ctx, "Royal Thai")
	require.NoError(t, err)
	assert.False(t, favorite)

	stored, _, _ = store.Get(ctx, testKey)
	assert.Empty(t, stored)
}

func TestService_ToggleSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := preferences.NewMemoryStore()

	first := NewService(store, testKey, zaptest.NewLogger(t))
	first.Load(ctx)
	_, err := first.Toggle(ctx, "Sushi One")
	require.NoError(t, err)

	second := NewService(store, testKey, zaptest.NewLogger(t))
	second.Load(ctx)
	assert.True(t, second.Contains("Sushi One"))
}

func TestService_TogglePersistFailureKeepsInMemoryChange(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, testKey).Return(nil, false, nil)
	store.On("Set", mock.Anything, testKey, []string{"A"}).Return(errors.New("read-only"))

	svc := NewService(store, testKey, zaptest.NewLogger(t))
	svc.Load(context.Background())

	favorite, err := svc.Toggle(context.Background(), "A")
	require.Error(t, err)
	assert.True(t, favorite)
	assert.True(t, svc.Contains("A"))
	store.AssertExpectations(t)
}

func TestService_TogglePublishesEvent(t *testing.T) {
	at := time.Date(2018, 10, 22, 9, 30, 0, 0, time.UTC)
	publisher := new(mockPublisher)
	publisher.On("WriteMessage", "favorite_events", mock.MatchedBy(func(msg []byte) bool {
		var event struct {
			Name     string `json:"name"`
			Favorite bool   `json:"favorite"`
		}
		return json.Unmarshal(msg, &event) == nil && event.Name == "Pizza Heart" && event.Favorite
	})).Return(nil).Once()

	svc := NewService(preferences.NewMemoryStore(), testKey, zaptest.NewLogger(t),
		WithPublisher(publisher, "favorite_events"),
		WithClock(func() time.Time { return at }),
	)

	_, err := svc.Toggle(context.Background(), "Pizza Heart")
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestService_TogglePublishFailure(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("WriteMessage", "favorite_events", mock.Anything).Return(errors.New("broker down"))

	svc := NewService(preferences.NewMemoryStore(), testKey, zaptest.NewLogger(t),
		WithPublisher(publisher, "favorite_events"))

	favorite, err := svc.Toggle(context.Background(), "Pizza Heart")
	assert.Error(t, err)
	assert.True(t, favorite)
}
