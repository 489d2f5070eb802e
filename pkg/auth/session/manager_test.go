package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestManagerGenerateAndRotate(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	token, err := manager.Generate(ctx, accessID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty refresh token")
	}

	newAccessID, newToken, err := manager.Rotate(ctx, accessID, token)
	if err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if newAccessID == accessID {
		t.Fatal("rotation should mint a fresh access id")
	}
	if newToken == token {
		t.Fatal("rotation should mint a fresh refresh token")
	}

	if _, ok := store.data[store.AccessSessionKey(accessID)]; ok {
		t.Fatal("old session should be deleted after rotation")
	}
	if _, ok := store.data[store.AccessSessionKey(newAccessID)]; !ok {
		t.Fatal("new session should be stored after rotation")
	}
}

func TestManagerRotate_RejectsMismatchedToken(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	if _, err := manager.Generate(ctx, accessID); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, _, err := manager.Rotate(ctx, accessID, "not-the-token")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestManagerRotate_RejectsUnknownSession(t *testing.T) {
	manager, _ := newTestManager()
	_, _, err := manager.Rotate(context.Background(), NewAccessID(), "whatever")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestManagerRevokeAndHasSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	if _, err := manager.Generate(ctx, accessID); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	active, err := manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session failed: %v", err)
	}
	if !active {
		t.Fatal("expected session to be active")
	}

	if err := manager.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	active, err = manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session failed after revoke: %v", err)
	}
	if active {
		t.Fatal("expected session to be gone after revoke")
	}
}
