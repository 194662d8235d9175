package steg

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zhengshuai-xiao/pngmsg/pkg/store"
)

// MockStore is a mock implementation of store.Store for testing.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ReadAll(ctx context.Context, location string) ([]byte, error) {
	args := m.Called(ctx, location)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockStore) WriteAll(ctx context.Context, location string, data []byte) error {
	args := m.Called(ctx, location, data)
	return args.Error(0)
}

func (m *MockStore) Lock(ctx context.Context, location string) (func(), error) {
	args := m.Called(ctx, location)
	unlock, _ := args.Get(0).(func())
	return unlock, args.Error(1)
}

// memStore keeps files in a map. Lock is one store-wide mutex.
type memStore struct {
	mu    sync.Mutex
	files map[string][]byte

	lock sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (m *memStore) ReadAll(ctx context.Context, location string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[location]
	if !ok {
		return nil, fmt.Errorf("%s: %w", location, store.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *memStore) WriteAll(ctx context.Context, location string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[location] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Lock(ctx context.Context, location string) (func(), error) {
	m.lock.Lock()
	return m.lock.Unlock, nil
}

// slowReadStore widens the window between a read and the following write.
type slowReadStore struct {
	store.Store
	delay time.Duration
}

func (s *slowReadStore) ReadAll(ctx context.Context, location string) ([]byte, error) {
	data, err := s.Store.ReadAll(ctx, location)
	time.Sleep(s.delay)
	return data, err
}
