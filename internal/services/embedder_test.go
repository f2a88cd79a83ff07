package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubGemini struct {
	mu    sync.Mutex
	calls []string
	delay time.Duration
	err   error
	dims  int
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, text)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	dims := s.dims
	if dims == 0 {
		dims = 2
	}
	vec := make([]float32, dims)
	vec[0] = float32(len(text))
	return vec, nil
}

func (s *stubGemini) Model() string { return "stub-model" }

func (s *stubGemini) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) InitCollection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCache) Get(ctx context.Context, model, text string) ([]float32, bool, error) {
	args := m.Called(ctx, model, text)
	vec, _ := args.Get(0).([]float32)
	return vec, args.Bool(1), args.Error(2)
}

func (m *mockCache) Put(ctx context.Context, model, text string, vector []float32) error {
	return m.Called(ctx, model, text, vector).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

func TestCachedEmbedderCacheHit(t *testing.T) {
	t.Parallel()

	backend := &stubGemini{}
	cache := new(mockCache)
	cache.On("Get", mock.Anything, "stub-model", "React").Return([]float32{9, 9}, true, nil)

	e := NewCachedEmbedder(backend, cache, nil, 0, nil)
	vec, err := e.Embed(context.Background(), " React ")
	require.NoError(t, err)

	assert.Equal(t, []float32{9, 9}, vec)
	assert.Zero(t, backend.callCount())
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedEmbedderMissStoresVector(t *testing.T) {
	t.Parallel()

	backend := &stubGemini{}
	cache := new(mockCache)
	cache.On("Get", mock.Anything, "stub-model", "Go").Return(nil, false, nil)
	cache.On("Put", mock.Anything, "stub-model", "Go", []float32{2, 0}).Return(nil)

	e := NewCachedEmbedder(backend, cache, nil, 0, nil)
	vec, err := e.Embed(context.Background(), "Go")
	require.NoError(t, err)

	assert.Equal(t, []float32{2, 0}, vec)
	assert.Equal(t, 1, backend.callCount())
	cache.AssertExpectations(t)
}

func TestCachedEmbedderToleratesCacheFailures(t *testing.T) {
	t.Parallel()

	backend := &stubGemini{}
	cache := new(mockCache)
	cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, false, errors.New("qdrant down"))
	cache.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("qdrant down"))

	e := NewCachedEmbedder(backend, cache, nil, 0, nil)
	vec, err := e.Embed(context.Background(), "SQL")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 0}, vec)
}

func TestCachedEmbedderWithoutCache(t *testing.T) {
	t.Parallel()

	backend := &stubGemini{}
	e := NewCachedEmbedder(backend, nil, nil, 0, nil)

	_, err := e.Embed(context.Background(), "Docker")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.callCount())

	_, err = e.Embed(context.Background(), "  ")
	assert.Error(t, err)
}

func TestCachedEmbedderBackendError(t *testing.T) {
	t.Parallel()

	e := NewCachedEmbedder(&stubGemini{err: errors.New("timeout")}, nil, nil, 0, nil)
	_, err := e.Embed(context.Background(), "Docker")
	assert.ErrorContains(t, err, "timeout")
}

func TestCachedEmbedderDeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	backend := &stubGemini{delay: 50 * time.Millisecond}
	e := NewCachedEmbedder(backend, nil, nil, 0, nil)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := e.Embed(context.Background(), "Kubernetes")
			assert.NoError(t, err)
		}()
	}
	close(start)
	wg.Wait()

	assert.Less(t, backend.callCount(), 10)
}

func TestCachedEmbedderMeanPoolsLongTexts(t *testing.T) {
	t.Parallel()

	backend := &stubGemini{dims: 3}
	e := NewCachedEmbedder(backend, nil, NewTextChunker(), 40, nil)

	text := strings.Repeat("Python et SQL. ", 10)
	vec, err := e.Embed(context.Background(), text)
	require.NoError(t, err)

	calls := backend.callCount()
	require.Greater(t, calls, 1)
	require.Len(t, vec, 3)
	assert.Greater(t, vec[0], float32(0))
	assert.LessOrEqual(t, vec[0], float32(40))
	for _, chunk := range backend.calls {
		assert.LessOrEqual(t, len([]rune(chunk)), 40)
	}
}

func TestCachedEmbedderSharedCallOutlivesFirstCaller(t *testing.T) {
	t.Parallel()

	backend := &stubGemini{delay: 300 * time.Millisecond}
	e := NewCachedEmbedder(backend, nil, nil, 0, nil)

	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	firstErr := make(chan error, 1)
	go func() {
		_, err := e.Embed(shortCtx, "React")
		firstErr <- err
	}()

	time.Sleep(10 * time.Millisecond)
	vec, err := e.Embed(context.Background(), "React")
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 0}, vec)

	assert.ErrorIs(t, <-firstErr, context.DeadlineExceeded)
	assert.Equal(t, 1, backend.callCount())
}

func TestCachedEmbedderReturnsWhenCallerGivesUp(t *testing.T) {
	t.Parallel()

	e := NewCachedEmbedder(&stubGemini{delay: time.Second}, nil, nil, 0, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := e.Embed(ctx, "Kubernetes")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestCachedEmbedderBoundsSharedCall(t *testing.T) {
	t.Parallel()

	e := NewCachedEmbedder(&stubGemini{delay: time.Second}, nil, nil, 0, nil)
	e.timeout = 20 * time.Millisecond

	_, err := e.Embed(context.Background(), "Terraform")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
