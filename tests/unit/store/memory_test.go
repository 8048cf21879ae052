package store_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/store"
)

func TestStore_SaveAndLoad(t *testing.T) {
	s := store.NewInMemoryAnalysisStore()
	result := &domain.VoucherAnalysisResult{Errors: []string{"e1"}}

	s.Save("a", result)

	got, ok := s.Load("a")
	require.True(t, ok)
	assert.Same(t, result, got)
}

func TestStore_LoadMissing(t *testing.T) {
	s := store.NewInMemoryAnalysisStore()

	got, ok := s.Load("missing")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestStore_SaveReplaces(t *testing.T) {
	s := store.NewInMemoryAnalysisStore()
	first := &domain.VoucherAnalysisResult{}
	second := &domain.VoucherAnalysisResult{}

	s.Save("a", first)
	s.Save("a", second)

	got, ok := s.Load("a")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Len(t, s.Keys(), 1)
}

func TestStore_Delete(t *testing.T) {
	s := store.NewInMemoryAnalysisStore()
	s.Save("a", &domain.VoucherAnalysisResult{})

	s.Delete("a")
	s.Delete("a") // absent key is a no-op

	_, ok := s.Load("a")
	assert.False(t, ok)
	assert.Empty(t, s.Keys())
}

func TestStore_KeysSorted(t *testing.T) {
	s := store.NewInMemoryAnalysisStore()
	s.Save("c", &domain.VoucherAnalysisResult{})
	s.Save("a", &domain.VoucherAnalysisResult{})
	s.Save("b", &domain.VoucherAnalysisResult{})

	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := store.NewInMemoryAnalysisStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			s.Save(key, &domain.VoucherAnalysisResult{})
			_, _ = s.Load(key)
			_ = s.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Keys(), 50)
}
