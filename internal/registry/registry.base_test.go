package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterVaGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("messages", "col-messages")
	require.NoError(t, err)
	assert.True(t, isNew)

	// Ghi đè item cũ
	isNew, err = r.Register("messages", "col-messages-v2")
	require.NoError(t, err)
	assert.False(t, isNew)

	item, exists := r.Get("messages")
	assert.True(t, exists)
	assert.Equal(t, "col-messages-v2", item)

	_, exists = r.Get("feeds")
	assert.False(t, exists)
}

func TestRegistry_RegisterTenRong(t *testing.T) {
	r := NewRegistry[int]()
	_, err := r.Register("", 1)
	assert.Error(t, err, "name rỗng phải bị từ chối")
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0

	creator := func() (int, error) {
		calls++
		return 42, nil
	}

	item, err := r.GetOrCreate("counter", creator)
	require.NoError(t, err)
	assert.Equal(t, 42, item)

	// Lần hai trả về item đã có, không gọi lại creator
	item, err = r.GetOrCreate("counter", creator)
	require.NoError(t, err)
	assert.Equal(t, 42, item)
	assert.Equal(t, 1, calls)
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("feeds", "col-feeds")

	cleaned := false
	deleted, err := r.Clear("feeds", func(item string) error {
		cleaned = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, cleaned, "cleanup phải được gọi trước khi xóa")

	deleted, err = r.Clear("feeds", nil)
	require.NoError(t, err)
	assert.False(t, deleted, "xóa item không tồn tại trả về false")
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Register(fmt.Sprintf("item-%d", n), n)
		}(i)
		go func(n int) {
			defer wg.Done()
			r.Get(fmt.Sprintf("item-%d", n))
		}(i)
	}
	wg.Wait()

	count, err := r.ClearAll(nil)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}
