package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormKV(t *testing.T) {
	ctx := context.Background()
	kv := NewGormKV(openTestDB(t))
	require.NoError(t, kv.Migrate(ctx))

	_, exists, err := kv.Get(ctx, "project:1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, kv.Set(ctx, "project:1", []byte(`{"id":1}`)))
	require.NoError(t, kv.Set(ctx, "project:1", []byte(`{"id":1,"slug":"a"}`)))
	require.NoError(t, kv.Set(ctx, "project:2", []byte(`{"id":2}`)))
	require.NoError(t, kv.Set(ctx, "profile:settings", []byte(`{"name":"X"}`)))

	doc, exists, err := kv.Get(ctx, "project:1")
	require.NoError(t, err)
	require.True(t, exists)
	assert.JSONEq(t, `{"id":1,"slug":"a"}`, string(doc))

	docs, err := kv.GetByPrefix(ctx, "project:")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	require.NoError(t, kv.Del(ctx, "project:1"))
	require.NoError(t, kv.Del(ctx, "project:1"))

	docs, err = kv.GetByPrefix(ctx, "project:")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestGetByPrefixTreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	kv := NewGormKV(openTestDB(t))
	require.NoError(t, kv.Migrate(ctx))

	require.NoError(t, kv.Set(ctx, "a_b:1", []byte(`{}`)))
	require.NoError(t, kv.Set(ctx, "axb:1", []byte(`{}`)))

	docs, err := kv.GetByPrefix(ctx, "a_b:")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_off\\`, escapeLike(`100%_off\`))
	assert.Equal(t, "project:", escapeLike("project:"))
}
