package memkv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgunigpa/gpacalc/core"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := Open()

	_, err := s.Get(ctx, "k")
	assert.Equal(t, core.ErrKeyNotFound, err)

	blob := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", blob))
	blob[0] = 'x' // caller keeps ownership of its slice

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[0] = 'y'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, `{"a":1}`, string(again))

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.Equal(t, core.ErrKeyNotFound, err)
}
