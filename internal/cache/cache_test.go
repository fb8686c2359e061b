package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	assert.Nil(t, InitRedis(""))

	mr := miniredis.RunT(t)
	client := InitRedis(mr.Addr())
	require.NotNil(t, client)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())

	viaURL := InitRedis("redis://" + mr.Addr() + "/0")
	require.NotNil(t, viaURL)
	_ = viaURL.Close()
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("http://localhost:6379")
	assert.Error(t, err)
}
