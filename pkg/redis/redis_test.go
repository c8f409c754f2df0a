package redis

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewClient(Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, client.Client)
}

func TestNewClientUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	mr.Close()

	_, err = NewClient(Config{Host: "127.0.0.1", Port: port})
	assert.Error(t, err)
}
