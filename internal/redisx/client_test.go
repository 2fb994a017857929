package redisx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppliesTimeout(t *testing.T) {
	c := New("localhost:6379")
	defer c.Close()

	assert.Equal(t, "localhost:6379", c.Options().Addr)
	assert.Equal(t, 2*time.Second, c.Options().ReadTimeout)
	assert.Equal(t, 2*time.Second, c.Options().WriteTimeout)
}
