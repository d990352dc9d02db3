package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCursor(t *testing.T) {
	var c PageCursor
	assert.Equal(t, 1, c.Page())
	assert.Equal(t, 0, c.Offset(30))

	assert.False(t, c.Prev())
	assert.Equal(t, 1, c.Page())

	c.Next()
	c.Next()
	assert.Equal(t, 3, c.Page())
	assert.Equal(t, 60, c.Offset(30))

	assert.True(t, c.Prev())
	assert.Equal(t, 2, c.Page())

	c.Reset()
	assert.Equal(t, 1, c.Page())
}

func TestNewPageCursor_ClampsToOne(t *testing.T) {
	assert.Equal(t, 1, NewPageCursor(0).Page())
	assert.Equal(t, 1, NewPageCursor(-4).Page())
	assert.Equal(t, 5, NewPageCursor(5).Page())
}

func TestHasMorePages(t *testing.T) {
	assert.True(t, HasMorePages(30, 30))
	assert.False(t, HasMorePages(29, 30))
	assert.False(t, HasMorePages(0, 30))
	assert.False(t, HasMorePages(0, 0))
}
