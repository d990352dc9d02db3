package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingsQuery_EncodeKeepsOrder(t *testing.T) {
	var q ListingsQuery
	q.Add("precio_min", "50000")
	q.Add("barrio", "Barrio Martin")
	q.Add("limit", "30")

	assert.Equal(t, "precio_min=50000&barrio=Barrio+Martin&limit=30", q.Encode())
	assert.Equal(t, []string{"precio_min", "barrio", "limit"}, q.Keys())

	v, ok := q.Get("barrio")
	assert.True(t, ok)
	assert.Equal(t, "Barrio Martin", v)
	assert.False(t, q.Has("skip"))
}
