package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_GuardsPerPage(t *testing.T) {
	assert.Equal(t, 1, New(1, 0).PerPage)
	assert.Equal(t, 1, New(1, -5).PerPage)
	assert.Equal(t, MaxPerPage, New(1, 1000).PerPage)
	assert.Equal(t, 25, New(3, 25).PerPage)
	assert.Equal(t, 3, New(3, 25).Page)
}

func TestParams_Skip(t *testing.T) {
	assert.Equal(t, int64(0), New(1, 10).Skip())
	assert.Equal(t, int64(20), New(3, 10).Skip())
	assert.Equal(t, int64(0), New(0, 10).Skip())
	assert.Equal(t, int64(0), New(-2, 10).Skip())
	assert.Equal(t, int64(10), New(3, 10).Limit())
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 2, 3},
		{5, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.perPage), "total=%d perPage=%d", tc.total, tc.perPage)
	}
}

func TestClamp(t *testing.T) {
	p, changed := Clamp(10, 3)
	assert.Equal(t, 3, p)
	assert.True(t, changed)

	p, changed = Clamp(0, 3)
	assert.Equal(t, 1, p)
	assert.True(t, changed)

	p, changed = Clamp(2, 3)
	assert.Equal(t, 2, p)
	assert.False(t, changed)

	p, changed = Clamp(1, 0)
	assert.Equal(t, 1, p)
	assert.False(t, changed)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(1, 1))
	assert.False(t, InRange(0, 1))
	assert.False(t, InRange(2, 1))
	assert.False(t, InRange(1, 0))
}

func TestPage_Navigation(t *testing.T) {
	p := Page[int]{Page: 2, TotalPages: 3}
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())

	last := Page[int]{Page: 3, TotalPages: 3}
	assert.False(t, last.HasNext())
	assert.Equal(t, Meta{Page: 3, TotalPages: 3}, last.Meta())
}
