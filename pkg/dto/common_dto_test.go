package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageQueryWindow(t *testing.T) {
	page, offset, limit := PageQuery{Page: 3}.Window(10)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, offset)
	assert.Equal(t, 10, limit)

	page, offset, _ = PageQuery{}.Window(10)
	assert.Equal(t, 1, page)
	assert.Zero(t, offset)
}

func TestPageResultLinks(t *testing.T) {
	p := NewPage([]int{1, 2}, 5, 1, 2)
	assert.True(t, p.HasNext())
	assert.False(t, p.HasPrevious())

	p = NewPage([]int{5}, 5, 3, 2)
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrevious())

	empty := NewPage[int](nil, 0, 1, 2)
	assert.NotNil(t, empty.Items)
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-02-29"`), &d))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d.Time)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"29/02/2024"`), &d))
}
