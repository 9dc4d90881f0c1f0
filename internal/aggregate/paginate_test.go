package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageSlicing(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, start, end := Page(items, 3, 1)
	assert.Equal(t, []int{1, 2, 3}, page)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	page, start, end = Page(items, 3, 2)
	assert.Equal(t, []int{4, 5, 6}, page)
	assert.Equal(t, 4, start)
	assert.Equal(t, 6, end)

	// Last page is short.
	page, start, end = Page(items, 3, 3)
	assert.Equal(t, []int{7}, page)
	assert.Equal(t, 7, start)
	assert.Equal(t, 7, end)
}

func TestPageClampsOutOfRange(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	// Below 1 clamps to the first page.
	page, start, _ := Page(items, 2, 0)
	assert.Equal(t, []int{1, 2}, page)
	assert.Equal(t, 1, start)

	// Past the end clamps to the last page.
	page, start, end := Page(items, 2, 99)
	assert.Equal(t, []int{5}, page)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestPageEmptyList(t *testing.T) {
	page, start, end := Page([]int{}, 10, 1)
	assert.Empty(t, page)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPageInvalidPageSize(t *testing.T) {
	page, start, end := Page([]int{1, 2}, 0, 1)
	assert.Empty(t, page)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}
