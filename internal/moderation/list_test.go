package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

func TestFilterNormalizeClampsPage(t *testing.T) {
	assert.Equal(t, 1, ListFilter{Page: 0}.Normalize().Page)
	assert.Equal(t, 1, ListFilter{Page: -3}.Normalize().Page)
	assert.Equal(t, 4, ListFilter{Page: 4}.Normalize().Page)
}

func TestWithStatusResetsPage(t *testing.T) {
	status := models.StatusResolved
	f := ListFilter{Page: 5}.WithStatus(&status)

	assert.Equal(t, 1, f.Page, "changing the filter must restart from the first page")
	assert.Equal(t, models.StatusResolved, *f.Status)

	cleared := f.WithStatus(nil)
	assert.Nil(t, cleared.Status)
	assert.Equal(t, 1, cleared.Page)
}

func TestPagerClamping(t *testing.T) {
	p := NewPager(9, 3)
	assert.Equal(t, 3, p.Page, "page beyond the end clamps to the last page")

	p = NewPager(0, 3)
	assert.Equal(t, 1, p.Page)

	p = NewPager(1, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages, "an empty result set still has one page")
}

func TestPagerMovementStaysInRange(t *testing.T) {
	p := NewPager(1, 3)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Prev(), "prev on the first page stays put")
	assert.Equal(t, 2, p.Next())

	p = NewPager(3, 3)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, 3, p.Next(), "next on the last page stays put")
	assert.Equal(t, 2, p.Prev())
}

func TestPagerSinglePage(t *testing.T) {
	p := NewPager(1, 1)
	assert.False(t, p.HasPrev())
	assert.False(t, p.HasNext())
}
