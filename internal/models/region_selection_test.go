package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegionSelection_DedupesAndSorts(t *testing.T) {
	selection := NewRegionSelection([]string{"West", "East", "West", "Central"})

	assert.Equal(t, []string{"Central", "East", "West"}, selection.Regions())
	assert.Equal(t, 3, selection.Size())
}

func TestNewRegionSelection_DropsBlanks(t *testing.T) {
	selection := NewRegionSelection([]string{"", "North", "  "})

	assert.Equal(t, []string{"North"}, selection.Regions())
}

func TestRegionSelection_IsEmpty(t *testing.T) {
	assert.True(t, NewRegionSelection(nil).IsEmpty())
	assert.True(t, NewRegionSelection([]string{"", ""}).IsEmpty())
	assert.False(t, NewRegionSelection([]string{"North"}).IsEmpty())
}

func TestRegionSelection_Contains(t *testing.T) {
	selection := NewRegionSelection([]string{"North", "South"})

	assert.True(t, selection.Contains("North"))
	assert.True(t, selection.Contains("South"))
	assert.False(t, selection.Contains("East"))
	assert.False(t, selection.Contains(""))
}

func TestRegionSelection_Equal(t *testing.T) {
	a := NewRegionSelection([]string{"South", "North"})
	b := NewRegionSelection([]string{"North", "South", "North"})
	c := NewRegionSelection([]string{"North"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestRegionSelection_RegionsReturnsCopy(t *testing.T) {
	selection := NewRegionSelection([]string{"North", "South"})

	regions := selection.Regions()
	regions[0] = "mutated"

	assert.Equal(t, []string{"North", "South"}, selection.Regions())
}
