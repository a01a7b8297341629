package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		total      int64
		wantNumber int
		wantPages  int
	}{
		{name: "Missing page", raw: "", total: 25, wantNumber: 1, wantPages: 3},
		{name: "Not an integer", raw: "abc", total: 25, wantNumber: 1, wantPages: 3},
		{name: "Middle page", raw: "2", total: 25, wantNumber: 2, wantPages: 3},
		{name: "Past the end", raw: "99", total: 25, wantNumber: 3, wantPages: 3},
		{name: "Zero", raw: "0", total: 25, wantNumber: 3, wantPages: 3},
		{name: "Negative", raw: "-1", total: 25, wantNumber: 3, wantPages: 3},
		{name: "Empty listing", raw: "4", total: 0, wantNumber: 1, wantPages: 1},
		{name: "Exact multiple", raw: "2", total: 20, wantNumber: 2, wantPages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.raw, 10, tt.total)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantPages, page.TotalPages)
		})
	}
}

func TestPage_Navigation(t *testing.T) {
	page := NewPage("2", 10, 25)

	assert.Equal(t, 10, page.Offset())
	assert.True(t, page.HasPrevious())
	assert.True(t, page.HasNext())
	assert.Equal(t, 1, page.PreviousNumber())
	assert.Equal(t, 3, page.NextNumber())

	last := NewPage("3", 10, 25)
	assert.False(t, last.HasNext())
}
