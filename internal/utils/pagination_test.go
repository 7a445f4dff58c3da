package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name  string
		url   string
		page  int
		limit int
	}{
		{"defaults", "/posts", 1, 10},
		{"explicit", "/posts?page=3&limit=25", 3, 25},
		{"zero page falls back", "/posts?page=0", 1, 10},
		{"negative limit falls back", "/posts?limit=-5", 1, 10},
		{"garbage falls back", "/posts?page=abc&limit=xyz", 1, 10},
		{"limit clamped", "/posts?limit=1000", 1, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			page, limit := ParsePagination(r)
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.limit, limit)
		})
	}
}
