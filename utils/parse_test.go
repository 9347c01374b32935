package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		pageStr, limitStr string
		page, limit       int
	}{
		{"", "", 1, 6},
		{"0", "-1", 1, 6},
		{"3", "10", 3, 10},
		{"2", "100", 2, 12},
		{"junk", "junk", 1, 6},
	}
	for _, tc := range cases {
		page, limit := ParsePage(tc.pageStr, tc.limitStr)
		assert.Equal(t, tc.page, page)
		assert.Equal(t, tc.limit, limit)
	}
}
