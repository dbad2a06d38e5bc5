package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rishanreddy/habitmind/internal/constants"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/habits?"+query, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	cases := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, constants.DefaultPageSize},
		{"page=3&limit=10", 3, 10},
		{"page=0&limit=0", 1, constants.DefaultPageSize},
		{"page=-2&limit=1000", 1, constants.DefaultPageSize},
		{"page=abc&limit=xyz", 1, constants.DefaultPageSize},
		{"limit=100", 1, 100},
	}

	for _, tc := range cases {
		params := GetPaginationParams(contextWithQuery(tc.query))
		assert.Equal(t, tc.wantPage, params.Page, tc.query)
		assert.Equal(t, tc.wantLimit, params.Limit, tc.query)
	}
}

func TestGetBoolQuery(t *testing.T) {
	assert.True(t, GetBoolQuery(contextWithQuery("active=true"), "active"))
	assert.True(t, GetBoolQuery(contextWithQuery("active=1"), "active"))
	assert.False(t, GetBoolQuery(contextWithQuery("active=false"), "active"))
	assert.False(t, GetBoolQuery(contextWithQuery("active=maybe"), "active"))
	assert.False(t, GetBoolQuery(contextWithQuery(""), "active"))
}
