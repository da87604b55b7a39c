package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFrom(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/public/menu/1?"+rawQuery, nil)
	return c
}

func TestParseMenuFilter(t *testing.T) {
	c := filterFrom(t, "minPrice=100&maxPrice=500&category=1,2&category=3&tag=7&q=%20noodle%20&available=true")
	f, err := ParseMenuFilter(c)
	require.NoError(t, err)

	require.NotNil(t, f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, int64(100), *f.MinPrice)
	assert.Equal(t, int64(500), *f.MaxPrice)
	assert.Equal(t, []uint{1, 2, 3}, f.CategoryIDs)
	assert.Empty(t, f.TypeIDs)
	assert.Equal(t, []uint{7}, f.TagIDs)
	assert.Equal(t, "noodle", f.Query)
	assert.True(t, f.AvailableOnly)
}

func TestParseMenuFilterEmpty(t *testing.T) {
	c := filterFrom(t, "")
	f, err := ParseMenuFilter(c)
	require.NoError(t, err)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.False(t, f.AvailableOnly)
}

func TestParseMenuFilterRejectsBadInput(t *testing.T) {
	for _, q := range []string{
		"minPrice=abc",
		"maxPrice=-1",
		"minPrice=500&maxPrice=100",
		"tag=1,x",
		"available=maybe",
	} {
		c := filterFrom(t, q)
		_, err := ParseMenuFilter(c)
		assert.Error(t, err, q)
	}
}
