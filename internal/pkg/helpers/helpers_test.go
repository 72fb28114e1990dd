package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(3, 20)
	assert.Equal(t, uint64(40), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(0, 500)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 2, info.CurrentPage)

	empty := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)

	clamped := NewPaginationInfo(5, 9, 10)
	assert.Equal(t, 1, clamped.CurrentPage)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/admin/users?page=2&size=500", nil)

	page, size := ParsePaginationParams(c)
	assert.Equal(t, 2, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(2, 10, 15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = CalculateSliceIndices(5, 10, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)
}

func TestNonNilStrings(t *testing.T) {
	assert.Equal(t, []string{}, NonNilStrings(nil))
	assert.Equal(t, []string{"a"}, NonNilStrings([]string{"a"}))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Minute, ParseDuration("2m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
}
