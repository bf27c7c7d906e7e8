package shared

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		page, pageSize         int
		wantPage, wantPageSize int
	}{
		{page: 0, pageSize: 0, wantPage: 1, wantPageSize: defaultPageSize},
		{page: 3, pageSize: 50, wantPage: 3, wantPageSize: 50},
		{page: -5, pageSize: 500, wantPage: 1, wantPageSize: maxPageSize},
		{page: math.MaxInt, pageSize: 20, wantPage: maxPage, wantPageSize: 20},
	}
	for _, tc := range cases {
		page, pageSize := NormalizePagination(tc.page, tc.pageSize)
		if page != tc.wantPage || pageSize != tc.wantPageSize {
			t.Fatalf("input (%d,%d) want (%d,%d) got (%d,%d)", tc.page, tc.pageSize, tc.wantPage, tc.wantPageSize, page, pageSize)
		}
	}
}

func TestParsePaginationHugePage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/admin/products?page=9223372036854775807&page_size=20", nil)

	page, pageSize := ParsePagination(c)
	if page != maxPage || pageSize != 20 {
		t.Fatalf("huge page should be capped, got (%d,%d)", page, pageSize)
	}
}
