package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/students?"+rawQuery, nil)
	return c
}

func TestParseSkipLimit(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", 0, DefaultLimit},
		{"explicit values", "skip=20&limit=50", 20, 50},
		{"negative skip", "skip=-5", 0, DefaultLimit},
		{"zero limit", "limit=0", 0, DefaultLimit},
		{"limit above cap", "limit=5000", 0, DefaultLimit},
		{"limit at cap", "limit=1000", 0, MaxLimit},
		{"non-numeric", "skip=abc&limit=xyz", 0, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, limit := ParseSkipLimit(testContext(tt.query))
			if skip != tt.wantSkip || limit != tt.wantLimit {
				t.Errorf("ParseSkipLimit(%q) = (%d, %d), want (%d, %d)",
					tt.query, skip, limit, tt.wantSkip, tt.wantLimit)
			}
		})
	}
}
