package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func parseQuery(t *testing.T, rawQuery string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return Parse(c)
}

func TestParseDefaults(t *testing.T) {
	params := parseQuery(t, "")
	assert.Equal(t, 0, params.Skip)
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestParseExplicitWindow(t *testing.T) {
	params := parseQuery(t, "skip=40&limit=20")
	assert.Equal(t, 40, params.Skip)
	assert.Equal(t, 20, params.Limit)
}

func TestParseClampsOutOfRange(t *testing.T) {
	params := parseQuery(t, "skip=-5&limit=5000")
	assert.Equal(t, 0, params.Skip)
	assert.Equal(t, MaxLimit, params.Limit)

	params = parseQuery(t, "limit=0")
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestParseIgnoresGarbage(t *testing.T) {
	params := parseQuery(t, "skip=abc&limit=xyz")
	assert.Equal(t, 0, params.Skip)
	assert.Equal(t, DefaultLimit, params.Limit)
}
