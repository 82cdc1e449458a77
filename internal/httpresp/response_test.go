package httpresp

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestListNeverNull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var empty []string
	List(c, empty)

	if got := w.Body.String(); got != `{"data":[],"total":0}` {
		t.Fatalf("body = %s", got)
	}
}
