package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() { gin.SetMode(gin.TestMode) }

func TestOK_WrapsSlices(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, []string{"a"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["a"]}`, w.Body.String())
}

func TestOK_PassesObjects(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, gin.H{"key": "x", "views": 2})
	assert.JSONEq(t, `{"key":"x","views":2}`, w.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InternalError(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"ok":0,"code":500,"message":"boom"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}
