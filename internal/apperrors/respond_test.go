package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespond_Forbidden(t *testing.T) {
	w := respond(t, ErrForbidden)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRespond_Concurrency(t *testing.T) {
	w := respond(t, ErrConcurrency)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, CodeConcurrencyError, decodeBody(t, w).Code)
}

func TestRespond_NotFound(t *testing.T) {
	w := respond(t, gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRespond_NotValidOperation(t *testing.T) {
	w := respond(t, NewNotValidOperation(CodeTaskListWithTasks, "The task list contains tasks"))
	assert.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, CodeTaskListWithTasks, body.Code)
	assert.Equal(t, "The task list contains tasks", body.Description)
}

func TestRespond_WrappedNotValidOperation(t *testing.T) {
	err := NewNotValidOperation(CodeItemNotExists, "The item does not exist")
	w := respond(t, errors.Join(err, errors.New("context")))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, CodeItemNotExists, decodeBody(t, w).Code)
}

func TestRespond_Unknown(t *testing.T) {
	w := respond(t, errors.New("database on fire"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database on fire")
}
