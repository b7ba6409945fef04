package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, mode string, fn gin.HandlerFunc) (int, Response) {
	t.Helper()
	prev := gin.Mode()
	gin.SetMode(mode)
	t.Cleanup(func() { gin.SetMode(prev) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestEnvelope(t *testing.T) {
	code, body := run(t, gin.TestMode, func(c *gin.Context) { Created(c, gin.H{"id": "x"}) })
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, map[string]interface{}{"id": "x"}, body.Data)

	code, body = run(t, gin.TestMode, func(c *gin.Context) { Conflict(c, "insufficient stock") })
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "insufficient stock", body.Message)
}

func TestInternalError_HidesDetailInRelease(t *testing.T) {
	boom := errors.New("pq: relation does not exist")

	_, body := run(t, gin.TestMode, func(c *gin.Context) { InternalError(c, boom) })
	assert.Equal(t, boom.Error(), body.Message)

	code, body := run(t, gin.ReleaseMode, func(c *gin.Context) { InternalError(c, boom) })
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", body.Message)
}

func TestValidationFailed(t *testing.T) {
	type req struct {
		Quantity int `validate:"min=1"`
	}
	err := validator.New().Struct(req{})
	require.Error(t, err)

	code, body := run(t, gin.TestMode, func(c *gin.Context) { ValidationFailed(c, err) })
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "Quantity", body.Details[0].Field)
	assert.Equal(t, "min", body.Details[0].Rule)
	assert.Equal(t, "1", body.Details[0].Param)
}
