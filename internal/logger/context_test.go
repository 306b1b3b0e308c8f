package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	global := zap.NewExample()
	SetLogger(global)
	defer SetLogger(nil)

	assert.Same(t, global, FromContext(context.Background()))

	scoped := global.With(zap.String("request_id", "abc"))
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))
}

func TestFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.NotNil(t, FromGin(c))

	scoped := zap.NewNop().Named("req")
	c.Set(GinKey, scoped)
	assert.Same(t, scoped, FromGin(c))
}

func TestInitLogger(t *testing.T) {
	defer SetLogger(nil)

	l, err := InitLogger(LogConfig{Level: "debug", Environment: "production", ServiceName: "hours-tracker"})
	assert.NoError(t, err)
	assert.Same(t, l, GetLogger())

	l, err = InitLogger(LogConfig{Level: "bogus", Environment: "development"})
	assert.NoError(t, err)
	assert.NotNil(t, l)
}
