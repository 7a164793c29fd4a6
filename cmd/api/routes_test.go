package main

import (
	"testing"

	"github.com/abhishek622/mockmate/internal/config"
	"github.com/abhishek622/mockmate/internal/handler"
	"github.com/abhishek622/mockmate/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRoutes_GinMode(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	build := func(env string) {
		gin.SetMode(gin.DebugMode)
		app := &application{
			Logger:  zap.NewNop(),
			Config:  &config.Config{Env: env},
			Metrics: metrics.New(prometheus.NewRegistry()),
			Handler: &handler.Handler{},
		}
		assert.NotNil(t, app.routes())
	}

	build("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	build("development")
	assert.Equal(t, gin.DebugMode, gin.Mode())
}
