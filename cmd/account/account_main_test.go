package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"UserCenter/internal/shared/config"
	"UserCenter/internal/shared/logs"
)

func TestReadConfig(t *testing.T) {
	conf, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "/api/user", conf.HTTPServer.Prefix)
	assert.Equal(t, "sql", conf.History.Driver)

	conf.Log.FileDir = t.TempDir()
	_, err = logs.Init("TestReadConfig", conf.Log)
	require.NoError(t, err)
	logs.Info("conf", zap.Any("conf", conf))
}

func TestRunProbe_无服务时失败(t *testing.T) {
	conf := config.Default()
	conf.GRPCServer.Port = 1
	assert.Equal(t, 1, runProbe(conf))
}
