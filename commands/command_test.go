package commands

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/gcsfuse-tools/perfmetrics/config"
)

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	setupLogging(config.LogConfig{Level: "warn", Format: "json"}, false)
	require.Equal(t, log.WarnLevel, log.GetLevel())
	require.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	setupLogging(config.LogConfig{Level: "warn", Format: "text"}, true)
	require.Equal(t, log.DebugLevel, log.GetLevel())
	require.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)

	setupLogging(config.LogConfig{Level: "garbage"}, false)
	require.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestRequired(t *testing.T) {
	require.NoError(t, required("worksheet", "Sheet1", "file", "results.tsv"))
	require.EqualError(t, required("worksheet", "Sheet1", "file", "  "), "--file is a required option")
}

func TestFirst(t *testing.T) {
	require.Equal(t, "b", first("", " ", "b", "c"))
	require.Equal(t, "", first())
}

func TestOptionsLoadWithDebug(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	conf, err := (&Options{Debug: true}).load()

	require.NoError(t, err)
	require.Equal(t, "info", conf.Log.Level)
	require.Equal(t, log.DebugLevel, log.GetLevel())

	_, err = (&Options{Debug: false}).load()

	require.NoError(t, err)
	require.Equal(t, log.InfoLevel, log.GetLevel())
}
