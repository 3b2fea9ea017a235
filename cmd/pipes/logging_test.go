package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from a scratch directory so logs/ lands there
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		logrus.SetOutput(io.Discard)
	})
}

func TestSetupLoggingDiscardsWithoutDebug(t *testing.T) {
	inTempDir(t)

	f := setupLogging(false)
	assert.Nil(t, f)
	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)

	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log directory without debug")
}

func TestSetupLoggingWritesEpochFields(t *testing.T) {
	inTempDir(t)

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	logger := logrus.StandardLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.NotEqual(t, os.Stdout, logger.Out)
	assert.NotEqual(t, os.Stderr, logger.Out)

	formatter, ok := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, ok, "formatter is %T", logger.Formatter)
	assert.True(t, formatter.FullTimestamp)
	assert.True(t, formatter.DisableColors)

	logrus.WithField("epoch", "c0ffee").Info("session reset")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "epoch=c0ffee")
	assert.Contains(t, string(data), `msg="session reset"`)
	assert.Contains(t, string(data), "level=info")
}

func TestSetupLoggingRotatesOversizedLog(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.MkdirAll(logDir, 0o755))

	logPath := filepath.Join(logDir, logFileName)
	big, err := os.Create(logPath)
	require.NoError(t, err)
	require.NoError(t, big.Truncate(maxLogSize+1))
	require.NoError(t, big.Close())

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	rotated, err := filepath.Glob(filepath.Join(logDir, "pipes-*.log"))
	require.NoError(t, err)
	require.Len(t, rotated, 1)

	info, err := os.Stat(rotated[0])
	require.NoError(t, err)
	assert.Equal(t, int64(maxLogSize+1), info.Size())

	info, err = os.Stat(logPath)
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "fresh log after rotation")
}

func TestSetupLoggingKeepsSmallLog(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	logPath := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(logPath, []byte("earlier run\n"), 0o644))

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()
	logrus.Debug("appended")

	rotated, err := filepath.Glob(filepath.Join(logDir, "pipes-*.log"))
	require.NoError(t, err)
	assert.Empty(t, rotated)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "earlier run\n")
	assert.Contains(t, string(data), "appended")
}

func TestSetupLoggingReportsFailedRotation(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.MkdirAll(logDir, 0o755))

	logPath := filepath.Join(logDir, logFileName)
	big, err := os.Create(logPath)
	require.NoError(t, err)
	require.NoError(t, big.Truncate(maxLogSize+1))
	require.NoError(t, big.Close())

	// A directory at the rotation target makes the rename fail
	now := time.Now()
	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("pipes-%s.log", now.Add(time.Duration(i)*time.Second).Format("20060102-150405"))
		require.NoError(t, os.Mkdir(filepath.Join(logDir, name), 0o755))
	}

	f := setupLogging(true)
	require.NotNil(t, f)
	defer f.Close()

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(maxLogSize))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data[maxLogSize:]), "log rotation failed")
}
