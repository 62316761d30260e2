package trainlog_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/trainkit/internal/trainlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerTee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.log")
	var console bytes.Buffer

	l, err := trainlog.New(path, &console)
	require.NoError(t, err)
	defer l.Close()

	_, err = fmt.Fprintf(l, "epoch %d loss %.2f\n", 1, 0.5)
	require.NoError(t, err)

	// Visible in the file before Close.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "epoch 1 loss 0.50\n", string(data))
	assert.Equal(t, "epoch 1 loss 0.50\n", console.String())
	assert.NoError(t, l.Flush())
}

func TestLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o600))

	l, err := trainlog.New(path, nil)
	require.NoError(t, err)
	_, err = l.Write([]byte("next run\n"))
	require.NoError(t, err)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous run\nnext run\n", string(data))
}

func TestLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.log")

	l, err := trainlog.New(path, nil)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestLoggerOpenError(t *testing.T) {
	_, err := trainlog.New(filepath.Join(t.TempDir(), "missing", "train.log"), nil)
	assert.Error(t, err)
}

func TestLoggerClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.log")
	var console bytes.Buffer
	l, err := trainlog.New(path, &console)
	require.NoError(t, err)

	require.NoError(t, l.Close())
	assert.NoError(t, l.Close())

	n, err := l.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Zero(t, n)
	assert.Empty(t, console.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLoggerSlog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.log")
	var console bytes.Buffer

	l, err := trainlog.New(path, &console)
	require.NoError(t, err)
	defer l.Close()

	log := l.Slog(&slog.HandlerOptions{Level: slog.LevelInfo})
	log.Debug("hidden")
	log.Info("step", "epoch", 3, "lr", 0.001)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=step epoch=3 lr=0.001")
	assert.NotContains(t, string(data), "hidden")
	assert.Equal(t, string(data), console.String())
}
