// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperFormatter struct{}

func (upperFormatter) Format(rec Record) string {
	return strings.ToUpper(rec.Message)
}

func TestStreamSink(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	sink := NewStreamSink(buffer, WARNING)
	assert.Equal(t, WARNING, sink.Level())

	require.NoError(t, sink.Emit(Record{Time: testTime, Name: "main", Level: ERROR, Message: "boom"}))
	assert.Equal(t, "2024-06-01 12:30:45,123 - main - ERROR - boom\n", buffer.String())

	buffer.Reset()
	sink.WithFormatter(upperFormatter{})
	require.NoError(t, sink.Emit(Record{Time: testTime, Name: "main", Level: ERROR, Message: "boom"}))
	assert.Equal(t, "BOOM\n", buffer.String())

	assert.NoError(t, sink.Close())
}

func TestFileSink(t *testing.T) {
	t.Parallel()

	t.Run("appends to existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "app.log")
		require.NoError(t, os.WriteFile(path, []byte("previous line\n"), 0o600))

		sink, err := NewFileSink(path, DEBUG)
		require.NoError(t, err)
		require.NoError(t, sink.Emit(Record{Time: testTime, Name: "main", Level: DEBUG, Message: "appended"}))
		require.NoError(t, sink.Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "previous line\n2024-06-01 12:30:45,123 - main - DEBUG - appended\n", string(content))
	})

	t.Run("creates missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.log")
		sink, err := NewFileSink(path, DEBUG)
		require.NoError(t, err)
		require.NoError(t, sink.Close())
		require.NoError(t, sink.Close())

		assert.FileExists(t, path)
	})

	t.Run("unwritable path fails at creation", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "dir", "app.log")
		sink, err := NewFileSink(path, DEBUG)
		require.Nil(t, sink)

		var sinkErr *SinkInitError
		require.ErrorAs(t, err, &sinkErr)
		assert.Equal(t, path, sinkErr.Target)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
