package logutils

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	require.NotNil(t, closer)
	closer()
}

func TestNewWritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "emojiart.log")

	logger, closer, err := New("info", file)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("url", "bg.png").Msg("background dropped")
	closer()

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), "line is not JSON: %s", sc.Text())
		lines = append(lines, m)
	}
	require.Len(t, lines, 1, "debug line should be filtered")
	assert.Equal(t, "background dropped", lines[0]["message"])
	assert.Equal(t, "bg.png", lines[0]["url"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Contains(t, lines[0], "time")
}

func TestNewAppendsToExistingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "emojiart.log")
	require.NoError(t, os.WriteFile(file, []byte("{\"message\":\"earlier\"}\n"), 0o644))

	logger, closer, err := New("debug", file)
	require.NoError(t, err)
	logger.Debug().Msg("later")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "earlier")
	assert.Contains(t, string(data), "later")
}
