package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/logging"
)

func TestSlogLogger_FiltersByLevel(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "warn", "text")
	require.NoError(t, err)

	// Act
	logger.Log("INFO", "Habitat created", nil)
	logger.Log("WARNING", "Habitat import rejected", map[string]interface{}{"source": "file"})

	// Assert
	out := buf.String()
	assert.NotContains(t, out, "Habitat created")
	assert.Contains(t, out, "Habitat import rejected")
	assert.Contains(t, out, "source=file")
}

func TestSlogLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(&buf, "debug", "json")
	require.NoError(t, err)

	logger.With(map[string]interface{}{"request_id": "abc"}).Log("DEBUG", "Module placed", map[string]interface{}{"cell": "1_2"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Module placed", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "1_2", entry["cell"])
	assert.Equal(t, "abc", entry["request_id"])
}

func TestNewWithWriter_Rejections(t *testing.T) {
	_, err := logging.NewWithWriter(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)
	_, err = logging.NewWithWriter(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	logger, err := logging.New(config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Log("ERROR", "Catalog reload failed", nil)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Catalog reload failed"))
}
