package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetOutput(os.Stderr)
		_ = SetLevel("info")
		_ = SetFormat("text")
	}()

	require.NoError(t, SetLevel("warn"))
	Info("[Test] hidden")
	Warn("[Test] shown %d", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[Test] shown 1")

	buf.Reset()
	require.NoError(t, SetFormat("json"))
	WithFields(Fields{"tap": "x"}).Warn("structured")
	assert.Contains(t, buf.String(), `"tap":"x"`)

	assert.Error(t, SetLevel("loud"))
	assert.Error(t, SetFormat("xml"))
}

func TestInitLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "loom.log")
	require.NoError(t, InitLog(path))
	Error("[Test] to file")
	FlushLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Test] to file")

	assert.NoError(t, InitLog(""))
}
