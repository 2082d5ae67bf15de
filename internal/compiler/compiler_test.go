package compiler

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/msgc/internal/config"
	"github.com/danmuck/msgc/internal/protocol/schema"
	"github.com/danmuck/msgc/internal/testutil/testlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pingSchema = `
*/request
.hdr_length: word
.hdr_type: byte

ping/request
.seq: word
.extra: word [has_extra]
.note: string
`

func testConfig(t *testing.T, src string) config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ping.msg")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	cfg := config.Default()
	cfg.Schema = path
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Normalize()
	return cfg
}

func TestCompileInMemory(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, pingSchema)
	res, err := Compile(strings.NewReader(pingSchema), cfg)
	require.NoError(t, err)
	require.Len(t, res.Schema.Messages, 1)
	require.Len(t, res.Artifacts, 2)
	assert.Equal(t, "ping_types.go", res.Artifacts[0].Name)
	assert.Contains(t, string(res.Artifacts[0].Data), "package ping")
}

func TestRunWritesArtifactsAndMetrics(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, pingSchema)
	cfg.MetricsFile = filepath.Join(t.TempDir(), "msgc.prom")
	res, err := Run(cfg)
	require.NoError(t, err)

	for _, a := range res.Artifacts {
		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, a.Name))
		require.NoError(t, err)
		assert.Equal(t, a.Data, data)
	}
	metrics, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "msgc_compile_messages_total")
}

func TestRunSchemaErrorWritesNothing(t *testing.T) {
	testlog.Start(t)
	cfg := testConfig(t, "ping/request\n.seq: quadword\n")
	_, err := Run(cfg)
	require.Error(t, err)

	var se *schema.Error
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, 2, se.Line)

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "output dir must not be created")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	testlog.Start(t)
	_, err := Run(config.Default())
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	testlog.Start(t)
	s, err := Check(strings.NewReader(pingSchema), testConfig(t, pingSchema))
	require.NoError(t, err)
	var out bytes.Buffer
	Report(&out, s)
	text := out.String()
	assert.Contains(t, text, "ping/request")
	assert.Contains(t, text, "hdr_length@0(len)")
	assert.Contains(t, text, "seq@3")
	assert.Contains(t, text, "extra@5[has_extra]")
	assert.Contains(t, text, "note:string")
}
