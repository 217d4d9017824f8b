// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 60.0, c.Server.FrameRate)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
[server]
addr = ":9000"

[animation]
speed = 2.5
step_delay = "250ms"

[log]
level = "debug"
json = true
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, 60.0, c.Server.FrameRate, "unset keys keep defaults")
	assert.Equal(t, 2.5, c.Animation.Speed)
	assert.Equal(t, 250*time.Millisecond, c.Animation.StepDelay)
	assert.Equal(t, Log{Level: "debug", JSON: true}, c.Log)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[server]\naddr = \":9000\"\n")
	t.Setenv("ALGOVIZ_SERVER_ADDR", ":9100")
	t.Setenv("ALGOVIZ_ANIMATION_STEP_DELAY", "1s")
	t.Setenv("ALGOVIZ_SERVER_FRAME_RATE", "30")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", c.Server.Addr)
	assert.Equal(t, time.Second, c.Animation.StepDelay)
	assert.Equal(t, 30.0, c.Server.FrameRate)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "[animation]\nspeed = 0\n"))
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, errors.FlattenHints(err), "multiplier")

	_, err = Load(writeFile(t, "[server]\naddr = \"\"\n"))
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestWrite(t *testing.T) {
	c := Default()
	c.Animation.StepDelay = 700 * time.Millisecond
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, c))
	assert.Contains(t, buf.String(), `step_delay = "700ms"`)
	assert.Contains(t, buf.String(), "[server]")

	path := writeFile(t, buf.String())
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, *got)
}

func TestWriteFile_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, WriteFile(path, Default(), false))

	err := WriteFile(path, Default(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrExist))
	assert.Contains(t, errors.FlattenHints(err), "--force")

	require.NoError(t, WriteFile(path, Default(), true))
}
