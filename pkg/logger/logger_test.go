package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Service: "inventory-ledger", Output: &buf})

	engine := l.Component("engine")
	engine.Info().Str("company_id", "c-1").Msg("movimiento registrado")
	engine.Debug().Msg("no debe salir")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "inventory-ledger", entry["service"])
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "c-1", entry["company_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "movimiento registrado", entry["message"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level, env string
		want       zerolog.Level
	}{
		{"debug", "production", zerolog.DebugLevel},
		{" WARN ", "production", zerolog.WarnLevel},
		{"", "development", zerolog.DebugLevel},
		{"", "production", zerolog.InfoLevel},
		{"ruido", "development", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.level, tt.env), "level=%q env=%q", tt.level, tt.env)
	}
}
