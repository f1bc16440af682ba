package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTo_ProdIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "prod")

	log.Debug("hidden")
	log.Info("blog created", "id", "b1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "blog created", rec["msg"])
	assert.Equal(t, "b1", rec["id"])
	assert.Equal(t, "prod", rec["env"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewTo_DevIsTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	NewTo(&buf, "dev").Debug("cache miss", "key", "blogs:all")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "key=blogs:all")
}
