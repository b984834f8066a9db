package logging

import (
	"bytes"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "debug", "json")

	log.WithField("slug", "pikachu").Debug("cache hit")
	require.Contains(t, buf.String(), `"slug":"pikachu"`)
	require.Contains(t, buf.String(), "cache hit")
}

func TestSetupWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "loud", "text")

	log.Debug("hidden")
	require.Empty(t, buf.String())
	log.Info("shown")
	require.Contains(t, buf.String(), "shown")
}
