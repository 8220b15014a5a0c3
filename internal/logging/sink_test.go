package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogSinkLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sink := NewSlogSink(logger)

	sink.Log("reactor started", "port", 10000)

	assert.Contains(t, buf.String(), "reactor started")
	assert.Contains(t, buf.String(), "port=10000")
}
