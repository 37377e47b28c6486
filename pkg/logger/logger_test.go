package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext_AddsRequestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{Logger: zap.New(core)}

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, ClientIDKey, "tab-9")
	l.WithContext(ctx).Info("hello")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "tab-9", fields["client_id"])
	}
}

func TestWithContext_NoFieldsReturnsSameLogger(t *testing.T) {
	l := New(Config{Level: "debug", ServiceName: "menulink"})
	assert.Same(t, l, l.WithContext(context.Background()))
}

func TestGet_DefaultsToNop(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Get())
	assert.NotPanics(t, func() { Get().Info("ignored") })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("verbose").String())
}
