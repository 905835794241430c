package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	base, hook := test.NewNullLogger()

	FromContext(context.Background(), base).Info("plain")
	FromContext(WithRequestID(context.Background(), "rid-1"), base).Info("tagged")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.NotContains(t, entries[0].Data, "request_id")
	assert.Equal(t, logrus.Fields{"request_id": "rid-1"}, entries[1].Data)
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}
