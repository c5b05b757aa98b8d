package content

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoff_Open(t *testing.T) {
	var out bytes.Buffer
	h := NewHandoff("https://allplace.online/en/items-list/", &out, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, h.Open(context.Background(), "f1"))
	assert.Equal(t, "https://allplace.online/en/items-list/f1?mobile=true\n", out.String())
}

func TestHandoff_URLEscapesID(t *testing.T) {
	h := NewHandoff("https://example.test", io.Discard, slog.Default())
	assert.Equal(t, "https://example.test/a%2Fb?mobile=true", h.URL("a/b"))
}
