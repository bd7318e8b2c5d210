package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSONCompactAndPretty(t *testing.T) {
	v := map[string]any{"data": map[string]any{"id": "task-a"}}

	var buf bytes.Buffer
	if err := Write(&buf, v, "json", false); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if got := buf.String(); got != `{"data":{"id":"task-a"}}`+"\n" {
		t.Fatalf("unexpected compact output: %q", got)
	}

	buf.Reset()
	if err := Write(&buf, v, "", true); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(buf.String(), "  \"data\": {") {
		t.Fatalf("expected indented output; got %q", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{}, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
