package log

import (
	"bytes"
	"strings"
	"testing"
)

// Configure is process-global, so one test exercises the whole surface.
func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})

	// Second Configure must not replace the writer
	var other bytes.Buffer
	Configure(Config{Output: &other})

	base := Base()
	base.Info().Str("k", "v").Msg("hello")

	if buf.Len() == 0 {
		t.Fatal("expected output on first configured writer")
	}
	if other.Len() != 0 {
		t.Error("second Configure should have been a no-op")
	}

	out := buf.String()
	if !strings.Contains(out, `"service":"test"`) {
		t.Errorf("missing service field: %s", out)
	}
	if !strings.Contains(out, `"k":"v"`) {
		t.Errorf("missing custom field: %s", out)
	}

	buf.Reset()
	eventLog := WithComponent("event")
	eventLog.Info().Msg("ready")
	if !strings.Contains(buf.String(), `"component":"event"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}
