package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"testing"
)

func TestSetupWriter_StructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWriter(&buf, "loan-ledger", "test", slog.LevelInfo)
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))) })

	logger.Info("loan updated", "index", 3)

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("not JSON: %v (%s)", err, buf.String())
	}
	for k, want := range map[string]any{
		"message":  "loan updated",
		"severity": "INFO",
		"service":  "loan-ledger",
		"env":      "test",
		"index":    float64(3),
	} {
		if line[k] != want {
			t.Fatalf("%s = %v, want %v", k, line[k], want)
		}
	}
	if _, ok := line["timestamp"]; !ok {
		t.Fatalf("missing timestamp: %v", line)
	}
}

func TestSetupWriter_BridgesStdLog(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "loan-ledger", "", slog.LevelInfo)

	log.Printf("legacy %d", 1)

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("not JSON: %v (%s)", err, buf.String())
	}
	if line["message"] != "legacy 1" {
		t.Fatalf("message = %v", line["message"])
	}
	if _, ok := line["env"]; ok {
		t.Fatalf("env should be omitted when empty: %v", line)
	}
}
