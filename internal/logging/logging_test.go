package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storefront.log")

	log, closer, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if log.Level != logrus.DebugLevel {
		t.Fatalf("Level = %v, want debug", log.Level)
	}
	log.WithField("domain", "products").Debug("fetch issued")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["message"] != "fetch issued" || entry["severity"] != "debug" || entry["domain"] != "products" {
		t.Fatalf("entry = %v, want message/severity/domain fields", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatalf("entry = %v, want timestamp field", entry)
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log, closer, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()
	if log.Level != logrus.InfoLevel {
		t.Fatalf("Level = %v, want info", log.Level)
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatalf("OrDiscard(nil) = nil, want discard logger")
	}
	l := logrus.New()
	if OrDiscard(l) != l {
		t.Fatalf("OrDiscard should return the provided logger")
	}
}
