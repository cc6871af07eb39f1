package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		mode    string
		wantErr bool
	}{
		{level: "debug", mode: "development"},
		{level: "info", mode: "production"},
		{level: "WARN", mode: "prod"},
		{level: "loud", mode: "development", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.mode, func(t *testing.T) {
			log, err := New(tt.level, tt.mode)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if log.SugaredLogger == nil {
				t.Fatal("SugaredLogger is nil")
			}
		})
	}
}

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core)).With("run", "r1")

	log.Debug("hidden")
	log.Info("loaded", "records", 4)
	log.Warn("unmatched city", "city", "Atlantis")
	log.Error("write failed")

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Message != "loaded" || entries[0].ContextMap()["records"] != int64(4) {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].ContextMap()["city"] != "Atlantis" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	for _, e := range entries {
		if e.ContextMap()["run"] != "r1" {
			t.Errorf("%q is missing the run field", e.Message)
		}
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("ignored", "k", "v")
	log.Sync()
}
