package logger

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWithComponent(t *testing.T) {
	entry := WithComponent("fetch")
	if entry == nil {
		t.Fatal("expected non-nil entry")
	}

	if val, ok := entry.Data["component"]; !ok {
		t.Error("expected component field to be set")
	} else if val != "fetch" {
		t.Errorf("expected component 'fetch', got '%v'", val)
	}
}

func TestLoggerInit(t *testing.T) {
	if Logger == nil {
		t.Fatal("expected Logger to be initialized")
	}

	if Logger.Out != os.Stdout {
		t.Error("expected Logger output to be os.Stdout")
	}
}

func TestSetLevel(t *testing.T) {
	origLevel := Logger.GetLevel()
	defer Logger.SetLevel(origLevel)

	tests := []struct {
		name          string
		value         string
		expectedLevel logrus.Level
		wantErr       bool
	}{
		{"debug level", "debug", logrus.DebugLevel, false},
		{"warn level", "warn", logrus.WarnLevel, false},
		{"DEBUG uppercase", "DEBUG", logrus.DebugLevel, false},
		{"padded", "  error ", logrus.ErrorLevel, false},
		{"invalid level", "invalid", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger.SetLevel(logrus.InfoLevel)

			err := SetLevel(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if Logger.GetLevel() != tt.expectedLevel {
				t.Errorf("expected level %v, got %v", tt.expectedLevel, Logger.GetLevel())
			}
		})
	}
}

func TestUseJSON(t *testing.T) {
	orig := Logger.Formatter
	defer Logger.SetFormatter(orig)

	UseJSON()
	if _, ok := Logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON formatter, got %T", Logger.Formatter)
	}
}

func TestWithComponentMultiple(t *testing.T) {
	entry1 := WithComponent("store")
	entry2 := WithComponent("refresh")

	if entry1.Data["component"] == entry2.Data["component"] {
		t.Error("expected different component values for different entries")
	}
}
