package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, v := range []string{"STATUS_ADDR", "SKIP_UNCHANGED", "LOG_LEVEL"} {
		os.Unsetenv(v)
	}
	os.Setenv("HOME", "/home/test")
	defer os.Unsetenv("HOME")

	cfg := Load(nil)

	if cfg.Interval != 1000*time.Millisecond {
		t.Errorf("Interval = %v, want 1s", cfg.Interval)
	}
	if cfg.BaseDir != "/home/test" {
		t.Errorf("BaseDir = %q, want /home/test", cfg.BaseDir)
	}
	if cfg.StatusAddr != "" {
		t.Errorf("StatusAddr = %q, want empty", cfg.StatusAddr)
	}
	if cfg.SkipUnchanged {
		t.Error("SkipUnchanged should default to false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadInterval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want time.Duration
	}{
		{"absent", nil, 1000 * time.Millisecond},
		{"valid", []string{"250"}, 250 * time.Millisecond},
		{"zero", []string{"0"}, 1000 * time.Millisecond},
		{"negative", []string{"-50"}, 1000 * time.Millisecond},
		{"non-numeric", []string{"fast"}, 1000 * time.Millisecond},
		{"float", []string{"2.5"}, 1000 * time.Millisecond},
		{"extra args ignored", []string{"100", "junk"}, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Load(tt.args).Interval; got != tt.want {
				t.Errorf("Interval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadBaseDirFallback(t *testing.T) {
	old := os.Getenv("HOME")
	os.Unsetenv("HOME")
	defer os.Setenv("HOME", old)

	if cfg := Load(nil); cfg.BaseDir != "." {
		t.Errorf("BaseDir = %q, want . when HOME unset", cfg.BaseDir)
	}
}

func TestLoadWithEnv(t *testing.T) {
	os.Setenv("STATUS_ADDR", ":7878")
	os.Setenv("SKIP_UNCHANGED", "1")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("STATUS_ADDR")
		os.Unsetenv("SKIP_UNCHANGED")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg := Load(nil)
	if cfg.StatusAddr != ":7878" {
		t.Errorf("StatusAddr = %q, want :7878", cfg.StatusAddr)
	}
	if !cfg.SkipUnchanged {
		t.Error("SkipUnchanged should be true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}
