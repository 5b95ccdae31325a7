package allocator

import (
	"log"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.minUnit != 16 {
		t.Errorf("minUnit = %d, want 16", cfg.minUnit)
	}

	if cfg.heapChunk != 16*4000 {
		t.Errorf("heapChunk = %d, want %d", cfg.heapChunk, 16*4000)
	}

	if cfg.minFreeChunk != 16*10 {
		t.Errorf("minFreeChunk = %d, want %d", cfg.minFreeChunk, 16*10)
	}

	if cfg.debug {
		t.Error("debug = true, want false by default")
	}

	if cfg.logger == nil {
		t.Error("logger = nil, want a default logger")
	}
}

func TestOptions(t *testing.T) {
	cfg := defaultConfig()

	opts := []Option{
		WithMinUnit(8),
		WithHeapChunk(1024),
		WithMinFreeChunk(64),
		WithDebug(true),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.minUnit != 8 || cfg.heapChunk != 1024 || cfg.minFreeChunk != 64 || !cfg.debug {
		t.Fatalf("options not applied: %+v", cfg)
	}
}

func TestOptions_IgnoreZeroValues(t *testing.T) {
	cfg := defaultConfig()
	want := *cfg

	WithMinUnit(0)(cfg)
	WithHeapChunk(0)(cfg)
	WithMinFreeChunk(0)(cfg)
	WithLogger(nil)(cfg)

	if cfg.minUnit != want.minUnit || cfg.heapChunk != want.heapChunk || cfg.minFreeChunk != want.minFreeChunk {
		t.Fatalf("a zero-valued option mutated the config: got %+v, want %+v", cfg, want)
	}

	if cfg.logger != want.logger {
		t.Fatal("WithLogger(nil) replaced the default logger")
	}
}

func TestWithLogger(t *testing.T) {
	cfg := defaultConfig()
	custom := log.New(nil, "custom: ", 0)

	WithLogger(custom)(cfg)

	if cfg.logger != custom {
		t.Fatal("WithLogger did not install the custom logger")
	}
}
