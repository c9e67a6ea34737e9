package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/cayenne/lpp"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.Port != 8077 {
		t.Errorf("default port = %d, want 8077", cfg.Gateway.Port)
	}
	if cfg.Gateway.BindAddress != "0.0.0.0" {
		t.Errorf("default bind_address = %q, want 0.0.0.0", cfg.Gateway.BindAddress)
	}
	if !cfg.Discovery.Enabled {
		t.Error("discovery disabled by default")
	}
	if len(cfg.CustomTypes) != 0 {
		t.Errorf("default config has %d custom types", len(cfg.CustomTypes))
	}
}

func TestLoadValidFile(t *testing.T) {
	content := `
gateway:
  bind_address: 127.0.0.1
  port: 9000
logging:
  level: debug
custom_types:
  - id: 0xF0
    name: BatteryVoltage
    size: 2
    scale: 1000
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9000", cfg.Gateway.Addr())
	}
	// Unset fields keep their defaults.
	if cfg.Gateway.MaxPayloadBytes != 4096 {
		t.Errorf("max_payload_bytes = %d, want default 4096", cfg.Gateway.MaxPayloadBytes)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.CustomTypes) != 1 || cfg.CustomTypes[0].ID != 0xF0 {
		t.Fatalf("custom types = %+v", cfg.CustomTypes)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Gateway.Port = 0 },
			wantMsg: "port",
		},
		{
			name:    "empty bind address",
			mutate:  func(c *Config) { c.Gateway.BindAddress = "" },
			wantMsg: "bind_address",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantMsg: "level",
		},
		{
			name: "custom type without name",
			mutate: func(c *Config) {
				c.CustomTypes = []CustomType{{ID: 0xF0, Size: 2}}
			},
			wantMsg: "name",
		},
		{
			name: "custom type oversized",
			mutate: func(c *Config) {
				c.CustomTypes = []CustomType{{ID: 0xF0, Name: "Blob", Size: 16}}
			},
			wantMsg: "size",
		},
		{
			name: "duplicate custom ids",
			mutate: func(c *Config) {
				c.CustomTypes = []CustomType{
					{ID: 0xF0, Name: "A", Size: 1},
					{ID: 0xF0, Name: "B", Size: 1},
				}
			},
			wantMsg: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestCustomTypeDecodeFunc(t *testing.T) {
	tests := []struct {
		name string
		ct   CustomType
		data []byte
		want any
	}{
		{
			name: "unsigned unscaled is integer",
			ct:   CustomType{ID: 0xF0, Name: "Counter", Size: 2},
			data: []byte{0x0E, 0x74},
			want: int64(3700),
		},
		{
			name: "unsigned scaled is float",
			ct:   CustomType{ID: 0xF0, Name: "BatteryVoltage", Size: 2, Scale: 1000},
			data: []byte{0x0E, 0x74},
			want: 3.7,
		},
		{
			name: "signed negative",
			ct:   CustomType{ID: 0xF1, Name: "Delta", Size: 2, Signed: true},
			data: []byte{0xFF, 0x9C},
			want: int64(-100),
		},
		{
			name: "signed scaled",
			ct:   CustomType{ID: 0xF1, Name: "Delta", Size: 2, Signed: true, Scale: 10},
			data: []byte{0xFF, 0x9C},
			want: -10.0,
		},
		{
			name: "four byte signed",
			ct:   CustomType{ID: 0xF3, Name: "Power", Size: 4, Signed: true},
			data: []byte{0x00, 0x00, 0x09, 0xC4},
			want: int64(2500),
		},
		{
			name: "single byte",
			ct:   CustomType{ID: 0xF2, Name: "Status", Size: 1},
			data: []byte{0x0F},
			want: int64(15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ct.DecodeFunc()(tt.data)
			switch want := tt.want.(type) {
			case int64:
				if got != want {
					t.Errorf("decode = %v (%T), want %v", got, got, want)
				}
			case float64:
				f, ok := got.(float64)
				if !ok || math.Abs(f-want) > 1e-9 {
					t.Errorf("decode = %v (%T), want %v", got, got, want)
				}
			}
		})
	}
}

func TestRegisterCustomTypes(t *testing.T) {
	decoder := lpp.NewDecoder()
	types := []CustomType{
		{ID: 0xF0, Name: "BatteryVoltage", Size: 2, Scale: 1000},
	}

	if err := RegisterCustomTypes(decoder, types); err != nil {
		t.Fatalf("RegisterCustomTypes() error = %v", err)
	}
	if !decoder.HasType(0xF0) {
		t.Error("decoder missing registered type 0xF0")
	}

	doc, err := decoder.Decode([]byte{0x01, 0xF0, 0x0C, 0xE4}) // 3300 mV
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	v, ok := doc.Get("BatteryVoltage_1")
	if !ok {
		t.Fatalf("document missing BatteryVoltage_1, has %v", doc.Keys())
	}
	if f, ok := v.(float64); !ok || math.Abs(f-3.3) > 1e-9 {
		t.Errorf("BatteryVoltage_1 = %v, want 3.3", v)
	}
}

func TestRegisterCustomTypesStandardCollision(t *testing.T) {
	decoder := lpp.NewDecoder()
	types := []CustomType{
		{ID: 0x67, Name: "FakeTemp", Size: 2},
	}

	err := RegisterCustomTypes(decoder, types)
	if err == nil {
		t.Fatal("RegisterCustomTypes() = nil, want error for standard id")
	}

	// The standard type keeps its behavior.
	doc, err := decoder.Decode([]byte{0x01, 0x67, 0x01, 0x10})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !doc.Contains("Temperature_1") {
		t.Error("Temperature_1 missing after failed registration")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Gateway.Port = 9100
	cfg.CustomTypes = []CustomType{{ID: 0xF0, Name: "BatteryVoltage", Size: 2, Scale: 1000}}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Gateway.Port != 9100 {
		t.Errorf("port = %d, want 9100", loaded.Gateway.Port)
	}
	if len(loaded.CustomTypes) != 1 || loaded.CustomTypes[0].Name != "BatteryVoltage" {
		t.Errorf("custom types = %+v", loaded.CustomTypes)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Error("temporary file left after Save")
	}
}
