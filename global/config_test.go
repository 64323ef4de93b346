package global

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConfigLoadAppliesDefaults(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(tmpFile, []byte("app:\n  storage: database\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := ConfigLoad(tmpFile)
	if err != nil {
		t.Fatalf("ConfigLoad failed: %v", err)
	}

	if c.App.Storage != "database" {
		t.Errorf("Storage = %s, want database", c.App.Storage)
	}
	// 未出现的字段应取默认值
	if c.Server.HttpPort != "8000" {
		t.Errorf("HttpPort = %s, want default 8000", c.Server.HttpPort)
	}
	if c.App.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want default 20", c.App.DefaultPageSize)
	}
	if c.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %s, want default sqlite", c.Database.Type)
	}
}

func TestConfigSave(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")

	if _, err := ConfigCreateAndLoad(tmpFile, []byte("log:\n  level: info\n")); err != nil {
		t.Fatalf("ConfigCreateAndLoad failed: %v", err)
	}

	Config.Log.Level = "debug"
	if err := Config.Save(); err != nil {
		t.Fatalf("Config.Save error: %v, file: %s", err, Config.File)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	var updated config
	if err := yaml.Unmarshal(data, &updated); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}
	if updated.Log.Level != "debug" {
		t.Errorf("Level = %s, want debug", updated.Log.Level)
	}
}
