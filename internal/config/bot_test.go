package config

import "testing"

func TestLoadBotDefaults(t *testing.T) {
	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080" {
		t.Fatalf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Hands != 10 {
		t.Fatalf("Hands = %d, want 10", cfg.Hands)
	}
}

func TestLoadBotOverrides(t *testing.T) {
	t.Setenv("SERVER_URL", "http://example.test:9000")
	t.Setenv("PLAYER_ID", "bot-7")
	t.Setenv("TABLE_ID", "t-42")
	t.Setenv("HANDS", "3")

	cfg, err := LoadBot()
	if err != nil {
		t.Fatalf("LoadBot() error = %v", err)
	}
	if cfg.ServerURL != "http://example.test:9000" {
		t.Fatalf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.PlayerID != "bot-7" || cfg.TableID != "t-42" || cfg.Hands != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
}
