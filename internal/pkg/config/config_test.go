package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ONE_MAP_API_TOKEN", "token-123")
	t.Setenv("DATA_SG_API", "key-456")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OneMap.Token != "token-123" {
		t.Errorf("expected token from ONE_MAP_API_TOKEN, got %q", cfg.OneMap.Token)
	}
	if cfg.DataGovSG.APIKey != "key-456" {
		t.Errorf("expected key from DATA_SG_API, got %q", cfg.DataGovSG.APIKey)
	}
	if cfg.OneMap.Year != 2019 {
		t.Errorf("expected default year 2019, got %d", cfg.OneMap.Year)
	}
	if cfg.Report.TopN != 10 {
		t.Errorf("expected default top_n 10, got %d", cfg.Report.TopN)
	}
	if cfg.Report.Format != "text" {
		t.Errorf("expected default format text, got %q", cfg.Report.Format)
	}
	if cfg.DataGovSG.BaseURL != "https://api.data.gov.sg" {
		t.Errorf("unexpected default base url %q", cfg.DataGovSG.BaseURL)
	}
	if cfg.Valkey.Addr != "" {
		t.Errorf("cache should be disabled by default, got %q", cfg.Valkey.Addr)
	}
}

func TestLoad_PrefixedEnvOverrides(t *testing.T) {
	t.Setenv("TAXIHOTSPOTS_ONEMAP_TOKEN", "prefixed-token")
	t.Setenv("TAXIHOTSPOTS_DATAGOVSG_API_KEY", "prefixed-key")
	t.Setenv("TAXIHOTSPOTS_ONEMAP_YEAR", "2024")
	t.Setenv("TAXIHOTSPOTS_REPORT_TOP_N", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OneMap.Token != "prefixed-token" {
		t.Errorf("expected prefixed token, got %q", cfg.OneMap.Token)
	}
	if cfg.OneMap.Year != 2024 {
		t.Errorf("expected year 2024, got %d", cfg.OneMap.Year)
	}
	if cfg.Report.TopN != 5 {
		t.Errorf("expected top_n 5, got %d", cfg.Report.TopN)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("ONE_MAP_API_TOKEN", "")
	t.Setenv("DATA_SG_API", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	if !strings.Contains(err.Error(), "ONE_MAP_API_TOKEN") {
		t.Errorf("error should name the missing OneMap variable: %v", err)
	}
	if !strings.Contains(err.Error(), "DATA_SG_API") {
		t.Errorf("error should name the missing data.gov.sg variable: %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Setenv("ONE_MAP_API_TOKEN", "token")
	t.Setenv("DATA_SG_API", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Report.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unsupported format")
	}

	cfg, _ = Load()
	cfg.OneMap.Year = 1990
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for pre-dataset year")
	}
}
