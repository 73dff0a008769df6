package config

import (
	"os"
	"strconv"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "org-membership-backend" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "org-membership-backend")
	}
	if cfg.JWTAccessTTL != "1h" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "1h")
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("JWT_SECRET", "sekrit")
	os.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.JWTSecret != "sekrit" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "sekrit")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
}

func TestLoad_BcryptCostRange(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  int
		err   bool
	}{
		{"valid min", "4", 4, false},
		{"valid max", "31", 31, false},
		{"valid middle", "12", 12, false},
		{"too low", "3", 0, true},
		{"too high", "32", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("HTTP_ADDR", ":8080")
			os.Setenv("JWT_SECRET", "test-secret")
			os.Setenv("BCRYPT_COST", tc.value)

			cfg, err := Load()
			if tc.err {
				if err == nil {
					t.Fatalf("Load with BCRYPT_COST=%s: want error, got nil", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.BcryptCost != tc.want {
				t.Errorf("BcryptCost = %d, want %d", cfg.BcryptCost, tc.want)
			}
			if got, _ := strconv.Atoi(tc.value); got != tc.want {
				t.Errorf("sanity: parsed %d != want %d", got, tc.want)
			}
		})
	}
}

func TestLoad_JWTSecretRequired(t *testing.T) {
	t.Run("missing outside development", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("HTTP_ADDR", ":8080")
		os.Setenv("APP_ENV", "production")

		if _, err := Load(); err == nil {
			t.Fatal("Load without JWT_SECRET: want error, got nil")
		}
	})

	t.Run("missing in development", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("HTTP_ADDR", ":8080")
		os.Setenv("APP_ENV", "development")

		if _, err := Load(); err != nil {
			t.Fatalf("Load: %v", err)
		}
	})

	t.Run("set", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("HTTP_ADDR", ":8080")
		os.Setenv("JWT_SECRET", "sekrit")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.JWTSecret != "sekrit" {
			t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "sekrit")
		}
	})
}

func TestAccessTTL(t *testing.T) {
	testCases := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{"valid", "30m", 30 * time.Minute},
		{"empty falls back", "", time.Hour},
		{"garbage falls back", "soon", time.Hour},
		{"negative falls back", "-5m", time.Hour},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{JWTAccessTTL: tc.ttl}
			if got := cfg.AccessTTL(); got != tc.want {
				t.Errorf("AccessTTL() = %v, want %v", got, tc.want)
			}
		})
	}
}
