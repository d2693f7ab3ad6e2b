package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestReturnNonDefault(t *testing.T) {
	tests := []struct {
		name       string
		a          interface{}
		b          interface{}
		defaultVal interface{}
		want       interface{}
		wantErr    bool
	}{
		{
			name:       "Both defaults",
			a:          "default",
			b:          "default",
			defaultVal: "default",
			want:       "default",
			wantErr:    false,
		},
		{
			name:       "A non-default",
			a:          "non-default",
			b:          "default",
			defaultVal: "default",
			want:       "non-default",
			wantErr:    false,
		},
		{
			name:       "B non-default",
			a:          "default",
			b:          "non-default",
			defaultVal: "default",
			want:       "non-default",
			wantErr:    false,
		},
		{
			name:       "Both non-default",
			a:          "non-default-a",
			b:          "non-default-b",
			defaultVal: "default",
			want:       "default",
			wantErr:    true,
		},
		{
			name:       "Both non-default same value",
			a:          "non-default",
			b:          "non-default",
			defaultVal: "default",
			want:       "default",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReturnNonDefault(tt.a, tt.b, tt.defaultVal)
			if tt.wantErr && !errors.Is(err, ErrMutuallyExclusive) {
				t.Errorf("ReturnNonDefault() error = %v, want ErrMutuallyExclusive", err)
				return
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("ReturnNonDefault() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ReturnNonDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReturnNonDefault_Ints(t *testing.T) {
	got, err := ReturnNonDefault(0, 250, 100)
	if err == nil {
		t.Fatal("expected error since both differ from default")
	}
	got, err = ReturnNonDefault(100, 250, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testboil.FailTestIfDiff(t, got, 250)
}

func TestFirstNonEmpty(t *testing.T) {
	t.Setenv("HFCHAT_TEST_A", "")
	t.Setenv("HFCHAT_TEST_B", "from-b")

	testboil.FailTestIfDiff(t, FirstNonEmpty("explicit", "HFCHAT_TEST_A", "HFCHAT_TEST_B"), "explicit")
	testboil.FailTestIfDiff(t, FirstNonEmpty("", "HFCHAT_TEST_A", "HFCHAT_TEST_B"), "from-b")
	testboil.FailTestIfDiff(t, FirstNonEmpty("", "HFCHAT_TEST_A"), "")
	testboil.FailTestIfDiff(t, FirstNonEmpty(""), "")
}

// unsetenv removes k for the duration of the test.
func unsetenv(t *testing.T, k string) {
	t.Helper()
	t.Setenv(k, "")
	os.Unsetenv(k)
}

func TestLoadDotEnv(t *testing.T) {
	unsetenv(t, "HFCHAT_TEST_DOTENV")
	t.Setenv("HFCHAT_TEST_PRESET", "from-env")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HFCHAT_TEST_DOTENV=from-file\nHFCHAT_TEST_PRESET=from-file\n"), 0o600); err != nil {
		t.Fatalf("failed to write dotenv: %v", err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	testboil.FailTestIfDiff(t, os.Getenv("HFCHAT_TEST_DOTENV"), "from-file")
	testboil.FailTestIfDiff(t, os.Getenv("HFCHAT_TEST_PRESET"), "from-env")
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got: %v", err)
	}
}
