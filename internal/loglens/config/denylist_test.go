package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDenylist(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    []string
		wantErr bool
	}{
		{
			name: "valid",
			yaml: "patterns:\n  - /admin\n  - /.env\n",
			want: []string{"/admin", "/.env"},
		},
		{
			name: "normalized and deduplicated",
			yaml: "patterns:\n  - '  /Admin '\n  - /admin\n  - /backup\n",
			want: []string{"/admin", "/backup"},
		},
		{
			name:    "empty pattern rejected",
			yaml:    "patterns:\n  - /admin\n  - '   '\n",
			wantErr: true,
		},
		{
			name:    "no patterns",
			yaml:    "patterns: []\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "patterns: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateDenylist(strings.NewReader(tt.yaml))

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestLoadDenylist_EmptyPathUsesDefault(t *testing.T) {
	patterns, err := LoadDenylist("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != len(DefaultDenylist) {
		t.Errorf("got %d patterns, want the %d defaults", len(patterns), len(DefaultDenylist))
	}
}

func TestLoadDenylist_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denylist.yaml")
	if err := os.WriteFile(path, []byte("patterns:\n  - /secret\n"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	patterns, err := LoadDenylist(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 1 || patterns[0] != "/secret" {
		t.Errorf("got %v, want [/secret]", patterns)
	}
}

func TestLoadDenylist_MissingFile(t *testing.T) {
	if _, err := LoadDenylist("/nonexistent/denylist.yaml"); err == nil {
		t.Errorf("expected error for missing file")
	}
}
