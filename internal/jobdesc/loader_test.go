package jobdesc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "jd.txt")
	if err := os.WriteFile(file, []byte("\n  Looking for Python and SQL engineer \n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr bool
	}{
		{name: "inline value", src: Source{Value: "  Go developer "}, expect: "Go developer"},
		{name: "file wins over value", src: Source{Value: "ignored", File: file}, expect: "Looking for Python and SQL engineer"},
		{name: "empty is allowed", src: Source{}, expect: ""},
		{name: "missing file", src: Source{File: filepath.Join(dir, "missing.txt")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestConfigured(t *testing.T) {
	if (Source{Value: "  "}).Configured() {
		t.Fatalf("blank value must not count as configured")
	}
	if !(Source{File: "jd.txt"}).Configured() {
		t.Fatalf("file source must count as configured")
	}
}
