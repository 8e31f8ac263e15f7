package ledger

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testBaseline = 3010

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content   *string // nil means no file
		wantPorts []int
	}{
		"absent file": {
			content:   nil,
			wantPorts: []int{testBaseline},
		},
		"empty file": {
			content:   ptr(""),
			wantPorts: []int{testBaseline},
		},
		"valid history": {
			content:   ptr("[3010,3011,3012]"),
			wantPorts: []int{3010, 3011, 3012},
		},
		"non-array text": {
			content:   ptr("not json at all"),
			wantPorts: []int{testBaseline},
		},
		"array of strings": {
			content:   ptr(`["a","b"]`),
			wantPorts: []int{testBaseline},
		},
		"empty array": {
			content:   ptr("[]"),
			wantPorts: []int{testBaseline},
		},
		"negative entry": {
			content:   ptr("[3010,-5]"),
			wantPorts: []int{testBaseline},
		},
		"truncated json": {
			content:   ptr("[3010,30"),
			wantPorts: []int{testBaseline},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "ports.json")
			if tc.content != nil {
				if err := os.WriteFile(path, []byte(*tc.content), 0o644); err != nil {
					t.Fatalf("setup write: %v", err)
				}
			}

			l := Load(path, testBaseline, nil)
			if got := l.Ports(); !reflect.DeepEqual(got, tc.wantPorts) {
				t.Errorf("Load() ports = %v, want %v", got, tc.wantPorts)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ports.json")

	l := New(testBaseline)
	l.Append(3011)
	l.Append(3012)
	if err := l.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got := Load(path, testBaseline, nil)
	want := []int{3010, 3011, 3012}
	if !reflect.DeepEqual(got.Ports(), want) {
		t.Errorf("round trip ports = %v, want %v", got.Ports(), want)
	}
}

func TestSaveWriteFailure(t *testing.T) {
	t.Parallel()

	// A non-empty directory at the ledger path makes the rename fail.
	base := t.TempDir()
	path := filepath.Join(base, "ports.json")
	if err := os.MkdirAll(filepath.Join(path, "child"), 0o755); err != nil {
		t.Fatalf("setup mkdir: %v", err)
	}

	l := New(testBaseline)
	if err := l.Save(path); err == nil {
		t.Error("Save() onto directory succeeded, want error")
	}
}

func TestMax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		ports []int
		want  int
	}{
		"single entry":       {ports: []int{3010}, want: 3010},
		"ascending":          {ports: []int{3010, 3011, 3012}, want: 3012},
		"max not last":       {ports: []int{3010, 3050, 3011}, want: 3050},
		"duplicates present": {ports: []int{3010, 3010}, want: 3010},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := &Ledger{ports: tc.ports}
			if got := l.Max(); got != tc.want {
				t.Errorf("Max() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestResetIfOver(t *testing.T) {
	t.Parallel()

	t.Run("below capacity keeps history", func(t *testing.T) {
		t.Parallel()

		l := New(testBaseline)
		l.Append(3011)

		if l.ResetIfOver(100, testBaseline) {
			t.Error("ResetIfOver() = true below capacity, want false")
		}
		if l.Len() != 2 {
			t.Errorf("Len() = %d, want 2", l.Len())
		}
	})

	t.Run("exactly at capacity keeps history", func(t *testing.T) {
		t.Parallel()

		l := New(testBaseline)
		for i := 1; i < 100; i++ {
			l.Append(testBaseline + i)
		}

		if l.ResetIfOver(100, testBaseline) {
			t.Error("ResetIfOver() = true at capacity, want false")
		}
		if l.Len() != 100 {
			t.Errorf("Len() = %d, want 100", l.Len())
		}
	})

	t.Run("over capacity resets to baseline", func(t *testing.T) {
		t.Parallel()

		l := New(testBaseline)
		for i := 1; i <= 100; i++ {
			l.Append(testBaseline + i)
		}

		if !l.ResetIfOver(100, testBaseline) {
			t.Fatal("ResetIfOver() = false over capacity, want true")
		}
		if got := l.Ports(); !reflect.DeepEqual(got, []int{testBaseline}) {
			t.Errorf("ports after reset = %v, want [%d]", got, testBaseline)
		}
	})
}

func TestPortsReturnsCopy(t *testing.T) {
	t.Parallel()

	l := New(testBaseline)
	got := l.Ports()
	got[0] = 9999

	if l.Ports()[0] != testBaseline {
		t.Error("mutating the returned slice affected internal state")
	}
}

func ptr(s string) *string {
	return &s
}
