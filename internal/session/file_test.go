package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/itson-folio/folio/pkg/models"
)

func TestFileBackend_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := NewStore(NewFileBackend(dir), nil)
	if err := first.SaveToken("abc"); err != nil {
		t.Fatalf("SaveToken error: %v", err)
	}
	if err := first.SaveUser(models.User{"id": "u1", "name": "Ana"}); err != nil {
		t.Fatalf("SaveUser error: %v", err)
	}

	second := NewStore(NewFileBackend(dir), nil)
	if got := second.Token(); got != "abc" {
		t.Errorf("Token() = %q, want %q", got, "abc")
	}
	if got := second.User().String("name"); got != "Ana" {
		t.Errorf("User name = %q, want %q", got, "Ana")
	}
}

func TestFileBackend_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	t.Parallel()

	dir := t.TempDir()
	b := NewFileBackend(dir)
	if err := b.Set(TokenKey, "abc"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	info, err := os.Stat(b.Path())
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestFileBackend_MissingFile(t *testing.T) {
	t.Parallel()

	b := NewFileBackend(filepath.Join(t.TempDir(), "nested"))
	v, ok, err := b.Get(TokenKey)
	if err != nil {
		t.Fatalf("Get on missing file error: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get on missing file = (%q, %v), want absent", v, ok)
	}
	if err := b.Delete(TokenKey); err != nil {
		t.Errorf("Delete on missing file error: %v", err)
	}
	if _, err := os.Stat(b.Path()); !os.IsNotExist(err) {
		t.Error("Delete on missing file should not create it")
	}
}

func TestFileBackend_CorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := NewFileBackend(dir)
	if err := os.WriteFile(b.Path(), []byte("not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, _, err := b.Get(TokenKey); err == nil {
		t.Error("Get on corrupt file should return an error")
	}

	s := NewStore(b, nil)
	if got := s.Token(); got != "" {
		t.Errorf("Token() on corrupt file = %q, want empty", got)
	}

	if err := s.SaveToken("fresh"); err != nil {
		t.Fatalf("SaveToken over corrupt file error: %v", err)
	}
	if got := s.Token(); got != "fresh" {
		t.Errorf("Token() after rewrite = %q, want %q", got, "fresh")
	}
}
