package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/habitline/habitline/internal/constants"
)

func TestCreateAndList(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "habitline.json")
	if err := os.WriteFile(storePath, []byte(`{"tasks":[],"logs":[]}`), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}

	mgr := NewManager(storePath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("backup not readable: %v", err)
	}
	if string(data) != `{"tasks":[],"logs":[]}` {
		t.Errorf("backup content mismatch: %s", data)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Path != path {
		t.Errorf("listed path %s, want %s", backups[0].Path, path)
	}
}

func TestCreateMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected error for missing store file")
	}
}

func TestListEmpty(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "habitline.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotationCapsBackupCount(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "habitline.json")
	if err := os.WriteFile(storePath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}

	// Seed a full set of old backups with distinct timestamps.
	backupDir := filepath.Join(dir, constants.BackupDirName)
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < constants.MaxBackups; i++ {
		name := constants.BackupFilePrefix + base.Add(time.Duration(i)*time.Minute).Format("20060102-1504") + ".json"
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte(`{}`), 0600); err != nil {
			t.Fatal(err)
		}
	}

	mgr := NewManager(storePath)
	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Errorf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}

	// The oldest seeded backup must be the one rotated out.
	oldest := constants.BackupFilePrefix + base.Format("20060102-1504") + ".json"
	if _, err := os.Stat(filepath.Join(backupDir, oldest)); !os.IsNotExist(err) {
		t.Errorf("oldest backup %s survived rotation", oldest)
	}
}

func TestRepeatedCreatesStayUnique(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "habitline.json")
	if err := os.WriteFile(storePath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}

	mgr := NewManager(storePath)
	seen := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if _, dup := seen[path]; dup {
			t.Errorf("duplicate backup path %s", path)
		}
		seen[path] = struct{}{}
	}
}
