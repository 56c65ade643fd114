package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	return tmpDir
}

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := chdirTemp(t)

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}

	if filepath.Base(got) != "ratna.log" {
		t.Fatalf("default filename want ratna.log got %s", filepath.Base(got))
	}
	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("resolve tmp dir symlink failed: %v", err)
	}
	realGotDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve log dir symlink failed: %v", err)
	}
	if realGotDir != filepath.Join(realTmpDir, defaultLogDirName) {
		t.Fatalf("log dir want %s got %s", filepath.Join(realTmpDir, defaultLogDirName), realGotDir)
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Fatalf("log dir should exist after resolve: %v", err)
	}
}

func TestReleaseModeWritesRotatedFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "orders.log"})

	log.Sugar().Infow("order_created", "order_no", "RTN20250101000001")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "orders.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if !strings.Contains(string(content), "RTN20250101000001") {
		t.Fatalf("log file should carry the order_no field, got %s", string(content))
	}
}

func TestDebugModeStaysOnConsole(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})

	log.Info("otp_issued")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode must not create a log file")
	}
}
