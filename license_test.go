package goSSO

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLicenseFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "licenses.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write license file: %v", err)
	}
	return path
}

func TestLoadLicenses(t *testing.T) {
	path := writeLicenseFile(t, `
licenses:
  acme_forum: s3cr3t-acme
  beta_app: another-secret
`)
	licenses, err := LoadLicenses(path)
	if err != nil {
		t.Fatalf("load licenses: %v", err)
	}
	if len(licenses) != 2 {
		t.Fatalf("loaded %d licenses, want 2", len(licenses))
	}
	if licenses["acme_forum"] != "s3cr3t-acme" {
		t.Fatalf("acme_forum secret %q", licenses["acme_forum"])
	}
}

func TestLoadLicensesErrors(t *testing.T) {
	if _, err := LoadLicenses(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file loaded")
	}

	empty := writeLicenseFile(t, "licenses: {}\n")
	if _, err := LoadLicenses(empty); err == nil {
		t.Fatal("empty license map loaded")
	}

	malformed := writeLicenseFile(t, "licenses: [not, a, map]\n")
	if _, err := LoadLicenses(malformed); err == nil {
		t.Fatal("malformed file loaded")
	}
}
