package goSSO

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LicenseMap maps consumer keys to consumer secrets. The map is loaded once
// at startup and never mutated at runtime; rotation means restarting with a
// new file.
type LicenseMap map[string]string

type licenseFile struct {
	Licenses map[string]string `yaml:"licenses"`
}

// LoadLicenses reads a YAML license file of the form:
//
//	licenses:
//	  your_software_key: your_software_secret
func LoadLicenses(path string) (LicenseMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read license file: %w", err)
	}

	var f licenseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse license file %s: %w", path, err)
	}
	if len(f.Licenses) == 0 {
		return nil, fmt.Errorf("license file %s contains no licenses", path)
	}
	return LicenseMap(f.Licenses), nil
}
