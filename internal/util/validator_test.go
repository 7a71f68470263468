package util

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"alice", "bob_smith", "j.doe", "it-admin"} {
		if err := ValidateUsername(ok); err != nil {
			t.Errorf("ValidateUsername(%q) error = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"", "ab", "has space", "semi;colon", strings.Repeat("x", 65)} {
		if err := ValidateUsername(bad); err == nil {
			t.Errorf("ValidateUsername(%q) error = nil, want error", bad)
		}
	}
}

func TestValidateAssetTagPrefix(t *testing.T) {
	for _, ok := range []string{"", "LAP", "LAP-2023", "N3T"} {
		if err := ValidateAssetTagPrefix(ok); err != nil {
			t.Errorf("ValidateAssetTagPrefix(%q) error = %v, want nil", ok, err)
		}
	}
	for _, bad := range []string{"-LAP", "LAP-", "LA P", "LAP_1", strings.Repeat("A", 33)} {
		if err := ValidateAssetTagPrefix(bad); err == nil {
			t.Errorf("ValidateAssetTagPrefix(%q) error = nil, want error", bad)
		}
	}
}

func TestValidateAssetTag(t *testing.T) {
	if err := ValidateAssetTag("LAP-0001"); err != nil {
		t.Errorf("ValidateAssetTag error = %v, want nil", err)
	}
	for _, bad := range []string{"", "LAP 0001", strings.Repeat("T", 65)} {
		if err := ValidateAssetTag(bad); err == nil {
			t.Errorf("ValidateAssetTag(%q) error = nil, want error", bad)
		}
	}
}
