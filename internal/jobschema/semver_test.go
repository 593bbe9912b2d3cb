package jobschema

import "testing"

func TestIsValidSemver(t *testing.T) {
	valid := []string{"10.0.0", "11.2.0", "1.0.0-alpha", "1.0.0-alpha.1", "1.0.0+build.5", "0.0.1"}
	for _, v := range valid {
		if !IsValidSemver(v) {
			t.Errorf("expected %q to be a valid semver", v)
		}
	}

	invalid := []string{"Precise Pangolin", "1.0", "v1.0.0", "1.0.0.0", "", "01.0.0"}
	for _, v := range invalid {
		if IsValidSemver(v) {
			t.Errorf("expected %q to be rejected", v)
		}
	}
}
