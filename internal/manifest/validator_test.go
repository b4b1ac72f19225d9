package manifest

import (
	"path/filepath"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestValidateFile_Valid(t *testing.T) {
	result, err := ValidateFile(testPath("valid.json"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
		}
		t.Fatal("expected valid manifest")
	}
}

func TestValidateFile_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		desc    string
		keyword string
	}{
		{"missing-publisher.json", "publisher is required", "required"},
		{"bad-name.json", "name violates pattern", "pattern"},
		{"bad-version.json", "version is not semver", "semver"},
		{"bad-engine.json", "engines.vscode is not a range", "semver"},
		{"bad-kind.json", "unknown extension kind", "enum"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Fatalf("expected invalid for %s (%s), got valid", tt.file, tt.desc)
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Keyword == tt.keyword {
					found = true
				}
			}
			if !found {
				t.Errorf("no %q issue in %+v", tt.keyword, result.Issues)
			}
		})
	}
}

func TestValidateFile_Malformed(t *testing.T) {
	_, err := ValidateFile(testPath("malformed.json"))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidationResult_Error(t *testing.T) {
	r := &ValidationResult{Issues: []ValidationIssue{
		{Path: "/version", Message: "bad"},
		{Message: "missing property 'name'"},
	}}
	want := "invalid manifest: /version: bad; missing property 'name'"
	if got := r.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
