package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vsxtools/vsce/internal/gallery"
)

func TestDecide(t *testing.T) {
	withVersions := func(vs ...string) *gallery.PublishedExtension {
		ext := &gallery.PublishedExtension{}
		for _, v := range vs {
			ext.Versions = append(ext.Versions, gallery.ExtensionVersion{Version: v})
		}
		return ext
	}

	tests := []struct {
		name     string
		existing *gallery.PublishedExtension
		want     Decision
	}{
		{"never published", nil, DecisionCreate},
		{"no versions", withVersions(), DecisionUpdate},
		{"older versions", withVersions("1.0.0", "1.2.2"), DecisionUpdate},
		{"same version", withVersions("1.0.0", "1.2.3"), DecisionRejectDuplicate},
		{"prefix is not equal", withVersions("1.2.3-beta"), DecisionUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.existing, "1.2.3")
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "create", DecisionCreate.String())
	assert.Equal(t, "update", DecisionUpdate.String())
	assert.Equal(t, "reject-duplicate", DecisionRejectDuplicate.String())
	assert.Equal(t, "Decision(7)", Decision(7).String())
}
