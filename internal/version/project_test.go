package version

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
}

func TestMinRequired(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name: "plain_minimum",
			files: map[string]string{
				"/proj/main.tf": "terraform {\n  required_version = \">= 1.2.0\"\n}\n",
			},
			want: "1.2.0",
		},
		{
			name: "pessimistic_two_components_padded",
			files: map[string]string{
				"/proj/versions.tf": "terraform {\n  required_version = \"~> 1.2\"\n}\n",
			},
			want: "1.2.0",
		},
		{
			name: "exclusion_names_no_minimum",
			files: map[string]string{
				"/proj/main.tf": "terraform {\n  required_version = \"!= 1.5.0\"\n}\n",
			},
			want: "",
		},
		{
			name: "prerelease_suffix_kept",
			files: map[string]string{
				"/proj/main.tf": "terraform {\n  required_version = \">= 1.6.0-alpha1\"\n}\n",
			},
			want: "1.6.0-alpha1",
		},
		{
			name: "padding_keeps_prerelease_suffix",
			files: map[string]string{
				"/proj/main.tf": "terraform {\n  required_version = \"= 1.2-beta1\"\n}\n",
			},
			want: "1.2.0-beta1",
		},
		{
			name: "commented_declaration_ignored",
			files: map[string]string{
				"/proj/main.tf": "# required_version = \">= 9.9.9\"\n",
			},
			want: "",
		},
		{
			name: "tf_json_extension_scanned",
			files: map[string]string{
				"/proj/versions.tf.json": "required_version = \">= 1.4.0\"\n",
			},
			want: "1.4.0",
		},
		{
			name: "other_extensions_ignored",
			files: map[string]string{
				"/proj/README.md": "required_version = \">= 9.9.9\"\n",
			},
			want: "",
		},
		{
			name:  "no_files",
			files: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			for path, content := range tt.files {
				writeProjectFile(t, fsys, path, content)
			}
			got, err := MinRequired(fsys, "/proj")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLatestAllowedConstraint(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		want      Constraint
		wantFound bool
	}{
		{
			name:      "greater_equal_maps_to_latest",
			spec:      ">= 1.2.0",
			want:      Constraint{Kind: KindLatest},
			wantFound: true,
		},
		{
			name:      "greater_maps_to_latest",
			spec:      "> 1.0.0",
			want:      Constraint{Kind: KindLatest},
			wantFound: true,
		},
		{
			name:      "less_equal_pins_bound",
			spec:      "<= 1.2.3",
			want:      Constraint{Kind: KindExact, Version: "1.2.3"},
			wantFound: true,
		},
		{
			name:      "less_pins_bound",
			spec:      "< 1.2.3",
			want:      Constraint{Kind: KindExact, Version: "1.2.3"},
			wantFound: true,
		},
		{
			name:      "pessimistic_patch_keeps_minor_series",
			spec:      "~> 1.2.3",
			want:      Constraint{Kind: KindLatestMatching, Pattern: `^1\.2\.`},
			wantFound: true,
		},
		{
			name:      "pessimistic_minor_keeps_major_series",
			spec:      "~> 1.2",
			want:      Constraint{Kind: KindLatestMatching, Pattern: `^1\.`},
			wantFound: true,
		},
		{
			name:      "pessimistic_major_has_no_prefix",
			spec:      "~> 1",
			wantFound: false,
		},
		{
			name:      "plain_pin_does_not_map",
			spec:      "= 1.5.0",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			content := "terraform {\n  required_version = \"" + tt.spec + "\"\n}\n"
			writeProjectFile(t, fsys, "/proj/main.tf", content)

			got, found, err := LatestAllowedConstraint(fsys, "/proj")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLatestAllowedConstraintNoFiles(t *testing.T) {
	_, found, err := LatestAllowedConstraint(afero.NewMemMapFs(), "/proj")
	require.NoError(t, err)
	assert.False(t, found)
}
