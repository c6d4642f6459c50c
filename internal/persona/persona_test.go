// internal/persona/persona_test.go
package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Archetype
		wantErr bool
	}{
		{
			name:  "known archetype",
			input: "progressive-globalist",
			want:  ProgressiveGlobalist,
		},
		{
			name:  "conservative nationalist",
			input: "conservative-nationalist",
			want:  ConservativeNationalist,
		},
		{
			name:    "unknown value",
			input:   "centrist-pragmatist",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "case sensitive",
			input:   "Progressive-Globalist",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPersona)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 8)

	seen := make(map[Archetype]bool)
	for _, a := range all {
		assert.False(t, seen[a], "duplicate archetype %s", a)
		seen[a] = true
		assert.NotEmpty(t, a.Description(), "missing description for %s", a)
	}
}

func TestConfigFor(t *testing.T) {
	for _, a := range All() {
		cfg := ConfigFor(a)
		assert.NotEmpty(t, cfg.Leadership.PreferredLeanings, "persona %s has no preferred leanings", a)
		assert.Greater(t, cfg.Sustainability.EnvironmentalWeight+cfg.Sustainability.SocialWeight+cfg.Sustainability.GovernanceWeight, 0.0)
	}

	pg := ConfigFor(ProgressiveGlobalist)
	assert.Equal(t, 0.9, pg.Donations.PartyPreference)
	assert.True(t, pg.Sustainability.PreferHigh)

	cn := ConfigFor(ConservativeNationalist)
	assert.Equal(t, -0.9, cn.Donations.PartyPreference)
	assert.False(t, cn.Sustainability.PreferHigh)
}

func TestAxisHelpers(t *testing.T) {
	assert.True(t, ProgressiveGlobalist.IsGlobalist())
	assert.False(t, ProgressiveGlobalist.IsNationalist())

	// socialist-libertarian sits on neither volume axis
	assert.False(t, SocialistLibertarian.IsGlobalist())
	assert.False(t, SocialistLibertarian.IsNationalist())

	assert.True(t, SocialistNationalist.IsNationalist())
	assert.True(t, SocialistNationalist.IsSocialist())
	assert.True(t, ConservativeNationalist.IsConservative())
	assert.True(t, ProgressiveNationalist.IsProgressive())
}

func TestValidateConfigs(t *testing.T) {
	require.NoError(t, ValidateConfigs())
}
