// internal/persona/archetype.go
package persona

import (
	"errors"
	"fmt"
)

// Archetype identifies one of the eight political persona profiles rankings
// are generated for. Values are stable identifiers used in cache keys and
// API payloads.
type Archetype string

const (
	ProgressiveGlobalist    Archetype = "progressive-globalist"
	ProgressiveNationalist  Archetype = "progressive-nationalist"
	SocialistLibertarian    Archetype = "socialist-libertarian"
	SocialistNationalist    Archetype = "socialist-nationalist"
	CapitalistGlobalist     Archetype = "capitalist-globalist"
	CapitalistNationalist   Archetype = "capitalist-nationalist"
	ConservativeGlobalist   Archetype = "conservative-globalist"
	ConservativeNationalist Archetype = "conservative-nationalist"
)

var ErrInvalidPersona = errors.New("INVALID_PERSONA")

// All returns the archetypes in ranking-generation order.
func All() []Archetype {
	return []Archetype{
		ProgressiveGlobalist,
		ProgressiveNationalist,
		SocialistLibertarian,
		SocialistNationalist,
		CapitalistGlobalist,
		CapitalistNationalist,
		ConservativeGlobalist,
		ConservativeNationalist,
	}
}

// Parse validates a raw string against the known archetypes.
func Parse(s string) (Archetype, error) {
	a := Archetype(s)
	if _, ok := configs[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidPersona, s)
	}
	return a, nil
}

func (a Archetype) String() string {
	return string(a)
}

// Description returns the values-profile line used when prompting the
// narrative scorer.
func (a Archetype) Description() string {
	return descriptions[a]
}

var descriptions = map[Archetype]string{
	ProgressiveGlobalist:    "Left-leaning economics, Progressive social values, Pro-international cooperation",
	ProgressiveNationalist:  "Left-leaning economics, Progressive social values, Domestic focus",
	SocialistLibertarian:    "Left economics, Traditional social values, International cooperation",
	SocialistNationalist:    "Left economics, Traditional social values, Strong nationalism",
	CapitalistGlobalist:     "Free market, Progressive social values, Global trade",
	CapitalistNationalist:   "Free market, Progressive social values, America First",
	ConservativeGlobalist:   "Free market, Traditional social values, International trade",
	ConservativeNationalist: "Free market, Traditional social values, Domestic priority",
}

// IsGlobalist reports whether the archetype carries the globalist axis.
func (a Archetype) IsGlobalist() bool {
	switch a {
	case ProgressiveGlobalist, CapitalistGlobalist, ConservativeGlobalist:
		return true
	}
	return false
}

// IsNationalist reports whether the archetype carries the nationalist axis.
func (a Archetype) IsNationalist() bool {
	switch a {
	case ProgressiveNationalist, SocialistNationalist, CapitalistNationalist, ConservativeNationalist:
		return true
	}
	return false
}

// IsProgressive reports whether the archetype sits on the progressive
// economic/social axis.
func (a Archetype) IsProgressive() bool {
	return a == ProgressiveGlobalist || a == ProgressiveNationalist
}

// IsSocialist reports whether the archetype sits on the socialist axis.
func (a Archetype) IsSocialist() bool {
	return a == SocialistLibertarian || a == SocialistNationalist
}

// IsConservative reports whether the archetype sits on the conservative axis.
func (a Archetype) IsConservative() bool {
	return a == ConservativeGlobalist || a == ConservativeNationalist
}
