// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Tone is the Middle Chinese tone category.
type Tone int

const (
	ToneUnknown Tone = iota
	TonePing
	ToneShang
	ToneQu
	ToneRu
)

var toneNames = [...]string{"〇", "平", "上", "去", "入"}

// String returns the traditional tone name (平, 上, 去, 入).
func (t Tone) String() string {
	if t < ToneUnknown || int(t) >= len(toneNames) {
		return toneNames[ToneUnknown]
	}
	return toneNames[t]
}

// MarshalText renders the tone by name so JSON and YAML output stay readable.
func (t Tone) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MiddleReading is one Middle Chinese reading of a character within a
// pronunciation block. Every field except Reading may be empty when the
// corresponding row is missing from the source table.
type MiddleReading struct {
	// Reading is the reading identifier as written in the table (e.g. "1").
	Reading string `json:"reading" yaml:"reading"`

	// Initial is the initial (聲母) of the syllable.
	Initial string `json:"initial,omitempty" yaml:"initial,omitempty"`

	// Final is the final (韻) of the syllable.
	Final string `json:"final,omitempty" yaml:"final,omitempty"`

	Tone Tone `json:"tone" yaml:"tone"`

	// Open is true for open (開) syllables and false for closed (合) ones.
	Open bool `json:"open" yaml:"open"`

	// Division is the rime division 1-4, or 0 when unknown.
	Division int `json:"division" yaml:"division"`

	// Fanqie is the two spelling characters followed by 切.
	Fanqie string `json:"fanqie,omitempty" yaml:"fanqie,omitempty"`

	// Baxter is the Baxter (2011) transcription.
	Baxter string `json:"baxter,omitempty" yaml:"baxter,omitempty"`

	ExpectedMandarin  string `json:"expected_mandarin,omitempty" yaml:"expected_mandarin,omitempty"`
	ExpectedCantonese string `json:"expected_cantonese,omitempty" yaml:"expected_cantonese,omitempty"`
}

// OldSystem identifies an Old Chinese reconstruction system.
type OldSystem string

const (
	OldBaxterSagart OldSystem = "baxter-sagart"
	OldZhengzhang   OldSystem = "zhengzhang"
)

// OldSystems lists the supported reconstruction systems in display order.
var OldSystems = []OldSystem{OldBaxterSagart, OldZhengzhang}

// Label returns the human-readable system name.
func (s OldSystem) Label() string {
	switch s {
	case OldBaxterSagart:
		return "Baxter-Sagart"
	case OldZhengzhang:
		return "Zhengzhang"
	}
	return string(s)
}

// OldReading is one Old Chinese reconstruction of a reading.
type OldReading struct {
	Reading        string `json:"reading" yaml:"reading"`
	Reconstruction string `json:"reconstruction,omitempty" yaml:"reconstruction,omitempty"`
}

// Pronunciation holds everything extracted from one Pronunciation block.
// Sections that were not requested stay nil.
type Pronunciation struct {
	// Index is the 1-based position of the block under the Chinese heading.
	Index int `json:"index" yaml:"index"`

	Middle []MiddleReading            `json:"middle,omitempty" yaml:"middle,omitempty"`
	Old    map[OldSystem][]OldReading `json:"old,omitempty" yaml:"old,omitempty"`
	Modern ModernTable                `json:"modern,omitempty" yaml:"modern,omitempty"`
}

// Character is the extraction result for a single looked-up character.
type Character struct {
	Char           string          `json:"char" yaml:"char"`
	Pronunciations []Pronunciation `json:"pronunciations" yaml:"pronunciations"`
}

// BaxterList returns the Baxter transcriptions of every Middle Chinese
// reading across all pronunciation blocks, first occurrence wins.
func (c Character) BaxterList() []string {
	seen := make(map[string]bool)
	var list []string
	for _, p := range c.Pronunciations {
		for _, r := range p.Middle {
			if seen[r.Baxter] {
				continue
			}
			seen[r.Baxter] = true
			list = append(list, r.Baxter)
		}
	}
	return list
}
