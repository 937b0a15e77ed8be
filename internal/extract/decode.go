// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/wangyun/internal/scan"
	"github.com/pdiddy/wangyun/pkg/types"
)

// fanqieSuffix follows the two spelling characters of a fanqie.
const fanqieSuffix = "切"

// superscriptMarkers are removed from expected Cantonese reflexes, which
// write tone numbers as superscripts.
var superscriptMarkers = strings.NewReplacer("<sup>", "", "</sup>", "")

// DecodeTone maps the English tone name used in the table to its category.
func DecodeTone(s string) (types.Tone, error) {
	switch s {
	case "Level":
		return types.TonePing, nil
	case "Rising":
		return types.ToneShang, nil
	case "Departing":
		return types.ToneQu, nil
	case "Checked":
		return types.ToneRu, nil
	}
	return types.ToneUnknown, scan.Decodef("", "invalid tone %q", s)
}

// DecodeOpenness reports true for "Open" and false for "Closed".
func DecodeOpenness(s string) (bool, error) {
	switch s {
	case "Open":
		return true, nil
	case "Closed":
		return false, nil
	}
	return false, scan.Decodef("", "invalid openness %q", s)
}

// DecodeDivision converts the Roman numerals I-IV to 1-4.
func DecodeDivision(s string) (int, error) {
	switch s {
	case "I":
		return 1, nil
	case "II":
		return 2, nil
	case "III":
		return 3, nil
	case "IV":
		return 4, nil
	}
	return 0, scan.Decodef("", "invalid division %q", s)
}

// Fanqie joins the two spelling characters and appends 切.
func Fanqie(upper, lower string) string {
	var b strings.Builder
	b.Grow(len(upper) + len(lower) + len(fanqieSuffix))
	b.WriteString(upper)
	b.WriteString(lower)
	b.WriteString(fanqieSuffix)
	return b.String()
}

// StripSuperscript removes literal <sup> and </sup> markers.
func StripSuperscript(s string) string {
	return superscriptMarkers.Replace(s)
}
