// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes extracted characters for humans (text) or for
// other programs (JSON, YAML), plus the one-line Baxter summary.
package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wangyun/pkg/types"
)

// ANSI styles used by text output.
const (
	styleCharacter     = "\x1b[31;1m"
	stylePronunciation = "\x1b[32;1m"
	styleHeading       = "\x1b[33;1m"
	styleValue         = "\x1b[34;1m"
	styleReset         = "\x1b[0m"
)

// Options controls what text output shows.
type Options struct {
	Color  bool
	Middle bool
	Old    bool

	// Modern is the selected variant set; empty hides the modern section.
	Modern types.VariantSet
}

// Write renders chars in the given format.
func Write(w io.Writer, format types.OutputFormat, chars []types.Character, opts Options) error {
	switch format {
	case types.OutputText, "":
		return Text(w, chars, opts)
	case types.OutputJSON:
		return JSON(w, chars)
	case types.OutputYAML:
		return YAML(w, chars)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// JSON writes chars as an indented JSON array.
func JSON(w io.Writer, chars []types.Character) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(chars)
}

// YAML writes chars as a YAML sequence.
func YAML(w io.Writer, chars []types.Character) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(chars)
}

// BaxterFailed marks the field of a character whose lookup failed.
const BaxterFailed = "?"

// Baxter writes one line holding, for each character, its distinct Baxter
// transcriptions joined by '|', or "[]" when it has none. A nil entry is
// written as BaxterFailed. Characters are separated by a space.
func Baxter(w io.Writer, chars []*types.Character) error {
	fields := make([]string, len(chars))
	for i, c := range chars {
		if c == nil {
			fields[i] = BaxterFailed
			continue
		}
		list := c.BaxterList()
		if len(list) == 0 {
			fields[i] = "[]"
			continue
		}
		fields[i] = strings.Join(list, "|")
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, " "))
	return err
}

// Text writes the human-readable display: one block per character, one
// sub-block per pronunciation.
func Text(w io.Writer, chars []types.Character, opts Options) error {
	bw := bufio.NewWriter(w)
	p := painter{color: opts.Color}

	for i, c := range chars {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw, p.paint(styleCharacter, "Character: "+c.Char))

		for _, pron := range c.Pronunciations {
			fmt.Fprintln(bw, p.paint(stylePronunciation, fmt.Sprintf("Pronunciation %d:", pron.Index)))
			if opts.Middle {
				writeMiddle(bw, p, pron.Middle)
			}
			if opts.Old {
				writeOld(bw, p, pron.Old)
			}
			if len(opts.Modern) > 0 {
				writeModern(bw, p, pron.Modern)
			}
		}
	}
	return bw.Flush()
}

func writeMiddle(w io.Writer, p painter, readings []types.MiddleReading) {
	for _, r := range readings {
		fmt.Fprintf(w, "\t%s\n", p.paint(styleHeading, "Middle Chinese (Reading "+r.Reading+"):"))
		fmt.Fprintf(w, "\t\tRime: %s\n", Rime(r))
		fmt.Fprintf(w, "\t\tFanqie: %s\n", r.Fanqie)
		fmt.Fprintf(w, "\t\tBaxter: %s\n", p.paint(styleValue, r.Baxter))
		fmt.Fprintf(w, "\t\tExpected Mandarin Reflex: %s\n", r.ExpectedMandarin)
		fmt.Fprintf(w, "\t\tExpected Cantonese Reflex: %s\n", r.ExpectedCantonese)
	}
}

func writeOld(w io.Writer, p painter, old map[types.OldSystem][]types.OldReading) {
	for _, system := range types.OldSystems {
		readings := old[system]
		if len(readings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\t%s\n", p.paint(styleHeading, "Old Chinese ("+system.Label()+"):"))
		for _, r := range readings {
			fmt.Fprintf(w, "\t\tReading %s: %s\n", r.Reading, p.paint(styleValue, r.Reconstruction))
		}
	}
}

func writeModern(w io.Writer, p painter, table types.ModernTable) {
	fmt.Fprintf(w, "\t%s\n", p.paint(styleHeading, "Modern Pronunciations:"))
	for _, v := range types.Variants {
		if s, ok := table.Get(v); ok {
			fmt.Fprintf(w, "\t\t%s: %s\n", v.Label(), s)
		}
	}
}

var divisionNames = [...]string{"〇", "一", "二", "三", "四"}

// Rime concatenates initial, final, tone, openness (開/合) and division
// (一 to 四, 〇 when unknown) into the conventional phonological position.
func Rime(r types.MiddleReading) string {
	openness := "合"
	if r.Open {
		openness = "開"
	}
	division := divisionNames[0]
	if r.Division > 0 && r.Division < len(divisionNames) {
		division = divisionNames[r.Division]
	}
	return r.Initial + r.Final + r.Tone.String() + openness + division
}

type painter struct{ color bool }

func (p painter) paint(style, s string) string {
	if !p.color {
		return s
	}
	return style + s + styleReset
}
