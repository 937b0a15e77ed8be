// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a Wiktionary page into phonological records.
// It addresses the page through the anchor primitives of package scan:
// the Chinese language section, its Pronunciation sub-sections, and the
// tables and embedded template data inside each of them.
package extract

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pdiddy/wangyun/internal/scan"
	"github.com/pdiddy/wangyun/pkg/types"
)

const (
	languageName        = "Chinese"
	pronunciationPrefix = "Pronunciation"
)

// Options selects which parts of each pronunciation block to extract.
type Options struct {
	Middle bool
	Old    bool

	// Modern lists the variants to keep; an empty set skips modern data.
	Modern types.VariantSet
}

// Extractor holds the pattern registry shared by every extraction.
type Extractor struct {
	patterns *Patterns
	logger   *slog.Logger
}

// New returns an Extractor using p. A nil logger discards log output.
func New(p *Patterns, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{patterns: p, logger: logger}
}

// ChineseSection returns the body of the "Chinese" language section. Every
// page looked up by this tool must have one; its absence is a format error.
func (x *Extractor) ChineseSection(page string) (string, error) {
	span, err := scan.First(page, x.patterns.LanguageHeading, languageName)
	if err != nil {
		return "", err
	}
	return span.Of(page), nil
}

// PronunciationBlocks returns every sub-section of section whose heading
// starts with "Pronunciation", in document order.
func (x *Extractor) PronunciationBlocks(section string) []string {
	spans := scan.SplitNamed(section, x.patterns.SectionHeading, func(name string) bool {
		return strings.HasPrefix(name, pronunciationPrefix)
	})
	blocks := make([]string, len(spans))
	for i, s := range spans {
		blocks[i] = s.Of(section)
	}
	return blocks
}

// Character extracts the requested data for char from its page. Any format
// or decode error aborts the whole character.
func (x *Extractor) Character(char, page string, opts Options) (types.Character, error) {
	result := types.Character{Char: char}

	section, err := x.ChineseSection(page)
	if err != nil {
		return result, err
	}

	blocks := x.PronunciationBlocks(section)
	if len(blocks) == 0 {
		x.logger.Warn("no pronunciation sections under Chinese heading", "char", char)
	}

	for i, block := range blocks {
		pron, err := x.Pronunciation(block, opts)
		if err != nil {
			return result, scan.Within(pronunciationPrefix+" "+strconv.Itoa(i+1), err)
		}
		pron.Index = i + 1
		result.Pronunciations = append(result.Pronunciations, pron)
	}
	x.logger.Debug("extracted character", "char", char, "blocks", len(blocks))
	return result, nil
}

// Pronunciation extracts the requested data from one block.
func (x *Extractor) Pronunciation(block string, opts Options) (types.Pronunciation, error) {
	var pron types.Pronunciation
	var err error

	if opts.Middle {
		if pron.Middle, err = x.Middle(block); err != nil {
			return pron, err
		}
	}

	if opts.Old {
		for _, system := range types.OldSystems {
			readings, err := x.Old(block, system)
			if err != nil {
				return pron, err
			}
			if len(readings) == 0 {
				continue
			}
			if pron.Old == nil {
				pron.Old = make(map[types.OldSystem][]types.OldReading)
			}
			pron.Old[system] = readings
		}
	}

	if len(opts.Modern) > 0 {
		table, err := x.Modern(block)
		if err != nil {
			return pron, err
		}
		pron.Modern = table.Select(opts.Modern)
	}
	return pron, nil
}
