// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/pdiddy/wangyun/internal/scan"
	"github.com/pdiddy/wangyun/pkg/types"
)

const modernScope = "modern pronunciations"

// modernSource binds a zh-pron template parameter to a variant. When sep is
// non-zero the value lists alternate romanizations and is simplified with
// SimplifyRomanizations.
type modernSource struct {
	param   string
	variant types.Variant
	sep     rune
}

var modernSources = []modernSource{
	{param: "m", variant: types.MandarinStandard},
	{param: "m-s", variant: types.MandarinChengdu},
	{param: "m-x", variant: types.MandarinXian},
	{param: "m-nj", variant: types.MandarinNanjing},
	{param: "dg", variant: types.MandarinDungan},
	{param: "c", variant: types.CantoneseGuangzhou},
	{param: "c-dg", variant: types.CantoneseDongguan},
	{param: "c-t", variant: types.CantoneseTaishan},
	{param: "c-yj", variant: types.CantoneseYangjiang},
	{param: "g", variant: types.Gan},
	{param: "j", variant: types.Jin},
	{param: "mb", variant: types.MinNorthern},
	{param: "md", variant: types.MinEastern},
	{param: "px", variant: types.MinPuxian, sep: '/'},
	{param: "mn", variant: types.MinHokkien, sep: '/'},
	{param: "mn-t", variant: types.MinTeochew},
	{param: "mn-l", variant: types.MinLeizhou},
	{param: "sp", variant: types.PinghuaSouthern},
	{param: "w", variant: types.WuNorthern, sep: ';'},
	{param: "w-j", variant: types.WuJinhua},
	{param: "x", variant: types.XiangChangsha},
	{param: "x-l", variant: types.XiangLoudi},
	{param: "x-h", variant: types.XiangHengyang},
}

// The Hakka parameter packs several named readings: "pfs=h:...;gd=...".
const (
	hakkaParam         = "h"
	hakkaLiteralPrefix = "h:"
)

var hakkaFields = map[string]types.Variant{
	"pfs": types.HakkaSixian,
	"hrs": types.HakkaHailu,
	"gd":  types.HakkaMeixian,
	"ct":  types.HakkaChangting,
}

// zhPronData is the data-mw attribute of a transcluded zh-pron template.
// Parts may mix template objects and plain wikitext strings.
type zhPronData struct {
	Parts []json.RawMessage `json:"parts"`
}

type zhPronPart struct {
	Template *struct {
		Params map[string]struct {
			WT string `json:"wt"`
		} `json:"params"`
	} `json:"template"`
}

// Modern decodes the modern pronunciation table embedded in a block. The
// blob is found with one block-wide match; a block without it, or a blob
// without template parameters, yields an empty table.
func (x *Extractor) Modern(block string) (types.ModernTable, error) {
	table := make(types.ModernTable)

	m := x.patterns.ModernData.FindStringSubmatch(block)
	if m == nil {
		return table, nil
	}
	params, err := templateParams(html.UnescapeString(m[1]))
	if err != nil {
		return nil, scan.Within(modernScope, err)
	}

	for _, src := range modernSources {
		v, ok := params[src.param]
		if !ok || v == "" {
			continue
		}
		if src.sep != 0 {
			v = SimplifyRomanizations(v, src.sep)
		}
		table[src.variant] = v
	}
	if h, ok := params[hakkaParam]; ok {
		for variant, v := range ParseHakka(h) {
			table[variant] = v
		}
	}
	return table, nil
}

// templateParams walks parts[0].template.params and returns each
// parameter's wikitext.
func templateParams(blob string) (map[string]string, error) {
	var data zhPronData
	if err := json.Unmarshal([]byte(blob), &data); err != nil {
		return nil, scan.Formatf("", "invalid embedded JSON: %v", err)
	}
	if len(data.Parts) == 0 || !strings.HasPrefix(strings.TrimSpace(string(data.Parts[0])), "{") {
		return nil, nil
	}
	var part zhPronPart
	if err := json.Unmarshal(data.Parts[0], &part); err != nil {
		return nil, scan.Formatf("", "invalid template part: %v", err)
	}
	if part.Template == nil {
		return nil, nil
	}
	params := make(map[string]string, len(part.Template.Params))
	for k, p := range part.Template.Params {
		params[k] = p.WT
	}
	return params, nil
}

// ParseHakka splits a composite Hakka value on ';' and each piece on '='
// into a named reading, dropping the "h:" literal marker. Unknown names
// are ignored.
func ParseHakka(s string) map[types.Variant]string {
	out := make(map[types.Variant]string)
	for _, piece := range strings.Split(s, ";") {
		kv := strings.Split(piece, "=")
		if len(kv) < 2 {
			continue
		}
		variant, ok := hakkaFields[kv[0]]
		if !ok {
			continue
		}
		out[variant] = strings.TrimPrefix(kv[1], hakkaLiteralPrefix)
	}
	return out
}

// SimplifyRomanizations reduces a list of annotated alternatives such as
// "xm,qz:tong/km:tang" to "tong/tang": each sep-delimited piece keeps the
// text after its first ':' (or the whole piece), and pieces are rejoined
// with '/'.
func SimplifyRomanizations(s string, sep rune) string {
	pieces := strings.Split(s, string(sep))
	kept := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		parts := strings.Split(piece, ":")
		if len(parts) > 1 {
			kept = append(kept, parts[1])
		} else {
			kept = append(kept, parts[0])
		}
	}
	return strings.Join(kept, "/")
}
