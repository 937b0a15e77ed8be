// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
	"strings"
)

// Variant identifies one modern dialect and romanization. The value is the
// short code accepted on the command line.
type Variant string

const (
	MandarinStandard Variant = "ms"
	MandarinChengdu  Variant = "mc"
	MandarinXian     Variant = "mx"
	MandarinNanjing  Variant = "mn"
	MandarinDungan   Variant = "md"

	CantoneseGuangzhou Variant = "cg"
	CantoneseDongguan  Variant = "cd"
	CantoneseTaishan   Variant = "ct"
	CantoneseYangjiang Variant = "cy"

	Gan Variant = "gan"

	HakkaSixian    Variant = "hs"
	HakkaHailu     Variant = "hh"
	HakkaMeixian   Variant = "hm"
	HakkaChangting Variant = "hc"

	Jin Variant = "jin"

	MinNorthern Variant = "minn"
	MinEastern  Variant = "mine"
	MinPuxian   Variant = "minp"
	MinHokkien  Variant = "minh"
	MinTeochew  Variant = "mint"
	MinLeizhou  Variant = "minl"

	PinghuaSouthern Variant = "sp"

	WuNorthern Variant = "wn"
	WuJinhua   Variant = "wj"

	XiangChangsha Variant = "xc"
	XiangLoudi    Variant = "xl"
	XiangHengyang Variant = "xh"
)

// Variants lists every leaf variant in display order.
var Variants = []Variant{
	MandarinStandard, MandarinChengdu, MandarinXian, MandarinNanjing, MandarinDungan,
	CantoneseGuangzhou, CantoneseDongguan, CantoneseTaishan, CantoneseYangjiang,
	Gan,
	HakkaSixian, HakkaHailu, HakkaMeixian, HakkaChangting,
	Jin,
	MinNorthern, MinEastern, MinPuxian, MinHokkien, MinTeochew, MinLeizhou,
	PinghuaSouthern,
	WuNorthern, WuJinhua,
	XiangChangsha, XiangLoudi, XiangHengyang,
}

var variantLabels = map[Variant]string{
	MandarinStandard:   "Mandarin (Standard, Pinyin)",
	MandarinChengdu:    "Mandarin (Chengdu, Sichuanese Pinyin)",
	MandarinXian:       "Mandarin (Xi'an, Guanzhong Pinyin)",
	MandarinNanjing:    "Mandarin (Nanjing, Nanjing Pinyin)",
	MandarinDungan:     "Mandarin (Dungan, Cyrillic)",
	CantoneseGuangzhou: "Cantonese (Guangzhou-Hong Kong, Jyutping)",
	CantoneseDongguan:  "Cantonese (Dongguan, Jyutping++)",
	CantoneseTaishan:   "Cantonese (Taishan, Wiktionary)",
	CantoneseYangjiang: "Cantonese (Yangjiang, Jyutping++)",
	Gan:                "Gan (Wiktionary)",
	HakkaSixian:        "Hakka (Sixian, Pha̍k-fa-sṳ)",
	HakkaHailu:         "Hakka (Hailu, Taiwanese Hakka Romanization)",
	HakkaMeixian:       "Hakka (Meixian, Guangdong Romanization)",
	HakkaChangting:     "Hakka (Changting, Changting Pinyin)",
	Jin:                "Jin (Wiktionary)",
	MinNorthern:        "Northern Min (Gṳ̿ing-nǎing Lô̤-mǎ-cī)",
	MinEastern:         "Eastern Min (Bàng-uâ-cê)",
	MinPuxian:          "Puxian Min (Pouseng Ping'ing)",
	MinHokkien:         "Hokkien (Pe̍h-ōe-jī)",
	MinTeochew:         "Teochew (Peng'im)",
	MinLeizhou:         "Leizhou (Leizhou Pinyin)",
	PinghuaSouthern:    "Southern Pinghua (Jyutping++)",
	WuNorthern:         "Wu (Northern, Wugniu)",
	WuJinhua:           "Wu (Jinhua, Wugniu)",
	XiangChangsha:      "Xiang (Changsha, Wiktionary)",
	XiangLoudi:         "Xiang (Loudi, Wiktionary)",
	XiangHengyang:      "Xiang (Hengyang, Wiktionary)",
}

// Label returns the display name of the variant.
func (v Variant) Label() string {
	if l, ok := variantLabels[v]; ok {
		return l
	}
	return string(v)
}

// variantGroups maps group codes to their members. Members may themselves
// be groups; ParseVariants expands them recursively.
var variantGroups = map[string][]string{
	"all":   nil, // every leaf
	"man":   {"ms", "mc", "mx", "mn", "md"},
	"can":   {"cg", "cd", "ct", "cy"},
	"hak":   {"hs", "hh", "hm", "hc"},
	"min":   {"minn", "mine", "minp", "mins"},
	"mins":  {"minh", "mint", "minl"},
	"wu":    {"wn", "wj"},
	"xiang": {"xc", "xl", "xh"},
}

// VariantSet is the set of leaf variants requested for modern output.
type VariantSet map[Variant]struct{}

// Contains reports whether v was requested.
func (s VariantSet) Contains(v Variant) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in display order.
func (s VariantSet) Sorted() []Variant {
	out := make([]Variant, 0, len(s))
	for _, v := range Variants {
		if s.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// ParseVariants expands codes (leaf variants or group names such as "hak" or
// "all") into a set of leaf variants. Codes are case-insensitive.
func ParseVariants(codes []string) (VariantSet, error) {
	set := make(VariantSet)
	for _, code := range codes {
		if err := set.add(strings.ToLower(strings.TrimSpace(code))); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (s VariantSet) add(code string) error {
	if code == "" {
		return nil
	}
	if members, ok := variantGroups[code]; ok {
		if code == "all" {
			for _, v := range Variants {
				s[v] = struct{}{}
			}
			return nil
		}
		for _, m := range members {
			if err := s.add(m); err != nil {
				return err
			}
		}
		return nil
	}
	v := Variant(code)
	if _, ok := variantLabels[v]; !ok {
		return fmt.Errorf("unknown variant %q (valid: %s)", code, strings.Join(VariantCodes(), ", "))
	}
	s[v] = struct{}{}
	return nil
}

// VariantCodes returns every accepted code, groups first.
func VariantCodes() []string {
	groups := make([]string, 0, len(variantGroups))
	for g := range variantGroups {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	codes := groups
	for _, v := range Variants {
		codes = append(codes, string(v))
	}
	return codes
}

// ModernTable maps variants to their pronunciation. A missing key means the
// source carries no data for that variant.
type ModernTable map[Variant]string

// Get returns the pronunciation for v, if present.
func (t ModernTable) Get(v Variant) (string, bool) {
	s, ok := t[v]
	return s, ok
}

// Select returns a copy restricted to the members of set.
func (t ModernTable) Select(set VariantSet) ModernTable {
	out := make(ModernTable)
	for v, s := range t {
		if set.Contains(v) {
			out[v] = s
		}
	}
	return out
}
