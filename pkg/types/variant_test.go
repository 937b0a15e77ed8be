// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  []Variant
	}{
		{"leaf", []string{"ms"}, []Variant{MandarinStandard}},
		{"group", []string{"wu"}, []Variant{WuNorthern, WuJinhua}},
		{"southern min only", []string{"mins"}, []Variant{MinHokkien, MinTeochew, MinLeizhou}},
		{"min includes southern min", []string{"min"}, []Variant{
			MinNorthern, MinEastern, MinPuxian, MinHokkien, MinTeochew, MinLeizhou,
		}},
		{"mixed and duplicated", []string{"xc", "xiang", " CG "}, []Variant{
			CantoneseGuangzhou, XiangChangsha, XiangLoudi, XiangHengyang,
		}},
		{"empty code ignored", []string{""}, []Variant{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseVariants(tt.codes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Sorted())
		})
	}
}

func TestParseVariants_All(t *testing.T) {
	set, err := ParseVariants([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, Variants, set.Sorted())
	assert.Len(t, Variants, 27)

	// Gan, Jin and Southern Pinghua are reachable only through "all".
	for _, g := range []string{"man", "can", "hak", "min", "mins", "wu", "xiang"} {
		members, err := ParseVariants([]string{g})
		require.NoError(t, err)
		for _, v := range []Variant{Gan, Jin, PinghuaSouthern} {
			assert.False(t, members.Contains(v), "%s should not contain %s", g, v)
		}
	}
}

func TestParseVariants_Unknown(t *testing.T) {
	_, err := ParseVariants([]string{"ms", "yue"})
	assert.ErrorContains(t, err, `unknown variant "yue"`)
}

func TestVariantLabels(t *testing.T) {
	for _, v := range Variants {
		assert.NotEqual(t, string(v), v.Label(), "variant %s has no label", v)
	}
	assert.Equal(t, "Hokkien (Pe̍h-ōe-jī)", MinHokkien.Label())
	assert.Equal(t, "zz", Variant("zz").Label())
}

func TestModernTableSelect(t *testing.T) {
	table := ModernTable{
		MandarinStandard:   "dōng",
		CantoneseGuangzhou: "dung1",
		HakkaSixian:        "dûng",
	}
	set, err := ParseVariants([]string{"man", "hs", "hh"})
	require.NoError(t, err)

	got := table.Select(set)
	assert.Equal(t, ModernTable{MandarinStandard: "dōng", HakkaSixian: "dûng"}, got)
	assert.Len(t, table, 3, "Select does not modify the receiver")

	_, ok := got.Get(HakkaHailu)
	assert.False(t, ok, "selected but absent stays absent")
}

func TestTone(t *testing.T) {
	assert.Equal(t, "平", TonePing.String())
	assert.Equal(t, "入", ToneRu.String())
	assert.Equal(t, "〇", ToneUnknown.String())
	assert.Equal(t, "〇", Tone(9).String())

	text, err := ToneShang.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "上", string(text))
}

func TestBaxterList(t *testing.T) {
	c := Character{Char: "行", Pronunciations: []Pronunciation{
		{Index: 1, Middle: []MiddleReading{{Baxter: "haeng"}, {Baxter: "hang"}}},
		{Index: 2, Middle: []MiddleReading{{Baxter: "hang"}, {Baxter: "haengH"}}},
	}}
	assert.Equal(t, []string{"haeng", "hang", "haengH"}, c.BaxterList())
	assert.Nil(t, Character{Char: "x"}.BaxterList())
}

func TestOldSystemLabel(t *testing.T) {
	assert.Equal(t, "Baxter-Sagart", OldBaxterSagart.Label())
	assert.Equal(t, "Zhengzhang", OldZhengzhang.Label())
}
