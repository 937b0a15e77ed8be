// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/wangyun/internal/scan"
	"github.com/pdiddy/wangyun/pkg/types"
)

const middleScope = "middle chinese"

// Middle extracts the Middle Chinese readings of one pronunciation block.
// A block without a Middle Chinese table yields no readings and no error.
func (x *Extractor) Middle(block string) ([]types.MiddleReading, error) {
	p := x.patterns
	span, ok, err := scan.Isolate(block, p.MiddleStart, p.TableEnd)
	if err != nil {
		return nil, scan.Within(middleScope, err)
	}
	if !ok {
		return nil, nil
	}
	table := span.Of(block)

	cols := make(map[string][]string)
	for _, rp := range []scan.RowPattern{
		p.Reading, p.Initial, p.Final, p.Tone, p.Openness, p.Division,
		p.Baxter, p.Mandarin, p.Cantonese,
	} {
		fields, err := scan.Row(table, rp)
		if err != nil {
			return nil, scan.Within(middleScope, err)
		}
		cols[rp.Name] = fields
	}

	fanqies, err := scan.RowGroups(table, p.Fanqie)
	if err != nil {
		return nil, scan.Within(middleScope, err)
	}
	fanqie := make([]string, len(fanqies))
	for i, g := range fanqies {
		fanqie[i] = Fanqie(g[0], g[1])
	}

	readings, err := scan.Zip(
		scan.Column[types.MiddleReading]{Name: p.Reading.Name, Raw: cols[p.Reading.Name], Set: func(r *types.MiddleReading, s string) error {
			r.Reading = s
			return nil
		}},
		scan.Column[types.MiddleReading]{Name: p.Initial.Name, Raw: cols[p.Initial.Name], Set: func(r *types.MiddleReading, s string) error {
			r.Initial = s
			return nil
		}},
		scan.Column[types.MiddleReading]{Name: p.Final.Name, Raw: cols[p.Final.Name], Set: func(r *types.MiddleReading, s string) error {
			r.Final = s
			return nil
		}},
		scan.Column[types.MiddleReading]{Name: p.Tone.Name, Raw: cols[p.Tone.Name], Set: func(r *types.MiddleReading, s string) (err error) {
			r.Tone, err = DecodeTone(s)
			return err
		}},
		scan.Column[types.MiddleReading]{Name: p.Openness.Name, Raw: cols[p.Openness.Name], Set: func(r *types.MiddleReading, s string) (err error) {
			r.Open, err = DecodeOpenness(s)
			return err
		}},
		scan.Column[types.MiddleReading]{Name: p.Division.Name, Raw: cols[p.Division.Name], Set: func(r *types.MiddleReading, s string) (err error) {
			r.Division, err = DecodeDivision(s)
			return err
		}},
		scan.Column[types.MiddleReading]{Name: p.Fanqie.Name, Raw: fanqie, Set: func(r *types.MiddleReading, s string) error {
			r.Fanqie = s
			return nil
		}},
		scan.Column[types.MiddleReading]{Name: p.Baxter.Name, Raw: cols[p.Baxter.Name], Set: func(r *types.MiddleReading, s string) error {
			r.Baxter = s
			return nil
		}},
		scan.Column[types.MiddleReading]{Name: p.Mandarin.Name, Raw: cols[p.Mandarin.Name], Set: func(r *types.MiddleReading, s string) error {
			r.ExpectedMandarin = s
			return nil
		}},
		scan.Column[types.MiddleReading]{Name: p.Cantonese.Name, Raw: cols[p.Cantonese.Name], Set: func(r *types.MiddleReading, s string) error {
			r.ExpectedCantonese = StripSuperscript(s)
			return nil
		}},
	)
	if err != nil {
		return nil, scan.Within(middleScope, err)
	}
	if len(cols[p.Reading.Name]) == 0 && len(readings) > 0 {
		// Without the reading row the table is not what we expect.
		return nil, scan.Formatf(middleScope, "table has no %q row", p.Reading.Name)
	}
	return readings, nil
}
