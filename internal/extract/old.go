// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/pdiddy/wangyun/internal/scan"
	"github.com/pdiddy/wangyun/pkg/types"
)

var oldKeys = map[types.OldSystem]oldKey{
	types.OldBaxterSagart: oldBaxterSagart,
	types.OldZhengzhang:   oldZhengzhang,
}

// Old extracts the Old Chinese reconstructions of one pronunciation block
// in the given system. A block without that system's table yields nothing.
func (x *Extractor) Old(block string, system types.OldSystem) ([]types.OldReading, error) {
	key, ok := oldKeys[system]
	if !ok {
		return nil, fmt.Errorf("unsupported Old Chinese system %q", system)
	}
	scope := "old chinese (" + system.Label() + ")"

	p := x.patterns
	span, ok, err := scan.Isolate(block, p.OldStart[key], p.TableEnd)
	if err != nil {
		return nil, scan.Within(scope, err)
	}
	if !ok {
		return nil, nil
	}
	table := span.Of(block)

	readings, err := scan.Row(table, p.Reading)
	if err != nil {
		return nil, scan.Within(scope, err)
	}
	recons, err := scan.Row(table, p.OldChinese)
	if err != nil {
		return nil, scan.Within(scope, err)
	}

	out, err := scan.Zip(
		scan.Column[types.OldReading]{Name: p.Reading.Name, Raw: readings, Set: func(r *types.OldReading, s string) error {
			r.Reading = s
			return nil
		}},
		scan.Column[types.OldReading]{Name: p.OldChinese.Name, Raw: recons, Set: func(r *types.OldReading, s string) error {
			r.Reconstruction = s
			return nil
		}},
	)
	if err != nil {
		return nil, scan.Within(scope, err)
	}
	if len(readings) == 0 && len(out) > 0 {
		return nil, scan.Formatf(scope, "table has no %q row", p.Reading.Name)
	}
	return out, nil
}
