package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"nexus/internal/config"
)

// printer renders command results as a table or as structured data.
type printer struct {
	w      io.Writer
	format string
}

// print writes v as JSON or YAML, or calls fill to build a table.
func (p *printer) print(v any, fill func(tw table.Writer)) error {
	switch p.format {
	case config.OutputJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.w, string(b))
		return err
	case config.OutputYAML:
		// Round-trip through JSON so the YAML keys match the API's.
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(b, &generic); err != nil {
			return err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return err
		}
		_, err = p.w.Write(out)
		return err
	default:
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		fill(tw)
		_, err := fmt.Fprintln(p.w, tw.Render())
		return err
	}
}

// line writes a plain message unless structured output was requested.
func (p *printer) line(format string, args ...any) {
	if p.format == config.OutputJSON || p.format == config.OutputYAML {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

func sortedFloatKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}

// byValueDesc orders the keys of m by amount, largest first.
func byValueDesc(m map[string]decimal.Decimal) []string {
	keys := slices.Sorted(maps.Keys(m))
	slices.SortStableFunc(keys, func(a, b string) int { return m[b].Cmp(m[a]) })
	return keys
}
