package output

import (
	"encoding/json"
	"io"
)

// ReportJSON represents a report in JSON format
type ReportJSON struct {
	Legs           []LegJSON `json:"legs"`
	MaxDepth       int       `json:"maxDepth"`
	ElapsedSeconds float64   `json:"elapsedSeconds"`
}

// LegJSON is one search direction
type LegJSON struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Lang  string   `json:"lang"`
	Found bool     `json:"found"`
	Hops  int      `json:"hops,omitempty"`
	Path  []string `json:"path,omitempty"`
	URLs  []string `json:"urls,omitempty"`
	Error string   `json:"error,omitempty"`
}

// ToJSON converts a report to its JSON shape
func ToJSON(r *Report) ReportJSON {
	out := ReportJSON{
		Legs:           make([]LegJSON, 0, len(r.Legs)),
		MaxDepth:       r.MaxDepth,
		ElapsedSeconds: r.Elapsed.Seconds(),
	}
	for _, leg := range r.Legs {
		lj := LegJSON{
			From:  leg.From.Title,
			To:    leg.To.Title,
			Lang:  leg.From.Lang,
			Found: leg.Found(),
		}
		if leg.Err != nil {
			lj.Error = leg.Err.Error()
		} else if leg.Found() {
			lj.Hops = leg.Path.Hops()
			lj.Path = leg.Path
			lj.URLs = leg.URLs()
		}
		out.Legs = append(out.Legs, lj)
	}
	return out
}

// RenderJSON renders the report as JSON
func RenderJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ToJSON(r))
}
