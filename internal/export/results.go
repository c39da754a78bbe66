package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/gravsim/internal/experiment"
)

// Report is the JSON form of a headless run.
type Report struct {
	Scene     string               `json:"scene"`
	Mode      string               `json:"mode"`
	Particles int                  `json:"particles"`
	Sources   int                  `json:"sources"`
	Seed      int64                `json:"seed"`
	Frames    int64                `json:"frames"`
	ElapsedMS float64              `json:"elapsed_ms"`
	Metrics   map[string]float64   `json:"metrics"`
	Series    map[string][]float64 `json:"series,omitempty"`
}

func NewReport(scene string, cfg experiment.Config, res *experiment.Result) Report {
	return Report{
		Scene:     scene,
		Mode:      cfg.Sim.Mode.String(),
		Particles: cfg.Sim.Count,
		Sources:   cfg.Sim.Sources,
		Seed:      cfg.Seed,
		Frames:    res.Frames,
		ElapsedMS: float64(res.Elapsed.Microseconds()) / 1000,
		Metrics:   res.Metrics,
		Series:    res.Series,
	}
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per frame with a column per series, sorted by name.
// Series shorter than the longest leave their cells empty.
func WriteCSV(w io.Writer, series map[string][]float64) error {
	names := make([]string, 0, len(series))
	rows := 0
	for name, s := range series {
		names = append(names, name)
		rows = max(rows, len(s))
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"frame"}, names...)); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		row := make([]string, 0, len(names)+1)
		row = append(row, strconv.Itoa(i+1))
		for _, name := range names {
			v := ""
			if s := series[name]; i < len(s) {
				v = strconv.FormatFloat(s[i], 'g', 6, 64)
			}
			row = append(row, v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
