package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/kilianp07/ev-energy/core/energy"
	"github.com/kilianp07/ev-energy/core/model"
)

type point struct {
	FinalSpeedKmh  float64  `json:"final_speed_kmh"`
	ConsumptionKWh *float64 `json:"consumption_kwh"`
}

type document struct {
	Label      string           `json:"label"`
	Conditions model.Conditions `json:"conditions"`
	Points     []point          `json:"points"`
	Summary    energy.Summary   `json:"summary"`
}

// WriteJSON writes the series with its summary to w. Impossible readings
// are encoded as null.
func WriteJSON(w io.Writer, s energy.Series) error {
	doc := document{
		Label:      s.Label(),
		Conditions: s.Conditions,
		Points:     make([]point, len(s.Speeds)),
		Summary:    s.Summary(),
	}
	for i, v := range s.Speeds {
		doc.Points[i].FinalSpeedKmh = v
		if c := s.ConsumptionKWh[i]; !math.IsInf(c, 0) {
			doc.Points[i].ConsumptionKWh = &c
		}
	}
	if math.IsInf(doc.Summary.MaxKWh, 0) || math.IsInf(doc.Summary.MeanKWh, 0) {
		doc.Summary = energy.Summary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCSV writes one row per reading with a header line. Impossible
// readings are written as +Inf.
func WriteCSV(w io.Writer, s energy.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"final_speed_kmh", "consumption_kwh"}); err != nil {
		return err
	}
	for i, v := range s.Speeds {
		rec := []string{
			strconv.FormatFloat(v, 'f', -1, 64),
			strconv.FormatFloat(s.ConsumptionKWh[i], 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
