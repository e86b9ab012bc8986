package report

import (
	"io"

	"github.com/bytedance/sonic"

	"github.com/boppreh/activity/internal/model"
)

// PeriodReport is the JSON form of one period's summary.
type PeriodReport struct {
	Name         string               `json:"name"`
	Start        int                  `json:"start"`
	End          int                  `json:"end"`
	DaysPresent  int                  `json:"days_present"`
	DaysMissing  int                  `json:"days_missing"`
	TotalSeconds float64              `json:"total_seconds"`
	Entries      []model.SummaryEntry `json:"entries"`
}

// NewPeriodReport pairs a period with its built summary.
func NewPeriodReport(p model.Period, s Summary) PeriodReport {
	return PeriodReport{
		Name:         p.Name,
		Start:        p.Start,
		End:          p.End,
		DaysPresent:  s.DaysPresent,
		DaysMissing:  p.Days() - s.DaysPresent,
		TotalSeconds: s.TotalSeconds,
		Entries:      s.Collect(),
	}
}

// EncodeJSON writes reports as indented JSON followed by a newline.
func EncodeJSON(w io.Writer, reports []PeriodReport) error {
	if reports == nil {
		reports = []PeriodReport{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
