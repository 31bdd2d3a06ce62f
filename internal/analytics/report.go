package analytics

// DailySample is the page view count for one date label.
type DailySample struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// Report is one fetched window with its derived total.
type Report struct {
	Website string        `json:"website"`
	Range   DateRange     `json:"-"`
	Samples []DailySample `json:"samples"`
	Total   int64         `json:"total"`
}

// Total sums the views of all samples.
func Total(samples []DailySample) (total int64) {
	for _, s := range samples {
		total += s.Views
	}
	return
}
