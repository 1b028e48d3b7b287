package health

// TrendPoint is one (date, value) sample of a trend series.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TrendSeries is ordered as received. Duplicate dates are tolerated.
type TrendSeries []TrendPoint

// ForDisplay collapses duplicate dates, keeping the position of the first occurrence and the
// value of the last.
func (s TrendSeries) ForDisplay() TrendSeries {
	var (
		out   = make(TrendSeries, 0, len(s))
		index = make(map[string]int, len(s))
	)
	for _, p := range s {
		if i, ok := index[p.Date]; ok {
			out[i].Value = p.Value
			continue
		}
		index[p.Date] = len(out)
		out = append(out, p)
	}
	return out
}

func (s TrendSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

func (s TrendSeries) Sum() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}
