package nest

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Stat is an aggregation over a list of values
type Stat int

const (
	Median Stat = iota
	Min
	Max
	Mean
)

func (s Stat) String() string {
	switch s {
	case Median:
		return "median"
	case Min:
		return "min"
	case Max:
		return "max"
	case Mean:
		return "mean"
	default:
		return fmt.Sprintf("stat(%d)", int(s))
	}
}

// ParseStat maps a statistic name to its Stat
func ParseStat(name string) (Stat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "median":
		return Median, nil
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	case "mean", "avg", "average":
		return Mean, nil
	}
	return Median, fmt.Errorf("unknown statistic %q", name)
}

// Of computes the statistic. Empty input yields 0.
func (s Stat) Of(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	switch s {
	case Min:
		m := math.Inf(1)
		for _, v := range vals {
			m = math.Min(m, v)
		}
		return m
	case Max:
		m := math.Inf(-1)
		for _, v := range vals {
			m = math.Max(m, v)
		}
		return m
	case Mean:
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return sum / float64(len(vals))
	default:
		return median(vals)
	}
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
