package stats

import (
	"bytes"
	"math"
	"sort"
	"strconv"
)

const (
	secondsPerDay = 86400
	velocityDays  = 7
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStd returns the population standard deviation around mean.
func populationStd(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// TrimmedMean returns the mean of values after excluding entries farther
// than three standard deviations from the untrimmed mean. The trim is a
// single symmetric pass; the mean is not re-trimmed iteratively. An empty
// input yields 0.
func TrimmedMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := Mean(values)
	std := populationStd(values, mean)
	upper := mean + 3*std
	lower := mean - 3*std

	var sum float64
	var n int
	for _, v := range values {
		if v >= lower && v <= upper {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Histogram maps a stack size (quantity) to its occurrence count. It
// marshals with keys in ascending numeric order; the default map marshaling
// sorts keys as strings, which puts 10 before 2.
type Histogram map[int]int

// NewHistogram counts occurrences of each quantity.
func NewHistogram(quantities []int) Histogram {
	h := make(Histogram, len(quantities))
	for _, q := range quantities {
		h[q]++
	}
	return h
}

// Keys returns the histogram keys in ascending order.
func (h Histogram) Keys() []int {
	keys := make([]int, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// MarshalJSON renders the histogram as an object with numerically ordered keys.
func (h Histogram) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range h.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(k))
		buf.WriteString(`":`)
		buf.WriteString(strconv.Itoa(h[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SaleVelocity approximates sales per day over the trailing seven-day
// window. The window is anchored to the newest timestamp present, not the
// wall clock, so stale data keeps a meaningful rate. Sales inside the
// window are divided by the day span they actually cover, clamped to
// [1, 7]: thin history is not diluted by an assumed full week, and spans
// under one day count as one day. Timestamps are unix seconds; an empty
// input yields 0.
func SaleVelocity(timestamps []int64) float64 {
	if len(timestamps) == 0 {
		return 0
	}

	newest := timestamps[0]
	for _, ts := range timestamps[1:] {
		if ts > newest {
			newest = ts
		}
	}

	cutoff := newest - velocityDays*secondsPerDay
	oldestInWindow := newest
	var count int
	for _, ts := range timestamps {
		if ts >= cutoff {
			count++
			if ts < oldestInWindow {
				oldestInWindow = ts
			}
		}
	}

	spanDays := float64(newest-oldestInWindow) / secondsPerDay
	if spanDays < 1 {
		spanDays = 1
	}
	if spanDays > velocityDays {
		spanDays = velocityDays
	}

	return float64(count) / spanDays
}
