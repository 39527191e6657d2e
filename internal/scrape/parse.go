package scrape

import (
	"math"
	"strconv"
	"strings"
)

// The aggregator renders metrics as display strings ("64K", "$0.14",
// "1.23s", "67.37t/s"). Each parser strips the unit decoration and returns
// nil on anything it cannot read; a malformed cell never aborts extraction.

func parseCount(text string) *int64 {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return nil
	}

	multiplier := int64(1)
	if strings.HasSuffix(text, "K") {
		text = strings.TrimSuffix(text, "K")
		multiplier = 1000
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil
	}

	n *= multiplier
	return &n
}

func parsePrice(text string) *float64 {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "$")
	text = strings.ReplaceAll(text, ",", "")
	return parseFloat(text)
}

func parseLatency(text string) *float64 {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "s")
	return parseFloat(text)
}

func parseThroughput(text string) *float64 {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "t/s")
	return parseFloat(text)
}

func parseFloat(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	// ParseFloat accepts "NaN" and "Inf" spellings; neither is a metric,
	// and NaN/Inf values cannot be marshaled back into the store document.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
