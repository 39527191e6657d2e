package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *int64
	}{
		{"thousands suffix", "64K", i64(64000)},
		{"plain number", "128000", i64(128000)},
		{"comma separated", "1,000,000", i64(1000000)},
		{"comma and suffix", "1,024K", i64(1024000)},
		{"surrounding whitespace", "  32K  ", i64(32000)},
		{"empty", "", nil},
		{"dash placeholder", "--", nil},
		{"not a number", "unlimited", nil},
		{"fractional prefix", "1.5K", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCount(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"dollar prefix", "$0.14", f64(0.14)},
		{"no prefix", "3.50", f64(3.5)},
		{"zero", "$0", f64(0)},
		{"comma separated", "$1,250.00", f64(1250)},
		{"whitespace", " $2.75 ", f64(2.75)},
		{"empty", "", nil},
		{"garbage", "free", nil},
		{"nan spelling", "NaN", nil},
		{"infinity spelling", "Infinity", nil},
		{"dollar inf", "$Inf", nil},
		{"negative inf", "-Inf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePrice(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestParseLatency(t *testing.T) {
	got := parseLatency("1.23s")
	require.NotNil(t, got)
	assert.InDelta(t, 1.23, *got, 1e-9)

	assert.Nil(t, parseLatency("fast"))
	assert.Nil(t, parseLatency(""))
	assert.Nil(t, parseLatency("NaNs"), "NaN is not a latency")
}

func TestParseThroughput(t *testing.T) {
	got := parseThroughput("67.37t/s")
	require.NotNil(t, got)
	assert.InDelta(t, 67.37, *got, 1e-9)

	got = parseThroughput("  100t/s ")
	require.NotNil(t, got)
	assert.InDelta(t, 100.0, *got, 1e-9)

	assert.Nil(t, parseThroughput("n/a"))
}

// test helpers shared across the package

func i64(n int64) *int64 {
	return &n
}

func f64(f float64) *float64 {
	return &f
}

func str(s string) *string {
	return &s
}
