package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string  { return &s }
func intp(n int64) *int64    { return &n }
func flp(v float64) *float64 { return &v }

func TestSentinel(t *testing.T) {
	s := Sentinel()
	assert.True(t, s.IsSentinel())

	named := Provider{Name: strp("host")}
	assert.False(t, named.IsSentinel())

	metriced := Provider{Metrics: Metrics{ContextLength: intp(1)}}
	assert.False(t, metriced.IsSentinel())
}

func TestProviderEqual_ValueWise(t *testing.T) {
	a := Provider{Name: strp("host"), Metrics: Metrics{
		ContextLength:        intp(64000),
		InputPricePerMillion: flp(0.14),
	}}

	// Distinct pointers, same values: equal
	b := Provider{Name: strp("host"), Metrics: Metrics{
		ContextLength:        intp(64000),
		InputPricePerMillion: flp(0.14),
	}}
	assert.True(t, a.Equal(b))

	// Same structure, different nested value: not equal
	c := b
	c.Metrics.InputPricePerMillion = flp(0.28)
	assert.False(t, a.Equal(c))

	// nil vs present: not equal
	d := b
	d.Metrics.ContextLength = nil
	assert.False(t, a.Equal(d))

	// nil name vs present name: not equal
	e := b
	e.Name = nil
	assert.False(t, a.Equal(e))
}

func TestProvidersEqual(t *testing.T) {
	a := Provider{Name: strp("a")}
	b := Provider{Name: strp("b")}

	assert.True(t, ProvidersEqual([]Provider{a, b}, []Provider{a, b}))
	assert.False(t, ProvidersEqual([]Provider{a, b}, []Provider{b, a}))
	assert.False(t, ProvidersEqual([]Provider{a}, []Provider{a, b}))
	assert.True(t, ProvidersEqual(nil, nil))
}
