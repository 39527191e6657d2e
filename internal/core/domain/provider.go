package domain

// Metrics holds the six pricing/performance figures displayed per provider.
// Every field is independently nullable: nil means the value was not shown
// on the page, which is different from zero.
type Metrics struct {
	ContextLength             *int64   `json:"context_length"`
	MaxOutputTokens           *int64   `json:"max_output_tokens"`
	InputPricePerMillion      *float64 `json:"input_price_per_million"`
	OutputPricePerMillion     *float64 `json:"output_price_per_million"`
	LatencySeconds            *float64 `json:"latency_seconds"`
	ThroughputTokensPerSecond *float64 `json:"throughput_tokens_per_second"`
}

// Provider is one hosting entity offering a model. A Provider with a nil
// name and all-nil metrics is the sentinel meaning "this model has no
// providers" — a confirmed fact, not missing data.
type Provider struct {
	Name    *string `json:"name"`
	Metrics Metrics `json:"metrics"`
}

// Sentinel returns the "no providers" record.
func Sentinel() Provider {
	return Provider{}
}

// IsSentinel reports whether p is the all-nil "no providers" record.
func (p Provider) IsSentinel() bool {
	return p.Name == nil && p.Metrics == (Metrics{})
}

// Equal compares two providers field by field, treating nil and present
// values as distinct.
func (p Provider) Equal(other Provider) bool {
	if !eqString(p.Name, other.Name) {
		return false
	}
	m, o := p.Metrics, other.Metrics
	return eqInt64(m.ContextLength, o.ContextLength) &&
		eqInt64(m.MaxOutputTokens, o.MaxOutputTokens) &&
		eqFloat64(m.InputPricePerMillion, o.InputPricePerMillion) &&
		eqFloat64(m.OutputPricePerMillion, o.OutputPricePerMillion) &&
		eqFloat64(m.LatencySeconds, o.LatencySeconds) &&
		eqFloat64(m.ThroughputTokensPerSecond, o.ThroughputTokensPerSecond)
}

// ProvidersEqual is an order-sensitive, value-exact comparison of two
// provider sequences.
func ProvidersEqual(a, b []Provider) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat64(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
