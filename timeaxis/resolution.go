package timeaxis

// Tier maps intervals no longer than Span to a sample count.
type Tier struct {
	Span    float64
	Samples int
}

// Resolution picks a sample count from the interval length so that vector
// sizes stay bounded.
type Resolution struct {
	// Tiers ordered by increasing Span
	Tiers []Tier
	// Samples for intervals longer than every tier, and the cap for spacing mode
	MaxSamples int
}

// DefaultResolution is 1000 samples up to a unit interval, 2000 up to 10,
// 5000 up to 100 and 10000 beyond.
func DefaultResolution() Resolution {
	return Resolution{
		Tiers: []Tier{
			{Span: 1, Samples: 1000},
			{Span: 10, Samples: 2000},
			{Span: 100, Samples: 5000},
		},
		MaxSamples: 10000,
	}
}

// Samples returns the sample count for an interval of the given length.
func (r Resolution) Samples(span float64) int {
	for _, tier := range r.Tiers {
		if span <= tier.Span {
			return tier.Samples
		}
	}
	return r.Max()
}

// Max returns the largest sample count the policy allows.
func (r Resolution) Max() int {
	if r.MaxSamples > 0 {
		return r.MaxSamples
	}
	return DefaultResolution().MaxSamples
}
