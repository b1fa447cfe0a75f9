package domain

// TravelStyle is the traveler's spending profile. It scales both the
// generator's base prices and the recommendation score.
type TravelStyle string

// Known travel styles.
const (
	StyleBudget   TravelStyle = "budget"
	StyleMidRange TravelStyle = "mid-range"
	StyleLuxury   TravelStyle = "luxury"
)

// PriceWeightMultiplier scales the price sub-score: budget travelers care
// more about price, luxury travelers less.
func (s TravelStyle) PriceWeightMultiplier() float64 {
	switch s {
	case StyleBudget:
		return 1.3
	case StyleLuxury:
		return 0.7
	default:
		return 1.0
	}
}

// ScoreModifier scales the final weighted score.
func (s TravelStyle) ScoreModifier() float64 {
	switch s {
	case StyleBudget:
		return 1.1
	case StyleLuxury:
		return 0.9
	default:
		return 1.0
	}
}

// PriceMultiplier scales the fallback generator's base prices.
func (s TravelStyle) PriceMultiplier() float64 {
	switch s {
	case StyleBudget:
		return 0.8
	case StyleLuxury:
		return 1.6
	default:
		return 1.0
	}
}

// Flexibility describes how fixed the traveler's dates are.
type Flexibility string

// Known flexibility levels.
const (
	FlexibilityExact    Flexibility = "exact"
	FlexibilityFlexible Flexibility = "flexible"
)

// Preferences steer scoring and recommendation selection. They never exclude
// flights; hard constraints belong in Filters.
type Preferences struct {
	// Priority flags boost the matching score components.
	PrioritizePrice       bool `json:"prioritizePrice,omitempty"`
	PrioritizeConvenience bool `json:"prioritizeConvenience,omitempty"`
	PrioritizeDuration    bool `json:"prioritizeDuration,omitempty"`

	// PreferDirect makes direct flights score substantially higher.
	PreferDirect bool `json:"preferDirect,omitempty"`

	// TravelStyle is the spending profile (default: mid-range).
	TravelStyle TravelStyle `json:"travelStyle,omitempty"`

	// Flexibility describes date flexibility (informational for scoring).
	Flexibility Flexibility `json:"flexibility,omitempty"`

	// PreferredTime is the preferred departure time-of-day bucket, if any.
	PreferredTime TimeOfDay `json:"preferredTime,omitempty"`
}

// Style returns the travel style, defaulting to mid-range when unset or
// unknown.
func (p *Preferences) Style() TravelStyle {
	if p == nil {
		return StyleMidRange
	}
	switch p.TravelStyle {
	case StyleBudget, StyleMidRange, StyleLuxury:
		return p.TravelStyle
	default:
		return StyleMidRange
	}
}
