package skyscanner

// Wire types for the marketplace search response. The same shape is served
// by every upstream host.

type searchResponse struct {
	Status      bool        `json:"status"`
	Itineraries []itinerary `json:"itineraries"`
}

type itinerary struct {
	ID         string     `json:"id"`
	Legs       []leg      `json:"legs"`
	Price      price      `json:"price"`
	FarePolicy farePolicy `json:"farePolicy"`
}

type leg struct {
	Origin            place     `json:"origin"`
	Destination       place     `json:"destination"`
	Departure         string    `json:"departure"`
	Arrival           string    `json:"arrival"`
	DurationInMinutes int       `json:"durationInMinutes"`
	StopCount         int       `json:"stopCount"`
	Carriers          carriers  `json:"carriers"`
	Segments          []segment `json:"segments"`
}

type place struct {
	DisplayCode string `json:"displayCode"`
	City        string `json:"city"`
}

type carriers struct {
	Marketing []carrier `json:"marketing"`
}

type carrier struct {
	Name        string `json:"name"`
	AlternateID string `json:"alternateId"`
}

type segment struct {
	FlightNumber     string  `json:"flightNumber"`
	MarketingCarrier carrier `json:"marketingCarrier"`
}

type price struct {
	Raw float64 `json:"raw"`
}

type farePolicy struct {
	IsChangeAllowed       bool `json:"isChangeAllowed"`
	IsCancellationAllowed bool `json:"isCancellationAllowed"`
}
