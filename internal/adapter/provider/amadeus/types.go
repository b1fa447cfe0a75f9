package amadeus

// Wire types for the flight-offers search response. Only the fields the
// normalizer reads are declared.

type offersResponse struct {
	Data         []offer      `json:"data"`
	Dictionaries dictionaries `json:"dictionaries"`
}

type dictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

type offer struct {
	ID                    string            `json:"id"`
	NumberOfBookableSeats int               `json:"numberOfBookableSeats"`
	Itineraries           []itinerary       `json:"itineraries"`
	Price                 offerPrice        `json:"price"`
	TravelerPricings      []travelerPricing `json:"travelerPricings"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	Departure   segmentPoint `json:"departure"`
	Arrival     segmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
	Duration    string       `json:"duration"`
}

type segmentPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type offerPrice struct {
	Currency   string `json:"currency"`
	GrandTotal string `json:"grandTotal"`
}

type travelerPricing struct {
	FareDetailsBySegment []fareDetails `json:"fareDetailsBySegment"`
}

type fareDetails struct {
	Cabin               string       `json:"cabin"`
	IncludedCheckedBags *checkedBags `json:"includedCheckedBags"`
}

type checkedBags struct {
	Quantity int `json:"quantity"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}

type apiError struct {
	Status int    `json:"status"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
