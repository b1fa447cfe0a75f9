package fallback

import "time"

// defaultBasePrice is used for destinations without a table entry.
const defaultBasePrice = 450.0

// defaultRouteDuration is used for routes without a table entry.
const defaultRouteDuration = 8 * 60

// basePrices holds typical one-way economy prices in USD by destination.
var basePrices = map[string]float64{
	"CDG": 480,
	"LHR": 440,
	"FRA": 460,
	"AMS": 430,
	"MAD": 410,
	"FCO": 450,
	"JFK": 470,
	"LAX": 390,
	"SFO": 400,
	"ORD": 320,
	"MIA": 280,
	"NRT": 780,
	"HND": 790,
	"ICN": 740,
	"PEK": 700,
	"SIN": 720,
	"BKK": 650,
	"HKG": 710,
	"DXB": 620,
	"DOH": 610,
	"SYD": 950,
	"GRU": 680,
	"MEX": 350,
	"YYZ": 290,
	"CAI": 540,
	"JNB": 820,
	"DEL": 640,
	"BOM": 660,
}

// routeDurations holds nonstop flight times in minutes for common routes,
// keyed "ORIGIN-DESTINATION".
var routeDurations = map[string]int{
	"JFK-CDG": 445,
	"JFK-LHR": 415,
	"JFK-LAX": 370,
	"JFK-NRT": 840,
	"LAX-NRT": 690,
	"LAX-SYD": 905,
	"LHR-JFK": 480,
	"LHR-DXB": 410,
	"CDG-JFK": 495,
	"CDG-NRT": 715,
	"FRA-SIN": 735,
	"AMS-JFK": 500,
	"SIN-LHR": 830,
	"DXB-JFK": 850,
	"HKG-SFO": 705,
	"ORD-FRA": 505,
	"MIA-MAD": 500,
	"YYZ-LHR": 420,
}

// basePriceFor looks up the destination's typical price, with a default for
// unknown destinations.
func basePriceFor(destination string) float64 {
	if price, ok := basePrices[destination]; ok {
		return price
	}
	return defaultBasePrice
}

// routeDurationFor looks up the nonstop duration for a route. The reverse
// direction is used when only that is tabled; unknown routes get a default.
func routeDurationFor(origin, destination string) int {
	if minutes, ok := routeDurations[origin+"-"+destination]; ok {
		return minutes
	}
	if minutes, ok := routeDurations[destination+"-"+origin]; ok {
		return minutes
	}
	return defaultRouteDuration
}

// addDays shifts a YYYY-MM-DD date forward. An unparseable date is returned
// unchanged.
func addDays(date string, days int) string {
	if days == 0 {
		return date
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.AddDate(0, 0, days).Format("2006-01-02")
}
