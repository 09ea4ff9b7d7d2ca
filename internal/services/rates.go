package services

// defaultCountry is assumed when the upstream country header is missing.
const defaultCountry = "US"

// otherRate is the floor rate applied to any unrecognized country signal.
const otherRate = 0.001

// clickRates maps 2-letter country signals to per-click earnings.
// US traffic pays $10 CPM, i.e. $0.01 per click.
var clickRates = map[string]float64{
	"US": 0.01,
	"CA": 0.008,
	"UK": 0.007,
	"AU": 0.006,
	"DE": 0.005,
}

// RateForCountry resolves the per-click rate for a coarse country signal.
// An empty signal defaults to US; a non-empty signal outside the table falls
// to the lowest tier rather than erroring.
func RateForCountry(country string) float64 {
	if country == "" {
		country = defaultCountry
	}
	if rate, ok := clickRates[country]; ok {
		return rate
	}
	return otherRate
}
