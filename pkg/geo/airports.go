package geo

// Airport describes a single entry in the static airport table.
type Airport struct {
	Code     string
	Name     string
	City     string
	Country  string
	Lat      float64
	Lon      float64
	Timezone string
}

// Lookup returns the airport for an IATA code, and whether it is known.
func Lookup(code string) (Airport, bool) {
	a, ok := airports[code]
	return a, ok
}

// Known reports whether the code is in the airport table.
func Known(code string) bool {
	_, ok := airports[code]
	return ok
}

// airports is the static table covering the airports the search reasons
// about. Immutable for the process lifetime. Coordinates are airport
// reference points in decimal degrees.
var airports = map[string]Airport{
	"JFK": {"JFK", "John F. Kennedy International", "New York", "US", 40.6413, -73.7781, "America/New_York"},
	"EWR": {"EWR", "Newark Liberty International", "Newark", "US", 40.6895, -74.1745, "America/New_York"},
	"LGA": {"LGA", "LaGuardia", "New York", "US", 40.7769, -73.8740, "America/New_York"},
	"BOS": {"BOS", "Boston Logan International", "Boston", "US", 42.3656, -71.0096, "America/New_York"},
	"PVD": {"PVD", "T. F. Green International", "Providence", "US", 41.7240, -71.4283, "America/New_York"},
	"MHT": {"MHT", "Manchester-Boston Regional", "Manchester", "US", 42.9326, -71.4357, "America/New_York"},
	"PHL": {"PHL", "Philadelphia International", "Philadelphia", "US", 39.8744, -75.2424, "America/New_York"},
	"DCA": {"DCA", "Ronald Reagan Washington National", "Washington", "US", 38.8512, -77.0402, "America/New_York"},
	"IAD": {"IAD", "Washington Dulles International", "Washington", "US", 38.9531, -77.4565, "America/New_York"},
	"BWI": {"BWI", "Baltimore/Washington International", "Baltimore", "US", 39.1754, -76.6683, "America/New_York"},
	"ATL": {"ATL", "Hartsfield-Jackson Atlanta International", "Atlanta", "US", 33.6407, -84.4277, "America/New_York"},
	"SAV": {"SAV", "Savannah/Hilton Head International", "Savannah", "US", 32.1276, -81.2021, "America/New_York"},
	"BHM": {"BHM", "Birmingham-Shuttlesworth International", "Birmingham", "US", 33.5629, -86.7535, "America/Chicago"},
	"MIA": {"MIA", "Miami International", "Miami", "US", 25.7959, -80.2870, "America/New_York"},
	"FLL": {"FLL", "Fort Lauderdale-Hollywood International", "Fort Lauderdale", "US", 26.0742, -80.1506, "America/New_York"},
	"PBI": {"PBI", "Palm Beach International", "West Palm Beach", "US", 26.6832, -80.0956, "America/New_York"},
	"ORD": {"ORD", "Chicago O'Hare International", "Chicago", "US", 41.9742, -87.9073, "America/Chicago"},
	"MDW": {"MDW", "Chicago Midway International", "Chicago", "US", 41.7868, -87.7522, "America/Chicago"},
	"MKE": {"MKE", "Milwaukee Mitchell International", "Milwaukee", "US", 42.9481, -87.8966, "America/Chicago"},
	"MSN": {"MSN", "Dane County Regional", "Madison", "US", 43.1399, -89.3375, "America/Chicago"},
	"DFW": {"DFW", "Dallas/Fort Worth International", "Dallas", "US", 32.8998, -97.0403, "America/Chicago"},
	"AUS": {"AUS", "Austin-Bergstrom International", "Austin", "US", 30.1975, -97.6664, "America/Chicago"},
	"OKC": {"OKC", "Will Rogers World", "Oklahoma City", "US", 35.3931, -97.6007, "America/Chicago"},
	"IAH": {"IAH", "George Bush Intercontinental", "Houston", "US", 29.9902, -95.3368, "America/Chicago"},
	"DEN": {"DEN", "Denver International", "Denver", "US", 39.8561, -104.6737, "America/Denver"},
	"COS": {"COS", "Colorado Springs", "Colorado Springs", "US", 38.8058, -104.7008, "America/Denver"},
	"ABQ": {"ABQ", "Albuquerque International Sunport", "Albuquerque", "US", 35.0402, -106.6091, "America/Denver"},
	"SMF": {"SMF", "Sacramento International", "Sacramento", "US", 38.6954, -121.5908, "America/Los_Angeles"},
	"SFO": {"SFO", "San Francisco International", "San Francisco", "US", 37.6213, -122.3790, "America/Los_Angeles"},
	"OAK": {"OAK", "Oakland International", "Oakland", "US", 37.7126, -122.2197, "America/Los_Angeles"},
	"SJC": {"SJC", "San Jose Mineta International", "San Jose", "US", 37.3639, -121.9289, "America/Los_Angeles"},
	"LAX": {"LAX", "Los Angeles International", "Los Angeles", "US", 33.9416, -118.4085, "America/Los_Angeles"},
	"BUR": {"BUR", "Hollywood Burbank", "Burbank", "US", 34.1983, -118.3574, "America/Los_Angeles"},
	"ONT": {"ONT", "Ontario International", "Ontario", "US", 34.0560, -117.6012, "America/Los_Angeles"},
	"LGB": {"LGB", "Long Beach", "Long Beach", "US", 33.8177, -118.1516, "America/Los_Angeles"},
	"SNA": {"SNA", "John Wayne Orange County", "Santa Ana", "US", 33.6762, -117.8675, "America/Los_Angeles"},
	"SAN": {"SAN", "San Diego International", "San Diego", "US", 32.7338, -117.1933, "America/Los_Angeles"},
	"SEA": {"SEA", "Seattle-Tacoma International", "Seattle", "US", 47.4502, -122.3088, "America/Los_Angeles"},
	"PDX": {"PDX", "Portland International", "Portland", "US", 45.5898, -122.5951, "America/Los_Angeles"},
	"YVR": {"YVR", "Vancouver International", "Vancouver", "CA", 49.1967, -123.1815, "America/Vancouver"},
	"YYZ": {"YYZ", "Toronto Pearson International", "Toronto", "CA", 43.6777, -79.6248, "America/Toronto"},
	"MEX": {"MEX", "Mexico City International", "Mexico City", "MX", 19.4363, -99.0721, "America/Mexico_City"},
	"GRU": {"GRU", "Sao Paulo/Guarulhos International", "Sao Paulo", "BR", -23.4356, -46.4731, "America/Sao_Paulo"},
	"LHR": {"LHR", "London Heathrow", "London", "GB", 51.4700, -0.4543, "Europe/London"},
	"CDG": {"CDG", "Paris Charles de Gaulle", "Paris", "FR", 49.0097, 2.5479, "Europe/Paris"},
	"AMS": {"AMS", "Amsterdam Schiphol", "Amsterdam", "NL", 52.3105, 4.7683, "Europe/Amsterdam"},
	"FRA": {"FRA", "Frankfurt am Main", "Frankfurt", "DE", 50.0379, 8.5622, "Europe/Berlin"},
	"DXB": {"DXB", "Dubai International", "Dubai", "AE", 25.2532, 55.3657, "Asia/Dubai"},
	"NRT": {"NRT", "Tokyo Narita International", "Tokyo", "JP", 35.7720, 140.3929, "Asia/Tokyo"},
	"HND": {"HND", "Tokyo Haneda International", "Tokyo", "JP", 35.5494, 139.7798, "Asia/Tokyo"},
	"SYD": {"SYD", "Sydney Kingsford Smith", "Sydney", "AU", -33.9399, 151.1753, "Australia/Sydney"},
}
