package catalog

// resortAirports maps a resort to the major airport flights are searched against.
// This is not always the resort's NearestAirport: regional fields with thin
// schedules are replaced by the closest hub.
var resortAirports = map[string]string{
	// North America
	"Whistler Blackcomb": "YVR", "Vail": "DEN", "Park City": "SLC",
	"Jackson Hole": "JAC", "Telluride": "MTJ", "Mammoth Mountain": "MMH",
	"Steamboat": "HDN", "Stowe": "BTV", "Sunday River": "PWM",
	"Killington": "BTV", "Big Sky": "BZN", "Taos Ski Valley": "ABQ",
	"Alta": "SLC", "Snowbird": "SLC", "Arapahoe Basin": "DEN",
	"Banff Sunshine": "YYC", "Lake Louise": "YYC",
	"Mont-Tremblant": "YUL", "Revelstoke": "YLW",
	"Aspen Snowmass": "ASE", "Deer Valley": "SLC",
	"Breckenridge": "DEN", "Copper Mountain": "DEN",
	"Squaw Valley / Palisades": "RNO", "Sun Valley": "SUN",
	"Winter Park": "DEN",
	// Europe
	"Chamonix": "GVA", "Verbier": "GVA", "Zermatt": "GVA",
	"Val d'Isère": "GVA", "Courchevel": "GVA", "St. Anton": "INN",
	"Kitzbühel": "INN", "Innsbruck/Axamer Lizum": "INN",
	"Axamer Lizum": "INN",
	"Les Arcs":     "GVA", "Tignes": "GVA",
	// Japan
	"Niseko": "CTS", "Hakuba": "NRT", "Furano": "CTS", "Nozawa Onsen": "NRT",
}

// AirportFor returns the flight destination for a resort name.
func AirportFor(resort string) (string, bool) {
	if a, ok := resortAirports[resort]; ok {
		return a, true
	}
	if r, ok := Lookup(resort); ok {
		a, ok := resortAirports[r.Name]
		return a, ok
	}
	return "", false
}

// DestinationAirports maps resort names to their airports, dropping unknown
// resorts and duplicates while keeping first-seen order.
func DestinationAirports(resortNames []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range resortNames {
		a, ok := AirportFor(n)
		if !ok || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
