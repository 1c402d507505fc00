package catalog

import (
	"strings"

	"ski_planner/internal/domain"
)

const (
	RegionNorthAmerica = "North America"
	RegionEurope       = "Europe"
	RegionAsia         = "Japan/Asia"

	// NoPreference in a region filter selects every resort.
	NoPreference = "No Preference"
)

var resorts = []domain.ResortProfile{
	{Name: "Whistler Blackcomb", Country: "Canada", Region: "North America", Coords: domain.Coords{Lat: 50.1163, Lng: -122.9574}, NearestAirport: "YVR", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 20, Intermediate: 55, Advanced: 15, Expert: 10}, LiftTicket: 230, VibeTags: []string{"party", "family", "luxury"}, NonSkierScore: 9, ApresScore: 9, LodgingRange: domain.LodgingRange{200, 800}, SkiInOut: true},
	{Name: "Vail", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 39.6403, Lng: -106.3742}, NearestAirport: "EGE", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 18, Intermediate: 29, Advanced: 36, Expert: 17}, LiftTicket: 250, VibeTags: []string{"luxury", "party"}, NonSkierScore: 8, ApresScore: 9, LodgingRange: domain.LodgingRange{250, 1000}, SkiInOut: true},
	{Name: "Park City", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 40.6461, Lng: -111.498}, NearestAirport: "SLC", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 17, Intermediate: 52, Advanced: 19, Expert: 12}, LiftTicket: 220, VibeTags: []string{"family", "luxury", "party"}, NonSkierScore: 9, ApresScore: 8, LodgingRange: domain.LodgingRange{180, 700}, SkiInOut: true},
	{Name: "Jackson Hole", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 43.5877, Lng: -110.828}, NearestAirport: "JAC", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 10, Intermediate: 40, Advanced: 30, Expert: 20}, LiftTicket: 210, VibeTags: []string{"expert", "scenic"}, NonSkierScore: 7, ApresScore: 7, LodgingRange: domain.LodgingRange{200, 800}, SkiInOut: true},
	{Name: "Telluride", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 37.9375, Lng: -107.8123}, NearestAirport: "MTJ", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 23, Intermediate: 36, Advanced: 23, Expert: 18}, LiftTicket: 215, VibeTags: []string{"scenic", "luxury", "relaxed"}, NonSkierScore: 8, ApresScore: 7, LodgingRange: domain.LodgingRange{200, 900}, SkiInOut: true},
	{Name: "Mammoth Mountain", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 37.6308, Lng: -119.0326}, NearestAirport: "MMH", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 25, Intermediate: 40, Advanced: 20, Expert: 15}, LiftTicket: 185, VibeTags: []string{"party", "value"}, NonSkierScore: 5, ApresScore: 7, LodgingRange: domain.LodgingRange{120, 400}, SkiInOut: false},
	{Name: "Steamboat", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 40.457, Lng: -106.8045}, NearestAirport: "HDN", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 14, Intermediate: 42, Advanced: 30, Expert: 14}, LiftTicket: 195, VibeTags: []string{"family", "relaxed"}, NonSkierScore: 7, ApresScore: 6, LodgingRange: domain.LodgingRange{150, 500}, SkiInOut: true},
	{Name: "Stowe", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 44.5303, Lng: -72.7815}, NearestAirport: "BTV", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 16, Intermediate: 59, Advanced: 17, Expert: 8}, LiftTicket: 180, VibeTags: []string{"scenic", "relaxed", "luxury"}, NonSkierScore: 8, ApresScore: 7, LodgingRange: domain.LodgingRange{150, 600}, SkiInOut: false},
	{Name: "Sunday River", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 44.4734, Lng: -70.8564}, NearestAirport: "PWM", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 30, Intermediate: 36, Advanced: 22, Expert: 12}, LiftTicket: 135, VibeTags: []string{"family", "value"}, NonSkierScore: 5, ApresScore: 5, LodgingRange: domain.LodgingRange{100, 300}, SkiInOut: true},
	{Name: "Killington", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 43.6045, Lng: -72.8201}, NearestAirport: "BTV", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 28, Intermediate: 33, Advanced: 21, Expert: 18}, LiftTicket: 155, VibeTags: []string{"party", "value"}, NonSkierScore: 5, ApresScore: 8, LodgingRange: domain.LodgingRange{100, 350}, SkiInOut: false},
	{Name: "Big Sky", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 45.2838, Lng: -111.4014}, NearestAirport: "BZN", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 15, Intermediate: 25, Advanced: 35, Expert: 25}, LiftTicket: 200, VibeTags: []string{"expert", "scenic", "relaxed"}, NonSkierScore: 5, ApresScore: 5, LodgingRange: domain.LodgingRange{150, 600}, SkiInOut: true},
	{Name: "Taos Ski Valley", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 36.5964, Lng: -105.4544}, NearestAirport: "ABQ", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 24, Intermediate: 25, Advanced: 25, Expert: 26}, LiftTicket: 145, VibeTags: []string{"expert", "value", "relaxed"}, NonSkierScore: 6, ApresScore: 5, LodgingRange: domain.LodgingRange{100, 350}, SkiInOut: true},
	{Name: "Alta", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 40.5884, Lng: -111.6386}, NearestAirport: "SLC", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 25, Intermediate: 40, Advanced: 20, Expert: 15}, LiftTicket: 150, VibeTags: []string{"expert", "value", "relaxed"}, NonSkierScore: 2, ApresScore: 3, LodgingRange: domain.LodgingRange{120, 400}, SkiInOut: true},
	{Name: "Snowbird", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 40.5830, Lng: -111.6508}, NearestAirport: "SLC", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 27, Intermediate: 38, Advanced: 20, Expert: 15}, LiftTicket: 170, VibeTags: []string{"expert", "scenic"}, NonSkierScore: 4, ApresScore: 5, LodgingRange: domain.LodgingRange{150, 500}, SkiInOut: true},
	{Name: "Arapahoe Basin", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 39.6426, Lng: -105.8718}, NearestAirport: "DEN", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 10, Intermediate: 30, Advanced: 37, Expert: 23}, LiftTicket: 120, VibeTags: []string{"expert", "value"}, NonSkierScore: 2, ApresScore: 4, LodgingRange: domain.LodgingRange{80, 200}, SkiInOut: false},
	{Name: "Banff Sunshine", Country: "Canada", Region: "North America", Coords: domain.Coords{Lat: 51.0783, Lng: -115.7731}, NearestAirport: "YYC", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 20, Intermediate: 55, Advanced: 15, Expert: 10}, LiftTicket: 140, VibeTags: []string{"scenic", "value", "family"}, NonSkierScore: 7, ApresScore: 6, LodgingRange: domain.LodgingRange{120, 400}, SkiInOut: false},
	{Name: "Lake Louise", Country: "Canada", Region: "North America", Coords: domain.Coords{Lat: 51.4254, Lng: -116.1773}, NearestAirport: "YYC", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 25, Intermediate: 45, Advanced: 20, Expert: 10}, LiftTicket: 135, VibeTags: []string{"scenic", "relaxed", "luxury"}, NonSkierScore: 8, ApresScore: 5, LodgingRange: domain.LodgingRange{150, 600}, SkiInOut: false},
	{Name: "Mont-Tremblant", Country: "Canada", Region: "North America", Coords: domain.Coords{Lat: 46.2149, Lng: -74.5853}, NearestAirport: "YUL", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 26, Intermediate: 32, Advanced: 28, Expert: 14}, LiftTicket: 115, VibeTags: []string{"party", "family", "value"}, NonSkierScore: 8, ApresScore: 8, LodgingRange: domain.LodgingRange{100, 400}, SkiInOut: true},
	{Name: "Revelstoke", Country: "Canada", Region: "North America", Coords: domain.Coords{Lat: 51.0285, Lng: -118.1690}, NearestAirport: "YLW", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 7, Intermediate: 38, Advanced: 30, Expert: 25}, LiftTicket: 130, VibeTags: []string{"expert", "scenic"}, NonSkierScore: 4, ApresScore: 4, LodgingRange: domain.LodgingRange{100, 350}, SkiInOut: false},
	{Name: "Chamonix", Country: "France", Region: "Europe", Coords: domain.Coords{Lat: 45.9237, Lng: 6.8694}, NearestAirport: "GVA", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 15, Intermediate: 30, Advanced: 30, Expert: 25}, LiftTicket: 70, VibeTags: []string{"expert", "party", "scenic"}, NonSkierScore: 8, ApresScore: 8, LodgingRange: domain.LodgingRange{100, 500}, SkiInOut: false},
	{Name: "Verbier", Country: "Switzerland", Region: "Europe", Coords: domain.Coords{Lat: 46.0967, Lng: 7.2286}, NearestAirport: "GVA", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 15, Intermediate: 35, Advanced: 30, Expert: 20}, LiftTicket: 85, VibeTags: []string{"expert", "party", "luxury"}, NonSkierScore: 7, ApresScore: 9, LodgingRange: domain.LodgingRange{180, 800}, SkiInOut: false},
	{Name: "Zermatt", Country: "Switzerland", Region: "Europe", Coords: domain.Coords{Lat: 46.0207, Lng: 7.7491}, NearestAirport: "GVA", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 20, Intermediate: 45, Advanced: 25, Expert: 10}, LiftTicket: 90, VibeTags: []string{"scenic", "luxury", "relaxed"}, NonSkierScore: 8, ApresScore: 7, LodgingRange: domain.LodgingRange{200, 900}, SkiInOut: false},
	{Name: "Val d'Isère", Country: "France", Region: "Europe", Coords: domain.Coords{Lat: 45.4486, Lng: 6.9797}, NearestAirport: "GVA", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 16, Intermediate: 40, Advanced: 28, Expert: 16}, LiftTicket: 65, VibeTags: []string{"party", "expert"}, NonSkierScore: 6, ApresScore: 9, LodgingRange: domain.LodgingRange{150, 600}, SkiInOut: true},
	{Name: "Courchevel", Country: "France", Region: "Europe", Coords: domain.Coords{Lat: 45.4153, Lng: 6.6346}, NearestAirport: "GVA", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 25, Intermediate: 40, Advanced: 25, Expert: 10}, LiftTicket: 70, VibeTags: []string{"luxury", "family"}, NonSkierScore: 9, ApresScore: 8, LodgingRange: domain.LodgingRange{250, 1200}, SkiInOut: true},
	{Name: "St. Anton", Country: "Austria", Region: "Europe", Coords: domain.Coords{Lat: 47.1275, Lng: 10.2636}, NearestAirport: "INN", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 15, Intermediate: 40, Advanced: 30, Expert: 15}, LiftTicket: 65, VibeTags: []string{"party", "expert"}, NonSkierScore: 6, ApresScore: 10, LodgingRange: domain.LodgingRange{120, 500}, SkiInOut: true},
	{Name: "Kitzbühel", Country: "Austria", Region: "Europe", Coords: domain.Coords{Lat: 47.4492, Lng: 12.3925}, NearestAirport: "INN", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 25, Intermediate: 45, Advanced: 20, Expert: 10}, LiftTicket: 60, VibeTags: []string{"scenic", "luxury", "party"}, NonSkierScore: 8, ApresScore: 9, LodgingRange: domain.LodgingRange{130, 500}, SkiInOut: false},
	{Name: "Axamer Lizum", Country: "Austria", Region: "Europe", Coords: domain.Coords{Lat: 47.1911, Lng: 11.2895}, NearestAirport: "INN", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 30, Intermediate: 40, Advanced: 20, Expert: 10}, LiftTicket: 50, VibeTags: []string{"value", "family"}, NonSkierScore: 6, ApresScore: 5, LodgingRange: domain.LodgingRange{80, 250}, SkiInOut: false},
	{Name: "Les Arcs", Country: "France", Region: "Europe", Coords: domain.Coords{Lat: 45.5728, Lng: 6.8039}, NearestAirport: "GVA", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 22, Intermediate: 43, Advanced: 25, Expert: 10}, LiftTicket: 55, VibeTags: []string{"family", "value"}, NonSkierScore: 6, ApresScore: 6, LodgingRange: domain.LodgingRange{100, 400}, SkiInOut: true},
	{Name: "Tignes", Country: "France", Region: "Europe", Coords: domain.Coords{Lat: 45.4685, Lng: 6.9063}, NearestAirport: "GVA", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 20, Intermediate: 42, Advanced: 26, Expert: 12}, LiftTicket: 60, VibeTags: []string{"party", "value"}, NonSkierScore: 5, ApresScore: 7, LodgingRange: domain.LodgingRange{100, 400}, SkiInOut: true},
	{Name: "Niseko", Country: "Japan", Region: "Japan/Asia", Coords: domain.Coords{Lat: 42.8625, Lng: 140.6987}, NearestAirport: "CTS", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 30, Intermediate: 40, Advanced: 20, Expert: 10}, LiftTicket: 65, VibeTags: []string{"party", "family", "scenic"}, NonSkierScore: 9, ApresScore: 8, LodgingRange: domain.LodgingRange{80, 400}, SkiInOut: false},
	{Name: "Hakuba", Country: "Japan", Region: "Japan/Asia", Coords: domain.Coords{Lat: 36.6983, Lng: 137.8321}, NearestAirport: "NRT", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 30, Intermediate: 40, Advanced: 20, Expert: 10}, LiftTicket: 50, VibeTags: []string{"value", "scenic", "family"}, NonSkierScore: 8, ApresScore: 6, LodgingRange: domain.LodgingRange{60, 250}, SkiInOut: false},
	{Name: "Furano", Country: "Japan", Region: "Japan/Asia", Coords: domain.Coords{Lat: 43.3389, Lng: 142.3832}, NearestAirport: "CTS", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 40, Intermediate: 40, Advanced: 15, Expert: 5}, LiftTicket: 45, VibeTags: []string{"relaxed", "value", "scenic"}, NonSkierScore: 7, ApresScore: 5, LodgingRange: domain.LodgingRange{50, 200}, SkiInOut: false},
	{Name: "Nozawa Onsen", Country: "Japan", Region: "Japan/Asia", Coords: domain.Coords{Lat: 36.9270, Lng: 138.6252}, NearestAirport: "NRT", Passes: []domain.Pass{domain.PassNone}, Terrain: domain.Terrain{Beginner: 30, Intermediate: 40, Advanced: 20, Expert: 10}, LiftTicket: 45, VibeTags: []string{"relaxed", "scenic", "value"}, NonSkierScore: 8, ApresScore: 6, LodgingRange: domain.LodgingRange{50, 200}, SkiInOut: false},
	{Name: "Aspen Snowmass", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 39.2084, Lng: -106.9490}, NearestAirport: "ASE", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 20, Intermediate: 35, Advanced: 28, Expert: 17}, LiftTicket: 230, VibeTags: []string{"luxury", "party", "scenic"}, NonSkierScore: 9, ApresScore: 9, LodgingRange: domain.LodgingRange{250, 1200}, SkiInOut: true},
	{Name: "Deer Valley", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 40.6374, Lng: -111.4783}, NearestAirport: "SLC", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 27, Intermediate: 41, Advanced: 24, Expert: 8}, LiftTicket: 240, VibeTags: []string{"luxury", "family", "relaxed"}, NonSkierScore: 8, ApresScore: 7, LodgingRange: domain.LodgingRange{300, 1000}, SkiInOut: true},
	{Name: "Breckenridge", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 39.4817, Lng: -106.0384}, NearestAirport: "DEN", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 15, Intermediate: 33, Advanced: 33, Expert: 19}, LiftTicket: 210, VibeTags: []string{"party", "family"}, NonSkierScore: 7, ApresScore: 8, LodgingRange: domain.LodgingRange{150, 600}, SkiInOut: true},
	{Name: "Copper Mountain", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 39.5022, Lng: -106.1497}, NearestAirport: "DEN", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 21, Intermediate: 25, Advanced: 36, Expert: 18}, LiftTicket: 165, VibeTags: []string{"value", "family"}, NonSkierScore: 5, ApresScore: 5, LodgingRange: domain.LodgingRange{100, 350}, SkiInOut: true},
	{Name: "Squaw Valley / Palisades", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 39.1968, Lng: -120.2354}, NearestAirport: "RNO", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 25, Intermediate: 40, Advanced: 20, Expert: 15}, LiftTicket: 195, VibeTags: []string{"party", "expert", "scenic"}, NonSkierScore: 7, ApresScore: 8, LodgingRange: domain.LodgingRange{150, 600}, SkiInOut: false},
	{Name: "Sun Valley", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 43.6972, Lng: -114.3514}, NearestAirport: "SUN", Passes: []domain.Pass{domain.PassEpic}, Terrain: domain.Terrain{Beginner: 36, Intermediate: 42, Advanced: 14, Expert: 8}, LiftTicket: 175, VibeTags: []string{"luxury", "scenic", "relaxed"}, NonSkierScore: 7, ApresScore: 6, LodgingRange: domain.LodgingRange{150, 600}, SkiInOut: false},
	{Name: "Winter Park", Country: "USA", Region: "North America", Coords: domain.Coords{Lat: 39.8868, Lng: -105.7625}, NearestAirport: "DEN", Passes: []domain.Pass{domain.PassIkon}, Terrain: domain.Terrain{Beginner: 8, Intermediate: 17, Advanced: 42, Expert: 33}, LiftTicket: 170, VibeTags: []string{"value", "expert"}, NonSkierScore: 4, ApresScore: 5, LodgingRange: domain.LodgingRange{100, 350}, SkiInOut: false},
}

var resortIndex = func() map[string]int {
	m := make(map[string]int, len(resorts))
	for i, r := range resorts {
		m[r.Name] = i
	}
	return m
}()

// Resorts returns a copy of the full catalog.
func Resorts() []domain.ResortProfile {
	out := make([]domain.ResortProfile, len(resorts))
	copy(out, resorts)
	return out
}

// ResortsIn filters by region. An empty filter, or one naming NoPreference, returns everything.
func ResortsIn(regions []string) []domain.ResortProfile {
	if len(regions) == 0 {
		return Resorts()
	}
	want := map[string]bool{}
	for _, r := range regions {
		if strings.EqualFold(strings.TrimSpace(r), NoPreference) {
			return Resorts()
		}
		want[strings.ToLower(strings.TrimSpace(r))] = true
	}
	var out []domain.ResortProfile
	for _, r := range resorts {
		if want[strings.ToLower(r.Region)] {
			out = append(out, r)
		}
	}
	return out
}

// Lookup finds a resort by exact name, then case-insensitively.
func Lookup(name string) (domain.ResortProfile, bool) {
	if i, ok := resortIndex[name]; ok {
		return resorts[i], true
	}
	n := strings.TrimSpace(name)
	for _, r := range resorts {
		if strings.EqualFold(r.Name, n) {
			return r, true
		}
	}
	return domain.ResortProfile{}, false
}
