package domain

type Pass string

const (
	PassEpic Pass = "epic"
	PassIkon Pass = "ikon"
	PassNone Pass = "none"
)

// Terrain is the share of runs per difficulty, in percent.
type Terrain struct {
	Beginner     int `json:"beginner"`
	Intermediate int `json:"intermediate"`
	Advanced     int `json:"advanced"`
	Expert       int `json:"expert"`
}

func (t Terrain) Total() int { return t.Beginner + t.Intermediate + t.Advanced + t.Expert }

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LodgingRange is a [low, high] nightly price band in USD.
type LodgingRange [2]int

type ResortProfile struct {
	Name           string       `json:"name"`
	Country        string       `json:"country"`
	Region         string       `json:"region"`
	Coords         Coords       `json:"coords"`
	NearestAirport string       `json:"nearestAirport"`
	Passes         []Pass       `json:"pass"`
	Terrain        Terrain      `json:"terrain"`
	LiftTicket     int          `json:"liftTicket"`
	VibeTags       []string     `json:"vibeTags"`
	NonSkierScore  int          `json:"nonSkierScore"`
	ApresScore     int          `json:"apresScore"`
	LodgingRange   LodgingRange `json:"lodgingRange"`
	SkiInOut       bool         `json:"skiInOut"`
}

func (r ResortProfile) HasPass(p Pass) bool {
	for _, x := range r.Passes {
		if x == p {
			return true
		}
	}
	return false
}

// ResortWithSnow is a profile merged with the snapshot fetched for one request.
type ResortWithSnow struct {
	ResortProfile
	Snow SnowSnapshot `json:"snow"`
}
