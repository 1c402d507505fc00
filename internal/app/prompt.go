package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ski_planner/internal/domain"
)

const systemPrompt = `You are an expert ski trip planner. Given a group's preferences, budget, skill levels, origin airports, pass types, vibe, real snow data, lodging options and flight offers, recommend the top 3 ski resorts.

For each resort provide:
1. matchScore (0-100)
2. summary: 2-sentence summary for this group
3. whyThisResort: 3-5 sentence explanation
4. costBreakdown per person: flights_avg (use the flight offers when given, otherwise estimate from origin airports), lodging_per_person, lift_tickets (with pass discounts), misc ($50-100/day), total
5. vibeMatchTags: array of emoji+label strings (e.g. "🎉 Après Scene ✓")
6. itinerary: day-by-day sample covering the trip nights
7. warnings: array of strings
8. snowConditions from the provided data
9. lodgingRecommendation: best option for the group
10. flightDetailsPerGuest: flights per guest based on their origin airport

When a section below says data is unavailable, estimate and add a warning saying so. Never invent snow figures.

Return ONLY valid JSON in this exact format:
{
  "recommendations": [
    {
      "resortName": "string",
      "matchScore": number,
      "summary": "string",
      "whyThisResort": "string",
      "costBreakdown": { "flights_avg": number, "lodging_per_person": number, "lift_tickets": number, "misc": number, "total": number },
      "vibeMatchTags": ["string"],
      "itinerary": [{ "day": 1, "morning": "string", "afternoon": "string", "evening": "string" }],
      "warnings": ["string"],
      "snowConditions": { "currentSnowDepth": number, "last24hrSnowfall": number, "last7daysSnowfall": number, "seasonTotalSnowfall": number, "isHistorical": boolean, "historicalSnowDepth": number, "historicalSnowfall": number },
      "lodgingRecommendation": { "name": "string", "type": "string", "units": number, "pricePerNight": number, "costPerPerson": number },
      "flightDetailsPerGuest": [{ "guestName": "string", "origin": "string", "destinationAirport": "string", "estimatedCost": number, "airline": "string", "stops": number, "duration": "string" }]
    }
  ]
}`

const (
	noGuests      = "No guests submitted yet."
	noLodging     = "No lodging data available, please estimate."
	noSnowData    = "snow data unavailable (fetch failed, do not assume zero snow)"
	noFlightData  = "No flight data available: estimate fares from origin airports and say so in warnings."
	flexibleDates = "flexible"
)

// Vibe is the trip mood parsed from "energy:70,budget:40,skill:50,ski-in-out:true".
type Vibe struct {
	Energy   int
	Budget   int
	Skill    int
	SkiInOut bool
}

// ParseVibe reads the comma separated key:value form; missing or malformed
// keys keep their defaults of 50 and false.
func ParseVibe(s string) Vibe {
	v := Vibe{Energy: 50, Budget: 50, Skill: 50}
	for _, part := range strings.Split(s, ",") {
		key, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		switch key {
		case "energy", "budget", "skill":
			n, err := strconv.Atoi(val)
			if err != nil {
				continue
			}
			switch key {
			case "energy":
				v.Energy = n
			case "budget":
				v.Budget = n
			case "skill":
				v.Skill = n
			}
		case "ski-in-out":
			if b, err := strconv.ParseBool(val); err == nil {
				v.SkiInOut = b
			}
		}
	}
	return v
}

// PromptInput is everything the model sees for one trip.
type PromptInput struct {
	Trip    domain.Trip
	Guests  []domain.Guest
	Resorts []domain.ResortWithSnow
	Lodging map[string]domain.ResortLodging
	// Flights is nil when no search ran.
	Flights *FlightResult
}

// BuildPrompt returns the system instruction and the user message.
func BuildPrompt(in PromptInput) (string, string) {
	var b strings.Builder
	writeTrip(&b, in.Trip)
	b.WriteString("\n## Guests\n")
	writeGuests(&b, in.Guests)
	b.WriteString("\n## Available Resorts with Snow Data\n")
	writeResorts(&b, in.Resorts)
	b.WriteString("\n## Lodging Options\n")
	writeLodging(&b, in.Resorts, in.Lodging)
	b.WriteString("\n## Flight Offers\n")
	writeFlights(&b, in.Flights)
	b.WriteString("\nPlease recommend the top 3 resorts for this group.")
	return systemPrompt, b.String()
}

func writeTrip(b *strings.Builder, t domain.Trip) {
	vibe := ParseVibe(t.Vibe)
	geo := strings.Join(t.Geography, ", ")
	if geo == "" {
		geo = "No preference"
	}
	passes := strings.Join(t.PassTypes, ", ")
	if passes == "" {
		passes = "None"
	}
	lodging := t.LodgingPreference
	if lodging == "" {
		lodging = "No preference"
	}
	budget := "unspecified"
	if t.BudgetAmount != nil {
		scope := "total"
		if t.BudgetType == "per_person" {
			scope = "per person"
		}
		budget = fmt.Sprintf("$%s %s", num(*t.BudgetAmount), scope)
	}

	b.WriteString("## Trip Details\n")
	fmt.Fprintf(b, "- Name: %s\n", t.Name)
	fmt.Fprintf(b, "- Dates: %s to %s (%d nights)\n", dateOr(t.DateStart), dateOr(t.DateEnd), t.Nights())
	fmt.Fprintf(b, "- Group size: %d\n", t.GroupSize)
	fmt.Fprintf(b, "- Geography preference: %s\n", geo)
	fmt.Fprintf(b, "- Vibe: Energy %d/100 (0=relaxed, 100=party), Budget %d/100 (0=value, 100=luxury), Skill %d/100, Ski-in/out: %t\n",
		vibe.Energy, vibe.Budget, vibe.Skill, vibe.SkiInOut)
	fmt.Fprintf(b, "- Skill range: %s to %s\n", t.SkillMin, t.SkillMax)
	fmt.Fprintf(b, "- Budget: %s\n", budget)
	fmt.Fprintf(b, "- Pass types: %s\n", passes)
	fmt.Fprintf(b, "- Lodging preference: %s\n", lodging)
	if t.HasNonSkiers {
		imp := "unspecified"
		if t.NonSkierImportance != nil {
			imp = strconv.Itoa(*t.NonSkierImportance) + "/10"
		}
		fmt.Fprintf(b, "- Non-skiers in group: yes (importance %s)\n", imp)
	}
}

func writeGuests(b *strings.Builder, guests []domain.Guest) {
	if len(guests) == 0 {
		b.WriteString(noGuests + "\n")
		return
	}
	for _, g := range guests {
		airports := strings.Join(g.Airports, "/")
		if airports == "" {
			airports = "unknown"
		}
		fmt.Fprintf(b, "- %s: from %s (airport: %s), skill: %s, budget: $%s-$%s\n",
			g.Name, orUnknown(g.OriginCity), airports, orUnknown(g.SkillLevel), optNum(g.BudgetMin), optNum(g.BudgetMax))
	}
}

func writeResorts(b *strings.Builder, resorts []domain.ResortWithSnow) {
	for _, r := range resorts {
		passes := make([]string, len(r.Passes))
		for i, p := range r.Passes {
			passes[i] = string(p)
		}
		historical := ""
		if r.Snow.Mode == domain.SnowHistorical {
			historical = " (historical)"
		}
		snow := fmt.Sprintf("Snow depth: %scm, 7-day snowfall: %scm%s", num(r.Snow.Depth()), num(r.Snow.RecentSnowfall()), historical)
		if r.Snow.Unavailable {
			snow = noSnowData
		}
		t := r.Terrain
		fmt.Fprintf(b, "- %s (%s): Pass: %s, Terrain: %d%%beg/%d%%int/%d%%adv/%d%%exp, Lift: $%d, %s, Après: %d/10, Non-skier: %d/10, Ski-in/out: %t, Vibes: %s\n",
			r.Name, r.Country, strings.Join(passes, "/"),
			t.Beginner, t.Intermediate, t.Advanced, t.Expert,
			r.LiftTicket, snow,
			r.ApresScore, r.NonSkierScore, r.SkiInOut, strings.Join(r.VibeTags, ", "))
	}
}

func writeLodging(b *strings.Builder, resorts []domain.ResortWithSnow, lodging map[string]domain.ResortLodging) {
	if len(lodging) == 0 {
		b.WriteString(noLodging + "\n")
		return
	}
	for _, r := range resorts {
		l, ok := lodging[r.Name]
		if !ok {
			continue
		}
		best, ok := l.Best()
		if !ok {
			fmt.Fprintf(b, "- %s: no lodging data\n", r.Name)
			continue
		}
		fmt.Fprintf(b, "- %s: %s (%s, $%d/night, %d units needed, $%d/person total)\n",
			r.Name, best.Option.Name, best.Option.Type, best.Option.PricePerNight, best.Units, best.CostPerPerson)
	}
}

func writeFlights(b *strings.Builder, fr *FlightResult) {
	if fr == nil || len(fr.Flights) == 0 {
		b.WriteString(noFlightData + "\n")
		return
	}
	byAirport := map[string][]string{}
	for resort, code := range fr.ResortAirports {
		byAirport[code] = append(byAirport[code], resort)
	}
	for _, o := range fr.Origins {
		row := fr.Flights[o.Airport]
		dests := make([]string, 0, len(row))
		for d := range row {
			dests = append(dests, d)
		}
		sort.Strings(dests)
		guests := strings.Join(o.GuestNames, ", ")
		if guests == "" {
			guests = "unnamed guests"
		}
		fmt.Fprintf(b, "From %s (%s):\n", o.Airport, guests)
		for _, d := range dests {
			resorts := byAirport[d]
			sort.Strings(resorts)
			fmt.Fprintf(b, "- to %s (%s): %s\n", d, strings.Join(resorts, ", "), describePicks(row[d]))
		}
	}
}

func describePicks(p *domain.FlightPicks) string {
	if p == nil || p.Cheapest == nil {
		return "no data"
	}
	s := "cheapest " + describeOffer(*p.Cheapest)
	if p.MostDirect != nil {
		s += "; most direct " + describeOffer(*p.MostDirect)
	}
	return s
}

func describeOffer(o domain.FlightOffer) string {
	return fmt.Sprintf("$%s %s (%s, %d stops out, %d stops back, %s)",
		num(o.Price), o.Currency, strings.Join(o.Airlines, "/"), o.Outbound.Stops, o.Return.Stops, o.Outbound.Duration)
}

func dateOr(t *time.Time) string {
	if t == nil {
		return flexibleDates
	}
	return t.Format(time.DateOnly)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func optNum(v *float64) string {
	if v == nil {
		return "?"
	}
	return num(*v)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
