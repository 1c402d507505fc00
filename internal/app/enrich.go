package app

import (
	"fmt"

	"ski_planner/internal/catalog"
	"ski_planner/internal/domain"
)

// Enrich overwrites the catalog-owned fields of each recommendation. The
// model's values for terrain, passes, location and ski-in/out are advisory
// only; a resort missing from the catalog gets them cleared.
func Enrich(recs []domain.Recommendation) []string {
	var warnings []string
	refs := catalog.ReferencePasses()
	for i := range recs {
		r := &recs[i]
		meta, ok := catalog.Lookup(r.ResortName)
		if !ok {
			r.TerrainBreakdown, r.PassCoverage, r.Country, r.Region, r.SkiInOut = nil, nil, "", "", nil
			warnings = append(warnings, fmt.Sprintf("%q is not a known resort; catalog details omitted", r.ResortName))
			continue
		}
		r.ResortName = meta.Name
		terrain := meta.Terrain
		r.TerrainBreakdown = &terrain
		r.PassCoverage = make([]domain.PassCoverage, len(refs))
		for j, p := range refs {
			r.PassCoverage[j] = domain.PassCoverage{Pass: p.Label, Covered: meta.HasPass(p.Pass)}
		}
		r.Country = meta.Country
		r.Region = meta.Region
		skiInOut := meta.SkiInOut
		r.SkiInOut = &skiInOut
	}
	return warnings
}

// SummarizeFlights transposes the per-guest flight details into
// "guestName (origin)" -> resort -> estimated cost.
func SummarizeFlights(recs []domain.Recommendation) domain.FlightSummary {
	out := domain.FlightSummary{}
	for _, r := range recs {
		for _, fd := range r.FlightDetailsPerGuest {
			key := fmt.Sprintf("%s (%s)", fd.GuestName, fd.Origin)
			row, ok := out[key]
			if !ok {
				row = map[string]*float64{}
				out[key] = row
			}
			var cost *float64
			if fd.EstimatedCost != nil {
				v := fd.EstimatedCost.Float()
				cost = &v
			}
			row[r.ResortName] = cost
		}
	}
	return out
}
