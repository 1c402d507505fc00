package catalog

const (
	AllianceOneworld = "Oneworld"
	AllianceStar     = "Star Alliance"
	AllianceSkyTeam  = "SkyTeam"
)

var allianceMembers = map[string][]string{
	AllianceOneworld: {"AA", "BA", "IB", "CX", "QF", "JL", "AY", "MH", "QR", "AS"},
	AllianceStar:     {"UA", "LH", "SQ", "AC", "TK", "LX", "OS", "SK", "NH", "CA", "OZ"},
	AllianceSkyTeam:  {"DL", "AF", "KL", "KE", "MU", "CZ", "AM"},
}

var carrierAlliance = func() map[string]string {
	m := map[string]string{}
	for a, codes := range allianceMembers {
		for _, c := range codes {
			m[c] = a
		}
	}
	return m
}()

// AllianceOf returns the alliance a carrier code belongs to, or "".
func AllianceOf(carrier string) string { return carrierAlliance[carrier] }

// HasAllianceCarrier reports whether any of the carriers is an alliance member.
func HasAllianceCarrier(carriers []string) bool {
	for _, c := range carriers {
		if _, ok := carrierAlliance[c]; ok {
			return true
		}
	}
	return false
}
