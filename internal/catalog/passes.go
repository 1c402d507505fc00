package catalog

import "ski_planner/internal/domain"

// ReferencePass is a multi-resort pass that recommendations report coverage for.
type ReferencePass struct {
	Label string
	Pass  domain.Pass
}

var referencePasses = []ReferencePass{
	{Label: "Ikon Pass", Pass: domain.PassIkon},
	{Label: "Epic Pass", Pass: domain.PassEpic},
}

func ReferencePasses() []ReferencePass {
	out := make([]ReferencePass, len(referencePasses))
	copy(out, referencePasses)
	return out
}
