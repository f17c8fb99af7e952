// Package migrate applies one-time data-shape fixups to previously persisted
// collections when the schema evolves.
package migrate

import "github.com/AvinashMishraaa/Talentflow/internal/domain"

// Result reports which collections were mutated, so callers persist only those.
type Result struct {
	CandidatesChanged bool
	TimelinesChanged  bool
}

func (r Result) Changed() bool {
	return r.CandidatesChanged || r.TimelinesChanged
}

// Run rewrites the legacy "interview" stage to "tech" in candidates and
// timeline entries, in place. Running it twice on clean data is a no-op.
func Run(candidates []domain.Candidate, timelines map[int][]domain.TimelineEntry) Result {
	var res Result
	for i := range candidates {
		if candidates[i].Stage == domain.StageLegacyInterview {
			candidates[i].Stage = domain.StageTech
			res.CandidatesChanged = true
		}
	}
	for id, list := range timelines {
		for i := range list {
			if list[i].To == domain.StageLegacyInterview {
				list[i].To = domain.StageTech
				res.TimelinesChanged = true
			}
			if list[i].From != nil && *list[i].From == domain.StageLegacyInterview {
				tech := domain.StageTech
				list[i].From = &tech
				res.TimelinesChanged = true
			}
		}
		timelines[id] = list
	}
	return res
}
