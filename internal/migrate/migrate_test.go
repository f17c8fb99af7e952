package migrate

import (
	"testing"

	"github.com/AvinashMishraaa/Talentflow/internal/domain"
)

func TestRunRewritesLegacyStage(t *testing.T) {
	legacy := domain.StageLegacyInterview
	candidates := []domain.Candidate{
		{ID: 1, Stage: domain.StageApplied},
		{ID: 2, Stage: legacy},
	}
	timelines := map[int][]domain.TimelineEntry{
		1: {{ID: "1-0", To: domain.StageApplied}},
		2: {
			{ID: "2-0", To: legacy},
			{ID: "2-1", From: &legacy, To: domain.StageOffer},
		},
	}

	res := Run(candidates, timelines)
	if !res.CandidatesChanged || !res.TimelinesChanged {
		t.Fatalf("expected both collections changed, got %+v", res)
	}
	if candidates[0].Stage != domain.StageApplied {
		t.Error("clean candidate should be untouched")
	}
	if candidates[1].Stage != domain.StageTech {
		t.Errorf("candidate stage = %s, want tech", candidates[1].Stage)
	}
	if timelines[2][0].To != domain.StageTech {
		t.Errorf("timeline to = %s, want tech", timelines[2][0].To)
	}
	if timelines[2][1].From == nil || *timelines[2][1].From != domain.StageTech {
		t.Error("timeline from should be rewritten to tech")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	legacy := domain.StageLegacyInterview
	candidates := []domain.Candidate{{ID: 1, Stage: legacy}}
	timelines := map[int][]domain.TimelineEntry{1: {{ID: "1-0", To: legacy}}}

	if res := Run(candidates, timelines); !res.Changed() {
		t.Fatal("first run should report changes")
	}
	if res := Run(candidates, timelines); res.Changed() {
		t.Fatalf("second run should be a no-op, got %+v", res)
	}
}

func TestRunOnCleanDataReportsNoChanges(t *testing.T) {
	candidates := []domain.Candidate{{ID: 1, Stage: domain.StageHired}}
	timelines := map[int][]domain.TimelineEntry{1: {{ID: "1-0", To: domain.StageHired}}}
	if res := Run(candidates, timelines); res.Changed() {
		t.Fatalf("clean data should not change, got %+v", res)
	}
}
