package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagRulesIndependently(t *testing.T) {
	clean := strongInput()
	clean.GithubURL = "https://github.com/aurora/aurora"

	tests := []struct {
		rule     string
		mutate   func(in *Input)
		text     string
		severity Severity
	}{
		{"team_allocation", func(in *Input) { in.TeamAllocationPercent = 22.5 }, "High team allocation (22.5%), recommended <20%", SeverityMedium},
		{"supply_distribution", func(in *Input) { in.SupplyDistributionFair = false }, "Unbalanced token supply distribution", SeverityMedium},
		{"vesting", func(in *Input) { in.TeamVestingMonths = 6 }, "Short or no vesting period (6 months), recommended 12-36 months", SeverityMedium},
		{"founder_locks", func(in *Input) { in.HasFounderLocks = false }, "No founder wallet locks in place", SeverityMedium},
		{"whitepaper", func(in *Input) { in.HasWhitepaper = nil }, "No whitepaper available", SeverityMedium},
		{"roadmap", func(in *Input) { in.HasRoadmap = false }, "No public roadmap available", SeverityLow},
		{"track_record", func(in *Input) { in.TrackRecord = TrackRecordBad }, "Team has poor track record from previous projects", SeverityHigh},
		{"prior_projects", func(in *Input) { in.PriorProjects = 0 }, "Team has no prior project experience", SeverityLow},
		{"github", func(in *Input) { in.GithubURL = "" }, "No public GitHub repository", SeverityLow},
		{"twitter", func(in *Input) { in.TwitterFollowers = 99 }, "Limited social media presence", SeverityLow},
		{"audit", func(in *Input) { in.HasAudit = false }, "No security audit conducted (recommended for raises >$1M)", SeverityHigh},
		{"bug_bounty", func(in *Input) { in.HasBugBounty = false }, "No bug bounty program in place", SeverityLow},
		{"kyc", func(in *Input) { in.HasKYC = false }, "No KYC/legal compliance preparation", SeverityMedium},
	}

	assert.Len(t, tests, len(FlagRules))

	for i, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			assert.Equal(t, tt.rule, FlagRules[i].Name, "rule order")

			in := clean
			tt.mutate(&in)

			f, ok := FlagRules[i].Check(in)
			assert.True(t, ok)
			assert.Equal(t, RiskFlag{Text: tt.text, Severity: tt.severity}, f)

			_, ok = FlagRules[i].Check(clean)
			assert.False(t, ok)

			assert.Equal(t, []RiskFlag{f}, Flags(in))
		})
	}
}

func TestFlagsEmptyIsNotNil(t *testing.T) {
	in := strongInput()
	in.GithubURL = "https://github.com/aurora/aurora"
	flags := Flags(in)
	assert.NotNil(t, flags)
	assert.Empty(t, flags)
}

func TestFlagThresholdEdges(t *testing.T) {
	in := strongInput()
	in.GithubURL = "https://github.com/aurora/aurora"

	in.TeamAllocationPercent = 20
	assert.Empty(t, Flags(in), "20%% is within the recommendation")

	in.TeamAllocationPercent = 10
	in.TeamVestingMonths = 12
	assert.Empty(t, Flags(in), "12 months meets the minimum")

	in.TeamVestingMonths = 0
	f, ok := checkVesting(in)
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, f.Severity)

	in.TeamVestingMonths = 12
	in.TwitterFollowers = 100
	assert.Empty(t, Flags(in))
}

func TestFlagsDoNotAffectScore(t *testing.T) {
	in := strongInput()
	withURL := in
	withURL.GithubURL = "https://github.com/aurora/aurora"

	s := NewScorer(discardLogger())
	a, b := s.Score(in), s.Score(withURL)
	assert.NotEqual(t, len(a.Flags), len(b.Flags))
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Subscores, b.Subscores)
}
