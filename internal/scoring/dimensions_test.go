package scoring

import (
	"testing"
)

func boolPtr(v bool) *bool { return &v }

func TestTokenomics(t *testing.T) {
	tests := []struct {
		name       string
		allocation float64
		fair       bool
		want       int
	}{
		{"at 10 fair", 10, true, 20},
		{"at 15 fair", 15, true, 18},
		{"at 20 fair", 20, true, 16},
		{"at 25 fair", 25, true, 14},
		{"at 30 fair", 30, true, 12},
		{"over 30 fair", 30.5, true, 10},
		{"zero unfair", 0, false, 15},
		{"over 30 unfair", 80, false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenomics(Input{TeamAllocationPercent: tt.allocation, SupplyDistributionFair: tt.fair})
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVesting(t *testing.T) {
	tests := []struct {
		months int
		locks  bool
		want   int
	}{
		{48, true, 20},
		{36, false, 15},
		{24, true, 18},
		{18, false, 10},
		{12, true, 12},
		{6, false, 3},
		{5, true, 5},
		{0, false, 0},
	}
	for _, tt := range tests {
		got := Vesting(Input{TeamVestingMonths: tt.months, HasFounderLocks: tt.locks})
		if got != tt.want {
			t.Errorf("Vesting(months=%d, locks=%v) = %d, want %d", tt.months, tt.locks, got, tt.want)
		}
	}
}

func TestDocumentation(t *testing.T) {
	t.Run("full marks", func(t *testing.T) {
		got := Documentation(Input{HasWhitepaper: boolPtr(true), DocumentationClarity: 10, HasRoadmap: true})
		if got != 15 {
			t.Errorf("expected 15, got %d", got)
		}
	})

	t.Run("half point rounds up", func(t *testing.T) {
		got := Documentation(Input{HasWhitepaper: boolPtr(true), DocumentationClarity: 9, HasRoadmap: true})
		if got != 15 {
			t.Errorf("expected 14.5 to round to 15, got %d", got)
		}
	})

	t.Run("url fallback", func(t *testing.T) {
		got := Documentation(Input{WhitepaperURL: "https://example.com/wp.pdf"})
		if got != 7 {
			t.Errorf("expected 7 from whitepaper url, got %d", got)
		}
	})

	t.Run("explicit false overrides url", func(t *testing.T) {
		got := Documentation(Input{HasWhitepaper: boolPtr(false), WhitepaperURL: "https://example.com/wp.pdf"})
		if got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("clarity only", func(t *testing.T) {
		got := Documentation(Input{DocumentationClarity: 7})
		if got != 4 {
			t.Errorf("expected 3.5 to round to 4, got %d", got)
		}
	})
}

func TestTeamHistory(t *testing.T) {
	tests := []struct {
		name   string
		prior  int
		record TrackRecord
		want   int
	}{
		{"veteran good", 5, TrackRecordGood, 15},
		{"experienced good", 3, TrackRecordGood, 13},
		{"some neutral", 1, TrackRecordNeutral, 8},
		{"first-time neutral", 0, TrackRecordNeutral, 6},
		{"first-time bad", 0, TrackRecordBad, 2},
		{"veteran bad", 9, TrackRecordBad, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TeamHistory(Input{PriorProjects: tt.prior, TrackRecord: tt.record})
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCommunity(t *testing.T) {
	tests := []struct {
		name     string
		twitter  int
		discord  int
		activity float64
		want     int
	}{
		{"max", 10000, 5000, 10, 15},
		{"bands 4/4", 5000, 2000, 0, 8},
		{"bands 3/3", 1000, 1000, 0, 6},
		{"bands 2/2", 500, 500, 0, 4},
		{"bands 1/1", 100, 100, 0, 2},
		{"nothing", 99, 99, 0, 0},
		{"activity only", 0, 0, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Community(Input{TwitterFollowers: tt.twitter, DiscordMembers: tt.discord, GithubActivity: tt.activity})
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAuditAndLaunchReadiness(t *testing.T) {
	if got := Audit(Input{HasAudit: true, HasBugBounty: true}); got != 10 {
		t.Errorf("audit full: expected 10, got %d", got)
	}
	if got := Audit(Input{HasAudit: true}); got != 7 {
		t.Errorf("audit only: expected 7, got %d", got)
	}
	if got := Audit(Input{HasBugBounty: true}); got != 3 {
		t.Errorf("bug bounty only: expected 3, got %d", got)
	}
	if got := LaunchReadiness(Input{HasKYC: true}); got != 5 {
		t.Errorf("kyc: expected 5, got %d", got)
	}
	if got := LaunchReadiness(Input{}); got != 2 {
		t.Errorf("no kyc still earns partial credit: expected 2, got %d", got)
	}
}

func TestCapsSumToMaxScore(t *testing.T) {
	sum := CapTokenomics + CapVesting + CapDocumentation + CapTeamHistory +
		CapCommunity + CapAudit + CapLaunchReadiness
	if sum != MaxScore {
		t.Errorf("caps sum to %d, expected %d", sum, MaxScore)
	}
}
