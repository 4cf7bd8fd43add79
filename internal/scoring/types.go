package scoring

// TrackRecord is the team's historical reputation.
type TrackRecord string

const (
	TrackRecordGood    TrackRecord = "good"
	TrackRecordNeutral TrackRecord = "neutral"
	TrackRecordBad     TrackRecord = "bad"
)

// Valid reports whether r is one of the known track records.
func (r TrackRecord) Valid() bool {
	switch r {
	case TrackRecordGood, TrackRecordNeutral, TrackRecordBad:
		return true
	}
	return false
}

// Grade is the traffic-light classification of a composite score.
type Grade string

const (
	GradeGreen  Grade = "Green"
	GradeYellow Grade = "Yellow"
	GradeRed    Grade = "Red"
)

// Severity of a risk flag.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Dimension caps. They sum to MaxScore.
const (
	CapTokenomics      = 20
	CapVesting         = 20
	CapDocumentation   = 15
	CapTeamHistory     = 15
	CapCommunity       = 15
	CapAudit           = 10
	CapLaunchReadiness = 5

	MaxScore = 100
)

// Input is the fully populated set of facts about one project. Callers build it
// through the intake package, which validates ranges and backfills defaults;
// the evaluators assume every field is in range.
type Input struct {
	Name string `json:"name,omitempty" yaml:"name"`

	WhitepaperURL string `json:"whitepaperUrl,omitempty" yaml:"whitepaperUrl"`
	GithubURL     string `json:"githubUrl,omitempty" yaml:"githubUrl"`

	TeamAllocationPercent  float64 `json:"teamAllocationPercent" yaml:"teamAllocationPercent"`
	TeamVestingMonths      int     `json:"teamVestingMonths" yaml:"teamVestingMonths"`
	HasFounderLocks        bool    `json:"hasFounderLocks" yaml:"hasFounderLocks"`
	SupplyDistributionFair bool    `json:"supplyDistributionFair" yaml:"supplyDistributionFair"`

	// HasWhitepaper nil means "not stated"; whitepaper presence then falls back
	// to WhitepaperURL being set.
	HasWhitepaper        *bool   `json:"hasWhitepaper,omitempty" yaml:"hasWhitepaper"`
	HasRoadmap           bool    `json:"hasRoadmap" yaml:"hasRoadmap"`
	DocumentationClarity float64 `json:"documentationClarity" yaml:"documentationClarity"`

	PriorProjects int         `json:"priorProjects" yaml:"priorProjects"`
	TrackRecord   TrackRecord `json:"trackRecord" yaml:"trackRecord"`

	TwitterFollowers int     `json:"twitterFollowers" yaml:"twitterFollowers"`
	DiscordMembers   int     `json:"discordMembers" yaml:"discordMembers"`
	GithubActivity   float64 `json:"githubActivity" yaml:"githubActivity"`

	HasAudit     bool `json:"hasAudit" yaml:"hasAudit"`
	HasBugBounty bool `json:"hasBugBounty" yaml:"hasBugBounty"`
	HasKYC       bool `json:"hasKYC" yaml:"hasKYC"`
}

// WhitepaperPresent resolves the explicit flag, falling back to URL presence.
func (in Input) WhitepaperPresent() bool {
	if in.HasWhitepaper != nil {
		return *in.HasWhitepaper
	}
	return in.WhitepaperURL != ""
}

// Breakdown holds the seven integer subscores.
type Breakdown struct {
	Tokenomics      int `json:"tokenomics"`
	Vesting         int `json:"vesting"`
	Documentation   int `json:"documentation"`
	TeamHistory     int `json:"teamHistory"`
	Community       int `json:"community"`
	Audit           int `json:"audit"`
	LaunchReadiness int `json:"launchReadiness"`
}

// Total sums the subscores.
func (b Breakdown) Total() int {
	return b.Tokenomics + b.Vesting + b.Documentation + b.TeamHistory +
		b.Community + b.Audit + b.LaunchReadiness
}

// RiskFlag is a diagnostic explaining one risk signal.
type RiskFlag struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Result is the complete output of one evaluation.
type Result struct {
	Score           int          `json:"score"`
	Grade           Grade        `json:"grade"`
	Subscores       Breakdown    `json:"subscores"`
	Flags           []RiskFlag   `json:"flags"`
	Recommendation  string       `json:"recommendation"`
	SuggestedConfig LaunchConfig `json:"suggestedConfig"`
}
