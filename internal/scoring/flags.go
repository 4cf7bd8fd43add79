package scoring

import (
	"fmt"
	"strconv"
)

const (
	// RecommendedMaxTeamAllocation is the allocation above which a project is flagged.
	RecommendedMaxTeamAllocation = 20.0
	// RecommendedMinVestingMonths and RecommendedMaxVestingMonths bound the advised lock window.
	RecommendedMinVestingMonths = 12
	RecommendedMaxVestingMonths = 36
	// MinTwitterFollowers is the social reach below which presence is considered limited.
	MinTwitterFollowers = 100
)

// FlagRule is one independent predicate over the input. Check returns the flag
// to append and true when the rule fires.
type FlagRule struct {
	Name  string
	Check func(in Input) (RiskFlag, bool)
}

// FlagRules is the fixed, ordered rule battery. Output order follows this slice.
var FlagRules = []FlagRule{
	{Name: "team_allocation", Check: checkTeamAllocation},
	{Name: "supply_distribution", Check: checkSupplyDistribution},
	{Name: "vesting", Check: checkVesting},
	{Name: "founder_locks", Check: checkFounderLocks},
	{Name: "whitepaper", Check: checkWhitepaper},
	{Name: "roadmap", Check: checkRoadmap},
	{Name: "track_record", Check: checkTrackRecord},
	{Name: "prior_projects", Check: checkPriorProjects},
	{Name: "github", Check: checkGithub},
	{Name: "twitter", Check: checkTwitter},
	{Name: "audit", Check: checkAudit},
	{Name: "bug_bounty", Check: checkBugBounty},
	{Name: "kyc", Check: checkKYC},
}

// Flags runs every rule in order and collects the ones that fire.
// The result is never nil.
func Flags(in Input) []RiskFlag {
	flags := make([]RiskFlag, 0, len(FlagRules))
	for _, rule := range FlagRules {
		if f, ok := rule.Check(in); ok {
			flags = append(flags, f)
		}
	}
	return flags
}

func checkTeamAllocation(in Input) (RiskFlag, bool) {
	if in.TeamAllocationPercent <= RecommendedMaxTeamAllocation {
		return RiskFlag{}, false
	}
	sev := SeverityMedium
	if in.TeamAllocationPercent > 30 {
		sev = SeverityHigh
	}
	return RiskFlag{
		Text: fmt.Sprintf("High team allocation (%s%%), recommended <%s%%",
			formatNumber(in.TeamAllocationPercent), formatNumber(RecommendedMaxTeamAllocation)),
		Severity: sev,
	}, true
}

func checkSupplyDistribution(in Input) (RiskFlag, bool) {
	if in.SupplyDistributionFair {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "Unbalanced token supply distribution", Severity: SeverityMedium}, true
}

func checkVesting(in Input) (RiskFlag, bool) {
	if in.TeamVestingMonths >= RecommendedMinVestingMonths {
		return RiskFlag{}, false
	}
	sev := SeverityMedium
	if in.TeamVestingMonths == 0 {
		sev = SeverityHigh
	}
	return RiskFlag{
		Text: fmt.Sprintf("Short or no vesting period (%d months), recommended %d-%d months",
			in.TeamVestingMonths, RecommendedMinVestingMonths, RecommendedMaxVestingMonths),
		Severity: sev,
	}, true
}

func checkFounderLocks(in Input) (RiskFlag, bool) {
	if in.HasFounderLocks {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "No founder wallet locks in place", Severity: SeverityMedium}, true
}

func checkWhitepaper(in Input) (RiskFlag, bool) {
	if in.WhitepaperPresent() {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "No whitepaper available", Severity: SeverityMedium}, true
}

func checkRoadmap(in Input) (RiskFlag, bool) {
	if in.HasRoadmap {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "No public roadmap available", Severity: SeverityLow}, true
}

func checkTrackRecord(in Input) (RiskFlag, bool) {
	if in.TrackRecord != TrackRecordBad {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "Team has poor track record from previous projects", Severity: SeverityHigh}, true
}

func checkPriorProjects(in Input) (RiskFlag, bool) {
	if in.PriorProjects != 0 {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "Team has no prior project experience", Severity: SeverityLow}, true
}

func checkGithub(in Input) (RiskFlag, bool) {
	if in.GithubURL != "" {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "No public GitHub repository", Severity: SeverityLow}, true
}

func checkTwitter(in Input) (RiskFlag, bool) {
	if in.TwitterFollowers >= MinTwitterFollowers {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "Limited social media presence", Severity: SeverityLow}, true
}

func checkAudit(in Input) (RiskFlag, bool) {
	if in.HasAudit {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "No security audit conducted (recommended for raises >$1M)", Severity: SeverityHigh}, true
}

func checkBugBounty(in Input) (RiskFlag, bool) {
	if in.HasBugBounty {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "No bug bounty program in place", Severity: SeverityLow}, true
}

func checkKYC(in Input) (RiskFlag, bool) {
	if in.HasKYC {
		return RiskFlag{}, false
	}
	return RiskFlag{Text: "No KYC/legal compliance preparation", Severity: SeverityMedium}, true
}

// formatNumber prints 40 as "40" and 22.5 as "22.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
