package scoring

import "math"

// --- Dimension evaluators ---
//
// Each evaluator awards points from discrete bands, rounds to the nearest
// integer and clamps to its cap. None reads another evaluator's output.

// Tokenomics scores team allocation (lower is better) and supply fairness.
func Tokenomics(in Input) int {
	var score float64

	switch a := in.TeamAllocationPercent; {
	case a <= 10:
		score += 10
	case a <= 15:
		score += 8
	case a <= 20:
		score += 6
	case a <= 25:
		score += 4
	case a <= 30:
		score += 2
	}

	if in.SupplyDistributionFair {
		score += 10
	} else {
		score += 5 // partial credit for transparency
	}

	return capPoints(score, CapTokenomics)
}

// Vesting scores the team lock duration and founder wallet locks.
func Vesting(in Input) int {
	var score float64

	switch m := in.TeamVestingMonths; {
	case m >= 36:
		score += 15
	case m >= 24:
		score += 13
	case m >= 18:
		score += 10
	case m >= 12:
		score += 7
	case m >= 6:
		score += 3
	}

	if in.HasFounderLocks {
		score += 5
	}

	return capPoints(score, CapVesting)
}

// Documentation scores whitepaper, clarity (0-10 scaled to 0-5) and roadmap.
func Documentation(in Input) int {
	var score float64

	if in.WhitepaperPresent() {
		score += 7
	}
	score += math.Min(in.DocumentationClarity/2, 5)
	if in.HasRoadmap {
		score += 3
	}

	return capPoints(score, CapDocumentation)
}

// TeamHistory scores prior shipped projects and track record.
// A first-time team still earns 2; a bad record earns nothing for reputation.
func TeamHistory(in Input) int {
	var score float64

	switch p := in.PriorProjects; {
	case p >= 5:
		score += 8
	case p >= 3:
		score += 6
	case p >= 1:
		score += 4
	default:
		score += 2
	}

	switch in.TrackRecord {
	case TrackRecordGood:
		score += 7
	case TrackRecordNeutral:
		score += 4
	}

	return capPoints(score, CapTeamHistory)
}

// Community scores Twitter reach, Discord size and GitHub activity.
func Community(in Input) int {
	var score float64

	switch f := in.TwitterFollowers; {
	case f >= 10000:
		score += 5
	case f >= 5000:
		score += 4
	case f >= 1000:
		score += 3
	case f >= 500:
		score += 2
	case f >= 100:
		score += 1
	}

	switch m := in.DiscordMembers; {
	case m >= 5000:
		score += 5
	case m >= 2000:
		score += 4
	case m >= 1000:
		score += 3
	case m >= 500:
		score += 2
	case m >= 100:
		score += 1
	}

	score += math.Min(in.GithubActivity/2, 5)

	return capPoints(score, CapCommunity)
}

// Audit scores a security audit and a bug bounty program.
func Audit(in Input) int {
	var score float64
	if in.HasAudit {
		score += 7
	}
	if in.HasBugBounty {
		score += 3
	}
	return capPoints(score, CapAudit)
}

// LaunchReadiness scores KYC/legal preparation. Absence still earns 2.
func LaunchReadiness(in Input) int {
	if in.HasKYC {
		return capPoints(5, CapLaunchReadiness)
	}
	return capPoints(2, CapLaunchReadiness)
}

// Evaluate runs all seven evaluators.
func Evaluate(in Input) Breakdown {
	return Breakdown{
		Tokenomics:      Tokenomics(in),
		Vesting:         Vesting(in),
		Documentation:   Documentation(in),
		TeamHistory:     TeamHistory(in),
		Community:       Community(in),
		Audit:           Audit(in),
		LaunchReadiness: LaunchReadiness(in),
	}
}

func capPoints(v float64, limit int) int {
	n := int(math.Round(math.Min(v, float64(limit))))
	if n < 0 {
		return 0
	}
	return n
}
