package scoring

// Grade thresholds, evaluated high to low.
const (
	GreenMin  = 80
	YellowMin = 60
)

// AccessTier restricts who may participate in a launch.
type AccessTier string

const (
	AccessPublic     AccessTier = "public"
	AccessMidTier    AccessTier = "mid-tier"
	AccessAccredited AccessTier = "accredited"
)

// LaunchConfig is the grade-keyed recommended fundraising configuration.
type LaunchConfig struct {
	CapMin         int64      `json:"capMin"`
	CapMax         int64      `json:"capMax"`
	FeeTierPercent float64    `json:"feeTierPercent"`
	AccessTier     AccessTier `json:"accessTier"`
}

type gradeRow struct {
	config         LaunchConfig
	recommendation string
}

var gradeTable = map[Grade]gradeRow{
	GradeGreen: {
		config: LaunchConfig{CapMin: 100000, CapMax: 500000, FeeTierPercent: 2.5, AccessTier: AccessPublic},
		recommendation: "Safe for launch. Project meets high quality standards with minimal risk factors. " +
			"Recommended for standard launch parameters.",
	},
	GradeYellow: {
		config: LaunchConfig{CapMin: 50000, CapMax: 200000, FeeTierPercent: 4.0, AccessTier: AccessMidTier},
		recommendation: "Proceed with caution. Project shows promise but has some risk factors. " +
			"Recommended for reduced caps and higher fees with additional due diligence.",
	},
	GradeRed: {
		config: LaunchConfig{CapMin: 10000, CapMax: 50000, FeeTierPercent: 6.0, AccessTier: AccessAccredited},
		recommendation: "High risk. Project has significant risk factors and should undergo thorough review. " +
			"Recommended for minimal caps, highest fees, and accredited investors only.",
	},
}

// GradeFor maps a 0-100 score to its grade.
func GradeFor(score int) Grade {
	switch {
	case score >= GreenMin:
		return GradeGreen
	case score >= YellowMin:
		return GradeYellow
	default:
		return GradeRed
	}
}

// LaunchConfigFor returns the suggested configuration for a grade.
// Unknown grades get the most restrictive (Red) row.
func LaunchConfigFor(g Grade) LaunchConfig {
	if row, ok := gradeTable[g]; ok {
		return row.config
	}
	return gradeTable[GradeRed].config
}

// RecommendationFor returns the human-readable recommendation for a grade.
func RecommendationFor(g Grade) string {
	if row, ok := gradeTable[g]; ok {
		return row.recommendation
	}
	return "Unable to determine recommendation"
}

// Valid reports whether g is a known grade.
func (g Grade) Valid() bool {
	_, ok := gradeTable[g]
	return ok
}

// LedgerCode is the numeric grade understood by the on-chain score contract:
// 0 red, 1 yellow, 2 green.
func (g Grade) LedgerCode() uint8 {
	switch g {
	case GradeGreen:
		return 2
	case GradeYellow:
		return 1
	default:
		return 0
	}
}
