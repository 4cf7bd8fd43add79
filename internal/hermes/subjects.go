package hermes

const (
	SubjectAllEvents = "guardian.>"

	StreamName   = "GUARDIAN_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

// Project lifecycle subjects
func SubjectProjectCreated(projectID string) string { return "guardian.project." + projectID + ".created" }
func SubjectProjectStatus(projectID string) string { return "guardian.project." + projectID + ".status" }
func SubjectProjectDeleted(projectID string) string { return "guardian.project." + projectID + ".deleted" }

func SubjectScoreCalculated(projectID string) string { return "guardian.score." + projectID + ".calculated" }

// Ledger relay subjects
func SubjectLedgerPublished(projectID string) string { return "guardian.ledger." + projectID + ".published" }
func SubjectLedgerFailed(projectID string) string { return "guardian.ledger." + projectID + ".failed" }
