package hermes

import "time"

type ProjectCreatedEvent struct {
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectStatusEvent struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
}

type ProjectDeletedEvent struct {
	ProjectID string `json:"project_id"`
}

type ScoreCalculatedEvent struct {
	ProjectID    string    `json:"project_id"`
	ScoreID      string    `json:"score_id"`
	Score        int       `json:"score"`
	Grade        string    `json:"grade"`
	FlagCount    int       `json:"flag_count"`
	CalculatedAt time.Time `json:"calculated_at"`
}

type LedgerPublishedEvent struct {
	ProjectID string `json:"project_id"`
	Score     int    `json:"score"`
	Grade     string `json:"grade"`
	TxHash    string `json:"tx_hash,omitempty"`
}

type LedgerFailedEvent struct {
	ProjectID string `json:"project_id"`
	Score     int    `json:"score"`
	Grade     string `json:"grade"`
	Error     string `json:"error"`
}
