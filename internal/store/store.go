package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a project (or its dependent row) does not exist.
var ErrNotFound = errors.New("not found")

type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusSubmitted ProjectStatus = "submitted"
	ProjectStatusApproved  ProjectStatus = "approved"
	ProjectStatusLaunched  ProjectStatus = "launched"
	ProjectStatusFailed    ProjectStatus = "failed"
)

type Project struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	WebsiteURL    string        `json:"websiteUrl,omitempty"`
	WhitepaperURL string        `json:"whitepaperUrl,omitempty"`
	GithubURL     string        `json:"githubUrl,omitempty"`
	TwitterHandle string        `json:"twitterHandle,omitempty"`
	DiscordInvite string        `json:"discordInvite,omitempty"`
	Status        ProjectStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// ExtraMetadata holds the optional scoring signals stored as JSONB. Nil fields
// were never supplied and get defaults when the project is scored.
type ExtraMetadata struct {
	HasWhitepaper        *bool    `json:"hasWhitepaper,omitempty"`
	HasRoadmap           *bool    `json:"hasRoadmap,omitempty"`
	DocumentationClarity *float64 `json:"documentationClarity,omitempty" validate:"omitempty,min=0,max=10"`
	PriorProjects        *int     `json:"priorProjects,omitempty" validate:"omitempty,min=0"`
	TrackRecord          *string  `json:"trackRecord,omitempty" validate:"omitempty,trackrecord"`
	TwitterFollowers     *int     `json:"twitterFollowers,omitempty" validate:"omitempty,min=0"`
	DiscordMembers       *int     `json:"discordMembers,omitempty" validate:"omitempty,min=0"`
	GithubActivity       *float64 `json:"githubActivity,omitempty" validate:"omitempty,min=0,max=10"`
	HasAudit             *bool    `json:"hasAudit,omitempty"`
	HasBugBounty         *bool    `json:"hasBugBounty,omitempty"`
	HasKYC               *bool    `json:"hasKYC,omitempty"`
}

type ProjectMetadata struct {
	ID                       uuid.UUID      `json:"id"`
	ProjectID                uuid.UUID      `json:"projectId"`
	TeamAllocationPercent    float64        `json:"teamAllocationPercent"`
	TeamVestingMonths        int            `json:"teamVestingMonths"`
	FounderWalletAddress     string         `json:"founderWalletAddress,omitempty"`
	HasFounderLocks          bool           `json:"hasFounderLocks"`
	SupplyDistributionFair   bool           `json:"supplyDistributionFair"`
	TotalSupply              *int64         `json:"totalSupply,omitempty"`
	InitialCirculatingSupply *int64         `json:"initialCirculatingSupply,omitempty"`
	Extra                    *ExtraMetadata `json:"extra,omitempty"`
	CreatedAt                time.Time      `json:"createdAt"`
	UpdatedAt                time.Time      `json:"updatedAt"`
}

type ProjectFilter struct {
	Status *ProjectStatus
	Limit  int
	Offset int
}

// ScoreRecord is one persisted evaluation of a project.
type ScoreRecord struct {
	ID                   uuid.UUID    `json:"id"`
	ProjectID            uuid.UUID    `json:"projectId"`
	Score                int          `json:"score"`
	Grade                string       `json:"grade"`
	TokenomicsScore      int          `json:"tokenomicsScore"`
	VestingScore         int          `json:"vestingScore"`
	DocumentationScore   int          `json:"documentationScore"`
	TeamHistoryScore     int          `json:"teamHistoryScore"`
	CommunityScore       int          `json:"communityScore"`
	AuditScore           int          `json:"auditScore"`
	LaunchReadinessScore int          `json:"launchReadinessScore"`
	CalculatedAt         time.Time    `json:"calculatedAt"`
	Flags                []FlagRecord `json:"flags"`
}

type FlagRecord struct {
	ID        uuid.UUID `json:"id"`
	ScoreID   uuid.UUID `json:"scoreId"`
	Text      string    `json:"text"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

// LaunchConfigRecord is the single recommended configuration kept per project.
type LaunchConfigRecord struct {
	ID             uuid.UUID       `json:"id"`
	ProjectID      uuid.UUID       `json:"projectId"`
	ScoreID        uuid.UUID       `json:"scoreId"`
	CapMin         int64           `json:"capMin"`
	CapMax         int64           `json:"capMax"`
	FeeTierPercent decimal.Decimal `json:"feeTierPercent"`
	AccessTier     string          `json:"accessTier"`
	Recommendation string          `json:"recommendation"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ScoreWrite is everything persisted for one evaluation. SaveScore writes it
// atomically: the score row, its flag rows, and the upserted launch config.
type ScoreWrite struct {
	ProjectID    uuid.UUID
	Score        ScoreRecord
	Flags        []FlagRecord
	LaunchConfig LaunchConfigRecord
}

type GradeStats struct {
	Grade    string  `json:"grade"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
	MinScore int     `json:"minScore"`
	MaxScore int     `json:"maxScore"`
}

type Analytics struct {
	TotalProjects        int            `json:"totalProjects"`
	AvgScore             float64        `json:"avgScore"`
	Distribution         map[string]int `json:"distribution"`
	StatusCounts         map[string]int `json:"statusCounts"`
	DetailedDistribution []GradeStats   `json:"detailedDistribution"`
}

type FlagCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type FlagStats struct {
	TotalFlags int            `json:"totalFlags"`
	BySeverity map[string]int `json:"bySeverity"`
	MostCommon []FlagCount    `json:"mostCommon"`
}

type Store interface {
	CreateProject(ctx context.Context, p *Project, m *ProjectMetadata) error
	GetProject(ctx context.Context, id uuid.UUID) (*Project, *ProjectMetadata, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]*Project, int, error)
	UpdateProjectStatus(ctx context.Context, id uuid.UUID, status ProjectStatus) (*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	SaveScore(ctx context.Context, w *ScoreWrite) (*ScoreRecord, error)
	LatestScore(ctx context.Context, projectID uuid.UUID) (*ScoreRecord, error)
	ScoreHistory(ctx context.Context, projectID uuid.UUID, limit int) ([]*ScoreRecord, error)
	GetLaunchConfig(ctx context.Context, projectID uuid.UUID) (*LaunchConfigRecord, error)

	GetAnalytics(ctx context.Context) (*Analytics, error)
	GetFlagStats(ctx context.Context) (*FlagStats, error)

	Ping(ctx context.Context) error
	Close() error
}
