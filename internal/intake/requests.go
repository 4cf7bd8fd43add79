package intake

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

// Defaults applied to persisted projects whose extended metadata lacks a signal.
// They keep minimally specified legacy projects in the mid range instead of
// scoring them as if every signal were zero.
const (
	DefaultHasRoadmap           = true
	DefaultDocumentationClarity = 7.0
	DefaultPriorProjects        = 1
	DefaultTrackRecord          = scoring.TrackRecordNeutral
	DefaultTwitterFollowers     = 1000
	DefaultDiscordMembers       = 500
	DefaultGithubActivity       = 5.0
	DefaultHasAudit             = false
	DefaultHasBugBounty         = false
	DefaultHasKYC               = false
)

// SimulateRequest carries every scoring signal for a what-if evaluation.
type SimulateRequest struct {
	Name string `json:"name" yaml:"name" validate:"required"`

	WhitepaperURL string `json:"whitepaperUrl,omitempty" yaml:"whitepaperUrl" validate:"omitempty,weburl"`
	GithubURL     string `json:"githubUrl,omitempty" yaml:"githubUrl" validate:"omitempty,githuburl"`

	TeamAllocationPercent  *float64 `json:"teamAllocationPercent" yaml:"teamAllocationPercent" validate:"required,min=0,max=100"`
	TeamVestingMonths      *int     `json:"teamVestingMonths" yaml:"teamVestingMonths" validate:"required,min=0"`
	HasFounderLocks        bool     `json:"hasFounderLocks" yaml:"hasFounderLocks"`
	SupplyDistributionFair bool     `json:"supplyDistributionFair" yaml:"supplyDistributionFair"`

	HasWhitepaper        *bool    `json:"hasWhitepaper,omitempty" yaml:"hasWhitepaper"`
	HasRoadmap           bool     `json:"hasRoadmap" yaml:"hasRoadmap"`
	DocumentationClarity *float64 `json:"documentationClarity" yaml:"documentationClarity" validate:"required,min=0,max=10"`

	PriorProjects *int   `json:"priorProjects" yaml:"priorProjects" validate:"required,min=0"`
	TrackRecord   string `json:"trackRecord" yaml:"trackRecord" validate:"required,trackrecord"`

	TwitterFollowers *int     `json:"twitterFollowers" yaml:"twitterFollowers" validate:"required,min=0"`
	DiscordMembers   *int     `json:"discordMembers" yaml:"discordMembers" validate:"required,min=0"`
	GithubActivity   *float64 `json:"githubActivity" yaml:"githubActivity" validate:"required,min=0,max=10"`

	HasAudit     bool `json:"hasAudit" yaml:"hasAudit"`
	HasBugBounty bool `json:"hasBugBounty" yaml:"hasBugBounty"`
	HasKYC       bool `json:"hasKYC" yaml:"hasKYC"`
}

// Validate checks every precondition the engine relies on.
func (r *SimulateRequest) Validate() error {
	return Struct(r)
}

// FromSimulation maps a validated simulation request onto the engine input.
func FromSimulation(r *SimulateRequest) scoring.Input {
	return scoring.Input{
		Name:                   r.Name,
		WhitepaperURL:          r.WhitepaperURL,
		GithubURL:              r.GithubURL,
		TeamAllocationPercent:  *r.TeamAllocationPercent,
		TeamVestingMonths:      *r.TeamVestingMonths,
		HasFounderLocks:        r.HasFounderLocks,
		SupplyDistributionFair: r.SupplyDistributionFair,
		HasWhitepaper:          r.HasWhitepaper,
		HasRoadmap:             r.HasRoadmap,
		DocumentationClarity:   *r.DocumentationClarity,
		PriorProjects:          *r.PriorProjects,
		TrackRecord:            scoring.TrackRecord(r.TrackRecord),
		TwitterFollowers:       *r.TwitterFollowers,
		DiscordMembers:         *r.DiscordMembers,
		GithubActivity:         *r.GithubActivity,
		HasAudit:               r.HasAudit,
		HasBugBounty:           r.HasBugBounty,
		HasKYC:                 r.HasKYC,
	}
}

// SubmitProjectRequest is the body of a project submission.
type SubmitProjectRequest struct {
	Name          string `json:"name" validate:"required,min=3,max=255"`
	Description   string `json:"description,omitempty"`
	WebsiteURL    string `json:"websiteUrl,omitempty" validate:"omitempty,weburl"`
	WhitepaperURL string `json:"whitepaperUrl,omitempty" validate:"omitempty,weburl"`
	GithubURL     string `json:"githubUrl,omitempty" validate:"omitempty,githuburl"`
	TwitterHandle string `json:"twitterHandle,omitempty" validate:"omitempty,twitterhandle"`
	DiscordInvite string `json:"discordInvite,omitempty" validate:"omitempty,discordinvite"`

	TeamAllocationPercent  *float64 `json:"teamAllocationPercent" validate:"required,min=0,max=100"`
	TeamVestingMonths      *int     `json:"teamVestingMonths" validate:"required,min=0"`
	FounderWalletAddress   string   `json:"founderWalletAddress,omitempty" validate:"max=500"`
	HasFounderLocks        bool     `json:"hasFounderLocks"`
	SupplyDistributionFair bool     `json:"supplyDistributionFair"`

	TotalSupply              *int64 `json:"totalSupply,omitempty" validate:"omitempty,min=0"`
	InitialCirculatingSupply *int64 `json:"initialCirculatingSupply,omitempty" validate:"omitempty,min=0"`

	Extra *store.ExtraMetadata `json:"extra,omitempty"`
}

// Validate checks the submission and trims free-text fields.
func (r *SubmitProjectRequest) Validate() error {
	r.Name = sanitize(r.Name)
	r.Description = sanitize(r.Description)
	return Struct(r)
}

// Records splits a validated submission into its project and metadata rows.
// allocationPercent rounds to the two decimals the metadata column keeps, so a
// project scores the same at submission as it does on every later rescore.
func allocationPercent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func (r *SubmitProjectRequest) Records() (*store.Project, *store.ProjectMetadata) {
	p := &store.Project{
		Name:          r.Name,
		Description:   r.Description,
		WebsiteURL:    r.WebsiteURL,
		WhitepaperURL: r.WhitepaperURL,
		GithubURL:     r.GithubURL,
		TwitterHandle: r.TwitterHandle,
		DiscordInvite: r.DiscordInvite,
		Status:        store.ProjectStatusDraft,
	}
	m := &store.ProjectMetadata{
		TeamAllocationPercent:    allocationPercent(*r.TeamAllocationPercent),
		TeamVestingMonths:        *r.TeamVestingMonths,
		FounderWalletAddress:     r.FounderWalletAddress,
		HasFounderLocks:          r.HasFounderLocks,
		SupplyDistributionFair:   r.SupplyDistributionFair,
		TotalSupply:              r.TotalSupply,
		InitialCirculatingSupply: r.InitialCirculatingSupply,
	}
	if r.Extra != nil {
		extra := *r.Extra
		m.Extra = &extra
	}
	return p, m
}

// StatusRequest is the body of a project status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft submitted approved launched failed"`
}

// Validate checks the requested status.
func (r *StatusRequest) Validate() error {
	return Struct(r)
}

// ContractScoreRequest is a manual on-chain score write.
type ContractScoreRequest struct {
	ProjectID string `json:"projectId" validate:"required,max=255"`
	Score     *int   `json:"score" validate:"required,min=0,max=100"`
	Grade     string `json:"grade" validate:"required,oneof=Green Yellow Red"`
}

// Validate checks the write request.
func (r *ContractScoreRequest) Validate() error {
	return Struct(r)
}

// FromRecords builds the engine input for a persisted project, backfilling
// defaults for any extended signal the metadata does not carry.
func FromRecords(p *store.Project, m *store.ProjectMetadata) scoring.Input {
	in := scoring.Input{
		Name:                   p.Name,
		WhitepaperURL:          p.WhitepaperURL,
		GithubURL:              p.GithubURL,
		TeamAllocationPercent:  m.TeamAllocationPercent,
		TeamVestingMonths:      m.TeamVestingMonths,
		HasFounderLocks:        m.HasFounderLocks,
		SupplyDistributionFair: m.SupplyDistributionFair,
	}

	var extra store.ExtraMetadata
	if m.Extra != nil {
		extra = *m.Extra
	}

	hasWhitepaper := p.WhitepaperURL != ""
	if extra.HasWhitepaper != nil {
		hasWhitepaper = *extra.HasWhitepaper
	}
	in.HasWhitepaper = &hasWhitepaper

	in.HasRoadmap = boolOr(extra.HasRoadmap, DefaultHasRoadmap)
	in.DocumentationClarity = floatOr(extra.DocumentationClarity, DefaultDocumentationClarity)
	in.PriorProjects = intOr(extra.PriorProjects, DefaultPriorProjects)
	in.TrackRecord = DefaultTrackRecord
	if extra.TrackRecord != nil && scoring.TrackRecord(*extra.TrackRecord).Valid() {
		in.TrackRecord = scoring.TrackRecord(*extra.TrackRecord)
	}
	in.TwitterFollowers = intOr(extra.TwitterFollowers, DefaultTwitterFollowers)
	in.DiscordMembers = intOr(extra.DiscordMembers, DefaultDiscordMembers)
	in.GithubActivity = floatOr(extra.GithubActivity, DefaultGithubActivity)
	in.HasAudit = boolOr(extra.HasAudit, DefaultHasAudit)
	in.HasBugBounty = boolOr(extra.HasBugBounty, DefaultHasBugBounty)
	in.HasKYC = boolOr(extra.HasKYC, DefaultHasKYC)

	return in
}

// Pagination clamps page/limit query values: page below 1 becomes 1 and a
// limit outside 1..100 becomes 10.
func Pagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func sanitize(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(s))
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
