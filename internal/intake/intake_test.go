package intake

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Guardian/internal/scoring"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }

func validSimulation() *SimulateRequest {
	return &SimulateRequest{
		Name:                  "Test",
		TeamAllocationPercent: floatPtr(20),
		TeamVestingMonths:     intPtr(12),
		DocumentationClarity:  floatPtr(7),
		PriorProjects:         intPtr(1),
		TrackRecord:           "neutral",
		TwitterFollowers:      intPtr(1000),
		DiscordMembers:        intPtr(500),
		GithubActivity:        floatPtr(5),
	}
}

func validSubmission() *SubmitProjectRequest {
	return &SubmitProjectRequest{
		Name:                  "Launchpad",
		TeamAllocationPercent: floatPtr(20),
		TeamVestingMonths:     intPtr(12),
	}
}

func requireFieldError(t *testing.T, err error, field string) *ValidationError {
	t.Helper()
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Equal(t, field, ve.Field)
	return ve
}

func TestSimulateRequestValid(t *testing.T) {
	assert.NoError(t, validSimulation().Validate())
}

func TestSimulateRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *SimulateRequest)
		field   string
		message string
	}{
		{"missing name", func(r *SimulateRequest) { r.Name = "" }, "name", "name is required"},
		{"allocation above 100", func(r *SimulateRequest) { r.TeamAllocationPercent = floatPtr(101) }, "teamAllocationPercent", "teamAllocationPercent must be at most 100"},
		{"negative vesting", func(r *SimulateRequest) { r.TeamVestingMonths = intPtr(-1) }, "teamVestingMonths", "teamVestingMonths must be at least 0"},
		{"missing clarity", func(r *SimulateRequest) { r.DocumentationClarity = nil }, "documentationClarity", "documentationClarity is required"},
		{"clarity above 10", func(r *SimulateRequest) { r.DocumentationClarity = floatPtr(10.5) }, "documentationClarity", "documentationClarity must be at most 10"},
		{"bad track record", func(r *SimulateRequest) { r.TrackRecord = "stellar" }, "trackRecord", "Invalid track record value"},
		{"negative followers", func(r *SimulateRequest) { r.TwitterFollowers = intPtr(-5) }, "twitterFollowers", "twitterFollowers must be at least 0"},
		{"activity above 10", func(r *SimulateRequest) { r.GithubActivity = floatPtr(11) }, "githubActivity", "githubActivity must be at most 10"},
		{"non github url", func(r *SimulateRequest) { r.GithubURL = "https://gitlab.com/a/b" }, "githubUrl", "Invalid githubUrl"},
		{"bad whitepaper url", func(r *SimulateRequest) { r.WhitepaperURL = "ftp://docs" }, "whitepaperUrl", "Invalid whitepaperUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validSimulation()
			tt.mutate(r)
			ve := requireFieldError(t, r.Validate(), tt.field)
			assert.Equal(t, tt.message, ve.Message)
		})
	}
}

func TestZeroValuesAreNotMissing(t *testing.T) {
	r := validSimulation()
	r.TeamAllocationPercent = floatPtr(0)
	r.TeamVestingMonths = intPtr(0)
	r.DocumentationClarity = floatPtr(0)
	r.TwitterFollowers = intPtr(0)
	assert.NoError(t, r.Validate())
}

func TestFromSimulation(t *testing.T) {
	r := validSimulation()
	r.HasWhitepaper = boolPtr(false)
	r.HasAudit = true
	in := FromSimulation(r)

	assert.Equal(t, "Test", in.Name)
	assert.Equal(t, 20.0, in.TeamAllocationPercent)
	assert.Equal(t, 12, in.TeamVestingMonths)
	assert.Equal(t, scoring.TrackRecordNeutral, in.TrackRecord)
	require.NotNil(t, in.HasWhitepaper)
	assert.False(t, *in.HasWhitepaper)
	assert.True(t, in.HasAudit)
}

func TestSubmitProjectValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *SubmitProjectRequest)
		field  string
	}{
		{"short name", func(r *SubmitProjectRequest) { r.Name = "ab" }, "name"},
		{"missing allocation", func(r *SubmitProjectRequest) { r.TeamAllocationPercent = nil }, "teamAllocationPercent"},
		{"bad website", func(r *SubmitProjectRequest) { r.WebsiteURL = "example.com" }, "websiteUrl"},
		{"bad twitter", func(r *SubmitProjectRequest) { r.TwitterHandle = "@this handle is way too long" }, "twitterHandle"},
		{"bad discord", func(r *SubmitProjectRequest) { r.DiscordInvite = "https://discord.com/invite/x" }, "discordInvite"},
		{"negative supply", func(r *SubmitProjectRequest) { v := int64(-1); r.TotalSupply = &v }, "totalSupply"},
		{"extra clarity out of range", func(r *SubmitProjectRequest) {
			r.Extra = &store.ExtraMetadata{DocumentationClarity: floatPtr(12)}
		}, "documentationClarity"},
		{"extra track record", func(r *SubmitProjectRequest) {
			r.Extra = &store.ExtraMetadata{TrackRecord: strPtr("excellent")}
		}, "trackRecord"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validSubmission()
			tt.mutate(r)
			requireFieldError(t, r.Validate(), tt.field)
		})
	}
}

func TestSubmitProjectSanitizes(t *testing.T) {
	r := validSubmission()
	r.Name = "  <b>Launchpad</b>  "
	r.Description = " <script>x</script> "
	r.TwitterHandle = "@launchpad"
	r.DiscordInvite = "https://discord.gg/abc"
	require.NoError(t, r.Validate())

	assert.Equal(t, "bLaunchpad/b", r.Name)
	assert.Equal(t, "scriptx/script", r.Description)
}

func TestSubmitProjectRecords(t *testing.T) {
	r := validSubmission()
	r.GithubURL = "https://github.com/launch/pad"
	r.HasFounderLocks = true
	r.Extra = &store.ExtraMetadata{HasAudit: boolPtr(true)}
	require.NoError(t, r.Validate())

	p, m := r.Records()
	assert.Equal(t, store.ProjectStatusDraft, p.Status)
	assert.Equal(t, "https://github.com/launch/pad", p.GithubURL)
	assert.Equal(t, 20.0, m.TeamAllocationPercent)
	assert.True(t, m.HasFounderLocks)
	require.NotNil(t, m.Extra)
	assert.True(t, *m.Extra.HasAudit)

	// The metadata owns its own copy of the extra block.
	r.Extra.HasKYC = boolPtr(true)
	assert.Nil(t, m.Extra.HasKYC)
}

func TestSubmitProjectRecordsRoundAllocation(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{20.004, 20.00},
		{20.005, 20.01},
		{33.3333, 33.33},
		{45, 45},
	}
	for _, tt := range tests {
		r := validSubmission()
		r.TeamAllocationPercent = floatPtr(tt.in)
		require.NoError(t, r.Validate())
		_, m := r.Records()
		assert.Equal(t, tt.want, m.TeamAllocationPercent, "input %v", tt.in)
	}
}

func TestStatusRequest(t *testing.T) {
	for _, s := range []string{"draft", "submitted", "approved", "launched", "failed"} {
		assert.NoError(t, (&StatusRequest{Status: s}).Validate(), s)
	}
	ve := requireFieldError(t, (&StatusRequest{Status: "archived"}).Validate(), "status")
	assert.Equal(t, "status must be one of: draft submitted approved launched failed", ve.Message)
}

func TestContractScoreRequest(t *testing.T) {
	ok := &ContractScoreRequest{ProjectID: "p1", Score: intPtr(0), Grade: "Red"}
	assert.NoError(t, ok.Validate())

	requireFieldError(t, (&ContractScoreRequest{ProjectID: "p1", Grade: "Red"}).Validate(), "score")
	requireFieldError(t, (&ContractScoreRequest{ProjectID: "p1", Score: intPtr(101), Grade: "Red"}).Validate(), "score")
	requireFieldError(t, (&ContractScoreRequest{ProjectID: "p1", Score: intPtr(50), Grade: "green"}).Validate(), "grade")
	requireFieldError(t, (&ContractScoreRequest{Score: intPtr(50), Grade: "Green"}).Validate(), "projectId")
}

func TestFromRecordsDefaults(t *testing.T) {
	p := &store.Project{Name: "Legacy"}
	m := &store.ProjectMetadata{TeamAllocationPercent: 30, TeamVestingMonths: 6}
	in := FromRecords(p, m)

	require.NotNil(t, in.HasWhitepaper)
	assert.False(t, *in.HasWhitepaper)
	assert.Equal(t, DefaultHasRoadmap, in.HasRoadmap)
	assert.Equal(t, DefaultDocumentationClarity, in.DocumentationClarity)
	assert.Equal(t, DefaultPriorProjects, in.PriorProjects)
	assert.Equal(t, DefaultTrackRecord, in.TrackRecord)
	assert.Equal(t, DefaultTwitterFollowers, in.TwitterFollowers)
	assert.Equal(t, DefaultDiscordMembers, in.DiscordMembers)
	assert.Equal(t, DefaultGithubActivity, in.GithubActivity)
	assert.False(t, in.HasAudit)
	assert.Equal(t, 30.0, in.TeamAllocationPercent)
}

func TestFromRecordsWhitepaperAndOverrides(t *testing.T) {
	p := &store.Project{Name: "Docs", WhitepaperURL: "https://docs.example.com/wp.pdf"}
	m := &store.ProjectMetadata{Extra: &store.ExtraMetadata{
		TwitterFollowers: intPtr(0),
		TrackRecord:      strPtr("bad"),
		HasKYC:           boolPtr(true),
	}}
	in := FromRecords(p, m)
	assert.True(t, *in.HasWhitepaper, "whitepaper URL implies a whitepaper")
	assert.Equal(t, 0, in.TwitterFollowers)
	assert.Equal(t, scoring.TrackRecordBad, in.TrackRecord)
	assert.True(t, in.HasKYC)

	m.Extra.HasWhitepaper = boolPtr(false)
	m.Extra.TrackRecord = strPtr("unknown")
	in = FromRecords(p, m)
	assert.False(t, *in.HasWhitepaper, "explicit flag wins over the URL")
	assert.Equal(t, DefaultTrackRecord, in.TrackRecord)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, 50, 1, 50},
		{4, 100, 4, 100},
		{2, 101, 2, 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%d", tt.page, tt.limit), func(t *testing.T) {
			page, limit := Pagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestAsValidationErrorWrapped(t *testing.T) {
	err := fmt.Errorf("rescore: %w", &ValidationError{Field: "metadata", Message: "missing"})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "metadata", ve.Field)

	_, ok = AsValidationError(errors.New("plain"))
	assert.False(t, ok)
}
