//go:build ignore

// seed_projects.go posts a set of sample launch proposals to a running Guardian
// API so every score band has data. Each project is scored by the server on
// creation; the listed status is then applied.
//
// Usage:
//
//	go run scripts/seed_projects.go -api http://localhost:3001
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type extra struct {
	HasAudit         *bool    `json:"hasAudit,omitempty"`
	HasKYC           *bool    `json:"hasKYC,omitempty"`
	TrackRecord      *string  `json:"trackRecord,omitempty"`
	TwitterFollowers *int     `json:"twitterFollowers,omitempty"`
	GithubActivity   *float64 `json:"githubActivity,omitempty"`
}

type project struct {
	Name                   string  `json:"name"`
	Description            string  `json:"description,omitempty"`
	WebsiteURL             string  `json:"websiteUrl,omitempty"`
	WhitepaperURL          string  `json:"whitepaperUrl,omitempty"`
	GithubURL              string  `json:"githubUrl,omitempty"`
	TwitterHandle          string  `json:"twitterHandle,omitempty"`
	DiscordInvite          string  `json:"discordInvite,omitempty"`
	TeamAllocationPercent  float64 `json:"teamAllocationPercent"`
	TeamVestingMonths      int     `json:"teamVestingMonths"`
	HasFounderLocks        bool    `json:"hasFounderLocks"`
	SupplyDistributionFair bool    `json:"supplyDistributionFair"`
	TotalSupply            int64   `json:"totalSupply,omitempty"`
	Extra                  *extra  `json:"extra,omitempty"`

	status string
}

type created struct {
	Data struct {
		Project struct {
			ID string `json:"id"`
		} `json:"project"`
		Score struct {
			Score int    `json:"score"`
			Grade string `json:"grade"`
		} `json:"score"`
	} `json:"data"`
}

func yes() *bool              { b := true; return &b }
func str(s string) *string    { return &s }
func num(n int) *int          { return &n }
func frac(f float64) *float64 { return &f }

var samples = []project{
	{
		Name: "QubicSwap", Description: "Decentralized exchange protocol with advanced AMM features",
		WebsiteURL: "https://qubicswap.io", WhitepaperURL: "https://docs.qubicswap.io/whitepaper.pdf",
		GithubURL: "https://github.com/qubicswap", TwitterHandle: "@QubicSwap", DiscordInvite: "https://discord.gg/qubicswap",
		TeamAllocationPercent: 15, TeamVestingMonths: 24, HasFounderLocks: true, SupplyDistributionFair: true, TotalSupply: 1_000_000_000,
		Extra:  &extra{HasAudit: yes(), HasKYC: yes(), TrackRecord: str("good"), TwitterFollowers: num(25000), GithubActivity: frac(9)},
		status: "approved",
	},
	{
		Name: "QubicLend", Description: "Peer-to-peer lending with over-collateralization",
		WebsiteURL: "https://qubiclend.finance", WhitepaperURL: "https://docs.qubiclend.finance/litepaper.pdf",
		GithubURL: "https://github.com/qubiclend", TwitterHandle: "@QubicLend", DiscordInvite: "https://discord.gg/qubiclend",
		TeamAllocationPercent: 12, TeamVestingMonths: 36, HasFounderLocks: true, SupplyDistributionFair: true, TotalSupply: 500_000_000,
		Extra:  &extra{HasAudit: yes(), TrackRecord: str("good"), TwitterFollowers: num(12000)},
		status: "approved",
	},
	{
		Name: "QubicPay", Description: "Payment gateway for merchants",
		WebsiteURL: "https://qubicpay.com", WhitepaperURL: "https://docs.qubicpay.com/overview.pdf", TwitterHandle: "@QubicPay",
		TeamAllocationPercent: 25, TeamVestingMonths: 12, HasFounderLocks: true, TotalSupply: 2_000_000_000,
		status: "submitted",
	},
	{
		Name: "QubicNFT", Description: "NFT marketplace and minting platform",
		GithubURL: "https://github.com/qubicnft", DiscordInvite: "https://discord.gg/qubicnft",
		TeamAllocationPercent: 22, TeamVestingMonths: 18, SupplyDistributionFair: true,
		status: "submitted",
	},
	{
		Name: "MoonQubic", Description: "Community token with aggressive tokenomics",
		TeamAllocationPercent: 40, TeamVestingMonths: 6,
		Extra:  &extra{TrackRecord: str("bad"), TwitterFollowers: num(150)},
		status: "draft",
	},
	{
		Name: "SafeQubic", Description: "Yield token with no vesting",
		TeamAllocationPercent: 45, TeamVestingMonths: 0,
		Extra:  &extra{TrackRecord: str("bad"), TwitterFollowers: num(40), GithubActivity: frac(0)},
		status: "draft",
	},
}

func main() {
	apiURL := flag.String("api", "http://localhost:3001", "Guardian API base URL")
	dryRun := flag.Bool("dry-run", false, "print projects without posting")
	flag.Parse()

	if *dryRun {
		for i, p := range samples {
			fmt.Printf("[%d] %s (allocation=%.0f%%, vesting=%dmo, status=%s)\n", i+1, p.Name, p.TeamAllocationPercent, p.TeamVestingMonths, p.status)
		}
		return
	}

	client := resty.New().SetBaseURL(*apiURL).SetHeader("Content-Type", "application/json")
	ok, skipped := 0, 0
	for _, p := range samples {
		var out created
		resp, err := client.R().SetBody(p).SetResult(&out).Post("/api/projects")
		if err != nil {
			log.Printf("skip %q: %v", p.Name, err)
			skipped++
			continue
		}
		if resp.StatusCode() != http.StatusCreated {
			log.Printf("skip %q: status %d: %s", p.Name, resp.StatusCode(), resp.String())
			skipped++
			continue
		}

		id := out.Data.Project.ID
		if p.status != "draft" {
			resp, err = client.R().SetBody(map[string]string{"status": p.status}).Patch("/api/projects/" + id + "/status")
			if err != nil || resp.StatusCode() != http.StatusOK {
				log.Printf("status %q for %q not applied", p.status, p.Name)
			}
		}
		log.Printf("created %s %s: %d (%s)", p.Name, id, out.Data.Score.Score, out.Data.Score.Grade)
		ok++
	}

	log.Printf("done: %d created, %d skipped", ok, skipped)
}
