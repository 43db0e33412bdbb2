// Salespipe - AI Sales Agent Pipeline for Go
//
// Salespipe turns raw lead and company data into qualification scores,
// enrichment profiles, outreach drafts and follow-up decisions using a set
// of cooperating agents built on structured LLM generation. Every agent
// constrains model output with a declared schema, so results are safe to
// persist and to feed into downstream agents.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/leadforge/salespipe
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/leadforge/salespipe/agent"
//		"github.com/leadforge/salespipe/gen"
//		"github.com/leadforge/salespipe/llms/openaichat"
//	)
//
//	func main() {
//		model, _ := openaichat.New()
//		client := gen.NewClient(model, gen.Config{Model: "gpt-4o-mini"})
//
//		sdr := agent.NewSDRAgent(client)
//		analysis, err := sdr.Analyze(context.Background(), agent.LeadIdentity{
//			Name:        "Jane Doe",
//			CompanyName: "Acme Roofing",
//			Industry:    "home services",
//		})
//		if err != nil {
//			panic(err)
//		}
//		fmt.Println(analysis.ICPScore, analysis.Qualification.OverallScore)
//	}
//
// # Packages
//
//   - schema: declarative output schemas and strict validation
//   - gen: structured generation client over any langchaingo llms.Model
//   - agent: SDR qualification, enrichment, outreach and follow-up agents
//   - discovery: lead discovery from a places/business directory
//   - pipeline: batched concurrent SDR analysis with per-lead results
//   - research: web research and website presence probing
//   - store: persistence sinks for analysis results (memory, SQLite, Redis, Postgres)
//   - llms/openaichat: llms.Model backed by the OpenAI chat API
//   - log: leveled logging with a golog adapter
package salespipe
