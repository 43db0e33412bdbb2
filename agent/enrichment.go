package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leadforge/salespipe/gen"
	"github.com/leadforge/salespipe/log"
	"github.com/leadforge/salespipe/research"
	"github.com/leadforge/salespipe/schema"
)

// ErrNoResearcher is returned by EnrichWithWebResearch when the agent was
// constructed without a research collaborator.
var ErrNoResearcher = errors.New("no researcher configured")

// EnrichmentInput is the partial company/contact fact fragment to expand.
type EnrichmentInput struct {
	CompanyName string
	Website     string
	Industry    string
	Location    string
	ContactName string
	Notes       string
}

// EnrichmentAgent expands a company fragment into a full firmographic and
// digital-presence profile.
type EnrichmentAgent struct {
	client     *gen.Client
	researcher research.Researcher
	prober     *research.SiteProber
}

// EnrichmentOption configures an EnrichmentAgent.
type EnrichmentOption func(*EnrichmentAgent)

// WithResearcher enables the EnrichWithWebResearch companion call.
func WithResearcher(r research.Researcher) EnrichmentOption {
	return func(a *EnrichmentAgent) {
		a.researcher = r
	}
}

// WithSiteProber enables website probing: observed site facts (title, meta
// description, social links) are added to the enrichment prompt when the
// input has a website.
func WithSiteProber(p *research.SiteProber) EnrichmentOption {
	return func(a *EnrichmentAgent) {
		a.prober = p
	}
}

// NewEnrichmentAgent creates an enrichment agent.
func NewEnrichmentAgent(client *gen.Client, opts ...EnrichmentOption) *EnrichmentAgent {
	a := &EnrichmentAgent{client: client}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func enrichmentSchema() *schema.Schema {
	confidenceScore := schema.IntRange(0, 100)

	return &schema.Schema{
		Name: "enrichment_data",
		Fields: map[string]schema.Field{
			"company": schema.Object(map[string]schema.Field{
				"name":             schema.String(),
				"size":             schema.StringEnum("solo", "small", "medium", "large", "enterprise"),
				"estimatedRevenue": schema.StringEnum("<1M", "1M-10M", "10M-50M", "50M+", "unknown"),
				"location":         schema.String(),
				"businessType":     schema.StringEnum("b2b", "b2c", "b2b2c", "unknown"),
				"yearsInBusiness":  schema.Optional(schema.IntRange(0, 300)),
				"description":      schema.String(),
			}),
			"digitalPresence": schema.Object(map[string]schema.Field{
				"websiteTech": schema.Array(schema.String()),
				"socialProfiles": schema.Array(schema.Object(map[string]schema.Field{
					"platform": schema.StringEnum("linkedin", "facebook", "instagram", "twitter", "youtube", "tiktok", "other"),
					"url":      schema.String(),
				})),
				"hasGoogleBusinessProfile": {Type: schema.TypeBool},
				"googleRating":             schema.Optional(schema.Field{Type: schema.TypeFloat, Min: schema.Bound(0), Max: schema.Bound(5)}),
			}),
			"contacts": schema.Array(schema.Object(map[string]schema.Field{
				"name":            schema.String(),
				"title":           schema.String(),
				"isDecisionMaker": {Type: schema.TypeBool},
			})),
			"signals": schema.Object(map[string]schema.Field{
				"recentNews": schema.Array(schema.Object(map[string]schema.Field{
					"headline":  schema.String(),
					"sentiment": schema.StringEnum("positive", "neutral", "negative"),
				})),
				"fundingEvents":    schema.Array(schema.String()),
				"growthIndicators": schema.Array(schema.String()),
				"riskIndicators":   schema.Array(schema.String()),
			}),
			"firmographics": schema.Object(map[string]schema.Field{
				"industryCodes": schema.Array(schema.String()),
				"competitors":   schema.Array(schema.String()),
				"keywords":      schema.Array(schema.String()),
			}),
			"confidence": schema.Object(map[string]schema.Field{
				"overall":         confidenceScore,
				"company":         confidenceScore,
				"contact":         confidenceScore,
				"digitalPresence": confidenceScore,
			}),
		},
	}
}

const enrichmentSystemPrompt = `You are a B2B data enrichment specialist. Given partial facts about a
company, produce the most complete profile you can justify: firmographics,
digital presence, likely contacts, and buying/risk signals.

Rules:
- Never present a guess as a fact. Use the confidence scores to say how
  much of each section is inference versus evidence. A profile built from a
  company name alone should carry low confidence throughout.
- Confidence is reported per section (company, contact, digitalPresence)
  plus overall. Sections you could not ground stay populated with your best
  inference but score low, so downstream automation knows to route them for
  human verification.
- Contacts you list must be plausible for the company size and industry;
  mark decision makers explicitly.
- Observed facts supplied in the request (from a live website probe) are
  evidence, not inference. Weight them accordingly.`

// Enrich produces the full enrichment profile in one structured generation
// call. When a site prober is configured and the input has a website, the
// probe's observed facts are included in the prompt; probe failures are
// logged and ignored.
func (a *EnrichmentAgent) Enrich(ctx context.Context, input EnrichmentInput) (*EnrichmentData, error) {
	var observed string
	if a.prober != nil && input.Website != "" {
		presence, err := a.prober.Probe(ctx, input.Website)
		if err != nil {
			log.Debug("enrichment: site probe failed for %s: %v", input.Website, err)
		} else {
			observed = presence.Facts()
		}
	}

	validated, err := a.client.Generate(ctx, enrichmentSchema(), enrichmentSystemPrompt, enrichmentUserPrompt(input, observed))
	if err != nil {
		return nil, err
	}

	var data EnrichmentData
	if err := decode(validated, &data); err != nil {
		return nil, fmt.Errorf("decode enrichment data: %w", err)
	}

	log.Debug("enrichment: %s profiled with overall confidence %d", input.CompanyName, data.Confidence.Overall)
	return &data, nil
}

// EnrichWithWebResearch runs real-time web research for the company and
// returns the raw findings with citations. The result is a separate
// advisory channel: it is not merged into EnrichmentData, and a caller who
// wants grounded enrichment orchestrates both calls and reconciles them.
func (a *EnrichmentAgent) EnrichWithWebResearch(ctx context.Context, companyName, website string) (*research.Findings, error) {
	if a.researcher == nil {
		return nil, ErrNoResearcher
	}

	query := companyName + " company reviews news"
	if website != "" {
		query = fmt.Sprintf("%s site info reviews news %s", companyName, website)
	}

	return a.researcher.Research(ctx, query)
}

func enrichmentUserPrompt(input EnrichmentInput, observed string) string {
	var sb strings.Builder
	sb.WriteString("Enrich this company:\n\n")
	fmt.Fprintf(&sb, "- Company: %s\n", input.CompanyName)
	writeFact(&sb, "Website", input.Website, "none on record")
	writeFact(&sb, "Industry", input.Industry, "unknown")
	writeFact(&sb, "Location", input.Location, "unknown")
	writeFact(&sb, "Known contact", input.ContactName, "")
	writeFact(&sb, "Notes", input.Notes, "")

	if observed != "" {
		sb.WriteString("\nObserved website facts:\n")
		sb.WriteString(observed)
	}

	return sb.String()
}
