package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadforge/salespipe/gen"
	"github.com/leadforge/salespipe/log"
	"github.com/leadforge/salespipe/schema"
)

// SDRAgent scores a lead against the Ideal Customer Profile rubric and
// produces the full qualification analysis.
type SDRAgent struct {
	client *gen.Client
}

// NewSDRAgent creates an SDR qualification agent.
func NewSDRAgent(client *gen.Client) *SDRAgent {
	return &SDRAgent{client: client}
}

var painPointCategories = []string{
	"website", "seo", "social_media", "reviews", "automation",
	"advertising", "operations", "other",
}

func sdrSchema() *schema.Schema {
	levelEnum := schema.StringEnum("unknown", "low", "medium", "high")

	return &schema.Schema{
		Name: "sdr_analysis",
		Fields: map[string]schema.Field{
			"icpScore":     schema.IntRange(0, 100),
			"icpFitReason": schema.String(),
			"digitalPresence": schema.Object(map[string]schema.Field{
				"websiteScore":        schema.IntRange(0, 100),
				"seoScore":            schema.IntRange(0, 100),
				"socialMediaScore":    schema.IntRange(0, 100),
				"googleBusinessScore": schema.IntRange(0, 100),
				"websiteAssessment":   schema.StringEnum("none", "poor", "fair", "good", "excellent"),
			}),
			"painPoints": schema.Array(schema.Object(map[string]schema.Field{
				"description": schema.String(),
				"severity":    schema.StringEnum("low", "medium", "high", "critical"),
				"category":    schema.StringEnum(painPointCategories...),
			})),
			"salesOpportunities": schema.Array(schema.Object(map[string]schema.Field{
				"description":        schema.String(),
				"recommendedService": schema.String(),
				"estimatedValue":     schema.StringEnum("low", "medium", "high"),
				"priority":           schema.IntRange(1, 5),
			})),
			"talkingPoints": schema.Array(schema.String()),
			"automationOpportunities": schema.Array(schema.Object(map[string]schema.Field{
				"description": schema.String(),
				"impact":      schema.String(),
				"complexity":  schema.StringEnum("low", "medium", "high"),
			})),
			"qualification": schema.Object(map[string]schema.Field{
				"budget":    levelEnum,
				"authority": levelEnum,
				"need":      levelEnum,
				"timeline":  levelEnum,
				"overallScore": schema.StringEnum(
					QualUnqualified, QualMarketingQualified,
					QualSalesQualified, QualHighlyQualified,
				),
			}),
			"recommendedNextSteps": schema.Array(schema.String()),
		},
	}
}

const sdrSystemPrompt = `You are a senior SDR analyst for a digital services agency. You score
inbound and discovered leads against our Ideal Customer Profile and prepare
the analysis the sales team works from.

Our service catalogue has three tiers:
1. Foundation: website build/rebuild, Google Business Profile setup, review
   collection, basic local SEO.
2. Growth: content marketing, paid search and social advertising, email
   marketing, CRM setup.
3. Scale: marketing automation, AI-assisted lead handling, custom
   integrations, analytics dashboards.

Digital presence scoring ladder, applied per dimension:
- excellent (75-100): modern responsive website with clear conversion paths;
  ranking for core local terms; active, recent social posting; complete
  Google Business Profile with steady recent reviews.
- good (50-74): functional but dated website; some organic visibility;
  sporadic social activity; claimed profile with a modest review base.
- fair (25-49): thin or outdated website; little organic visibility; stale
  social accounts; incomplete profile or slow review velocity.
- poor (0-24): broken or placeholder website; invisible in search; dead or
  absent social accounts; unclaimed or empty profile.

Red flags that cap a dimension at poor: no website at all, a social account
untouched for over a year, a rating below 3.5 with unanswered negative
reviews.

Missing data is signal, not an excuse to skip scoring. No website on record
means the website dimension is a red flag and a Foundation-tier opening; an
unknown industry lowers ICP confidence and belongs in the fit reason.

Automation opportunity guidance by industry (guidance, not hard rules):
- home services: appointment scheduling, quote follow-up, review requests
- healthcare/wellness: intake forms, reminder sequences, recall campaigns
- retail/e-commerce: abandoned cart flows, inventory alerts, loyalty email
- professional services: lead routing, proposal follow-up, client onboarding
- hospitality/restaurants: reservation handling, event promotion, feedback loops

Qualify with BANT. Rate budget, authority, need and timeline individually,
then assign the overall tier: unqualified, marketing_qualified,
sales_qualified or highly_qualified. Be conservative: sales_qualified and
above require evident need AND plausible budget.`

// Analyze scores a lead and returns the structured analysis. A single
// structured generation call; missing lead fields are surfaced in the
// prompt as negative signal rather than causing a failure.
func (a *SDRAgent) Analyze(ctx context.Context, lead LeadIdentity) (*SDRAnalysis, error) {
	validated, err := a.client.Generate(ctx, sdrSchema(), sdrSystemPrompt, sdrUserPrompt(lead))
	if err != nil {
		return nil, err
	}

	var analysis SDRAnalysis
	if err := decode(validated, &analysis); err != nil {
		return nil, fmt.Errorf("decode sdr analysis: %w", err)
	}

	log.Debug("sdr: %s scored %d (%s)", lead.Key(), analysis.ICPScore, analysis.Qualification.OverallScore)
	return &analysis, nil
}

func sdrUserPrompt(lead LeadIdentity) string {
	var sb strings.Builder
	sb.WriteString("Analyze this lead:\n\n")
	fmt.Fprintf(&sb, "- Contact: %s\n", lead.Name)
	fmt.Fprintf(&sb, "- Company: %s\n", lead.CompanyName)

	writeFact(&sb, "Title", lead.Title, "unknown - lower authority confidence")
	writeFact(&sb, "Industry", lead.Industry, "unknown - note this in the fit reason")
	writeFact(&sb, "Website", lead.Website, "NONE on record - treat as a red flag and a pain point")
	writeFact(&sb, "Email", lead.Email, "")
	writeFact(&sb, "Phone", lead.Phone, "")
	writeFact(&sb, "Social profile", lead.SocialProfileURL, "none found")
	writeFact(&sb, "Source", lead.Source, "")
	writeFact(&sb, "Notes", lead.Notes, "")

	return sb.String()
}

// writeFact renders one fact line, substituting the missing-value note when
// the fact is absent. Facts with an empty note are omitted entirely when
// absent.
func writeFact(sb *strings.Builder, label, value, whenMissing string) {
	if value != "" {
		fmt.Fprintf(sb, "- %s: %s\n", label, value)
		return
	}
	if whenMissing != "" {
		fmt.Fprintf(sb, "- %s: %s\n", label, whenMissing)
	}
}
