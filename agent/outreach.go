package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadforge/salespipe/gen"
	"github.com/leadforge/salespipe/log"
	"github.com/leadforge/salespipe/schema"
)

// Outreach message types.
const (
	MessageCold     = "cold"
	MessageWarm     = "warm"
	MessageFollowup = "followup"
	MessageBreakup  = "breakup"
)

// OutreachRequest describes one outreach generation.
type OutreachRequest struct {
	Identity    LeadIdentity
	MessageType string // cold | warm | followup | breakup
	// Analysis grounds personalization when available; nil degrades to
	// generic personalization rather than failing.
	Analysis *SDRAnalysis
	// Template is optional caller-supplied structure/tone guidance.
	Template string
	// PriorInteractions summarizes earlier touches for warm/followup
	// messages.
	PriorInteractions string
}

// OutreachAgent turns an SDR analysis plus lead identity into
// channel-specific message drafts.
type OutreachAgent struct {
	client *gen.Client
}

// NewOutreachAgent creates an outreach agent.
func NewOutreachAgent(client *gen.Client) *OutreachAgent {
	return &OutreachAgent{client: client}
}

func outreachSchema() *schema.Schema {
	return &schema.Schema{
		Name: "outreach_message",
		Fields: map[string]schema.Field{
			"email": schema.Object(map[string]schema.Field{
				"subject": schema.String(),
				"body":    schema.String(),
			}),
			"linkedinMessage": schema.String(),
			"callScript": schema.Object(map[string]schema.Field{
				"opener":           schema.String(),
				"valueProposition": schema.String(),
				"questions":        schema.Array(schema.String()),
				"objectionResponses": schema.Array(schema.Object(map[string]schema.Field{
					"objection": schema.String(),
					"response":  schema.String(),
				})),
				"meetingClose": schema.String(),
			}),
			"sms": schema.Optional(schema.String()),
			"personalizationTokens": schema.Array(schema.Object(map[string]schema.Field{
				"token":  schema.String(),
				"source": schema.String(),
			})),
		},
	}
}

const outreachSystemPrompt = `You are an outreach copywriter for a digital services agency. Draft
channel-specific messages for one lead: an email (subject + body), a
LinkedIn message, a structured call script, and optionally a short SMS.

Rules:
- Personalize from the supplied facts and analysis only. Every
  personalized claim must appear in personalizationTokens with the input
  fact that produced it, so personalization is auditable.
- If no analysis is supplied, write solid generic copy for the industry and
  message type; do not invent specifics.
- Email body is plain prose with short paragraphs; markdown emphasis is
  allowed but no headings or images.
- LinkedIn messages stay under 300 characters. SMS under 160 or omitted.
- The call script's questions are ordered from rapport to qualification to
  close.
- Match the message type: cold introduces, warm references the relationship,
  followup advances an open thread, breakup politely closes the loop while
  leaving a door open.`

// Generate drafts an outreach message. Sections of the grounding context
// that are absent (analysis, template, prior interactions) are simply
// omitted from the prompt.
func (a *OutreachAgent) Generate(ctx context.Context, req OutreachRequest) (*OutreachMessage, error) {
	validated, err := a.client.Generate(ctx, outreachSchema(), outreachSystemPrompt, outreachUserPrompt(req, ""))
	if err != nil {
		return nil, err
	}

	var msg OutreachMessage
	if err := decode(validated, &msg); err != nil {
		return nil, fmt.Errorf("decode outreach message: %w", err)
	}

	log.Debug("outreach: drafted %s message for %s", req.MessageType, req.Identity.Key())
	return &msg, nil
}

// GenerateVariations produces count diverse drafts for A/B testing.
// Generation is strictly sequential: variation k is steered away from
// variation k-1's subject line (not from the full history), so each call
// depends on the prior result. Context cancellation stops not-yet-started
// variations and returns what was already drafted along with the error.
func (a *OutreachAgent) GenerateVariations(ctx context.Context, identity LeadIdentity, count int) ([]OutreachMessage, error) {
	if count < 1 {
		return nil, fmt.Errorf("variation count must be positive, got %d", count)
	}

	req := OutreachRequest{Identity: identity, MessageType: MessageCold}
	variations := make([]OutreachMessage, 0, count)
	prevSubject := ""

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return variations, fmt.Errorf("variations cancelled after %d of %d: %w", i, count, err)
		}

		divergence := ""
		if prevSubject != "" {
			divergence = fmt.Sprintf(
				"The previous draft used the subject line %q. Take a noticeably different angle: different hook, different subject line, different opening sentence.",
				prevSubject,
			)
		}

		validated, err := a.client.Generate(ctx, outreachSchema(), outreachSystemPrompt, outreachUserPrompt(req, divergence))
		if err != nil {
			return variations, err
		}

		var msg OutreachMessage
		if err := decode(validated, &msg); err != nil {
			return variations, fmt.Errorf("decode variation %d: %w", i+1, err)
		}

		variations = append(variations, msg)
		prevSubject = msg.Email.Subject
	}

	return variations, nil
}

func outreachUserPrompt(req OutreachRequest, divergence string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Draft a %s outreach message for:\n\n", req.MessageType)
	fmt.Fprintf(&sb, "- Contact: %s\n", req.Identity.Name)
	fmt.Fprintf(&sb, "- Company: %s\n", req.Identity.CompanyName)
	writeFact(&sb, "Title", req.Identity.Title, "")
	writeFact(&sb, "Industry", req.Identity.Industry, "")
	writeFact(&sb, "Website", req.Identity.Website, "")
	writeFact(&sb, "Notes", req.Identity.Notes, "")

	if req.PriorInteractions != "" {
		sb.WriteString("\nPrior interactions:\n")
		sb.WriteString(req.PriorInteractions)
		sb.WriteString("\n")
	}

	if req.Analysis != nil {
		sb.WriteString("\nSDR analysis highlights:\n")
		for _, p := range req.Analysis.PainPoints {
			fmt.Fprintf(&sb, "- Pain point (%s/%s): %s\n", p.Category, p.Severity, p.Description)
		}
		for _, t := range req.Analysis.TalkingPoints {
			fmt.Fprintf(&sb, "- Talking point: %s\n", t)
		}
		for _, o := range req.Analysis.SalesOpportunities {
			fmt.Fprintf(&sb, "- Opportunity (%s value): %s\n", o.EstimatedValue, o.Description)
		}
	}

	if req.Template != "" {
		sb.WriteString("\nFollow this template guidance:\n")
		sb.WriteString(req.Template)
		sb.WriteString("\n")
	}

	if divergence != "" {
		sb.WriteString("\n")
		sb.WriteString(divergence)
		sb.WriteString("\n")
	}

	return sb.String()
}
