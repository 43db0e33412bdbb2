package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/leadforge/salespipe/gen"
	"github.com/leadforge/salespipe/log"
	"github.com/leadforge/salespipe/schema"
)

// Lead temperature classes for cadence design.
const (
	LeadCold         = "cold"
	LeadWarm         = "warm"
	LeadHot          = "hot"
	LeadReEngagement = "re-engagement"
)

// CadenceRequest describes the lead population a cadence is designed for.
type CadenceRequest struct {
	LeadType           string // cold | warm | hot | re-engagement
	Industry           string
	CompanySize        string
	CustomInstructions string
}

// Activity is one recorded touch or lead response.
type Activity struct {
	Type    string // email_sent | email_opened | email_clicked | call_made | call_answered | linkedin_sent | reply_received | meeting_booked
	Date    string
	Details string
}

// Engagement aggregates response signals across a lead's history.
type Engagement struct {
	Opens         int
	Clicks        int
	CallsAnswered int
	Replies       int
}

// NextActionRequest is the state snapshot the next-action decision runs on.
type NextActionRequest struct {
	LeadName           string
	CompanyName        string
	CadenceStep        int
	TotalSteps         int
	LastActivity       *Activity
	Engagement         Engagement
	DaysSinceLastTouch int
}

// FollowupAgent designs follow-up cadences and decides per-lead next
// actions.
type FollowupAgent struct {
	client *gen.Client
}

// NewFollowupAgent creates a follow-up agent.
func NewFollowupAgent(client *gen.Client) *FollowupAgent {
	return &FollowupAgent{client: client}
}

func cadenceSchema() *schema.Schema {
	return &schema.Schema{
		Name: "followup_cadence",
		Fields: map[string]schema.Field{
			"name":              schema.String(),
			"description":       schema.String(),
			"totalDurationDays": schema.IntRange(1, 365),
			"steps": schema.Array(schema.Object(map[string]schema.Field{
				"stepNumber": schema.IntRange(1, 50),
				"channel":    schema.StringEnum("email", "call", "linkedin", "sms", "video", "direct_mail"),
				"delayDays":  schema.IntRange(0, 90),
				"content":    schema.String(),
				"notes":      schema.Optional(schema.String()),
			})),
			"exitConditions": schema.Array(schema.String()),
			"bestPractices":  schema.Array(schema.String()),
		},
	}
}

func nextActionSchema() *schema.Schema {
	return &schema.Schema{
		Name: "next_action",
		Fields: map[string]schema.Field{
			"action":           schema.StringEnum("email", "call", "linkedin", "sms", "wait", "escalate", "close"),
			"reasoning":        schema.String(),
			"suggestedContent": schema.Optional(schema.String()),
			"urgency":          schema.StringEnum("low", "medium", "high", "immediate"),
			"optimalTiming":    schema.String(),
		},
	}
}

const cadenceSystemPrompt = `You are a sales operations strategist designing multi-touch follow-up
cadences for a digital services agency.

Rules:
- Steps are numbered strictly 1, 2, 3, ... with no gaps.
- delayDays on each step is the wait after the previous touch. Delays never
  shrink as the cadence progresses: early touches come quickly, later
  touches spread out.
- Mix channels; never more than two consecutive touches on one channel.
- Cold cadences run longer with lighter touches. Hot cadences are short and
  direct. Re-engagement cadences lead with a value-add, not an ask.
- exitConditions name the signals that should pull a lead out of the
  cadence (reply, meeting booked, unsubscribe, disqualification).
- bestPractices are short operator notes for the team running the cadence.`

const nextActionSystemPrompt = `You decide the single next action for one lead in an outreach cadence,
given their engagement history.

Rules:
- High engagement (replies, answered calls, multiple clicks) escalates:
  call or escalate with appropriate urgency.
- Zero engagement deep into the cadence means close or switch channels, not
  more of the same.
- A lead with no recorded activity at all who has nonetheless been sitting
  for many days is a process failure: choose escalate or close with high or
  immediate urgency. Never choose wait for an abandoned, never-contacted
  lead.
- wait is only correct when a recent touch deserves time to land.
- reasoning cites the specific signals that drove the decision.`

// GenerateCadence designs a follow-up cadence for a lead population. The
// returned cadence is guaranteed ordered: step numbers strictly increasing
// from 1 and delays non-decreasing. A draft violating that ordering is
// rejected as a constraint violation rather than silently reordered, since
// reordering steps changes what the model meant.
func (a *FollowupAgent) GenerateCadence(ctx context.Context, req CadenceRequest) (*FollowupCadence, error) {
	validated, err := a.client.Generate(ctx, cadenceSchema(), cadenceSystemPrompt, cadenceUserPrompt(req))
	if err != nil {
		return nil, err
	}

	var cadence FollowupCadence
	if err := decode(validated, &cadence); err != nil {
		return nil, fmt.Errorf("decode cadence: %w", err)
	}

	if err := checkCadenceOrder(cadence.Steps); err != nil {
		return nil, &gen.Error{Kind: gen.KindSchemaViolation, Schema: "followup_cadence", Err: err}
	}

	log.Debug("followup: generated %d-step %s cadence", len(cadence.Steps), req.LeadType)
	return &cadence, nil
}

func checkCadenceOrder(steps []CadenceStep) error {
	verr := &schema.ValidationError{Schema: "followup_cadence"}
	prevDelay := -1
	for i, step := range steps {
		path := fmt.Sprintf("steps[%d]", i)
		if step.StepNumber != i+1 {
			verr.Add(path+".stepNumber", fmt.Sprintf("expected %d, got %d", i+1, step.StepNumber))
		}
		if step.DelayDays < prevDelay {
			verr.Add(path+".delayDays", fmt.Sprintf("delay %d shrinks below previous delay %d", step.DelayDays, prevDelay))
		}
		if step.DelayDays > prevDelay {
			prevDelay = step.DelayDays
		}
	}
	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

// DetermineNextAction decides the next move for a single lead from its
// engagement snapshot.
func (a *FollowupAgent) DetermineNextAction(ctx context.Context, req NextActionRequest) (*NextAction, error) {
	validated, err := a.client.Generate(ctx, nextActionSchema(), nextActionSystemPrompt, nextActionUserPrompt(req))
	if err != nil {
		return nil, err
	}

	var action NextAction
	if err := decode(validated, &action); err != nil {
		return nil, fmt.Errorf("decode next action: %w", err)
	}
	return &action, nil
}

func cadenceUserPrompt(req CadenceRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Design a follow-up cadence for %s leads.\n\n", req.LeadType)
	writeFact(&sb, "Industry", req.Industry, "")
	writeFact(&sb, "Company size", req.CompanySize, "")
	if req.CustomInstructions != "" {
		sb.WriteString("\nAdditional instructions:\n")
		sb.WriteString(req.CustomInstructions)
		sb.WriteString("\n")
	}
	return sb.String()
}

func nextActionUserPrompt(req NextActionRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Decide the next action for %s at %s.\n\n", req.LeadName, req.CompanyName)
	fmt.Fprintf(&sb, "- Cadence position: step %d of %d\n", req.CadenceStep, req.TotalSteps)
	fmt.Fprintf(&sb, "- Days since last touch: %d\n", req.DaysSinceLastTouch)
	fmt.Fprintf(&sb, "- Engagement: %d opens, %d clicks, %d calls answered, %d replies\n",
		req.Engagement.Opens, req.Engagement.Clicks, req.Engagement.CallsAnswered, req.Engagement.Replies)
	if req.LastActivity != nil {
		fmt.Fprintf(&sb, "- Last activity: %s on %s", req.LastActivity.Type, req.LastActivity.Date)
		if req.LastActivity.Details != "" {
			fmt.Fprintf(&sb, " (%s)", req.LastActivity.Details)
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("- Last activity: NONE recorded. This lead has never been contacted.\n")
	}
	return sb.String()
}
