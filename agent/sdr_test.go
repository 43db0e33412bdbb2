package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadforge/salespipe/gen"
	"github.com/leadforge/salespipe/schema"
)

// sdrResponse renders a complete, valid sdr_analysis payload with the given
// icpScore and qualification tier.
func sdrResponse(icpScore int, tier string) string {
	return fmt.Sprintf(`{
		"icpScore": %d,
		"icpFitReason": "Local service business with a weak digital footprint.",
		"digitalPresence": {
			"websiteScore": 10,
			"seoScore": 15,
			"socialMediaScore": 20,
			"googleBusinessScore": 30,
			"websiteAssessment": "none"
		},
		"painPoints": [
			{"description": "No website on record", "severity": "critical", "category": "website"}
		],
		"salesOpportunities": [
			{"description": "Foundation website build", "recommendedService": "website build", "estimatedValue": "high", "priority": 1}
		],
		"talkingPoints": ["Competitors in the area rank for searches you are invisible in."],
		"automationOpportunities": [
			{"description": "Automated review requests after each job", "impact": "steady review velocity", "complexity": "low"}
		],
		"qualification": {
			"budget": "unknown",
			"authority": "high",
			"need": "high",
			"timeline": "medium",
			"overallScore": %q
		},
		"recommendedNextSteps": ["Call to confirm budget range."]
	}`, icpScore, tier)
}

func TestSDRAnalyze(t *testing.T) {
	model := &mockModel{responses: []string{sdrResponse(82, QualSalesQualified)}}
	agent := NewSDRAgent(testClient(model))

	lead := LeadIdentity{
		Name:        "Jane Doe",
		CompanyName: "Acme Roofing",
		Industry:    "home services",
		Phone:       "555-0100",
	}

	analysis, err := agent.Analyze(context.Background(), lead)
	assert.NoError(t, err)
	assert.Equal(t, 82, analysis.ICPScore)
	assert.Equal(t, QualSalesQualified, analysis.Qualification.OverallScore)
	assert.Equal(t, "none", analysis.DigitalPresence.WebsiteAssessment)
	assert.Len(t, analysis.PainPoints, 1)
	assert.Equal(t, "website", analysis.PainPoints[0].Category)
}

func TestSDRMissingWebsiteIsSignal(t *testing.T) {
	model := &mockModel{responses: []string{sdrResponse(40, QualMarketingQualified)}}
	agent := NewSDRAgent(testClient(model))

	_, err := agent.Analyze(context.Background(), LeadIdentity{
		Name:        "Jane Doe",
		CompanyName: "Acme Roofing",
	})
	assert.NoError(t, err)

	// the absent website shows up as an explicit negative fact, not a
	// silently omitted line
	assert.Len(t, model.calls, 1)
	assert.Contains(t, model.calls[0], "NONE on record")
	assert.Contains(t, model.calls[0], "red flag")
	assert.Contains(t, model.calls[0], "Jane Doe")
	assert.Contains(t, model.calls[0], "Acme Roofing")
}

func TestSDRRejectsOutOfRangeScore(t *testing.T) {
	model := &mockModel{responses: []string{sdrResponse(140, QualSalesQualified)}}
	agent := NewSDRAgent(testClient(model))

	_, err := agent.Analyze(context.Background(), LeadIdentity{Name: "J", CompanyName: "A"})
	assert.Error(t, err)
	assert.True(t, gen.IsSchemaViolation(err))

	var verr *schema.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "icpScore", verr.Errors[0].Path)
}

func TestSDRRejectsUnknownTier(t *testing.T) {
	model := &mockModel{responses: []string{sdrResponse(50, "somewhat_qualified")}}
	agent := NewSDRAgent(testClient(model))

	_, err := agent.Analyze(context.Background(), LeadIdentity{Name: "J", CompanyName: "A"})
	assert.True(t, gen.IsSchemaViolation(err))
}

func TestSDRBackendErrorPassesThrough(t *testing.T) {
	model := &mockModel{err: errors.New("rate limited")}
	agent := NewSDRAgent(testClient(model))

	_, err := agent.Analyze(context.Background(), LeadIdentity{Name: "J", CompanyName: "A"})
	assert.True(t, gen.IsBackend(err))
}
