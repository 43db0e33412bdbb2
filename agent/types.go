package agent

import "encoding/json"

// LeadIdentity is the immutable input fact sheet for a lead, constructed by
// the caller from persisted records. Name and CompanyName are required;
// everything else is optional and absence is itself treated as signal by
// the SDR agent.
type LeadIdentity struct {
	Name             string `json:"name"`
	CompanyName      string `json:"companyName"`
	Title            string `json:"title,omitempty"`
	Industry         string `json:"industry,omitempty"`
	Website          string `json:"website,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	SocialProfileURL string `json:"socialProfileUrl,omitempty"`
	Source           string `json:"source,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// Key returns the identity's batch result key.
func (l LeadIdentity) Key() string {
	return l.CompanyName + "-" + l.Name
}

// Qualification tiers.
const (
	QualUnqualified        = "unqualified"
	QualMarketingQualified = "marketing_qualified"
	QualSalesQualified     = "sales_qualified"
	QualHighlyQualified    = "highly_qualified"
)

// DigitalPresenceScores holds the four 0-100 sub-scores plus the
// categorical website assessment.
type DigitalPresenceScores struct {
	WebsiteScore        int    `json:"websiteScore"`
	SEOScore            int    `json:"seoScore"`
	SocialMediaScore    int    `json:"socialMediaScore"`
	GoogleBusinessScore int    `json:"googleBusinessScore"`
	WebsiteAssessment   string `json:"websiteAssessment"`
}

// PainPoint is one identified problem with severity and category.
type PainPoint struct {
	Description string `json:"description"`
	Severity    string `json:"severity"` // low | medium | high | critical
	Category    string `json:"category"`
}

// SalesOpportunity is one identified opening for a service sale.
type SalesOpportunity struct {
	Description        string `json:"description"`
	RecommendedService string `json:"recommendedService"`
	EstimatedValue     string `json:"estimatedValue"` // low | medium | high
	Priority           int    `json:"priority"`       // 1-5
}

// AutomationOpportunity is one workflow the lead could automate.
type AutomationOpportunity struct {
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Complexity  string `json:"complexity"` // low | medium | high
}

// Qualification is the BANT assessment plus the overall tier.
type Qualification struct {
	Budget       string `json:"budget"`
	Authority    string `json:"authority"`
	Need         string `json:"need"`
	Timeline     string `json:"timeline"`
	OverallScore string `json:"overallScore"`
}

// SDRAnalysis is the full qualification result for one lead.
type SDRAnalysis struct {
	ICPScore                int                     `json:"icpScore"`
	ICPFitReason            string                  `json:"icpFitReason"`
	DigitalPresence         DigitalPresenceScores   `json:"digitalPresence"`
	PainPoints              []PainPoint             `json:"painPoints"`
	SalesOpportunities      []SalesOpportunity      `json:"salesOpportunities"`
	TalkingPoints           []string                `json:"talkingPoints"`
	AutomationOpportunities []AutomationOpportunity `json:"automationOpportunities"`
	Qualification           Qualification           `json:"qualification"`
	RecommendedNextSteps    []string                `json:"recommendedNextSteps"`
}

// CompanyProfile is the firmographic core of an enrichment result.
type CompanyProfile struct {
	Name             string `json:"name"`
	Size             string `json:"size"`             // solo | small | medium | large | enterprise
	EstimatedRevenue string `json:"estimatedRevenue"` // <1M | 1M-10M | 10M-50M | 50M+ | unknown
	Location         string `json:"location"`
	BusinessType     string `json:"businessType"` // b2b | b2c | b2b2c | unknown
	YearsInBusiness  int    `json:"yearsInBusiness,omitempty"`
	Description      string `json:"description"`
}

// SocialProfile is one social media presence.
type SocialProfile struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// DigitalPresenceDetail describes what a company runs online.
type DigitalPresenceDetail struct {
	WebsiteTech              []string        `json:"websiteTech"`
	SocialProfiles           []SocialProfile `json:"socialProfiles"`
	HasGoogleBusinessProfile bool            `json:"hasGoogleBusinessProfile"`
	GoogleRating             float64         `json:"googleRating,omitempty"`
}

// Contact is one person at the company.
type Contact struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	IsDecisionMaker bool   `json:"isDecisionMaker"`
}

// NewsItem is a recent news mention with a sentiment tag.
type NewsItem struct {
	Headline  string `json:"headline"`
	Sentiment string `json:"sentiment"` // positive | neutral | negative
}

// Signals are time-sensitive buying/risk indicators.
type Signals struct {
	RecentNews       []NewsItem `json:"recentNews"`
	FundingEvents    []string   `json:"fundingEvents"`
	GrowthIndicators []string   `json:"growthIndicators"`
	RiskIndicators   []string   `json:"riskIndicators"`
}

// Firmographics classify the company for segmentation.
type Firmographics struct {
	IndustryCodes []string `json:"industryCodes"`
	Competitors   []string `json:"competitors"`
	Keywords      []string `json:"keywords"`
}

// Confidence carries four independent 0-100 trust scores. Confidence is
// reported explicitly, never implied by omission: low-confidence sections
// need human verification before automated decisions use them.
type Confidence struct {
	Overall         int `json:"overall"`
	Company         int `json:"company"`
	Contact         int `json:"contact"`
	DigitalPresence int `json:"digitalPresence"`
}

// EnrichmentData is the full firmographic and digital profile produced by
// the enrichment agent.
type EnrichmentData struct {
	Company         CompanyProfile        `json:"company"`
	DigitalPresence DigitalPresenceDetail `json:"digitalPresence"`
	Contacts        []Contact             `json:"contacts"`
	Signals         Signals               `json:"signals"`
	Firmographics   Firmographics         `json:"firmographics"`
	Confidence      Confidence            `json:"confidence"`
}

// EmailDraft is a subject and body pair.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ObjectionResponse pairs an expected objection with its response.
type ObjectionResponse struct {
	Objection string `json:"objection"`
	Response  string `json:"response"`
}

// CallScript is a structured phone outreach script.
type CallScript struct {
	Opener             string              `json:"opener"`
	ValueProposition   string              `json:"valueProposition"`
	Questions          []string            `json:"questions"`
	ObjectionResponses []ObjectionResponse `json:"objectionResponses"`
	MeetingClose       string              `json:"meetingClose"`
}

// PersonalizationToken records which input fact produced which piece of a
// message, so personalization is auditable.
type PersonalizationToken struct {
	Token  string `json:"token"`
	Source string `json:"source"`
}

// OutreachMessage holds channel-specific drafts for one lead.
type OutreachMessage struct {
	Email                 EmailDraft             `json:"email"`
	LinkedInMessage       string                 `json:"linkedinMessage"`
	CallScript            CallScript             `json:"callScript"`
	SMS                   string                 `json:"sms,omitempty"`
	PersonalizationTokens []PersonalizationToken `json:"personalizationTokens"`
}

// CadenceStep is one touch in a follow-up cadence.
type CadenceStep struct {
	StepNumber int    `json:"stepNumber"`
	Channel    string `json:"channel"` // email | call | linkedin | sms | video | direct_mail
	DelayDays  int    `json:"delayDays"`
	Content    string `json:"content"`
	Notes      string `json:"notes,omitempty"`
}

// FollowupCadence is an ordered, time-spaced outreach plan.
type FollowupCadence struct {
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	TotalDurationDays int           `json:"totalDurationDays"`
	Steps             []CadenceStep `json:"steps"`
	ExitConditions    []string      `json:"exitConditions"`
	BestPractices     []string      `json:"bestPractices"`
}

// NextAction is the reactive follow-up decision for one lead.
type NextAction struct {
	Action           string `json:"action"` // email | call | linkedin | sms | wait | escalate | close
	Reasoning        string `json:"reasoning"`
	SuggestedContent string `json:"suggestedContent,omitempty"`
	Urgency          string `json:"urgency"` // low | medium | high | immediate
	OptimalTiming    string `json:"optimalTiming"`
}

// decode round-trips a validated map into a typed struct. Validated values
// are schema-shaped by construction, so this cannot lose fields.
func decode(validated map[string]any, out any) error {
	data, err := json.Marshal(validated)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
