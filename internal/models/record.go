package models

// Sentiment is the overall review-level label.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// AspectSentiment is the per-aspect label. Lowercase by convention to
// keep aspect rows visually distinct from the overall label in exports.
type AspectSentiment string

const (
	AspectPositive AspectSentiment = "positive"
	AspectNeutral  AspectSentiment = "neutral"
	AspectNegative AspectSentiment = "negative"
)

// Confidence is deliberately categorical. A numeric confidence implies
// precision the pipeline does not have.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// ValidConfidence reports whether c is one of the three allowed values.
func ValidConfidence(c Confidence) bool {
	return c == ConfidenceLow || c == ConfidenceMedium || c == ConfidenceHigh
}

// UrgencyReasonNone is the urgency_reason value for non-urgent records.
const UrgencyReasonNone = "none"

// AspectDetail holds one aspect's corrected sentiment, score, and up to
// three evidence snippets for explainability.
type AspectDetail struct {
	Sentiment AspectSentiment `json:"sentiment"`
	Score     float64         `json:"score"`
	Mentions  []string        `json:"mentions"`
}

// MaxAspectMentions caps retained evidence snippets per aspect.
const MaxAspectMentions = 3

// MaxMatchedPatterns caps retained urgency keyword snippets per record.
const MaxMatchedPatterns = 5

// AnalysisRecord is the pipeline's product: every Review field plus the
// extracted signals and their audit trail. Conceptually immutable once
// contract enforcement has run.
type AnalysisRecord struct {
	Review

	OverallSentiment Sentiment  `json:"overall_sentiment"`
	VaderCompound    float64    `json:"vader_compound"`
	FinalScore       float64    `json:"final_score"`
	Confidence       Confidence `json:"confidence"`
	RatingOverride   bool       `json:"rating_override"`

	AspectsDetected  []string                 `json:"aspects_detected"`
	AspectSentiments map[string]*AspectDetail `json:"aspect_sentiments"`

	Urgent          bool     `json:"urgent"`
	UrgencyReason   string   `json:"urgency_reason"`
	SeverityScore   int      `json:"severity_score"`
	MatchedPatterns []string `json:"matched_patterns"`

	// Audit fields from the optional external opinion; nil when no
	// opinion was available.
	LLMSentiment *Sentiment `json:"llm_sentiment"`
	LLMReasoning *string    `json:"llm_reasoning"`
}

// Clone returns a deep copy of the record. Contract enforcement works on
// a copy so callers keep the pre-enforcement record for auditing.
func (r *AnalysisRecord) Clone() *AnalysisRecord {
	out := *r

	if r.AspectsDetected != nil {
		out.AspectsDetected = append([]string(nil), r.AspectsDetected...)
	}
	if r.MatchedPatterns != nil {
		out.MatchedPatterns = append([]string(nil), r.MatchedPatterns...)
	}
	if r.AspectSentiments != nil {
		out.AspectSentiments = make(map[string]*AspectDetail, len(r.AspectSentiments))
		for name, detail := range r.AspectSentiments {
			copied := *detail
			if detail.Mentions != nil {
				copied.Mentions = append([]string(nil), detail.Mentions...)
			}
			out.AspectSentiments[name] = &copied
		}
	}
	if r.LLMSentiment != nil {
		s := *r.LLMSentiment
		out.LLMSentiment = &s
	}
	if r.LLMReasoning != nil {
		s := *r.LLMReasoning
		out.LLMReasoning = &s
	}
	return &out
}

// EligibleForResponse reports whether the record qualifies for the
// downstream response-drafting step: only ratings at or below the
// configured negative threshold get a drafted reply. Urgency and
// severity are advisory inputs to that step's prioritisation, not
// eligibility criteria.
func (r *AnalysisRecord) EligibleForResponse(maxRating int) bool {
	return r.Rating <= maxRating
}
