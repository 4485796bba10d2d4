package models

// OpinionAspect is one aspect judgement from the external semantic
// analyst, already validated against the allow-listed enums.
type OpinionAspect struct {
	Aspect    string          `json:"aspect"`
	Sentiment AspectSentiment `json:"sentiment"`
	Evidence  string          `json:"evidence"`
}

// Opinion is a validated external-model judgement of a review. It is an
// opinion, not the final answer: the fusion engine merges it into the
// deterministic record and contract enforcement has final authority.
//
// A nil *Opinion means "no opinion": the provider absorbed whatever
// went wrong (missing credentials, network failure, malformed or
// schema-violating response) and the pipeline proceeds deterministically.
type Opinion struct {
	OverallSentiment Sentiment       `json:"overall_sentiment"`
	Aspects          []OpinionAspect `json:"aspects"`
	Urgent           bool            `json:"urgent"`
	UrgencyReason    string          `json:"urgency_reason,omitempty"`
	Reasoning        string          `json:"reasoning"`
}

// MentionsAspect reports whether the opinion flags the named aspect.
func (o *Opinion) MentionsAspect(name string) bool {
	for _, a := range o.Aspects {
		if a.Aspect == name {
			return true
		}
	}
	return false
}
