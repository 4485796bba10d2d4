package opinion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/skaranth/reviewpulse/internal/clients"
	"github.com/skaranth/reviewpulse/internal/models"
	"github.com/skaranth/reviewpulse/internal/rules"
	"github.com/skaranth/reviewpulse/internal/utils"
)

const (
	defaultModel       = openai.GPT4oMini
	maxEvidenceLength  = 200
	maxReasoningLength = 500
)

const systemPrompt = `You are a senior reputation analyst for Indian restaurants. ` +
	`You analyze Google Business reviews to extract sentiment, aspects, and urgency. ` +
	`You understand Indian English, Hinglish, and regional food terminology. ` +
	`Be precise. Do not infer what is not stated. ` +
	`Do not hallucinate aspects that the reviewer did not mention.`

const userPromptTemplate = `Analyze this restaurant review.

Reviewer: %s
Rating: %d/5
Review: %s

Return a JSON object with exactly these fields:
- "overall_sentiment": one of "Positive", "Neutral", "Negative"
- "aspects": array of objects, each with:
  - "aspect": one of "food", "service", "hygiene", "price", "ambience", "safety"
  - "sentiment": one of "positive", "neutral", "negative"
  - "evidence": short quoted snippet from the review (max 15 words)
- "urgent": true if the review describes something requiring immediate business attention (food poisoning, hygiene crisis, safety hazard, abusive staff, legal threat), false otherwise
- "urgency_reason": one of "food_poisoning", "hygiene_severe", "rude_staff", "safety_concern", "authority_escalation", or null if not urgent
- "reasoning": one sentence explaining your overall assessment

Only include aspects the reviewer actually mentioned. Return valid JSON only.`

var (
	allowedSentiments = map[models.Sentiment]bool{
		models.SentimentPositive: true,
		models.SentimentNeutral:  true,
		models.SentimentNegative: true,
	}
	allowedAspects = map[string]bool{
		"food": true, "service": true, "hygiene": true,
		"price": true, "ambience": true, "safety": true,
	}
	allowedAspectSentiments = map[models.AspectSentiment]bool{
		models.AspectPositive: true,
		models.AspectNeutral:  true,
		models.AspectNegative: true,
	}
	allowedUrgencyReasons = map[string]bool{
		rules.CategoryFoodPoisoning:       true,
		rules.CategoryHygieneSevere:       true,
		rules.CategoryRudeStaff:           true,
		rules.CategorySafetyConcern:       true,
		rules.CategoryAuthorityEscalation: true,
	}
)

// OpenAIProvider asks an OpenAI chat model for a structured opinion.
// Exactly one attempt per review; retries belong to the caller's policy,
// not here.
type OpenAIProvider struct {
	model string
}

// NewOpenAIProvider builds a provider using the given model name, or the
// default when empty. The underlying client is initialized lazily on the
// first Analyze call.
func NewOpenAIProvider(model string) *OpenAIProvider {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIProvider{model: model}
}

// Analyze sends one review for semantic analysis. Every failure path
// returns nil: missing credentials, transport errors, non-JSON output,
// and schema violations are indistinguishable to the caller.
func (p *OpenAIProvider) Analyze(ctx context.Context, review models.Review) *models.Opinion {
	client, err := clients.GetOpenAIClient()
	if err != nil {
		return nil
	}

	prompt := fmt.Sprintf(userPromptTemplate, review.ReviewerName, review.Rating, review.ReviewText)

	resp, err := client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		slog.Warn("[OpinionProvider] OpenAI call failed",
			slog.String("review_id", review.ReviewID),
			slog.String("error", err.Error()))
		return nil
	}
	if len(resp.Choices) == 0 {
		slog.Warn("[OpinionProvider] OpenAI returned no choices",
			slog.String("review_id", review.ReviewID))
		return nil
	}

	cleaned := cleanResponse(resp.Choices[0].Message.Content)
	if cleaned == "" {
		slog.Warn("[OpinionProvider] Response is not a JSON object",
			slog.String("review_id", review.ReviewID))
		return nil
	}

	var raw rawOpinion
	if err := utils.DeserializeFromJSON([]byte(cleaned), &raw); err != nil {
		slog.Warn("[OpinionProvider] Failed to unmarshal opinion",
			slog.String("review_id", review.ReviewID))
		return nil
	}

	op := validate(raw)
	if op == nil {
		slog.Warn("[OpinionProvider] Opinion failed schema validation",
			slog.String("review_id", review.ReviewID))
	}
	return op
}

// rawOpinion is the loosely-typed wire shape. It is validated into a
// models.Opinion; any field outside the allow-listed enums is rejected
// (for the overall sentiment) or dropped (per-aspect), never coerced.
type rawOpinion struct {
	OverallSentiment string      `json:"overall_sentiment"`
	Aspects          []rawAspect `json:"aspects"`
	Urgent           bool        `json:"urgent"`
	UrgencyReason    *string     `json:"urgency_reason"`
	Reasoning        string      `json:"reasoning"`
}

type rawAspect struct {
	Aspect    string `json:"aspect"`
	Sentiment string `json:"sentiment"`
	Evidence  string `json:"evidence"`
}

func validate(raw rawOpinion) *models.Opinion {
	sentiment := models.Sentiment(raw.OverallSentiment)
	if !allowedSentiments[sentiment] {
		return nil
	}

	var aspects []models.OpinionAspect
	for _, a := range raw.Aspects {
		if !allowedAspects[a.Aspect] {
			continue
		}
		aspectSentiment := models.AspectSentiment(a.Sentiment)
		if !allowedAspectSentiments[aspectSentiment] {
			continue
		}
		aspects = append(aspects, models.OpinionAspect{
			Aspect:    a.Aspect,
			Sentiment: aspectSentiment,
			Evidence:  truncate(a.Evidence, maxEvidenceLength),
		})
	}

	reason := ""
	if raw.UrgencyReason != nil && allowedUrgencyReasons[*raw.UrgencyReason] {
		reason = *raw.UrgencyReason
	}
	if !raw.Urgent {
		reason = ""
	}

	return &models.Opinion{
		OverallSentiment: sentiment,
		Aspects:          aspects,
		Urgent:           raw.Urgent,
		UrgencyReason:    reason,
		Reasoning:        truncate(raw.Reasoning, maxReasoningLength),
	}
}

// cleanResponse strips markdown code fences that chat models sometimes
// wrap around JSON, and rejects anything that does not look like an
// object afterwards.
func cleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "\n")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "{") || !strings.HasSuffix(cleaned, "}") {
		return ""
	}
	return cleaned
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
