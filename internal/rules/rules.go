// Package rules holds every keyword table, lexicon, and threshold the
// analysis pipeline depends on. A Ruleset is built once at startup and
// shared read-only across workers; nothing in it is mutated after
// construction, so no locking is needed during scoring.
//
// All tuning lives here so that adjusting the pipeline means editing one
// package, not hunting through modules.
package rules

// UrgencyCategory pairs a keyword set with a fixed severity on the 0-10
// scale. Categories are scanned in declaration order and the highest
// matching severity wins.
type UrgencyCategory struct {
	Name     string
	Keywords []string
	Severity int
}

// Ruleset is the complete, immutable configuration for one pipeline
// instance.
type Ruleset struct {
	// Contraction expansions applied during text cleaning. Downstream
	// negation detection is word-based, so "don't" must become "do not".
	Contractions map[string]string

	// Hinglish content words rewritten to English equivalents so the
	// VADER lexicon can score the surrounding context.
	HinglishToEnglish map[string]string

	// Hand-tuned polarity scores on the VADER scale (-4..+4) for
	// Hinglish words with no good English translation.
	HinglishSentiment map[string]float64

	// Weight applied to the Hinglish boost before adding it to the VADER
	// compound. Kept below 1: reviews are majority English.
	HinglishWeight float64

	// Words that negate sentiment at the sentence level.
	NegationWords []string

	// Words that indicate a complaint context. Used both by the overall
	// classifier guardrails and by per-aspect score correction.
	NegativeIndicators []string

	// Complaint phrases checked (substring, lowercased) against retained
	// aspect evidence during contract enforcement. Includes multi-word
	// phrases like "not clean" that the word-level indicator scan misses.
	ComplaintIndicators []string

	// Aspect name -> keyword list. Word-boundary matched, longest first.
	AspectKeywords map[string][]string

	// Stable aspect iteration order for deterministic output.
	AspectOrder []string

	// Aspects where a complaint sentence may never score positive.
	ComplaintSensitiveAspects map[string]bool

	// Urgency categories in scan order, highest severity first.
	UrgencyCategories []UrgencyCategory

	// Categories exempt from the high-rating severity reduction. A
	// 5-star "no food poisoning!" false positive is an acceptable cost
	// against silently downgrading a genuine health incident. Tunable:
	// the reduction heuristic itself is unvalidated policy.
	RatingExemptCategories map[string]bool

	// Minimum severity for a review to be flagged urgent.
	UrgencyThreshold int

	// Classification thresholds on the compound score.
	PositiveThreshold float64
	NegativeThreshold float64

	// |score| below this zone lets the star rating decide.
	RatingOverrideZone float64

	// Rating bands for rating-derived sentiment.
	RatingPositiveMin int
	RatingNegativeMax int

	// Reviews longer than this with negative indicators get their
	// compound clamped (accumulated bag-of-words false positives).
	LongReviewThreshold int
}

// Default builds the production ruleset. The lexicons were curated from
// Indian-English restaurant review vocabulary; only words with unambiguous
// polarity are included to avoid false positives.
func Default() *Ruleset {
	return &Ruleset{
		Contractions: map[string]string{
			"don't":     "do not",
			"doesn't":   "does not",
			"didn't":    "did not",
			"won't":     "will not",
			"wouldn't":  "would not",
			"couldn't":  "could not",
			"shouldn't": "should not",
			"isn't":     "is not",
			"aren't":    "are not",
			"wasn't":    "was not",
			"weren't":   "were not",
			"hasn't":    "has not",
			"haven't":   "have not",
			"hadn't":    "had not",
			"can't":     "cannot",
			"it's":      "it is",
			"that's":    "that is",
			"there's":   "there is",
			"they're":   "they are",
			"we're":     "we are",
			"you're":    "you are",
			"i'm":       "i am",
			"i've":      "i have",
			"i'll":      "i will",
			"let's":     "let us",
			// Smart-quote variants, common when copy-pasting from phones.
			"don’t":   "do not",
			"doesn’t": "does not",
			"didn’t":  "did not",
			"won’t":   "will not",
			"can’t":   "cannot",
			"it’s":    "it is",
			"that’s":  "that is",
		},

		HinglishToEnglish: map[string]string{
			"khana":     "food",
			"khaana":    "food",
			"khane":     "food",
			"seva":      "service",
			"saaf":      "clean",
			"safai":     "cleanliness",
			"ganda":     "dirty",
			"gandagi":   "filth",
			"sasta":     "cheap",
			"mehnga":    "expensive",
			"mehenga":   "expensive",
			"daam":      "price",
			"paisa":     "money",
			"mahaul":    "ambience",
			"jagah":     "place",
			"bahut":     "very",
			"bohot":     "very",
			"ekdum":     "totally",
			"bilkul":    "completely",
			"zyada":     "too much",
			"kam":       "less",
			"achha":     "good",
			"accha":     "good",
			"acha":      "good",
			"bura":      "bad",
			"bakwas":    "rubbish",
			"bekar":     "useless",
			"bekaar":    "useless",
			"badhiya":   "excellent",
			"zabardast": "awesome",
			"mast":      "great",
			"lajawab":   "outstanding",
			"wahiyat":   "terrible",
			"ghatiya":   "disgusting",
		},

		// Magnitudes follow VADER conventions: 1-2 mild, 2-3 moderate,
		// 3-4 strong.
		HinglishSentiment: map[string]float64{
			"bakwas":    -2.5,
			"bekar":     -2.0,
			"bekaar":    -2.0,
			"ganda":     -2.5,
			"gandagi":   -3.0,
			"kharab":    -2.0,
			"faltu":     -1.5,
			"wahiyat":   -3.0,
			"ghatiya":   -3.0,
			"bura":      -2.0,
			"tatti":     -3.5,
			"mehnga":    -1.0,
			"mehenga":   -1.0,
			"achha":     2.0,
			"accha":     2.0,
			"acha":      2.0,
			"badhiya":   2.5,
			"zabardast": 3.0,
			"mast":      2.0,
			"sahi":      1.5,
			"shaandar":  3.0,
			"lajawab":   3.0,
			"kamaal":    2.5,
			"shandaar":  3.0,
			"tagda":     2.0,
			"sasta":     1.0,
			"thik":      0.5,
			"theek":     0.5,
			"chalta":    0.3,
		},
		HinglishWeight: 0.3,

		NegationWords: []string{
			"not", "no", "never", "neither", "nor", "nobody", "nothing",
			"nowhere", "hardly", "barely", "scarcely", "lack", "without",
			"absent", "nonexistent", "none", "cannot",
		},

		NegativeIndicators: []string{
			"average", "okay", "ok", "decent", "delay", "delayed", "waiting",
			"poor", "bad", "worst", "terrible", "horrible", "awful", "pathetic",
			"disgusting", "concern", "issue", "issues", "problem", "problems",
			"complaint", "dirty", "filthy", "stained", "flies", "cockroach",
			"rude", "shouting", "shout", "disrespectful", "mannerless",
			"slow", "careless", "negligent", "unsafe", "hazard", "danger",
			"improvement", "improve", "needs", "lacking", "nonexistent",
			"negative", "unhygienic", "unclean", "declined", "decreased",
			"overpriced", "expensive", "sick", "sickness", "poisoning",
			"shame", "avoid",
		},

		ComplaintIndicators: []string{
			"poor", "bad", "worst", "terrible", "horrible", "dirty", "filthy",
			"rude", "slow", "concern", "issue", "issues", "problem", "unsafe",
			"improvement", "improve", "nonexistent", "stained", "flies",
			"cockroach", "unhygienic", "careless", "negligent", "shouting",
			"disrespectful", "mannerless", "pathetic", "disgusting",
			"not clean", "no railing", "negative",
		},

		// Food keywords intentionally include specific dish names common
		// at South Indian restaurants: reviewers rarely write "the food",
		// they name the dish. Word-boundary matching avoids false
		// positives like "priceless" matching "price".
		AspectKeywords: map[string][]string{
			"food": {
				"food", "taste", "tasty", "dish", "dishes", "meal", "meals",
				"breakfast", "lunch", "dinner", "snack", "menu", "delicious",
				"flavour", "flavor", "spicy", "bland", "oily", "crispy", "fresh",
				"stale", "undercooked", "overcooked", "portion", "quantity",
				"dosa", "idli", "idly", "vada", "sambar", "chutney", "pongal",
				"upma", "rice", "bisibele", "bath", "roti", "rotti", "bajji",
				"coffee", "tea", "filter coffee", "ghee", "butter", "puri",
				"sagu", "poori", "kesari", "khara",
				"khana", "khaana", "khane", "swad", "swaad",
			},
			"service": {
				"service", "staff", "waiter", "server", "manager", "wait",
				"waiting", "slow", "fast", "quick", "rude", "polite", "friendly",
				"helpful", "attentive", "cashier", "billing", "order", "delivery",
				"self-service", "counter",
				"seva", "kaam", "behave", "behavior", "behaviour",
			},
			"hygiene": {
				"hygiene", "hygienic", "clean", "cleanliness", "dirty", "filthy",
				"wash", "unwashed", "sanitize", "sanitise", "fly", "flies", "cockroach",
				"insect", "stain", "stained", "plates", "utensils", "stomach",
				"food poisoning", "poisoning", "sick", "vomit", "diarrhea",
				"diarrhoea", "infection",
				"saaf", "safai", "ganda", "gandagi",
			},
			"price": {
				"price", "pricing", "expensive", "cheap", "cost", "costly",
				"value", "money", "worth", "overpriced", "affordable", "budget",
				"rupee", "rupees", "rs", "inr",
				"mehnga", "mehenga", "sasta", "daam", "paisa",
			},
			"ambience": {
				"ambience", "ambiance", "atmosphere", "decor", "decoration",
				"seating", "seat", "space", "spacious", "crowded", "crowd",
				"packed", "location", "parking", "interior", "exterior", "vibe",
				"music", "noise", "noisy", "lake", "view",
				"mahaul", "jagah",
			},
			"safety": {
				"safety", "safe", "unsafe", "railing", "stairs", "staircase",
				"accident", "injury", "hazard", "fire", "emergency", "security",
				"guard",
			},
		},
		AspectOrder: []string{"food", "service", "hygiene", "price", "ambience", "safety"},
		ComplaintSensitiveAspects: map[string]bool{
			"hygiene": true,
			"safety":  true,
			"service": true,
		},

		// The urgency threshold sits at 6: high enough to filter casual
		// complaints, low enough to catch rude-staff incidents.
		UrgencyCategories: []UrgencyCategory{
			{
				Name: CategoryFoodPoisoning,
				Keywords: []string{
					"food poisoning", "poisoning", "hospitalized", "hospitalised",
					"hospital", "fell sick", "severe stomach", "gut issues",
					"vomiting", "diarrhea", "diarrhoea", "food borne",
					"foodborne", "toxic",
				},
				Severity: 10,
			},
			{
				Name: CategoryHygieneSevere,
				Keywords: []string{
					"dirty kitchen", "filthy", "flies in", "fly in", "dead fly",
					"cockroach", "unwashed", "stained plates", "insect",
					"unhygienic", "not clean",
				},
				Severity: 9,
			},
			{
				Name: CategoryAuthorityEscalation,
				Keywords: []string{
					"fssai", "health department", "health inquiry",
					"health inspector", "legal action", "legal notice",
					"complaint to", "report to", "consumer court",
					"food safety", "inspection", "authority",
				},
				Severity: 8,
			},
			{
				Name: CategorySafetyConcern,
				Keywords: []string{
					"unsafe", "no railing", "broken stairs", "accident",
					"injury", "hazard", "fire safety", "emergency exit",
				},
				Severity: 7,
			},
			{
				Name: CategoryRudeStaff,
				Keywords: []string{
					"rude", "shouting", "shout", "disrespectful", "mannerless",
					"misbehave", "misbehaved", "arguing", "abusive", "arrogant",
					"insult", "insulted", "humiliate", "humiliated",
				},
				Severity: 6,
			},
		},
		RatingExemptCategories: map[string]bool{
			CategoryFoodPoisoning: true,
			CategoryHygieneSevere: true,
			CategorySafetyConcern: true,
		},
		UrgencyThreshold: 6,

		// Most clearly positive reviews score above 0.05 and clearly
		// negative ones below -0.05; the narrow neutral band reflects how
		// rare genuinely neutral restaurant reviews are.
		PositiveThreshold:  0.05,
		NegativeThreshold:  -0.05,
		RatingOverrideZone: 0.15,
		RatingPositiveMin:  4,
		RatingNegativeMax:  2,

		LongReviewThreshold: 250,
	}
}

// Urgency category names. These double as the urgency_reason enum values
// on emitted records.
const (
	CategoryFoodPoisoning       = "food_poisoning"
	CategoryHygieneSevere       = "hygiene_severe"
	CategoryAuthorityEscalation = "authority_escalation"
	CategorySafetyConcern       = "safety_concern"
	CategoryRudeStaff           = "rude_staff"
)
