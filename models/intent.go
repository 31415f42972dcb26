package models

type Intent string

const (
	IntentGreeting Intent = "GREETING"
	IntentThanks   Intent = "THANKS"
	IntentQuestion Intent = "QUESTION"
	IntentFollowUp Intent = "FOLLOW_UP"
)

// RequestType refines a question. Besides the fixed labels below, any category key of the
// catalog's category map is accepted (e.g. "presentation").
type RequestType string

const (
	RequestGrammar         RequestType = "grammar"
	RequestReference       RequestType = "reference"
	RequestAlternative     RequestType = "alternative"
	RequestPreviousRequest RequestType = "previous_request"
	RequestNewTopic        RequestType = "new_topic"
)

type IntentResult struct {
	Intent      Intent      `json:"intent"`
	RequestType RequestType `json:"request_type"`
	Confidence  float64     `json:"confidence"`
}

// FallbackIntent is used whenever the classifier output cannot be trusted.
func FallbackIntent() IntentResult {
	return IntentResult{
		Intent:      IntentQuestion,
		RequestType: RequestNewTopic,
		Confidence:  0.5,
	}
}

// Valid reports whether i is one of the four known intents.
func (i Intent) Valid() bool {
	switch i {
	case IntentGreeting, IntentThanks, IntentQuestion, IntentFollowUp:
		return true
	}
	return false
}
