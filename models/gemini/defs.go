package gemini

import "google.golang.org/genai"

const (
	DefaultChatModel      = "gemini-2.0-flash"
	DefaultEmbeddingModel = "text-embedding-004"
)

// IntentResultSchema constrains classifier output to the IntentResult JSON shape.
func IntentResultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"intent": {
				Type: genai.TypeString,
				Enum: []string{"GREETING", "THANKS", "QUESTION", "FOLLOW_UP"},
			},
			"request_type": {
				Type:        genai.TypeString,
				Description: "grammar, reference, alternative, previous_request, new_topic or a catalog category key",
			},
			"confidence": {
				Type: genai.TypeNumber,
			},
		},
		Required: []string{"intent", "request_type", "confidence"},
	}
}
