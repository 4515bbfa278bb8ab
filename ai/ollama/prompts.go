package ollama

import "fmt"

// describePromptTemplate is the fixed instruction given to the vision model.
// It constrains the model to garment attributes only and explicitly excludes
// people and background. This is a stable system constant, not per-request
// configuration.
const describePromptTemplate = "Describe in at most %d words only the clothes in this image: " +
	"their color, texture, and cloth material. " +
	"Do not describe the humans or the background in this image."

// buildDescribePrompt renders the instruction with the configured word bound.
func buildDescribePrompt(words int) string {
	return fmt.Sprintf(describePromptTemplate, words)
}
