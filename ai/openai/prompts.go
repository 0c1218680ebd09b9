package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/pagesim/ai"
)

const sentimentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "score": {
      "type": "number",
      "minimum": -1,
      "maximum": 1
    },
    "magnitude": {
      "type": "number",
      "minimum": 0
    }
  },
  "required": ["score", "magnitude"],
  "additionalProperties": false
}`

const sentimentPromptTemplate = `Analyze the overall sentiment of the given text and return it as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "score" ranges from -1.0 (clearly negative) through 0.0 (neutral or mixed) to 1.0 (clearly positive).
- "magnitude" is 0 or greater and reflects the overall emotional strength of the text, regardless of polarity.
  Longer, more emotionally charged text has higher magnitude.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "The service was fantastic and the staff went out of their way to help."
Output:
{"score": 0.9, "magnitude": 0.9}

Example (neutral, factual):
Input: "The store opens at 9am on weekdays."
Output:
{"score": 0.0, "magnitude": 0.1}

Example (negative):
Input: "The checkout process was slow and the page kept crashing."
Output:
{"score": -0.7, "magnitude": 0.8}`

const entityResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {
            "type": "string"
          },
          "type": {
            "type": "string"
          }
        },
        "required": ["name", "type"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities"],
  "additionalProperties": false
}`

const entityPromptTemplate = `Extract the named entities mentioned in the given text and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "name" is the entity exactly as it appears in the text.
- "type" must match exactly one of the listed values: %s.
- List entities in order of first appearance. Do not repeat an entity.
- Include only entities that are explicitly mentioned in the text. Do not hallucinate.
- If no entities can be identified, return "entities": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Google was founded by Larry Page in California."
Output:
{
  "entities": [
    {"name": "Google", "type": "ORGANIZATION"},
    {"name": "Larry Page", "type": "PERSON"},
    {"name": "California", "type": "LOCATION"}
  ]
}

Example (no entities):
Input: "It was a nice day and nothing much happened."
Output:
{"entities": []}`

// buildSentimentPrompt creates the system prompt for sentiment analysis.
func buildSentimentPrompt() string {
	return fmt.Sprintf(sentimentPromptTemplate, sentimentResponseSchema)
}

// buildEntityPrompt creates the system prompt with entity types embedded.
func buildEntityPrompt() string {
	return fmt.Sprintf(entityPromptTemplate, entityResponseSchema,
		strings.Join(ai.EntityTypes, ", "))
}
