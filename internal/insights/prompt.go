package insights

import "fmt"

// insightPromptTemplate pins down the exact JSON shape the model must
// return, including the literal enum values and minimum cardinalities.
// The response is still treated as untrusted: everything the model sends
// back goes through StripFences, Decode, and Normalize.
const insightPromptTemplate = `
Analyze the current state of the %s industry and provide insights in ONLY the following JSON format without any additional notes or explanations:
{
  "salaryRanges": [
    { "role": "string", "min": number, "max": number, "median": number, "location": "string" }
  ],
  "growthRate": number,
  "demandLevel": "High" | "Medium" | "Low",
  "topSkills": ["skill1", "skill2"],
  "marketOutlook": "Positive" | "Neutral" | "Negative",
  "keyTrends": ["trend1", "trend2"],
  "recommendedSkills": [
    {
      "skill": "string",
      "sources": [
        { "name": "string", "type": "Video" | "Course" | "Documentation" | "Article", "url": "string" }
      ]
    }
  ]
}

IMPORTANT:
- Return ONLY the JSON. No extra text, no markdown formatting.
- Include at least 5 common roles for salary ranges.
- Growth rate should be a percentage number.
- Include at least 5 skills and 5 trends.
- For each recommended skill, provide exactly 3 trusted sources (official docs, YouTube, or courses).
`

// BuildPrompt returns the instruction text for generating insights about
// the given industry. Pure string template, no side effects.
func BuildPrompt(industry string) string {
	return fmt.Sprintf(insightPromptTemplate, industry)
}
