package brief

import "fmt"

// systemPrompt pins the output contract: exactly 3 angles, exactly 3
// criteria, 4-6 sentence brief.
const systemPrompt = `You are an expert marketing strategist specializing in creator campaigns.
Generate concise, actionable campaign briefs. Always return exactly 3 content angles and 3 creator selection criteria.
Keep briefs to 4-6 sentences. Be specific and platform-appropriate.`

func buildUserPrompt(req Request) string {
	return fmt.Sprintf(`Generate a campaign brief for %s.

Platform: %s
Goal: %s
Tone: %s

Return a JSON object with:
- "brief": A 4-6 sentence campaign brief
- "angles": Array of exactly 3 content angle suggestions
- "criteria": Array of exactly 3 creator selection criteria bullets`, req.BrandName, req.Platform, req.Goal, req.Tone)
}
