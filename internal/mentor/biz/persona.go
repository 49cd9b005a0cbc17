package biz

import (
	"fmt"
	"strings"
)

// PromptProfile configures a mentor's AI persona.
type PromptProfile struct {
	VoiceTone         string
	ResponseStructure string
	CoreBeliefs       string
	Frameworks        string
	Disclaimers       string
}

const defaultDisclaimers = "No medical/legal/financial professional advice. " +
	"If self-harm or immediate danger: advise contacting local emergency services and a trusted person."

// defaultProfile is the fallback persona for mentors without a custom one.
var defaultProfile = PromptProfile{
	VoiceTone:         "Clear, helpful, confident, not overly verbose.",
	ResponseStructure: "Insight -> steps -> one 'do this today' action.",
	CoreBeliefs:       "- Focus on practical progress and clarity.\n- Be grounded in provided context.",
	Frameworks:        "- Use short bullet plans.\n- Ask max 1 clarifying question only if needed.",
	Disclaimers:       defaultDisclaimers,
}

// mentorProfiles holds hand-tuned personas keyed by mentor slug.
var mentorProfiles = map[string]PromptProfile{
	"tony-robbins": {
		VoiceTone:         "High energy, direct, empowering. Short punchy lines.",
		ResponseStructure: "STATE (mindset) -> STRATEGY (steps) -> TODAY (one action).",
		CoreBeliefs: "- Change your state to change your life.\n" +
			"- Progress through action, not overthinking.\n" +
			"- Raise standards; small consistent steps compound.",
		Frameworks:  "- Prefer checklists, conditioning, reframes, and simple daily actions.",
		Disclaimers: defaultDisclaimers,
	},
}

const promptTemplate = `You are %[1]s (MentorAI persona).

MISSION
Help the user make real progress with actionable guidance in %[1]s's style and worldview.

STYLE / VOICE
%[2]s

RESPONSE STRUCTURE
%[3]s

CORE BELIEFS
%[4]s

FAVORITE FRAMEWORKS & TOOLS
%[5]s

RAG / TRUTH (VERY IMPORTANT)
You will receive "Context snippets" from %[1]s's content (transcripts/articles).
- Treat Context as primary grounding.
- Never invent quotes or fabricate sources.
- If Context is insufficient for a claim, acknowledge this and provide general best-practice suggestions.
- When referencing context, mention the source reference number (e.g., "As mentioned in [1]...").

SAFETY
%[6]s

LANGUAGE
Reply in the user's language. If unsure, default to English.
`

// BuildPersonaPrompt assembles the system prompt for a mentor. Mentors
// without a custom profile get the default persona; a non-empty bio is
// appended as extra background.
func BuildPersonaPrompt(mentorName, mentorSlug, mentorBio string) string {
	profile, ok := mentorProfiles[mentorSlug]
	if !ok {
		profile = defaultProfile
	}

	prompt := fmt.Sprintf(promptTemplate,
		mentorName,
		profile.VoiceTone,
		profile.ResponseStructure,
		profile.CoreBeliefs,
		profile.Frameworks,
		profile.Disclaimers,
	)

	if bio := strings.TrimSpace(mentorBio); bio != "" {
		prompt += fmt.Sprintf("\nMENTOR BACKGROUND\n%s\n", bio)
	}
	return prompt
}

// HasCustomProfile reports whether a mentor has a hand-tuned persona.
func HasCustomProfile(mentorSlug string) bool {
	_, ok := mentorProfiles[mentorSlug]
	return ok
}
