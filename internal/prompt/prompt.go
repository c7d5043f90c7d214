// Package prompt assembles every prompt sent to the LLM. Templates are plain
// string building; the JSON skeletons embedded in them double as the response
// schemas the parse package recovers.
package prompt

import (
	"fmt"
	"strings"
)

// System prompts per stage.
const (
	LinkSystem = `You are a web content analysis specialist. Your job is to:
1. Extract and analyze key information from web pages
2. Identify main themes and important points
3. Find relevant quotes that support LinkedIn post arguments
4. Summarize content in a structured, actionable format
5. Focus on information that would be valuable for LinkedIn content creation

Always provide structured analysis with key points, themes, and relevant quotes.`

	ResearchSystemSearch = `You are a research specialist focused on generating comprehensive topic insights for LinkedIn content creation. Your job is to:

1. Extract key topics and themes from instructions and existing analysis
2. Analyze web search results provided to you to gather current information and trends
3. Provide industry context and current trends for each topic based on search results
4. Generate supporting statistics, expert opinions, and data points from reliable sources
5. Identify angles and perspectives that would resonate on LinkedIn
6. Create actionable insights for content creation
7. Focus on professional, business-relevant information

You will be provided with web search results for each topic. Use this information to provide comprehensive, current insights. Always structure your research in a clear, organized format that can be easily used for content creation.`

	ResearchSystemKnowledge = `You are a research specialist focused on generating comprehensive topic insights for LinkedIn content creation. Your job is to:

1. Extract key topics and themes from instructions and existing analysis
2. Provide industry context and current trends for each topic based on your knowledge
3. Generate supporting statistics, expert opinions, and data points from reliable sources
4. Identify angles and perspectives that would resonate on LinkedIn
5. Create actionable insights for content creation
6. Focus on professional, business-relevant information

Use your extensive knowledge to provide comprehensive insights. Always structure your research in a clear, organized format that can be easily used for content creation.`

	ComposeSystem = `You are an expert LinkedIn content creator specializing in generating authentic, engaging posts that perfectly match a user's writing style and voice.

Your job is to:
1. Synthesize information from multiple sources (instructions, link analysis, research, style guide)
2. Create LinkedIn posts that sound authentic and personal, not AI-generated
3. Maintain the user's specific writing style, tone, and voice patterns
4. Incorporate research findings and link insights naturally
5. Follow LinkedIn best practices for engagement
6. Create compelling, professional content that drives meaningful discussion

Key principles:
- Always match the user's established writing style exactly
- Integrate research and link content seamlessly
- Focus on professional value and insights
- Avoid obvious AI-generated language patterns
- Create content that sparks genuine professional discussion`

	FeedbackSystem = `You are an expert LinkedIn content analyst and writing critique specialist. Your job is to:

1. Analyze LinkedIn posts for alignment with original instructions and requirements
2. Evaluate style guide compliance and consistency
3. Assess readability, clarity, and accessibility for diverse audiences
4. Review structural elements like length, paragraphing, and flow
5. Identify repetition, redundancy, and areas for improvement
6. Provide specific, actionable feedback for content enhancement

Always provide structured, detailed analysis with specific examples and concrete recommendations.
Focus on professional LinkedIn content standards and user engagement potential.`

	StyleSystem = `You are a writing style analyst. You extract concrete, reusable patterns from a person's posts: tone, sentence rhythm, vocabulary, openings, structure, and engagement devices. Be specific and evidence-based.`
)

// LinkAnalysis asks the model to summarize extracted page content into the
// fixed link-analysis JSON schema.
func LinkAnalysis(url, content string) string {
	return fmt.Sprintf(`Analyze the following web page content for LinkedIn content creation.

URL: %s

PAGE CONTENT:
%s

Provide this structured JSON response:

{
    "title": "Page title or main heading",
    "main_theme": "Primary topic or theme",
    "key_points": ["Key point 1", "Key point 2", "Key point 3"],
    "relevant_quotes": ["Quote 1", "Quote 2"],
    "supporting_data": ["Data point 1", "Data point 2"],
    "linkedin_relevance": "How this could be used in LinkedIn posts",
    "summary": "2-3 sentence summary"
}`, url, content)
}

// TopicExtraction asks for 3-5 research topics as a JSON string array.
func TopicExtraction(instructions string, themes, keyPoints []string) string {
	if len(keyPoints) > 10 {
		keyPoints = keyPoints[:10]
	}
	return fmt.Sprintf(`Analyze the following content and extract the key topics and themes that should be researched for a LinkedIn post:

ORIGINAL INSTRUCTIONS:
%s

LINK ANALYSIS THEMES:
%s

LINK ANALYSIS KEY POINTS:
%s

Please identify 3-5 key topics that would benefit from additional research and context. Focus on:
- Main subject areas
- Industry trends mentioned
- Technical concepts that need explanation
- Business implications
- Professional development angles

Return the topics as a simple JSON list: ["topic1", "topic2", "topic3"]`,
		instructions, strings.Join(themes, ", "), strings.Join(keyPoints, "\n"))
}

const researchSchema = `{
    "topic": %q,
    "current_trends": ["Current trend 1", "Current trend 2"],
    "key_statistics": ["Relevant statistic 1 with source", "Relevant statistic 2 with source"],
    "industry_implications": ["Business implication 1", "Business implication 2"],
    "expert_perspectives": ["Expert viewpoint 1", "Expert viewpoint 2"],
    "linkedin_angles": [
        "Angle 1: Why this matters to professionals",
        "Angle 2: How this affects business strategy",
        "Angle 3: Career development implications"
    ],
    "supporting_arguments": ["Argument 1 supporting main thesis", "Argument 2 supporting main thesis"],
    "potential_controversies": ["Debate point 1", "Debate point 2"],
    "actionable_insights": ["Actionable insight 1 for readers", "Actionable insight 2 for readers"]
}`

// Research builds the per-topic research prompt. searchResults may be empty,
// in which case the prompt relies on model knowledge alone.
func Research(topic, context, searchResults string) string {
	schema := fmt.Sprintf(researchSchema, topic)
	if searchResults != "" {
		return fmt.Sprintf(`Conduct comprehensive research on the following topic for LinkedIn content creation using the provided web search results:

TOPIC: %s

CONTEXT: %s

%s

Based on the web search results above, provide comprehensive research insights in the following JSON format:

%s

Focus on the most recent information from the search results.`, topic, context, searchResults, schema)
	}
	return fmt.Sprintf(`Based on your existing knowledge, conduct comprehensive research on the following topic for LinkedIn content creation:

TOPIC: %s

CONTEXT: %s

Using your training data and knowledge base, please provide comprehensive research insights in the following JSON format:

%s

Focus on information that would be valuable for LinkedIn content creation and professional discussion.`, topic, context, schema)
}

// SearchResults formats ranked search hits for embedding into the research
// prompt. Content snippets are capped at 500 characters each.
func SearchResults(titles, urls, contents []string) string {
	if len(titles) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\nWEB SEARCH RESULTS:\n")
	for i := range titles {
		snippet := contents[i]
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, titles[i])
		fmt.Fprintf(&sb, "   URL: %s\n", urls[i])
		fmt.Fprintf(&sb, "   Content: %s...\n", snippet)
	}
	return sb.String()
}

// Composition merges every context source into the final post prompt.
func Composition(basePrompt, styleGuide, context string, examples []string) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)
	sb.WriteString("\n\nWRITING STYLE GUIDE:\n")
	sb.WriteString(styleGuide)
	sb.WriteString("\n\nCOMPREHENSIVE CONTEXT:\n")
	sb.WriteString(context)
	sb.WriteString("\n\nEXAMPLE POSTS (for style reference):\n")
	for i, example := range examples {
		fmt.Fprintf(&sb, "\nExample %d:\n%s\n", i+1, example)
	}
	sb.WriteString(`
Based on all the information above, generate a LinkedIn post that:
1. Addresses the original instructions completely
2. Incorporates insights from the link analysis naturally
3. Weaves in research findings and trends seamlessly
4. Maintains the exact writing style demonstrated in the examples
5. Creates engaging, authentic content that doesn't sound AI-generated
6. Follows LinkedIn best practices for professional engagement

Generate the LinkedIn post now:`)
	return sb.String()
}

// InstructionAlignment is the first critique dimension.
func InstructionAlignment(post, instructions string) string {
	return fmt.Sprintf(`Analyze how well this LinkedIn post aligns with the original instructions.

ORIGINAL INSTRUCTIONS:
%s

GENERATED POST:
%s

Provide a detailed JSON analysis:

{
    "alignment_score": [1-10],
    "topic_coverage": {
        "main_themes_addressed": ["theme1", "theme2"],
        "missing_themes": ["missing1", "missing2"],
        "coverage_percentage": [0-100]
    },
    "argument_coherence": {
        "main_argument_clarity": "excellent/good/fair/poor",
        "logical_flow": "excellent/good/fair/poor",
        "evidence_support": "strong/moderate/weak"
    },
    "key_strengths": ["strength1", "strength2"],
    "areas_for_improvement": ["improvement1", "improvement2"],
    "specific_recommendations": ["rec1", "rec2"]
}

Focus on concrete examples and specific alignment issues.`, instructions, post)
}

// StyleCompliance is the second critique dimension.
func StyleCompliance(post, styleGuide string) string {
	return fmt.Sprintf(`Analyze this LinkedIn post's compliance with the provided style guide.

STYLE GUIDE:
%s

GENERATED POST:
%s

Provide a detailed JSON analysis:

{
    "style_score": [1-10],
    "tone_analysis": {
        "tone_match": "excellent/good/fair/poor",
        "professionalism": "excellent/good/fair/poor",
        "conversational_quality": "excellent/good/fair/poor"
    },
    "sentence_structure": {
        "average_sentence_length": [number],
        "complexity_level": "appropriate/too_simple/too_complex"
    },
    "formatting": {
        "paragraph_structure": "excellent/good/fair/poor",
        "hashtag_usage": "optimal/excessive/insufficient"
    },
    "style_strengths": ["strength1", "strength2"],
    "style_issues": ["issue1", "issue2"],
    "style_recommendations": ["rec1", "rec2"]
}

Analyze specific examples from the post.`, styleGuide, post)
}

// Readability is the third critique dimension.
func Readability(post string) string {
	return fmt.Sprintf(`Analyze the readability and accessibility of this LinkedIn post.

GENERATED POST:
%s

Provide a detailed JSON analysis:

{
    "readability_score": [1-10],
    "language_clarity": {
        "sentence_clarity": "excellent/good/fair/poor",
        "word_choice": "excellent/good/fair/poor",
        "jargon_balance": "appropriate/too_technical/too_simple"
    },
    "flow_and_coherence": {
        "logical_progression": "excellent/good/fair/poor",
        "transition_quality": "smooth/adequate/choppy"
    },
    "comprehension_barriers": ["barrier1", "barrier2"],
    "readability_strengths": ["strength1", "strength2"],
    "accessibility_improvements": ["improvement1", "improvement2"]
}

Focus on how easy it is for diverse audiences to understand and engage with the content.`, post)
}

// Structure is the fourth critique dimension.
func Structure(post string) string {
	return fmt.Sprintf(`Analyze the structural elements of this LinkedIn post.

GENERATED POST:
%s

Provide a detailed JSON analysis:

{
    "structure_score": [1-10],
    "length_analysis": {
        "length_assessment": "too_short/optimal/too_long",
        "optimal_for_linkedin": true
    },
    "paragraph_analysis": {
        "paragraph_count": [count],
        "balance_assessment": "well_balanced/uneven/monotonous"
    },
    "repetition_check": {
        "content_repetition": "none/minimal/moderate/excessive",
        "repetitive_elements": ["element1", "element2"]
    },
    "structural_flow": {
        "opening_strength": "strong/adequate/weak",
        "conclusion_effectiveness": "strong/adequate/weak"
    },
    "structural_strengths": ["strength1", "strength2"],
    "structural_issues": ["issue1", "issue2"],
    "structural_recommendations": ["rec1", "rec2"]
}

Count actual characters, words, and paragraphs accurately.`, post)
}

// StyleBatch asks for a style analysis of one batch of example posts.
func StyleBatch(posts []string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the writing style of the following LinkedIn posts:\n")
	for i, post := range posts {
		fmt.Fprintf(&sb, "\nPOST %d:\n%s\n", i+1, post)
	}
	sb.WriteString(`
Describe the author's style across these posts: tone and voice, typical
openings and closings, sentence length and rhythm, vocabulary level,
formatting habits (paragraphs, line breaks, hashtags, emoji), and engagement
devices (questions, anecdotes, calls to action). Cite short examples.`)
	return sb.String()
}

// StyleSynthesis merges the per-batch analyses into one reusable style prompt.
func StyleSynthesis(analyses []string) string {
	var sb strings.Builder
	sb.WriteString("The following are style analyses of batches of one author's LinkedIn posts:\n")
	for i, a := range analyses {
		fmt.Fprintf(&sb, "\nANALYSIS %d:\n%s\n", i+1, a)
	}
	sb.WriteString(`
Synthesize these into a single, comprehensive style guide an LLM can follow to
write new posts in this author's voice. Write it as direct instructions
("Write in...", "Open with...", "Avoid..."). Cover tone, structure, sentence
rhythm, vocabulary, formatting, and engagement patterns. Output only the style
guide text.`)
	return sb.String()
}
