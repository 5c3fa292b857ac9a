package rag

import (
	"fmt"
	"strings"
)

// systemPrompt pins the model to the retrieved context. The bullet format
// with [SOURCE:N] markers is what the citation parser and the front end
// rely on.
const systemPrompt = `You are a real estate assistant. Answer ONLY using the properties provided in the context below. DO NOT make up information.

CRITICAL RULES:
1. If context has matching properties → List them with details
2. If context has NO matching properties → Say "No properties found with those criteria" and show what IS available
3. ALWAYS use actual prices, locations, and amenities from the context
4. Format each property as ONE bullet point:
   • **[Type]** in [Location] - ₹[Price] | [BHK] | [Area] | [Amenities] [SOURCE:N]`

const userPromptTemplate = `Available Properties in Database:
%s

User Query: %s

INSTRUCTIONS:
1. Check if any properties match the user's query
2. List matching properties with ALL details (price, location, BHK, amenities)
3. Add [SOURCE:N] at the end of each property line
4. If NO match found, say so clearly and show what properties ARE available

Answer:`

// buildContext numbers each retrieved chunk so the model can cite it.
// Numbering is 1-based and matches the rank order of the matches slice.
func buildContext(texts []string) string {
	if len(texts) == 0 {
		return "No relevant property information found."
	}

	var b strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&b, "Property %d:\n%s\n", i+1, text)
		if i < len(texts)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func buildUserPrompt(query, contextText string) string {
	return fmt.Sprintf(userPromptTemplate, contextText, query)
}
