// Package search provides web search grounding via the Google Custom
// Search API.
//
// Results are reduced to title, link, and snippet and can be rendered as
// a numbered block suitable for inclusion in a language model prompt.
// Search failures degrade to an empty result set so callers can continue
// without grounding.
package search
