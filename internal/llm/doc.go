// Package llm provides the analysis capability over an OpenAI-compatible
// completion endpoint.
//
// The client carries prompt templates for classification, summarization,
// reply drafting, meeting detail extraction, and search query generation.
// Completion servers frequently echo the prompt, so generated text is
// stripped of it before use.
package llm
