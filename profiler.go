// Package profiler builds structured company profiles from public websites.
// It crawls a company site starting at the homepage, cleans the retrieved
// markup into plain text, asks an LLM to fill a fixed profile template from
// that text, validates the result, and hands the finished record to a
// persistence layer. A secondary path normalizes voice-agent webhook
// payloads into per-session persona answers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, openai/).
package profiler
