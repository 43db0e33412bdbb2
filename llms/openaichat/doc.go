// Package openaichat provides a langchaingo llms.Model backed by the
// OpenAI chat completion API (or any OpenAI-compatible endpoint) through
// the go-openai SDK.
//
// The agent pipeline only depends on the llms.Model interface, so this
// package is one of several possible backends; it exists so the module is
// usable out of the box without pulling in a second provider SDK.
package openaichat
