// Package openai implements ai.Embedder against OpenAI-compatible
// embedding APIs via langchaingo, including local services such as
// Ollama's /v1 endpoint.
package openai
