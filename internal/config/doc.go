// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Every key can be set through an environment variable with the LINGUA_
// prefix, where dots become underscores: llm.gemini_api_key is read from
// LINGUA_LLM_GEMINI_API_KEY. Environment variables take precedence over the
// config file.
package config
