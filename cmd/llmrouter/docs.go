package main

// General API documentation for swaggo. Run `swag init -g cmd/llmrouter/docs.go` to regenerate docs.
//
// @title           llmrouter API
// @version         1.0
// @description     HTTP API routing chat conversations to heterogeneous LLM backends.
//
// @contact.name   llmrouter maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
