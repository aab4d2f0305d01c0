// Package router sends a chat conversation to a user-configured text-generation endpoint.
//
// The pipeline has three stages:
//
//   - Classify: infer the wire dialect (BackendKind) from the endpoint URL alone.
//   - Adapt: reshape the turn list into the request body that dialect expects.
//   - Dispatcher.Send: POST the body, unwrap the dialect's response envelope and, on a
//     non-success status, try the /api/generate fallback endpoint once.
//
// Classify and Adapt are pure. Dispatcher holds only immutable options and is safe for
// concurrent use. Send never returns a Go error; failures are carried in Result.
package router
