// Package api provides an HTTP client for the SendGrid v3 mail send API.
//
// # Client Creation
//
// The package provides two ways to create a client:
//
//   - [NewClient]: Struct-based configuration for explicit, type-safe setup.
//   - [New]: Functional options pattern for flexible configuration.
//
// Both require an API key, which is sent as `Authorization: Bearer <key>`
// on every request. The base URL defaults to [DefaultBaseURL].
//
// # Requests
//
// [Client.Do] issues exactly one request per call. The client never retries;
// retry policy belongs to the caller. The default HTTP client has no timeout
// of its own, so deadlines come from the request context.
//
// # Error Handling
//
// Any non-2xx response is returned as an [*APIError] holding the status code
// and the raw response body, which is not parsed. Transport failures are
// returned as [*NetworkError] wrapping the underlying error.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Multiple goroutines may call
// methods on a single Client simultaneously.
package api
