// Package api provides an HTTP client for the repositories REST service.
//
// # Endpoints
//
// The client covers the three calls the synchronizer needs:
//
//	GET  /repositories           -> []Repository
//	POST /repositories           -> Repository  (body: NewRepository)
//	POST /repositories/{id}/like -> Repository
//
// # Client Usage
//
//	client, err := api.NewClient("http://localhost:3333", api.WithTimeout(5*time.Second))
//	if err != nil {
//		return err
//	}
//	repos, err := client.ListRepositories(ctx)
//
// # Errors
//
// Transport failures are wrapped ("execute request: ..."), undecodable bodies
// are reported as "decode response: ...", and any non-2xx status is returned
// as *StatusError so callers can branch on the code with errors.As.
//
// The client never retries. Each method issues exactly one request.
//
// # Request IDs
//
// When the context carries a request id (see WithRequestID) it is sent as
// the X-Request-ID header so client and server logs can be correlated.
package api
