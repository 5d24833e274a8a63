// Package requestid tags every HTTP request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client (or
// a proxy) and generates a UUID otherwise. The id is echoed in the response
// header and stored in the request context, where FromContext and the
// logger extractor pick it up:
//
//	log := logger.New(logger.WithExtractor(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// Incoming ids longer than 128 characters or containing anything other than
// letters, digits, '-' and '_' are replaced.
package requestid
