/*
The middleware package defines what a middleware is in webbot and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- InjectIPAddress
- InjectSession
- LogRequest
- Metrics
- RateLimit
- ReportPanic
- RequestID

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Package ranger assembles one; otherwise, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.ReportPanic(env),
		middleware.Metrics(),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore),
	}
*/
package middleware
