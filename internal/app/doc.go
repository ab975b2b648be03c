// Package app wires the analysis service together: configuration, logging,
// OpenTelemetry, services, HTTP handlers and the server lifecycle.
//
// # Initialization Flow
//
//	1. Initialize OpenTelemetry providers and business metrics
//	2. Build the summary enhancer (a no-op without an API key)
//	3. Create the analysis, export and health services
//	4. Set up middleware and routes
//	5. Create the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run stops on SIGINT, SIGTERM or when ctx is canceled. In-flight requests
// get Server.ShutdownTimeout to finish before telemetry is flushed.
//
// # Error Handling
//
// Initialization errors are returned to the caller; the package never calls
// os.Exit.
package app
