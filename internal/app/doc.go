// Package app provides application initialization and lifecycle management
// for the TD Pulse analytics server. It wires configuration loading, logging,
// the dataset store, the dashboard service and the HTTP router, and handles
// graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging
//	3. Create the dataset store
//	4. Initialize the dashboard service
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//	7. Set up graceful shutdown handlers
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// All initialization errors are returned to the caller; the package does
// not call os.Exit() directly, so main controls the exit process.
package app
