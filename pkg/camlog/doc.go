// Package camlog provides structured protocol logging for the camera
// link.
//
// It defines the Logger interface and Event types for capturing
// link-level traffic and driver state transitions. It is separate from
// operational logging (slog): protocol capture produces a complete
// machine-readable trace for post-flight debugging and analysis.
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Logger = camlog.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Logger, _ = camlog.NewFileLogger("/var/log/camlink/flight.clog")
//
//	// Both: use MultiLogger
//	cfg.Logger = camlog.NewMultiLogger(
//	    camlog.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Log files use CBOR encoding with .clog extension. The camlink-log CLI
// tool provides viewing and filtering.
package camlog
