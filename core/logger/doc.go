// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production). The compile pipeline leans on it for the
// non-fatal diagnostics the catalog format calls for: unrecognized keys,
// unsupported AiDmaModifier values and unresolved alias targets are warnings
// carrying line numbers and key hashes as fields, never process failures.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches
// it to the log entry, so lookup-server requests can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Compile finished")
package logger
