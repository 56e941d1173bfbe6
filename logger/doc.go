// Package logger provides structured logging for asyncseq using zerolog.
//
// The core iterator packages log only on paths where an error cannot be
// returned to the caller, such as failures swallowed while a racing cursor is
// closed early, or panics recovered inside an executor worker.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("aseq.race")
//	log.Warn("discarding in-flight failure", logger.ErrorFields("race.close", err))
package logger
