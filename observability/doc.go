// Package observability provides OpenTelemetry metrics and tracing for
// sequence cursors.
//
// Setup:
//
//	providers, err := observability.Setup(ctx, cfg.Telemetry)
//	defer providers.Shutdown(ctx)
//
// Observing a sequence:
//
//	metrics, err := observability.NewMetrics(observability.Meter("asyncseq"))
//	s := observability.Observe(aseq.Range(0, 100, 1), "numbers", metrics, nil)
//
// Every cursor of s then records aseq.pulls, aseq.items, aseq.errors and
// aseq.pull.duration, and emits one aseq.cursor span from Iter to Close.
package observability
