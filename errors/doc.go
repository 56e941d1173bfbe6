// Package errors provides the structured error types shared by asyncseq
// packages. Every failure the library itself raises is an *AppError carrying
// a machine-readable ErrorCode; failures gathered from several concurrent
// upstreams are reported as one *AggregateError that keeps every cause.
package errors
