// Package metrics provides observability hooks for docsite builds.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites:
//
//	runner := build.NewRunner()                       // NoopRecorder
//	runner = runner.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// One-shot CLI builds have no scrape endpoint. The Prometheus recorder can
// instead export its registry to a node_exporter textfile collector file
// with WriteTextfile.
package metrics
