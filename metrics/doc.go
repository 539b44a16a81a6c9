// Package metrics records build observations for noteshub.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can
// be switched on (eg by the preview server) without nil checks anywhere in
// the build pipeline:
//
//	reg := prom.NewRegistry()
//	site.Recorder = metrics.NewPrometheusRecorder(reg)
//	router.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
