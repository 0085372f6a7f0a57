package cache

import "errors"

// ErrExporterRegistration wraps the error an Exporter's Register method
// returned when it could not attach its instruments to the backing
// registry (e.g. a Prometheus name collision). NewGuarded records the
// wrapped error, disables the exporter, and exposes it through
// Guarded.ExporterError. It never affects cache semantics — an exporter
// failure is fire-and-forget from the cache's perspective.
var ErrExporterRegistration = errors.New("cache: exporter registration failed")
