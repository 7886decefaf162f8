// Package monitoring provides Prometheus metrics for the desktop core.
//
// Collectors live on a private registry returned by Registry; the core
// never starts an exposition endpoint. Embedding callers may serve it with
// promhttp.HandlerFor or gather it directly.
//
// Collected series:
//   - desktop_vfs_operations_total{op,result}
//   - desktop_vfs_persist_duration_seconds
//   - desktop_vfs_persist_failures_total
//   - desktop_vfs_snapshot_bytes
//   - desktop_vfs_load_fallbacks_total{reason}
//   - desktop_window_operations_total{op,result}
//   - desktop_windows_open, desktop_windows_visible
package monitoring
