// Package schedule provides purpose-keyed one-shot and repeating timers.
//
// The driver core never blocks; every wait (device settling, calibration
// stall, debounce, polling) is a scheduled future callback. Timers are
// identified by purpose so re-arming one resets its deadline instead of
// stacking a second timer. The Manual implementation drives a mock clock
// for deterministic tests.
package schedule
