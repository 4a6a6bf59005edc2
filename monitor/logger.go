package monitor

import "log"

// Logf emits filter diagnostics such as cycle summaries and recovery
// injections. It writes through log.Printf until SetLogger swaps it
// out; embedding applications usually route it into their own logging
// and tests mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger installs f as the diagnostic sink for the whole package.
// A nil f silences diagnostics entirely.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
