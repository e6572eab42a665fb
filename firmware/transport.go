package firmware

import (
	"runtime"

	"github.com/Alia5/matrixfw/report"
)

// Transport is the USB keyboard class the firmware reports through.
type Transport interface {
	// SetPendingReport installs r as the current report and returns true
	// if it has to be transmitted.
	SetPendingReport(r report.Report) bool
	// Write queues bytes on the report endpoint and returns how many were
	// taken; 0 means the endpoint is busy.
	Write(b []byte) int
	// Poll drives the USB stack. It is only called from interrupt context.
	Poll()
}

// SendReport hands r to the transport. The report is installed under the
// resource ceiling; if it is new, or force is set, it is written, retrying
// a busy endpoint up to maxRetries times. The ceiling is released between
// attempts so the USB interrupts can drain the endpoint.
func SendReport(res *Resource[Transport], r report.Report, maxRetries int, force bool) (changed, written bool) {
	res.WithExclusiveAccess(func(t Transport) {
		changed = t.SetPendingReport(r)
	})
	if !changed && !force {
		return false, false
	}
	b := r.Bytes()
	for attempt := 0; attempt <= maxRetries; attempt++ {
		var n int
		res.WithExclusiveAccess(func(t Transport) {
			n = t.Write(b[:])
		})
		if n > 0 {
			return changed, true
		}
		runtime.Gosched()
	}
	return changed, false
}
