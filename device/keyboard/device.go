// Package keyboard implements the HID boot keyboard endpoint the firmware
// hands its reports to.
//
// A Keyboard is not safe for concurrent use: the tick and the USB
// interrupts share it through a firmware.Resource.
package keyboard

import (
	"github.com/Alia5/matrixfw/report"
	"github.com/Alia5/matrixfw/usb"
)

const (
	reportEndpoint = 1
	// DefaultQueueDepth models a single-buffered interrupt IN endpoint.
	DefaultQueueDepth = 1
)

// Config describes the emulated endpoint.
type Config struct {
	QueueDepth int    `help:"Interrupt IN packets buffered before writes report busy" default:"1" env:"MATRIXFW_USB_QUEUE_DEPTH"`
	VendorID   uint16 `help:"USB vendor ID" default:"4617" env:"MATRIXFW_USB_VID"`
	ProductID  uint16 `help:"USB product ID" default:"32768" env:"MATRIXFW_USB_PID"`
}

var _ usb.Device = (*Keyboard)(nil)

// Keyboard implements the firmware transport for a boot keyboard with LED
// output support.
type Keyboard struct {
	descriptor  *usb.Descriptor
	current     report.Report
	queue       [][report.Size]byte
	head, count int
	ledState    uint8
	ledCallback func(LEDState)
	hostSink    func([]byte)
	polls       uint64
	delivered   uint64
}

// New returns a Keyboard device.
func New(cfg Config) *Keyboard {
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	return &Keyboard{
		descriptor: usb.BootKeyboard(cfg.VendorID, cfg.ProductID),
		queue:      make([][report.Size]byte, depth),
	}
}

// SetLEDCallback sets a callback that will be invoked when LED state changes.
func (k *Keyboard) SetLEDCallback(f func(LEDState)) {
	k.ledCallback = f
}

// SetHostSink sets the function that receives every packet the host reads
// from the report endpoint.
func (k *Keyboard) SetHostSink(f func([]byte)) {
	k.hostSink = f
}

// GetLEDState returns the current LED state from the host.
func (k *Keyboard) GetLEDState() LEDState {
	var st LEDState
	_ = st.UnmarshalBinary([]byte{k.ledState})
	return st
}

// SetPendingReport makes r the current keyboard report. It returns true
// when r differs from the previous report and therefore has to be written.
func (k *Keyboard) SetPendingReport(r report.Report) bool {
	if r == k.current {
		return false
	}
	k.current = r
	return true
}

// Report returns the current keyboard report.
func (k *Keyboard) Report() report.Report {
	return k.current
}

// Write queues one packet on the report endpoint. It returns the number of
// bytes accepted, 0 when the endpoint is busy.
func (k *Keyboard) Write(b []byte) int {
	if k.count == len(k.queue) {
		return 0
	}
	slot := &k.queue[(k.head+k.count)%len(k.queue)]
	*slot = [report.Size]byte{}
	n := copy(slot[:], b)
	k.count++
	return n
}

// Pending returns the number of packets waiting for the host.
func (k *Keyboard) Pending() int {
	return k.count
}

// Poll services the endpoint the way the USB interrupt does: the host
// reads one packet from the report endpoint if there is one.
func (k *Keyboard) Poll() {
	k.polls++
	data := k.HandleTransfer(reportEndpoint, usb.DirIn, nil)
	if data == nil {
		return
	}
	k.delivered++
	if k.hostSink != nil {
		k.hostSink(data)
	}
}

// Stats returns the number of polls and packets delivered to the host.
func (k *Keyboard) Stats() (polls, delivered uint64) {
	return k.polls, k.delivered
}

// HandleTransfer implements interrupt IN/OUT for Keyboard.
func (k *Keyboard) HandleTransfer(ep uint32, dir uint32, out []byte) []byte {
	if ep != reportEndpoint {
		return nil
	}
	if dir == usb.DirIn {
		if k.count == 0 {
			return nil // NAK
		}
		pkt := k.queue[k.head]
		k.head = (k.head + 1) % len(k.queue)
		k.count--
		return pkt[:]
	}
	// LED state from host
	if len(out) >= 1 {
		k.ledState = out[0]
		if k.ledCallback != nil {
			k.ledCallback(k.GetLEDState())
		}
	}
	return nil
}

func (k *Keyboard) GetDescriptor() *usb.Descriptor {
	return k.descriptor
}
