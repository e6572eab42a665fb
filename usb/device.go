package usb

// Device is the minimal interface a device must implement.
// It only handles non-EP0 (interrupt) transfers.
type Device interface {
	// HandleTransfer processes an interrupt transfer.
	// ep is the endpoint number (without direction). dir is DirIn or DirOut.
	// For IN transfers, return the payload to send; for OUT, consume 'out' and return nil.
	HandleTransfer(ep uint32, dir uint32, out []byte) []byte
	GetDescriptor() *Descriptor
}

// Transfer directions as seen from the host.
const (
	DirOut = 0x00000000
	DirIn  = 0x00000001
)
