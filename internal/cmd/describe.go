package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Alia5/matrixfw/device/keyboard"
	"github.com/Alia5/matrixfw/usb"
)

// Describe dumps the descriptors the keyboard answers GET_DESCRIPTOR with.
type Describe struct {
	USB keyboard.Config `embed:"" prefix:"usb."`

	Out io.Writer `kong:"-"`
}

func (d *Describe) Run() error {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	desc := keyboard.New(d.USB).GetDescriptor()

	if _, err := fmt.Fprintf(out, "device        % x\n", desc.DeviceBytes()); err != nil {
		return err
	}
	fmt.Fprintf(out, "configuration % x\n", desc.ConfigurationBytes())
	fmt.Fprintf(out, "report        % x\n", desc.Report.Bytes())

	idx := make([]uint8, 0, len(desc.Strings))
	for i := range desc.Strings {
		idx = append(idx, i)
	}
	slices.Sort(idx)
	for _, i := range idx {
		s := desc.Strings[i]
		if i == 0 {
			// Index 0 carries the raw LANGID list.
			b := append([]byte{byte(2 + len(s)), usb.StringDescType}, s...)
			fmt.Fprintf(out, "string %d      % x\n", i, b)
			continue
		}
		_, err := fmt.Fprintf(out, "string %d      % x  %q\n", i, usb.EncodeStringDescriptor(s), s)
		if err != nil {
			return err
		}
	}
	return nil
}
