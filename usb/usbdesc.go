// Package usb contains helpers for building the USB descriptors of a boot
// protocol keyboard.
package usb

import (
	"bytes"
	"encoding/binary"
)

// USB descriptor type constants
const (
	DeviceDescType    = 0x01
	ConfigDescType    = 0x02
	StringDescType    = 0x03
	InterfaceDescType = 0x04
	EndpointDescType  = 0x05
	HIDDescType       = 0x21
	ReportDescType    = 0x22
)

// Descriptor lengths in bytes (fixed values from USB spec)
const (
	DeviceDescLen    = 18
	ConfigDescLen    = 9
	InterfaceDescLen = 9
	EndpointDescLen  = 7
	HIDDescLen       = 9
)

// HID interface codes for a boot keyboard.
const (
	ClassHID             = 0x03
	SubClassBoot         = 0x01
	ProtocolKeyboard     = 0x01
	EndpointAttrInterrupt = 0x03
)

// Descriptor holds all static descriptor data for the keyboard.
type Descriptor struct {
	Device    DeviceDescriptor
	Config    ConfigHeader
	Interface InterfaceDescriptor
	HID       HIDDescriptor
	Endpoints []EndpointDescriptor
	Report    ReportDescriptor
	Strings   map[uint8]string
}

// EncodeStringDescriptor converts a UTF-8 string to a USB string descriptor byte array.
// The resulting descriptor has the format:
//
//	Byte 0: bLength (total descriptor length)
//	Byte 1: bDescriptorType (0x03 for string)
//	Bytes 2+: UTF-16LE encoded string
func EncodeStringDescriptor(s string) []byte {
	runes := []rune(s)
	buf := make([]byte, 2+len(runes)*2)
	buf[0] = uint8(len(buf))
	buf[1] = StringDescType
	for i, r := range runes {
		buf[2+i*2] = uint8(r)
		buf[2+i*2+1] = uint8(r >> 8)
	}
	return buf
}

// DeviceDescriptor represents the standard USB device descriptor.
type DeviceDescriptor struct {
	BcdUSB             uint16 // LE
	BDeviceClass       uint8
	BDeviceSubClass    uint8
	BDeviceProtocol    uint8
	BMaxPacketSize0    uint8
	IDVendor           uint16 // LE
	IDProduct          uint16 // LE
	BcdDevice          uint16 // LE
	IManufacturer      uint8
	IProduct           uint8
	ISerialNumber      uint8
	BNumConfigurations uint8
}

func (d DeviceDescriptor) Write(b *bytes.Buffer) {
	b.WriteByte(DeviceDescLen)
	b.WriteByte(DeviceDescType)
	_ = binary.Write(b, binary.LittleEndian, d.BcdUSB)
	b.WriteByte(d.BDeviceClass)
	b.WriteByte(d.BDeviceSubClass)
	b.WriteByte(d.BDeviceProtocol)
	b.WriteByte(d.BMaxPacketSize0)
	_ = binary.Write(b, binary.LittleEndian, d.IDVendor)
	_ = binary.Write(b, binary.LittleEndian, d.IDProduct)
	_ = binary.Write(b, binary.LittleEndian, d.BcdDevice)
	b.WriteByte(d.IManufacturer)
	b.WriteByte(d.IProduct)
	b.WriteByte(d.ISerialNumber)
	b.WriteByte(d.BNumConfigurations)
}

// ConfigHeader represents the USB configuration descriptor header (9 bytes).
// WTotalLength is filled in by ConfigurationBytes.
type ConfigHeader struct {
	WTotalLength        uint16 // LE
	BNumInterfaces      uint8
	BConfigurationValue uint8
	IConfiguration      uint8
	BMAttributes        uint8
	BMaxPower           uint8 // 2 mA units
}

func (h ConfigHeader) Write(b *bytes.Buffer) {
	b.WriteByte(ConfigDescLen)
	b.WriteByte(ConfigDescType)
	_ = binary.Write(b, binary.LittleEndian, h.WTotalLength)
	b.WriteByte(h.BNumInterfaces)
	b.WriteByte(h.BConfigurationValue)
	b.WriteByte(h.IConfiguration)
	b.WriteByte(h.BMAttributes)
	b.WriteByte(h.BMaxPower)
}

// InterfaceDescriptor (9 bytes).
type InterfaceDescriptor struct {
	BInterfaceNumber   uint8
	BAlternateSetting  uint8
	BNumEndpoints      uint8
	BInterfaceClass    uint8
	BInterfaceSubClass uint8
	BInterfaceProtocol uint8
	IInterface         uint8
}

func (i InterfaceDescriptor) Write(b *bytes.Buffer) {
	b.WriteByte(InterfaceDescLen)
	b.WriteByte(InterfaceDescType)
	b.WriteByte(i.BInterfaceNumber)
	b.WriteByte(i.BAlternateSetting)
	b.WriteByte(i.BNumEndpoints)
	b.WriteByte(i.BInterfaceClass)
	b.WriteByte(i.BInterfaceSubClass)
	b.WriteByte(i.BInterfaceProtocol)
	b.WriteByte(i.IInterface)
}

// EndpointDescriptor (7 bytes).
type EndpointDescriptor struct {
	BEndpointAddress uint8
	BMAttributes     uint8
	WMaxPacketSize   uint16 // LE
	BInterval        uint8
}

func (e EndpointDescriptor) Write(b *bytes.Buffer) {
	b.WriteByte(EndpointDescLen)
	b.WriteByte(EndpointDescType)
	b.WriteByte(e.BEndpointAddress)
	b.WriteByte(e.BMAttributes)
	_ = binary.Write(b, binary.LittleEndian, e.WMaxPacketSize)
	b.WriteByte(e.BInterval)
}

// HIDDescriptor (class descriptor, 0x21) with one subordinate report descriptor (0x22).
// WDescriptorLength is filled in by ConfigurationBytes.
type HIDDescriptor struct {
	BcdHID            uint16 // LE
	BCountryCode      uint8
	BNumDescriptors   uint8
	ClassDescType     uint8  // 0x22 (report)
	WDescriptorLength uint16 // LE
}

func (h HIDDescriptor) Write(b *bytes.Buffer) {
	b.WriteByte(HIDDescLen)
	b.WriteByte(HIDDescType)
	_ = binary.Write(b, binary.LittleEndian, h.BcdHID)
	b.WriteByte(h.BCountryCode)
	b.WriteByte(h.BNumDescriptors)
	b.WriteByte(h.ClassDescType)
	_ = binary.Write(b, binary.LittleEndian, h.WDescriptorLength)
}

// ReportDescriptor is a container for HID report descriptor bytes (0x22).
type ReportDescriptor struct {
	Data []byte
}

func (r ReportDescriptor) Bytes() []byte {
	return r.Data
}

// DeviceBytes returns the 18-byte device descriptor.
func (d *Descriptor) DeviceBytes() []byte {
	var b bytes.Buffer
	d.Device.Write(&b)
	return b.Bytes()
}

// ConfigurationBytes returns the full configuration descriptor: header,
// interface, HID class descriptor and endpoints, with the length fields
// patched in.
func (d *Descriptor) ConfigurationBytes() []byte {
	var body bytes.Buffer
	d.Interface.Write(&body)
	hid := d.HID
	hid.WDescriptorLength = uint16(len(d.Report.Data))
	hid.Write(&body)
	for _, ep := range d.Endpoints {
		ep.Write(&body)
	}

	hdr := d.Config
	hdr.WTotalLength = uint16(ConfigDescLen + body.Len())
	var b bytes.Buffer
	hdr.Write(&b)
	b.Write(body.Bytes())
	return b.Bytes()
}
