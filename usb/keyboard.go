package usb

// bootKeyboardReport is the report descriptor from Appendix B.1 of the HID
// 1.11 specification: 8 modifier bits, a reserved byte, 5 LED output bits
// and a 6-byte key array.
var bootKeyboardReport = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0xE0, //   Usage Minimum (Left Control)
	0x29, 0xE7, //   Usage Maximum (Right GUI)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Var, Abs)
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Const)
	0x95, 0x05, //   Report Count (5)
	0x75, 0x01, //   Report Size (1)
	0x05, 0x08, //   Usage Page (LEDs)
	0x19, 0x01, //   Usage Minimum (Num Lock)
	0x29, 0x05, //   Usage Maximum (Kana)
	0x91, 0x02, //   Output (Data, Var, Abs)
	0x95, 0x01, //   Report Count (1)
	0x75, 0x03, //   Report Size (3)
	0x91, 0x01, //   Output (Const)
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0xFF, //   Logical Maximum (255)
	0x05, 0x07, //   Usage Page (Keyboard/Keypad)
	0x19, 0x00, //   Usage Minimum (0)
	0x29, 0xFF, //   Usage Maximum (255)
	0x81, 0x00, //   Input (Data, Array)
	0xC0, // End Collection
}

// BootKeyboard returns the descriptor set of a full-speed boot protocol
// keyboard with one interrupt IN endpoint for reports and one interrupt
// OUT endpoint for the host's LED state.
func BootKeyboard(vendor, product uint16) *Descriptor {
	return &Descriptor{
		Device: DeviceDescriptor{
			BcdUSB:             0x0200,
			BMaxPacketSize0:    0x40, // 64 bytes
			IDVendor:           vendor,
			IDProduct:          product,
			BcdDevice:          0x0100,
			IManufacturer:      0x01,
			IProduct:           0x02,
			ISerialNumber:      0x03,
			BNumConfigurations: 0x01,
		},
		Config: ConfigHeader{
			BNumInterfaces:      0x01,
			BConfigurationValue: 0x01,
			BMAttributes:        0x80, // bus powered
			BMaxPower:           50,   // 100 mA
		},
		Interface: InterfaceDescriptor{
			BNumEndpoints:      0x02,
			BInterfaceClass:    ClassHID,
			BInterfaceSubClass: SubClassBoot,
			BInterfaceProtocol: ProtocolKeyboard,
		},
		HID: HIDDescriptor{
			BcdHID:          0x0111,
			BNumDescriptors: 0x01,
			ClassDescType:   ReportDescType,
		},
		Endpoints: []EndpointDescriptor{
			{
				BEndpointAddress: 0x81,
				BMAttributes:     EndpointAttrInterrupt,
				WMaxPacketSize:   0x0008,
				BInterval:        0x01, // 1 ms
			},
			{
				BEndpointAddress: 0x01,
				BMAttributes:     EndpointAttrInterrupt,
				WMaxPacketSize:   0x0008,
				BInterval:        0x0A,
			},
		},
		Report: ReportDescriptor{Data: bootKeyboardReport},
		Strings: map[uint8]string{
			0: "\x09\x04", // LangID: en-US (0x0409)
			1: "matrixfw",
			2: "Matrix Keyboard",
			3: "0001",
		},
	}
}
