package tray

// iconData is a 16x16 PNG rendered into the tray.
var iconData = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0xf3, 0xff, 0x61, 0x00, 0x00, 0x00,
	0x37, 0x49, 0x44, 0x41, 0x54, 0x78, 0xda, 0x63, 0x60, 0xa0, 0x05, 0xf8,
	0xf0, 0xe1, 0xc3, 0x7f, 0x6c, 0x98, 0x22, 0xcd, 0x44, 0x19, 0x42, 0x48,
	0x33, 0x5e, 0x43, 0x88, 0xd5, 0x8c, 0xd5, 0x10, 0x52, 0x35, 0x63, 0x18,
	0x32, 0x6a, 0x00, 0x15, 0x0c, 0xa0, 0x38, 0x1a, 0xa9, 0x92, 0x90, 0xa8,
	0x92, 0x94, 0xa9, 0x92, 0x99, 0x48, 0x05, 0x00, 0x16, 0x33, 0x52, 0x43,
	0x66, 0x51, 0xe3, 0x51, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44,
	0xae, 0x42, 0x60, 0x82,
}
