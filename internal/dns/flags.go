package dns

// HeaderFlags is the decomposed form of the 16-bit DNS header flags word.
// The wire layout must round-trip exactly; per the portability note this
// word is always built and read field-by-field rather than aliased onto a
// compiler-specific bit-field struct.
type HeaderFlags struct {
	QR     bool
	Opcode uint16 // 4 bits
	AA     bool
	TC     bool
	RD     bool
	RA     bool
	RCode  RCode // 4 bits
}

// Encode packs f into the wire flags word. The Z field is always emitted
// as zero.
func (f HeaderFlags) Encode() uint16 {
	var w uint16
	if f.QR {
		w |= QRFlag
	}
	w |= (f.Opcode << 11) & OpcodeMask
	if f.AA {
		w |= AAFlag
	}
	if f.TC {
		w |= TCFlag
	}
	if f.RD {
		w |= RDFlag
	}
	if f.RA {
		w |= RAFlag
	}
	w |= uint16(f.RCode) & RCodeMask
	return w
}

// DecodeFlags unpacks a wire flags word into its named fields.
func DecodeFlags(w uint16) HeaderFlags {
	return HeaderFlags{
		QR:     w&QRFlag != 0,
		Opcode: (w & OpcodeMask) >> 11,
		AA:     w&AAFlag != 0,
		TC:     w&TCFlag != 0,
		RD:     w&RDFlag != 0,
		RA:     w&RAFlag != 0,
		RCode:  RCodeFromFlags(w),
	}
}
