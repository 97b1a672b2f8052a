package memory

import (
	"errors"
	"fmt"
	"hash/crc32"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000

	titleAddress          = 0x134
	titleLength           = 16
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	versionNumberAddress  = 0x14C
	headerChecksumAddress = 0x14D
	headerEnd             = 0x150
)

var (
	// ErrInvalidROM is returned for images too short to hold a cartridge header.
	ErrInvalidROM = errors.New("invalid ROM image")
	// ErrUnsupportedCartridge is returned for cartridge types without an MBC implementation.
	ErrUnsupportedCartridge = errors.New("unsupported cartridge type")
)

// MBCType selects the banking algorithm.
type MBCType uint8

const (
	NoMBCType MBCType = iota
	MBC1Type
	MBC2Type
	MBC3Type
	MBC5Type
)

func (t MBCType) String() string {
	switch t {
	case NoMBCType:
		return "ROM"
	case MBC1Type:
		return "MBC1"
	case MBC2Type:
		return "MBC2"
	case MBC3Type:
		return "MBC3"
	case MBC5Type:
		return "MBC5"
	}
	return fmt.Sprintf("MBCType(%d)", uint8(t))
}

type cartFeatures struct {
	mbc     MBCType
	ram     bool
	battery bool
	rtc     bool
	rumble  bool
}

// header byte 0x147
var cartridgeTypes = map[uint8]cartFeatures{
	0x00: {mbc: NoMBCType},
	0x01: {mbc: MBC1Type},
	0x02: {mbc: MBC1Type, ram: true},
	0x03: {mbc: MBC1Type, ram: true, battery: true},
	0x05: {mbc: MBC2Type},
	0x06: {mbc: MBC2Type, battery: true},
	0x08: {mbc: NoMBCType, ram: true},
	0x09: {mbc: NoMBCType, ram: true, battery: true},
	0x0F: {mbc: MBC3Type, rtc: true, battery: true},
	0x10: {mbc: MBC3Type, rtc: true, ram: true, battery: true},
	0x11: {mbc: MBC3Type},
	0x12: {mbc: MBC3Type, ram: true},
	0x13: {mbc: MBC3Type, ram: true, battery: true},
	0x19: {mbc: MBC5Type},
	0x1A: {mbc: MBC5Type, ram: true},
	0x1B: {mbc: MBC5Type, ram: true, battery: true},
	0x1C: {mbc: MBC5Type, rumble: true},
	0x1D: {mbc: MBC5Type, rumble: true, ram: true},
	0x1E: {mbc: MBC5Type, rumble: true, ram: true, battery: true},
}

// header byte 0x149, in bytes
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 0x800,
	0x02: 0x2000,
	0x03: 0x8000,
	0x04: 0x20000,
	0x05: 0x10000,
}

// Cartridge is a parsed ROM image.
type Cartridge struct {
	data           []byte
	title          string
	version        uint8
	cartType       uint8
	headerChecksum uint8
	checksum       uint32

	mbcType        MBCType
	headerROMBanks int
	romBankCount   int
	ramSize        int
	hasBattery     bool
	hasRTC         bool
	hasRumble      bool

	headerChecksumOK bool
}

// NewCartridge creates an empty 32KB cartridge with no MBC, useful for tests and for
// running code placed directly in RAM.
func NewCartridge() *Cartridge {
	c := &Cartridge{
		data:           make([]byte, 2*romBankSize),
		title:          "(Untitled)",
		mbcType:        NoMBCType,
		headerROMBanks: 2,
		romBankCount:   2,
	}
	c.checksum = crc32.ChecksumIEEE(c.data)
	return c
}

// NewCartridgeWithData parses the header of a ROM image and copies its contents.
func NewCartridgeWithData(rom []byte) (*Cartridge, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrInvalidROM, len(rom), headerEnd)
	}

	typeCode := rom[cartridgeTypeAddress]
	features, ok := cartridgeTypes[typeCode]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedCartridge, typeCode)
	}

	ramSize, ok := ramSizes[rom[ramSizeAddress]]
	if !ok {
		return nil, fmt.Errorf("%w: RAM size code 0x%02X", ErrInvalidROM, rom[ramSizeAddress])
	}
	if !features.ram {
		ramSize = 0
	}
	if features.ram && ramSize == 0 && features.mbc == NoMBCType {
		ramSize = ramBankSize
	}

	// physical banks come from the image itself, so a lying header cannot
	// push bank arithmetic past the data
	banks := (len(rom) + romBankSize - 1) / romBankSize
	if banks < 2 {
		banks = 2
	}
	data := make([]byte, banks*romBankSize)
	copy(data, rom)

	c := &Cartridge{
		data:           data,
		title:          cleanGameboyTitle(rom[titleAddress : titleAddress+titleLength]),
		version:        rom[versionNumberAddress],
		cartType:       typeCode,
		headerChecksum: rom[headerChecksumAddress],
		checksum:       crc32.ChecksumIEEE(rom),
		mbcType:        features.mbc,
		headerROMBanks: 2 << rom[romSizeAddress],
		romBankCount:   banks,
		ramSize:        ramSize,
		hasBattery:     features.battery,
		hasRTC:         features.rtc,
		hasRumble:      features.rumble,
	}
	c.headerChecksumOK = computeHeaderChecksum(rom) == c.headerChecksum

	return c, nil
}

func computeHeaderChecksum(rom []byte) uint8 {
	var x uint8
	for i := titleAddress; i < headerChecksumAddress; i++ {
		x = x - rom[i] - 1
	}
	return x
}

func (c *Cartridge) Title() string { return c.title }

func (c *Cartridge) Type() MBCType { return c.mbcType }

// TypeCode is the raw header byte at 0x147.
func (c *Cartridge) TypeCode() uint8 { return c.cartType }

func (c *Cartridge) Version() uint8 { return c.version }

// ROMBanks is the number of 16KB banks present in the image.
func (c *Cartridge) ROMBanks() int { return c.romBankCount }

// HeaderROMBanks is the bank count declared by the header, which may disagree with
// the image size.
func (c *Cartridge) HeaderROMBanks() int { return c.headerROMBanks }

func (c *Cartridge) RAMSize() int { return c.ramSize }

func (c *Cartridge) HasBattery() bool { return c.hasBattery }

func (c *Cartridge) HeaderChecksumValid() bool { return c.headerChecksumOK }

// Checksum is the CRC-32 of the loaded image, used to tie save states to a cartridge.
func (c *Cartridge) Checksum() uint32 { return c.checksum }

// newMBC builds the bank controller selected by the header.
func (c *Cartridge) newMBC() MBC {
	switch c.mbcType {
	case MBC1Type:
		return NewMBC1(c.data, c.ramSize)
	case MBC2Type:
		return NewMBC2(c.data)
	case MBC3Type:
		return NewMBC3(c.data, c.ramSize, c.hasRTC)
	case MBC5Type:
		return NewMBC5(c.data, c.ramSize, c.hasRumble)
	default:
		return NewNoMBC(c.data, c.ramSize)
	}
}
