package memory

// MBC maps cartridge ROM and RAM into 0x0000-0x7FFF and 0xA000-0xBFFF and interprets
// writes to the ROM range as bank-select and RAM-enable commands.
type MBC interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	// Poke stores value into whatever byte is currently mapped at address, ignoring
	// control registers and the RAM enable gate.
	Poke(address uint16, value uint8)
	Info() BankInfo
	// RAM returns the live external RAM, nil when the cartridge has none.
	RAM() []byte
	Snapshot() MBCState
	Restore(MBCState)
}

// clocked controllers advance with emulated time.
type clocked interface {
	Tick(cycles int)
}

// BankInfo is a read-only projection of a controller's banking registers, with bank
// numbers already reduced to the physical bank count.
type BankInfo struct {
	Type           MBCType
	ROMBank        int
	RAMBank        int
	RAMEnabled     bool
	ROMBankingMode bool
	ROMBanks       int
	RAMBanks       int
}

// MBCState is the fixed-size persisted form of every controller.
type MBCState struct {
	Type       uint8
	ROMBank    uint16
	RAMBank    uint8
	RAMEnabled bool
	Mode       uint8
	RTC        [5]uint8
	RTCLatched [5]uint8
	RTCCycles  uint32
	LatchArmed bool
}

// banks is the ROM/RAM storage shared by every controller. ROM length is always a
// whole number of banks; RAM may be smaller than one bank.
type banks struct {
	rom []byte
	ram []byte
}

func newBanks(rom []byte, ramSize int) banks {
	b := banks{rom: rom}
	if ramSize > 0 {
		b.ram = make([]byte, ramSize)
	}
	return b
}

func (b *banks) romBanks() int {
	return len(b.rom) / romBankSize
}

func (b *banks) ramBanks() int {
	return (len(b.ram) + ramBankSize - 1) / ramBankSize
}

func (b *banks) romIndex(bank int, address uint16) int {
	return (bank%b.romBanks())*romBankSize + int(address&(romBankSize-1))
}

func (b *banks) ramIndex(bank int, address uint16) (int, bool) {
	if len(b.ram) == 0 {
		return 0, false
	}
	offset := (bank%b.ramBanks())*ramBankSize + int(address-0xA000)
	return offset % len(b.ram), true
}

func (b *banks) readROM(bank int, address uint16) uint8 {
	if address < 0x4000 {
		bank = 0
	}
	return b.rom[b.romIndex(bank, address)]
}

func (b *banks) readRAM(bank int, address uint16) uint8 {
	i, ok := b.ramIndex(bank, address)
	if !ok {
		return 0xFF
	}
	return b.ram[i]
}

func (b *banks) writeRAM(bank int, address uint16, value uint8) {
	if i, ok := b.ramIndex(bank, address); ok {
		b.ram[i] = value
	}
}

func (b *banks) poke(romBank, ramBank int, address uint16, value uint8) {
	switch {
	case address < 0x4000:
		b.rom[b.romIndex(0, address)] = value
	case address < 0x8000:
		b.rom[b.romIndex(romBank, address)] = value
	case address >= 0xA000 && address < 0xC000:
		b.writeRAM(ramBank, address, value)
	}
}

func (b *banks) RAM() []byte {
	return b.ram
}

func (b *banks) info(t MBCType, romBank, ramBank int, ramEnabled bool) BankInfo {
	info := BankInfo{
		Type:           t,
		ROMBank:        romBank % b.romBanks(),
		RAMEnabled:     ramEnabled,
		ROMBankingMode: true,
		ROMBanks:       b.romBanks(),
		RAMBanks:       b.ramBanks(),
	}
	if info.RAMBanks > 0 {
		info.RAMBank = ramBank % info.RAMBanks
	}
	return info
}

// NoMBC is a plain 32KB cartridge, optionally with up to 8KB of RAM that is always
// accessible.
type NoMBC struct {
	banks
}

func NewNoMBC(rom []byte, ramSize int) *NoMBC {
	return &NoMBC{banks: newBanks(rom, ramSize)}
}

func (m *NoMBC) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readROM(1, address)
	case address >= 0xA000 && address < 0xC000:
		return m.readRAM(0, address)
	}
	return 0xFF
}

func (m *NoMBC) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 {
		m.writeRAM(0, address, value)
	}
}

func (m *NoMBC) Poke(address uint16, value uint8) { m.poke(1, 0, address, value) }

func (m *NoMBC) Info() BankInfo {
	return m.info(NoMBCType, 1, 0, len(m.ram) > 0)
}

func (m *NoMBC) Snapshot() MBCState {
	return MBCState{Type: uint8(NoMBCType), ROMBank: 1}
}

func (m *NoMBC) Restore(MBCState) {}

// MBC1 supports up to 2MB of ROM and 32KB of RAM.
//
// The 5-bit register at 0x2000 selects the low ROM bank bits (0 reads as 1). The 2-bit
// register at 0x4000 supplies ROM bank bits 5-6, and in mode 1 it also selects the RAM
// bank. The fixed window at 0x0000 always shows bank 0.
type MBC1 struct {
	banks
	bank1      uint8
	bank2      uint8
	mode       uint8
	ramEnabled bool
}

func NewMBC1(rom []byte, ramSize int) *MBC1 {
	return &MBC1{
		banks: newBanks(rom, ramSize),
		bank1: 1,
	}
}

func (m *MBC1) romBank() int {
	return int(m.bank2)<<5 | int(m.bank1)
}

func (m *MBC1) ramBank() int {
	if m.mode == 1 {
		return int(m.bank2)
	}
	return 0
}

func (m *MBC1) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readROM(m.romBank(), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.readRAM(m.ramBank(), address)
	}
	return 0xFF
}

func (m *MBC1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value & 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.writeRAM(m.ramBank(), address, value)
		}
	}
}

func (m *MBC1) Poke(address uint16, value uint8) {
	m.poke(m.romBank(), m.ramBank(), address, value)
}

func (m *MBC1) Info() BankInfo {
	info := m.info(MBC1Type, m.romBank(), m.ramBank(), m.ramEnabled)
	info.ROMBankingMode = m.mode == 0
	return info
}

func (m *MBC1) Snapshot() MBCState {
	return MBCState{
		Type:       uint8(MBC1Type),
		ROMBank:    uint16(m.bank1),
		RAMBank:    m.bank2,
		RAMEnabled: m.ramEnabled,
		Mode:       m.mode,
	}
}

func (m *MBC1) Restore(s MBCState) {
	m.bank1 = uint8(s.ROMBank) & 0x1F
	if m.bank1 == 0 {
		m.bank1 = 1
	}
	m.bank2 = s.RAMBank & 0x03
	m.ramEnabled = s.RAMEnabled
	m.mode = s.Mode & 0x01
}

// MBC2 supports up to 256KB of ROM and has 512 half-bytes of RAM built in.
// Address bit 8 decides whether a write below 0x4000 is a RAM enable or a ROM bank
// select. The RAM is mirrored across the whole external RAM window.
type MBC2 struct {
	banks
	romBank    uint8
	ramEnabled bool
}

const mbc2RAMSize = 512

func NewMBC2(rom []byte) *MBC2 {
	return &MBC2{
		banks:   newBanks(rom, mbc2RAMSize),
		romBank: 1,
	}
}

func (m *MBC2) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.ram[address&(mbc2RAMSize-1)] | 0xF0
	}
	return 0xFF
}

func (m *MBC2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		if address&0x0100 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
			return
		}
		m.romBank = value & 0x0F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.ram[address&(mbc2RAMSize-1)] = value & 0x0F
		}
	}
}

func (m *MBC2) Poke(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 {
		m.ram[address&(mbc2RAMSize-1)] = value & 0x0F
		return
	}
	m.poke(int(m.romBank), 0, address, value)
}

func (m *MBC2) Info() BankInfo {
	return m.info(MBC2Type, int(m.romBank), 0, m.ramEnabled)
}

func (m *MBC2) Snapshot() MBCState {
	return MBCState{
		Type:       uint8(MBC2Type),
		ROMBank:    uint16(m.romBank),
		RAMEnabled: m.ramEnabled,
	}
}

func (m *MBC2) Restore(s MBCState) {
	m.romBank = uint8(s.ROMBank) & 0x0F
	if m.romBank == 0 {
		m.romBank = 1
	}
	m.ramEnabled = s.RAMEnabled
}

// RTC register indices, as selected by writing 0x08-0x0C to the RAM bank register.
const (
	rtcSeconds = iota
	rtcMinutes
	rtcHours
	rtcDayLow
	rtcDayHigh
)

const (
	rtcCyclesPerSecond = 4194304
	rtcHalt            = 0x40
	rtcDayCarry        = 0x80
)

var rtcMasks = [5]uint8{0x3F, 0x3F, 0x1F, 0xFF, 0xC1}

// MBC3 supports up to 2MB of ROM, 32KB of RAM and an optional real time clock.
// The clock runs on emulated cycles, so it stays deterministic across save states.
// Reads of the clock registers see the values captured by the last 0->1 latch write.
type MBC3 struct {
	banks
	romBank    uint8
	ramBank    uint8
	ramEnabled bool

	hasRTC     bool
	rtc        [5]uint8
	latched    [5]uint8
	rtcCycles  uint32
	latchArmed bool
}

func NewMBC3(rom []byte, ramSize int, hasRTC bool) *MBC3 {
	return &MBC3{
		banks:   newBanks(rom, ramSize),
		romBank: 1,
		hasRTC:  hasRTC,
	}
}

func (m *MBC3) rtcSelected() bool {
	return m.ramBank >= 0x08 && m.ramBank <= 0x0C
}

func (m *MBC3) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.rtcSelected() {
			if !m.hasRTC {
				return 0xFF
			}
			return m.latched[m.ramBank-0x08]
		}
		if m.ramBank > 0x03 {
			return 0xFF
		}
		return m.readRAM(int(m.ramBank), address)
	}
	return 0xFF
}

func (m *MBC3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address < 0x8000:
		if value == 1 && m.latchArmed {
			m.latched = m.rtc
		}
		m.latchArmed = value == 0
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.rtcSelected() {
			if m.hasRTC {
				index := m.ramBank - 0x08
				m.rtc[index] = value & rtcMasks[index]
				if index == rtcSeconds {
					m.rtcCycles = 0
				}
			}
			return
		}
		if m.ramBank <= 0x03 {
			m.writeRAM(int(m.ramBank), address, value)
		}
	}
}

// Tick advances the real time clock unless it is halted.
func (m *MBC3) Tick(cycles int) {
	if !m.hasRTC || m.rtc[rtcDayHigh]&rtcHalt != 0 {
		return
	}
	m.rtcCycles += uint32(cycles)
	for m.rtcCycles >= rtcCyclesPerSecond {
		m.rtcCycles -= rtcCyclesPerSecond
		m.advanceSecond()
	}
}

func (m *MBC3) advanceSecond() {
	m.rtc[rtcSeconds] = (m.rtc[rtcSeconds] + 1) & rtcMasks[rtcSeconds]
	if m.rtc[rtcSeconds] != 60 {
		return
	}
	m.rtc[rtcSeconds] = 0

	m.rtc[rtcMinutes] = (m.rtc[rtcMinutes] + 1) & rtcMasks[rtcMinutes]
	if m.rtc[rtcMinutes] != 60 {
		return
	}
	m.rtc[rtcMinutes] = 0

	m.rtc[rtcHours] = (m.rtc[rtcHours] + 1) & rtcMasks[rtcHours]
	if m.rtc[rtcHours] != 24 {
		return
	}
	m.rtc[rtcHours] = 0

	day := uint16(m.rtc[rtcDayHigh]&0x01)<<8 | uint16(m.rtc[rtcDayLow]) + 1
	if day > 0x1FF {
		day = 0
		m.rtc[rtcDayHigh] |= rtcDayCarry
	}
	m.rtc[rtcDayLow] = uint8(day)
	m.rtc[rtcDayHigh] = m.rtc[rtcDayHigh]&^0x01 | uint8(day>>8)&0x01
}

func (m *MBC3) Poke(address uint16, value uint8) {
	m.poke(int(m.romBank), int(m.ramBank&0x03), address, value)
}

func (m *MBC3) Info() BankInfo {
	info := m.info(MBC3Type, int(m.romBank), int(m.ramBank&0x03), m.ramEnabled)
	if m.rtcSelected() {
		info.RAMBank = int(m.ramBank)
	}
	return info
}

func (m *MBC3) Snapshot() MBCState {
	return MBCState{
		Type:       uint8(MBC3Type),
		ROMBank:    uint16(m.romBank),
		RAMBank:    m.ramBank,
		RAMEnabled: m.ramEnabled,
		RTC:        m.rtc,
		RTCLatched: m.latched,
		RTCCycles:  m.rtcCycles,
		LatchArmed: m.latchArmed,
	}
}

func (m *MBC3) Restore(s MBCState) {
	m.romBank = uint8(s.ROMBank) & 0x7F
	if m.romBank == 0 {
		m.romBank = 1
	}
	m.ramBank = s.RAMBank & 0x0F
	m.ramEnabled = s.RAMEnabled
	m.rtc = s.RTC
	m.latched = s.RTCLatched
	m.rtcCycles = s.RTCCycles
	m.latchArmed = s.LatchArmed
}

// MBC5 supports up to 8MB of ROM through a 9-bit bank register (bank 0 is selectable)
// and up to 128KB of RAM. On rumble cartridges bit 3 of the RAM bank register drives
// the motor instead of selecting a bank.
type MBC5 struct {
	banks
	romBank    uint16
	ramBank    uint8
	ramEnabled bool
	hasRumble  bool
}

func NewMBC5(rom []byte, ramSize int, hasRumble bool) *MBC5 {
	return &MBC5{
		banks:     newBanks(rom, ramSize),
		romBank:   1,
		hasRumble: hasRumble,
	}
}

func (m *MBC5) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		return m.readRAM(int(m.ramBank), address)
	}
	return 0xFF
}

func (m *MBC5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case address < 0x6000:
		if m.hasRumble {
			m.ramBank = value & 0x07
		} else {
			m.ramBank = value & 0x0F
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.writeRAM(int(m.ramBank), address, value)
		}
	}
}

func (m *MBC5) Poke(address uint16, value uint8) {
	m.poke(int(m.romBank), int(m.ramBank), address, value)
}

func (m *MBC5) Info() BankInfo {
	return m.info(MBC5Type, int(m.romBank), int(m.ramBank), m.ramEnabled)
}

func (m *MBC5) Snapshot() MBCState {
	return MBCState{
		Type:       uint8(MBC5Type),
		ROMBank:    m.romBank,
		RAMBank:    m.ramBank,
		RAMEnabled: m.ramEnabled,
	}
}

func (m *MBC5) Restore(s MBCState) {
	m.romBank = s.ROMBank & 0x1FF
	m.ramBank = s.RAMBank & 0x0F
	m.ramEnabled = s.RAMEnabled
}
