package memory

// View is a borrowed, read-only window over the whole address space as the CPU sees it.
// It holds no bytes of its own.
type View struct {
	mmu *MMU
}

func (m *MMU) View() View {
	return View{mmu: m}
}

func (v View) Read(address uint16) byte {
	return v.mmu.Read(address)
}

// Range copies n bytes starting at start, wrapping at the end of the address space.
func (v View) Range(start uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = v.mmu.Read(start + uint16(i))
	}
	return out
}

// Dump copies all 64KB.
func (v View) Dump() []byte {
	return v.Range(0, 0x10000)
}
