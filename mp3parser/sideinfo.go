package mp3parser

import "fmt"

// Nominal side information sizes in bytes. They are not decode minimums:
// the field widths need SideInfoBits (144 or 258 bits), so decoding reads
// 18 or 33 bytes.
const (
	SideInfoSizeSingle = 17
	SideInfoSizeMulti  = 32
)

// Granule holds one granule of side information. Multi-channel frames read
// every field at twice the single-channel width instead of one value per
// channel.
//
// BlockType, MixedBlockFlag, TableSelectTwoRegions and SubblockGain are never
// read and stay zero, and TableSelect keeps its width whatever
// WindowSwitchingFlag says.
type Granule struct {
	Part23Length        uint32
	BigValues           uint32
	GlobalGain          uint32
	ScalefacCompress    uint32
	WindowSwitchingFlag uint32
	TableSelect         uint32
	Region0Count        uint32
	Region1Count        uint32
	Preflag             uint32
	ScalefacScale       uint32
	Count1TableSelect   uint32

	BlockType             uint32
	MixedBlockFlag        uint32
	TableSelectTwoRegions uint32
	SubblockGain          uint32
}

// SideInformation is the side information block following the header and
// optional CRC.
type SideInformation struct {
	MainDataBegin uint32
	PrivateBits   uint32
	Scfsi         uint32
	Granule0      Granule
	Granule1      Granule
}

type granuleLayout struct {
	part23Length        int
	bigValues           int
	globalGain          int
	scalefacCompress    int
	windowSwitchingFlag int
	tableSelect         int
	region0Count        int
	region1Count        int
	preflag             int
	scalefacScale       int
	count1TableSelect   int
}

func (l granuleLayout) bits() int {
	return l.part23Length + l.bigValues + l.globalGain + l.scalefacCompress +
		l.windowSwitchingFlag + l.tableSelect + l.region0Count + l.region1Count +
		l.preflag + l.scalefacScale + l.count1TableSelect
}

type sideInfoLayout struct {
	mainDataBegin int
	privateBits   int
	scfsi         int
	granule       granuleLayout
}

var (
	singleChannelLayout = sideInfoLayout{
		mainDataBegin: 9,
		privateBits:   3,
		scfsi:         4,
		granule:       granuleLayout{12, 9, 8, 4, 1, 20, 4, 3, 1, 1, 1},
	}
	multiChannelLayout = sideInfoLayout{
		mainDataBegin: 9,
		privateBits:   5,
		scfsi:         8,
		granule:       granuleLayout{24, 18, 16, 8, 2, 30, 8, 6, 2, 2, 2},
	}
)

func layoutFor(mode ChannelMode) sideInfoLayout {
	if mode == ChannelSingleChannel {
		return singleChannelLayout
	}
	return multiChannelLayout
}

// SideInfoBits returns the number of bits the side information decode
// consumes for the channel mode.
func SideInfoBits(mode ChannelMode) int {
	l := layoutFor(mode)
	return l.mainDataBegin + l.privateBits + l.scfsi + 2*l.granule.bits()
}

// DecodeSideInformation decodes side information from the start of b.
func DecodeSideInformation(b []byte, mode ChannelMode) (SideInformation, error) {
	return ReadSideInformation(NewBitCursor(b), mode)
}

// ReadSideInformation decodes side information at the cursor position and
// leaves the cursor after the last granule field.
func ReadSideInformation(c *BitCursor, mode ChannelMode) (SideInformation, error) {
	l := layoutFor(mode)
	si := SideInformation{
		MainDataBegin: c.Read(l.mainDataBegin),
		PrivateBits:   c.Read(l.privateBits),
		Scfsi:         c.Read(l.scfsi),
	}
	si.Granule0 = readGranule(c, l.granule)
	si.Granule1 = readGranule(c, l.granule)

	if err := c.Err(); err != nil {
		return SideInformation{}, fmt.Errorf("side information (%s): %w", mode, err)
	}
	return si, nil
}

func readGranule(c *BitCursor, l granuleLayout) Granule {
	return Granule{
		Part23Length:        c.Read(l.part23Length),
		BigValues:           c.Read(l.bigValues),
		GlobalGain:          c.Read(l.globalGain),
		ScalefacCompress:    c.Read(l.scalefacCompress),
		WindowSwitchingFlag: c.Read(l.windowSwitchingFlag),
		TableSelect:         c.Read(l.tableSelect),
		Region0Count:        c.Read(l.region0Count),
		Region1Count:        c.Read(l.region1Count),
		Preflag:             c.Read(l.preflag),
		ScalefacScale:       c.Read(l.scalefacScale),
		Count1TableSelect:   c.Read(l.count1TableSelect),
	}
}
