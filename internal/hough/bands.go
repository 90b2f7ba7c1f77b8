package hough

// Orientation classifies a line by its normal angle.
type Orientation int

const (
	Diagonal Orientation = iota
	Horizontal
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "diagonal"
	}
}

// Bands are the angle limits (radians) splitting lines into horizontal,
// vertical and rejected diagonal ones:
//
//	Low < theta < HorizontalLow              diagonal
//	HorizontalLow <= theta <= HorizontalHigh horizontal
//	HorizontalHigh < theta < High            diagonal
//	otherwise                                vertical
type Bands struct {
	Low            float64 `toml:"low"`
	HorizontalLow  float64 `toml:"horizontal_low"`
	HorizontalHigh float64 `toml:"horizontal_high"`
	High           float64 `toml:"high"`
}

// GridBands are used on the skew-corrected photograph.
var GridBands = Bands{Low: 0.09, HorizontalLow: 1.51, HorizontalHigh: 1.60, High: 3.05}

// CellBands are used on the already rectified grid raster.
var CellBands = Bands{Low: 0.05, HorizontalLow: 1.54, HorizontalHigh: 1.60, High: 3.09}

// Classify returns the orientation of a normal angle.
func (b Bands) Classify(theta float64) Orientation {
	switch {
	case theta >= b.HorizontalLow && theta <= b.HorizontalHigh:
		return Horizontal
	case theta > b.Low && theta < b.HorizontalLow:
		return Diagonal
	case theta > b.HorizontalHigh && theta < b.High:
		return Diagonal
	default:
		return Vertical
	}
}

// Partition drops diagonal lines and returns the horizontal and vertical
// ones, each sorted by screen position in f.
func (b Bands) Partition(f Frame, lines []Line) (horizontal, vertical []Line) {
	for _, l := range lines {
		switch b.Classify(l.Theta) {
		case Horizontal:
			horizontal = append(horizontal, l)
		case Vertical:
			vertical = append(vertical, l)
		}
	}
	f.Sort(horizontal)
	f.Sort(vertical)
	return horizontal, vertical
}

// Positions returns the screen position of each line.
func (f Frame) Positions(lines []Line) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = f.Position(l)
	}
	return out
}
