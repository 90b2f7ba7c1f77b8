package digit

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Digits is the number of template classes, 0 (blank) through 9.
const Digits = 10

// ErrEmptyTrainingClass marks a digit that had no training samples. Its
// template stays all zero and training continues.
var ErrEmptyTrainingClass = errors.New("digit has no training samples")

// TemplateSet holds one averaged TemplateSize x TemplateSize template per digit.
type TemplateSet struct {
	Size    int             `json:"size"`
	Pixels  [Digits][]uint8 `json:"pixels"`  // row-major template intensities
	Samples [Digits]int     `json:"samples"` // training samples averaged into each template
}

// NewTemplateSet returns a set with every template zeroed.
func NewTemplateSet() *TemplateSet {
	ts := &TemplateSet{Size: TemplateSize}
	for d := range ts.Pixels {
		ts.Pixels[d] = make([]uint8, TemplateSize*TemplateSize)
	}
	return ts
}

// Train averages the normalized samples of each digit into its template.
// Labels outside 0-9 fail the whole run. Digits without samples are left
// zeroed; Validate reports them.
func Train(samples map[int][]image.Image) (*TemplateSet, error) {
	for label := range samples {
		if label < 0 || label >= Digits {
			return nil, fmt.Errorf("invalid training label %d", label)
		}
	}

	ts := NewTemplateSet()
	for d := 0; d < Digits; d++ {
		imgs := samples[d]
		if len(imgs) == 0 {
			continue
		}
		sums := make([]int, TemplateSize*TemplateSize)
		for _, img := range imgs {
			n := Normalize(img)
			for i, v := range n.Pix {
				sums[i] += int(v)
			}
		}
		for i, s := range sums {
			ts.Pixels[d][i] = uint8(s / len(imgs))
		}
		ts.Samples[d] = len(imgs)
	}
	return ts, nil
}

// Validate returns ErrEmptyTrainingClass, joined per digit, for every
// template that saw no samples.
func (ts *TemplateSet) Validate() error {
	var errs []error
	for d, n := range ts.Samples {
		if n == 0 {
			errs = append(errs, fmt.Errorf("%w: %d", ErrEmptyTrainingClass, d))
		}
	}
	return errors.Join(errs...)
}

// Image returns digit d's template as a raster.
func (ts *TemplateSet) Image(d int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, ts.Size, ts.Size))
	copy(img.Pix, ts.Pixels[d])
	return img
}

// Distance is the sum of squared differences between a normalized cell and
// digit d's template.
func (ts *TemplateSet) Distance(normalized *image.Gray, d int) int64 {
	var sum int64
	for i, t := range ts.Pixels[d] {
		diff := int64(normalized.Pix[i]) - int64(t)
		sum += diff * diff
	}
	return sum
}

// Classify returns the digit whose template is closest to the normalized
// cell. Ties go to the lowest digit. It always returns a digit.
func Classify(cell image.Image, ts *TemplateSet) int {
	n := Normalize(cell)
	best, bestDist := 0, int64(math.MaxInt64)
	for d := 0; d < Digits; d++ {
		if dist := ts.Distance(n, d); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}
