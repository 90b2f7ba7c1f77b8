package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestToGrayMean(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 30, G: 60, B: 90, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	g := ToGray(img)
	if got := g.GrayAt(0, 0).Y; got != 60 {
		t.Errorf("GrayAt(0,0) = %d, want 60", got)
	}
	if got := g.GrayAt(1, 0).Y; got != 255 {
		t.Errorf("GrayAt(1,0) = %d, want 255", got)
	}
}

func TestCropSubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	c := Crop(img, image.Rect(2, 3, 5, 7))
	if c.Bounds() != image.Rect(0, 0, 3, 4) {
		t.Fatalf("Bounds() = %v", c.Bounds())
	}
	if got, want := c.GrayAt(0, 0).Y, img.GrayAt(2, 3).Y; got != want {
		t.Errorf("GrayAt(0,0) = %d, want %d", got, want)
	}
	if got, want := c.GrayAt(2, 3).Y, img.GrayAt(4, 6).Y; got != want {
		t.Errorf("GrayAt(2,3) = %d, want %d", got, want)
	}

	// Crops of crops keep working on zero-origin copies.
	sub := img.SubImage(image.Rect(4, 4, 8, 8)).(*image.Gray)
	g := ToGray(sub)
	if got, want := g.GrayAt(0, 0).Y, img.GrayAt(4, 4).Y; got != want {
		t.Errorf("ToGray(sub) = %d, want %d", got, want)
	}
}

func TestResize(t *testing.T) {
	img := Filled(12, 12, Background)
	img.SetGray(5, 5, color.Gray{Y: Ink})

	same := Resize(img, 12, 12)
	for i := range img.Pix {
		if same.Pix[i] != img.Pix[i] {
			t.Fatalf("same-size Resize changed pixel %d", i)
		}
	}

	up := Resize(Filled(2, 2, Background), 24, 24)
	for i, v := range up.Pix {
		if v != Background {
			t.Fatalf("upscaled blank pixel %d = %d", i, v)
		}
	}
}

func TestIsInk(t *testing.T) {
	tests := []struct {
		v    uint8
		want bool
	}{
		{0, true},
		{127, true},
		{128, false},
		{255, false},
	}
	for _, tt := range tests {
		if got := IsInk(tt.v); got != tt.want {
			t.Errorf("IsInk(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
