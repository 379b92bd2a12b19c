package floodmap

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black = color.RGBA{A: 0xff}
)

// drawText draws s horizontally centred on cx with its middle at cy.
func drawText(dst draw.Image, s string, cx, cy int, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(s).Round()
	m := face.Metrics()
	baseline := cy + (m.Ascent.Round()-m.Descent.Round())/2
	d.Dot = fixed.P(cx-width/2, baseline)
	d.DrawString(s)
}

// drawColorBar draws a horizontal bar split into one cell per class with the
// class label centred in its cell. Ticks are not drawn.
func drawColorBar(dst draw.Image, r image.Rectangle, classes []Class) {
	n := len(classes)
	for i, cl := range classes {
		cell := image.Rect(r.Min.X+i*r.Dx()/n, r.Min.Y, r.Min.X+(i+1)*r.Dx()/n, r.Max.Y)
		draw.Draw(dst, cell, image.NewUniform(white), image.Point{}, draw.Src)
		draw.Draw(dst, cell, image.NewUniform(cl.Color), image.Point{}, draw.Over)
		c := cell.Min.Add(cell.Max).Div(2)
		drawText(dst, cl.Label, c.X, c.Y, black)
	}
	drawFrame(dst, r, black)
}

func drawFrame(dst draw.Image, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, c)
		dst.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, c)
		dst.Set(r.Max.X-1, y, c)
	}
}
