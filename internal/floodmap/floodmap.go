// Package floodmap renders two-class flood maps over an OpenStreetMap
// basemap.
package floodmap

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"

	"github.com/airbusgeo/godal"
	"golang.org/x/image/draw"

	"github.com/rtm0/floodmapper/internal/raster"
	"github.com/rtm0/floodmapper/internal/tiles"
)

// Class is a legend entry covering values in [Min, Max).
type Class struct {
	Label    string
	Min, Max float64
	Color    color.RGBA
}

// Classes are the flood map levels [0, 1, 2].
var Classes = []Class{
	{Label: "non-flood", Min: 0, Max: 1, Color: color.RGBA{}},
	{Label: "flood", Min: 1, Max: 2, Color: color.RGBA{R: 0xff, A: 0xff}},
}

// Options controls rendering.
type Options struct {
	Title string
	// Width is the map width in pixels; the height follows the bounds.
	Width int
	// Zoom is the preferred basemap zoom level.
	Zoom int
	// MaxTiles bounds the number of basemap tiles; the zoom is lowered until
	// the bounds fit.
	MaxTiles int
}

// DefaultOptions returns the options of the standard flood map figure.
func DefaultOptions() Options {
	return Options{Title: "Flood map", Width: 1300, Zoom: 15, MaxTiles: 64}
}

const (
	titleHeight  = 32
	legendHeight = 56
	barHeight    = 22
	// barShrink is the colour bar width relative to the map width.
	barShrink = 0.6
)

// Viewer renders flood maps. A viewer without tile client draws on white.
type Viewer struct {
	logger *slog.Logger
	tiles  *tiles.Client
}

// NewViewer creates a new viewer. tc may be nil to disable the basemap.
func NewViewer(logger *slog.Logger, tc *tiles.Client) *Viewer {
	raster.Register()
	return &Viewer{logger: logger, tiles: tc}
}

// View renders the flood map stored at src into a PNG file at dst.
func (v *Viewer) View(ctx context.Context, src, dst string, opts Options) error {
	ds, err := godal.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer ds.Close()

	geo, err := Reproject(ds)
	if err != nil {
		return fmt.Errorf("reprojecting %s: %w", src, err)
	}
	img, err := v.Render(ctx, geo, opts)
	if err != nil {
		return err
	}
	if err := SavePNG(dst, img); err != nil {
		return err
	}
	v.logger.Info("Rendered flood map", "src", src, "dst", dst, "size", img.Bounds().Size())
	return nil
}

// Reproject warps a dataset to geographic coordinates (EPSG:4326). Nodata
// becomes NaN.
func Reproject(ds *godal.Dataset) (*raster.Raster, error) {
	warped, err := ds.Warp("", []string{
		"-of", "MEM",
		"-t_srs", "EPSG:4326",
		"-ot", "Float32",
		"-r", "near",
		"-dstnodata", "nan",
	})
	if err != nil {
		return nil, err
	}
	defer warped.Close()
	return raster.FromDataset(warped)
}

// Bounds returns the geographic extent of a raster in EPSG:4326.
func Bounds(r *raster.Raster) tiles.Bounds {
	gt := r.GeoTransform
	return tiles.Bounds{
		West:  gt[0],
		North: gt[3],
		East:  gt[0] + float64(r.Width)*gt[1],
		South: gt[3] + float64(r.Height)*gt[5],
	}
}

// Render draws the flood map of a geographic single-band raster.
func (v *Viewer) Render(ctx context.Context, r *raster.Raster, opts Options) (*image.RGBA, error) {
	band, err := r.Band()
	if err != nil {
		return nil, err
	}
	if opts.Width <= 0 {
		return nil, fmt.Errorf("invalid width %d", opts.Width)
	}
	b := Bounds(r)
	if b.East <= b.West || b.North <= b.South {
		return nil, fmt.Errorf("empty bounds %+v", b)
	}
	mapW := opts.Width
	mapH := max(1, int(math.Round(float64(mapW)*(b.North-b.South)/(b.East-b.West))))

	canvas := image.NewRGBA(image.Rect(0, 0, mapW, titleHeight+mapH+legendHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	drawText(canvas, opts.Title, mapW/2, titleHeight/2, black)

	mapRect := image.Rect(0, titleHeight, mapW, titleHeight+mapH)
	if v.tiles != nil {
		if err := v.drawBasemap(ctx, canvas, mapRect, b, opts); err != nil {
			return nil, err
		}
	}
	drawOverlay(canvas, mapRect, b, r, band)

	barW := int(float64(mapW) * barShrink)
	barTop := mapRect.Max.Y + (legendHeight-barHeight)/2
	bar := image.Rect((mapW-barW)/2, barTop, (mapW+barW)/2, barTop+barHeight)
	drawColorBar(canvas, bar, Classes)
	return canvas, nil
}

// lonLat returns the geographic position of the centre of canvas pixel (x, y).
func lonLat(rect image.Rectangle, b tiles.Bounds, x, y int) (float64, float64) {
	lon := b.West + (float64(x-rect.Min.X)+0.5)/float64(rect.Dx())*(b.East-b.West)
	lat := b.North - (float64(y-rect.Min.Y)+0.5)/float64(rect.Dy())*(b.North-b.South)
	return lon, lat
}

func (v *Viewer) drawBasemap(ctx context.Context, dst *image.RGBA, rect image.Rectangle, b tiles.Bounds, opts Options) error {
	z := opts.Zoom
	for z > 0 && tiles.Count(b, z) > opts.MaxTiles {
		z--
	}
	if z != opts.Zoom {
		v.logger.Warn("Lowered basemap zoom", "requested", opts.Zoom, "used", z, "maxTiles", opts.MaxTiles)
	}

	mosaic := map[tiles.Tile]image.Image{}
	for _, t := range tiles.Cover(b, z) {
		img, err := v.tiles.Fetch(ctx, t)
		if err != nil {
			return err
		}
		mosaic[t] = img
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			lon, lat := lonLat(rect, b, x, y)
			tx, ty := tiles.Project(lon, lat, z)
			t := tiles.Tile{Z: z, X: int(math.Floor(tx)), Y: int(math.Floor(ty))}
			img, ok := mosaic[t]
			if !ok {
				continue
			}
			ib := img.Bounds()
			px := ib.Min.X + int((tx-math.Floor(tx))*float64(ib.Dx()))
			py := ib.Min.Y + int((ty-math.Floor(ty))*float64(ib.Dy()))
			dst.Set(x, y, img.At(px, py))
		}
	}
	return nil
}

func drawOverlay(dst *image.RGBA, rect image.Rectangle, b tiles.Bounds, r *raster.Raster, band []float64) {
	gt := r.GeoTransform
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			lon, lat := lonLat(rect, b, x, y)
			col := int(math.Floor((lon - gt[0]) / gt[1]))
			row := int(math.Floor((lat - gt[3]) / gt[5]))
			if col < 0 || col >= r.Width || row < 0 || row >= r.Height {
				continue
			}
			cl, ok := classify(band[row*r.Width+col])
			if !ok || cl.Color.A == 0 {
				continue
			}
			dst.SetRGBA(x, y, cl.Color)
		}
	}
}

func classify(v float64) (Class, bool) {
	if math.IsNaN(v) {
		return Class{}, false
	}
	for _, cl := range Classes {
		if v >= cl.Min && v < cl.Max {
			return cl, true
		}
	}
	return Class{}, false
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
