package tiles

import "math"

// Size is the edge length of a tile in pixels.
const Size = 256

// MaxLatitude is the northern limit of the Web Mercator projection.
const MaxLatitude = 85.0511287798

// Tile addresses a tile of the XYZ pyramid.
type Tile struct {
	Z, X, Y int
}

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	West, South, East, North float64
}

// Project returns the fractional tile coordinates of a position at zoom z.
func Project(lon, lat float64, z int) (x, y float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	n := math.Exp2(float64(z))
	x = (lon + 180) / 360 * n
	rad := lat * math.Pi / 180
	y = (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * n
	return x, y
}

// Cover returns the tiles at zoom z intersecting b, row by row.
func Cover(b Bounds, z int) []Tile {
	x0, y0, x1, y1 := span(b, z)
	var out []Tile
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			out = append(out, Tile{Z: z, X: x, Y: y})
		}
	}
	return out
}

// Count returns the number of tiles Cover would return.
func Count(b Bounds, z int) int {
	x0, y0, x1, y1 := span(b, z)
	return (x1 - x0 + 1) * (y1 - y0 + 1)
}

func span(b Bounds, z int) (x0, y0, x1, y1 int) {
	fx0, fy0 := Project(b.West, b.North, z)
	fx1, fy1 := Project(b.East, b.South, z)
	last := int(math.Exp2(float64(z))) - 1
	clamp := func(v float64) int {
		return max(0, min(last, int(math.Floor(v))))
	}
	return clamp(fx0), clamp(fy0), clamp(fx1), clamp(fy1)
}
