package nc

import (
	"fmt"

	"github.com/rtm0/floodmapper/internal/raster"
)

// Variable is a named 2-D grid and its storage encoding.
type Variable struct {
	Name string
	// Data is row-major with NaN marking nodata.
	Data     []float64
	Encoding Encoding
}

// Dataset is a set of variables sharing one georeferenced grid.
type Dataset struct {
	Width, Height int
	X, Y          []float64
	GeoTransform  [6]float64
	CRS           string
	Vars          []Variable
}

// NewDataset creates an empty dataset on the grid of r.
func NewDataset(r *raster.Raster) *Dataset {
	return &Dataset{
		Width:        r.Width,
		Height:       r.Height,
		X:            r.X(),
		Y:            r.Y(),
		GeoTransform: r.GeoTransform,
		CRS:          r.CRS,
	}
}

// Add appends a variable, checking its size against the grid.
func (ds *Dataset) Add(v Variable) error {
	if len(v.Data) != ds.Width*ds.Height {
		return fmt.Errorf("variable %s has %d values, grid is %dx%d", v.Name, len(v.Data), ds.Width, ds.Height)
	}
	for _, existing := range ds.Vars {
		if existing.Name == v.Name {
			return fmt.Errorf("duplicate variable %s", v.Name)
		}
	}
	ds.Vars = append(ds.Vars, v)
	return nil
}

// Variable returns the variable called name.
func (ds *Dataset) Variable(name string) (Variable, bool) {
	for _, v := range ds.Vars {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}
