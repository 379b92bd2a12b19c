package nc

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// File is an open archive.
type File struct {
	nc api.Group
	x  []float64
	y  []float64
}

// Open opens an archive written by Writer.
func Open(path string) (*File, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, err
	}
	f := &File{nc: nc}
	if f.x, err = values[[]float64](nc, DimX); err != nil {
		nc.Close()
		return nil, err
	}
	if f.y, err = values[[]float64](nc, DimY); err != nil {
		nc.Close()
		return nil, err
	}
	return f, nil
}

func values[T any](nc api.Group, name string) (T, error) {
	var zero T
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return zero, fmt.Errorf("variable %s: %w", name, err)
	}
	v, err := vg.Values()
	if err != nil {
		return zero, fmt.Errorf("variable %s: %w", name, err)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("variable %s: unexpected type %T", name, v)
	}
	return t, nil
}

// Close closes the file.
func (f *File) Close() {
	f.nc.Close()
}

// X returns the x coordinates.
func (f *File) X() []float64 {
	return f.x
}

// Y returns the y coordinates.
func (f *File) Y() []float64 {
	return f.y
}

// Variables lists the data variables, i.e. everything except coordinates
// and the grid mapping.
func (f *File) Variables() []string {
	var names []string
	for _, n := range f.nc.ListVariables() {
		if n != DimX && n != DimY && n != VarSpatialRef {
			names = append(names, n)
		}
	}
	return names
}

// Attribute returns a global attribute.
func (f *File) Attribute(name string) (interface{}, bool) {
	return f.nc.Attributes().Get(name)
}

// VarAttribute returns an attribute of variable v.
func (f *File) VarAttribute(v, name string) (interface{}, bool) {
	vr, err := f.nc.GetVariable(v)
	if err != nil {
		return nil, false
	}
	return vr.Attributes.Get(name)
}

// SpatialRef returns the CRS WKT and the geotransform text stored on the
// grid mapping variable. The CRS is empty when the source had none.
func (f *File) SpatialRef() (crs, transform string, err error) {
	gt, ok := f.VarAttribute(VarSpatialRef, AttrTransform)
	if !ok {
		return "", "", fmt.Errorf("variable %s: no %s", VarSpatialRef, AttrTransform)
	}
	if transform, ok = gt.(string); !ok {
		return "", "", fmt.Errorf("variable %s: %s has type %T", VarSpatialRef, AttrTransform, gt)
	}
	if wkt, ok := f.VarAttribute(VarSpatialRef, AttrCRS); ok {
		crs, _ = wkt.(string)
	}
	return crs, transform, nil
}

// Raw returns the stored integers of a variable and its encoding as found
// in the file attributes.
func (f *File) Raw(name string) ([][]int16, Encoding, error) {
	vr, err := f.nc.GetVariable(name)
	if err != nil {
		return nil, Encoding{}, fmt.Errorf("variable %s: %w", name, err)
	}
	data, ok := vr.Values.([][]int16)
	if !ok {
		return nil, Encoding{}, fmt.Errorf("variable %s: unexpected type %T", name, vr.Values)
	}
	enc := Encoding{DType: Int16}
	fill, ok := vr.Attributes.Get(AttrFillValue)
	if !ok {
		return nil, Encoding{}, fmt.Errorf("%w: variable %s has no %s", ErrEncoding, name, AttrFillValue)
	}
	if enc.FillValue, ok = fill.(int16); !ok {
		return nil, Encoding{}, fmt.Errorf("%w: variable %s: %s has type %T", ErrEncoding, name, AttrFillValue, fill)
	}
	if sf, ok := vr.Attributes.Get(AttrScaleFactor); ok {
		if enc.ScaleFactor, ok = sf.(float64); !ok {
			return nil, Encoding{}, fmt.Errorf("%w: variable %s: %s has type %T", ErrEncoding, name, AttrScaleFactor, sf)
		}
	}
	return data, enc, nil
}

// Decoded returns the physical values of a variable in row-major order,
// with fill values as NaN.
func (f *File) Decoded(name string) ([]float64, error) {
	raw, enc, err := f.Raw(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(f.x)*len(f.y))
	for _, row := range raw {
		for _, v := range row {
			out = append(out, enc.Decode(v))
		}
	}
	return out, nil
}

// Summary returns the summary information about the archive suitable for
// logging.
func (f *File) Summary() []any {
	return []any{
		"dims", []string{DimY, DimX},
		"vars", f.Variables(),
		"xCnt", len(f.x),
		"yCnt", len(f.y),
	}
}
