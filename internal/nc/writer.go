package nc

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
)

// Dimension and attribute names written to every archive.
const (
	DimX = "x"
	DimY = "y"

	// VarSpatialRef is the CF grid mapping variable every data variable
	// points to, named as rioxarray names it.
	VarSpatialRef = "spatial_ref"

	AttrFillValue   = "_FillValue"
	AttrScaleFactor = "scale_factor"
	AttrGridMapping = "grid_mapping"
	AttrCRS         = "crs_wkt"
	AttrSpatialRef  = "spatial_ref"
	AttrTransform   = "GeoTransform"
)

// Writer writes datasets as NetCDF classic files.
type Writer struct {
	logger       *slog.Logger
	compressOnce sync.Once
}

// NewWriter creates a new NetCDF writer.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger}
}

// Write stores ds at path, replacing any existing file. The file is written
// next to path first and renamed into place, so readers never observe a
// partially written archive.
func (w *Writer) Write(path string, ds *Dataset) error {
	for _, v := range ds.Vars {
		if err := v.Encoding.Validate(); err != nil {
			return fmt.Errorf("variable %s: %w", v.Name, err)
		}
		if v.Encoding.Compress {
			// The classic format has no filter pipeline.
			w.compressOnce.Do(func() {
				w.logger.Warn("Compression requested but not supported by NetCDF classic, writing uncompressed", "var", v.Name)
			})
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := write(tmpName, ds); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	w.logger.Debug("wrote archive", "path", path, "vars", len(ds.Vars))
	return nil
}

func write(path string, ds *Dataset) (err error) {
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cw.Close(); err == nil {
			err = cerr
		}
	}()

	globals, err := globalAttributes()
	if err != nil {
		return err
	}
	if err := cw.AddGlobalAttrs(globals); err != nil {
		return err
	}

	if err := addSpatialRef(cw, ds); err != nil {
		return err
	}
	if err := addCoordinate(cw, DimY, ds.Y, "projection_y_coordinate", "Y"); err != nil {
		return err
	}
	if err := addCoordinate(cw, DimX, ds.X, "projection_x_coordinate", "X"); err != nil {
		return err
	}

	for _, v := range ds.Vars {
		attrs, err := variableAttributes(v.Encoding)
		if err != nil {
			return err
		}
		err = cw.AddVar(v.Name, api.Variable{
			Values:     v.Encoding.Quantize(v.Data, ds.Width, ds.Height),
			Dimensions: []string{DimY, DimX},
			Attributes: attrs,
		})
		if err != nil {
			return fmt.Errorf("adding %s: %w", v.Name, err)
		}
	}
	return nil
}

func addCoordinate(cw *cdf.CDFWriter, name string, values []float64, standardName, axis string) error {
	attrs, err := util.NewOrderedMap(
		[]string{"standard_name", "units", "axis"},
		map[string]interface{}{
			"standard_name": standardName,
			"units":         "metre",
			"axis":          axis,
		})
	if err != nil {
		return err
	}
	return cw.AddVar(name, api.Variable{
		Values:     values,
		Dimensions: []string{name},
		Attributes: attrs,
	})
}

// addSpatialRef writes the scalar grid mapping variable holding the CRS and
// the geotransform.
func addSpatialRef(cw *cdf.CDFWriter, ds *Dataset) error {
	keys := []string{AttrTransform}
	vals := map[string]interface{}{AttrTransform: formatTransform(ds.GeoTransform)}
	if ds.CRS != "" {
		keys = append(keys, AttrCRS, AttrSpatialRef)
		vals[AttrCRS] = ds.CRS
		vals[AttrSpatialRef] = ds.CRS
	}
	attrs, err := util.NewOrderedMap(keys, vals)
	if err != nil {
		return err
	}
	return cw.AddVar(VarSpatialRef, api.Variable{
		Values:     int32(0),
		Dimensions: nil,
		Attributes: attrs,
	})
}

func variableAttributes(e Encoding) (api.AttributeMap, error) {
	keys := []string{AttrFillValue}
	vals := map[string]interface{}{AttrFillValue: e.FillValue}
	if e.Scaled() {
		keys = append(keys, AttrScaleFactor)
		vals[AttrScaleFactor] = e.ScaleFactor
	}
	keys = append(keys, AttrGridMapping)
	vals[AttrGridMapping] = VarSpatialRef
	return util.NewOrderedMap(keys, vals)
}

func globalAttributes() (api.AttributeMap, error) {
	return util.NewOrderedMap(
		[]string{"Conventions"},
		map[string]interface{}{"Conventions": "CF-1.7"})
}

// formatTransform renders a geotransform the way GDAL stores it in NetCDF.
func formatTransform(gt [6]float64) string {
	parts := make([]string, len(gt))
	for i, v := range gt {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
