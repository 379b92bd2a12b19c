// Package yeoda discovers raster files laid out and named after the yeoda
// convention used for Equi7Grid tiled Sentinel-1 products, e.g.
//
//	<root>/SIG0/V1M1R1/EQUI7_EU020M/E051N015T3/
//	    SIG0_20180228T043908__VV_A117_E051N015T3_EU020M_V1M1R1_S1AIWGRDH_TUWIEN.tif
package yeoda

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotYeoda is returned for file names that do not follow the convention.
var ErrNotYeoda = errors.New("not a yeoda file name")

// Field names a part of a yeoda file name.
type Field string

const (
	VarName     Field = "var_name"
	Datetime1   Field = "datetime_1"
	Datetime2   Field = "datetime_2"
	Band        Field = "band"
	ExtraField  Field = "extra_field"
	TileName    Field = "tile_name"
	GridName    Field = "grid_name"
	DataVersion Field = "data_version"
	SensorField Field = "sensor_field"
	Creator     Field = "creator"
)

// fields lists the naming fields in file name order.
var fields = []Field{
	VarName, Datetime1, Datetime2, Band, ExtraField,
	TileName, GridName, DataVersion, SensorField, Creator,
}

var timeLayouts = []string{"20060102T150405", "20060102"}

// ParseFilename parses the base name of path into a Record.
func ParseFilename(path string) (Record, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "_")
	if len(parts) != len(fields) {
		return Record{}, fmt.Errorf("%w: %q has %d fields, want %d", ErrNotYeoda, base, len(parts), len(fields))
	}

	r := Record{
		Path:        path,
		VarName:     parts[0],
		Band:        parts[3],
		ExtraField:  parts[4],
		TileName:    parts[5],
		GridName:    parts[6],
		DataVersion: parts[7],
		SensorField: parts[8],
		Creator:     parts[9],
	}
	var err error
	if r.Datetime1, err = parseTime(parts[1]); err != nil {
		return Record{}, fmt.Errorf("%w: %q: datetime_1: %v", ErrNotYeoda, base, err)
	}
	if r.Datetime2, err = parseTime(parts[2]); err != nil {
		return Record{}, fmt.Errorf("%w: %q: datetime_2: %v", ErrNotYeoda, base, err)
	}
	return r, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
