package yeoda

import (
	"path/filepath"
	"strings"
	"time"
)

// TimeLayout is the layout used when a datetime field is compared as text.
const TimeLayout = "2006-01-02 15:04:05"

// Record is a raster file whose name follows the yeoda naming convention.
type Record struct {
	Path string

	// Fields parsed from the file name.
	VarName     string
	Datetime1   time.Time
	Datetime2   time.Time
	Band        string
	ExtraField  string
	TileName    string
	GridName    string
	DataVersion string
	SensorField string
	Creator     string
}

// Stem returns the file name without directory and extension.
func (r Record) Stem() string {
	base := filepath.Base(r.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Field returns the textual value of a naming field. Datetimes are formatted
// with TimeLayout; unset datetimes yield an empty string.
func (r Record) Field(f Field) string {
	switch f {
	case VarName:
		return r.VarName
	case Datetime1:
		return formatTime(r.Datetime1)
	case Datetime2:
		return formatTime(r.Datetime2)
	case Band:
		return r.Band
	case ExtraField:
		return r.ExtraField
	case TileName:
		return r.TileName
	case GridName:
		return r.GridName
	case DataVersion:
		return r.DataVersion
	case SensorField:
		return r.SensorField
	case Creator:
		return r.Creator
	}
	return ""
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}
