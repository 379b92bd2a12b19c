// Package restructure reorganizes yeoda raster products into per-tile
// NetCDF archives that can be loaded as a local openEO collection.
package restructure

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rtm0/floodmapper/internal/nc"
	"github.com/rtm0/floodmapper/internal/tile"
	"github.com/rtm0/floodmapper/internal/yeoda"
)

// ErrEventTime is returned for event times that cannot be parsed.
var ErrEventTime = errors.New("invalid event time")

const (
	// FillValue marks nodata in every archive.
	FillValue int16 = -9999
	// NOBS is the name of the observation count variable.
	NOBS = "NOBS"
	// Polarization is the only SIG0 band that is restructured.
	Polarization = "VV"
	// PLIANobs is the var name of the PLIA observation count product.
	PLIANobs = "PLIA-TAG-NOBS"
)

// Grouping selects how rows are turned into output files.
type Grouping int

const (
	// PerFile writes one archive per source file, named after its stem.
	PerFile Grouping = iota
	// ByIndex writes one archive per index value, named after the value.
	ByIndex
)

// VarPolicy says how one source file becomes an output variable.
type VarPolicy struct {
	Encoding nc.Encoding
	// Divisor rescales source values before encoding. Zero leaves them as is.
	Divisor float64
}

// Product describes one restructurable raster product.
type Product struct {
	Name        string
	Marker      string
	DataVersion string
	// Index is the naming field the discovered table is indexed by.
	Index    yeoda.Field
	Grouping Grouping
	// Select narrows the discovered table using the request argument.
	Select func(t *yeoda.Table, arg string) (*yeoda.Table, error)
	// Label names the output variable for a source file.
	Label func(r yeoda.Record) string
	// Policy returns the encoding of the variable built from r.
	Policy func(r yeoda.Record, label string) VarPolicy
}

// Patterns returns the directory filters locating the product files of t.
func (p Product) Patterns(t tile.Tile) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(regexp.QuoteMeta(p.Marker)),
		regexp.MustCompile(regexp.QuoteMeta(p.DataVersion)),
		regexp.MustCompile(regexp.QuoteMeta(t.EquiGrid())),
		regexp.MustCompile(regexp.QuoteMeta(t.Name)),
	}
}

// Groups partitions the selected rows according to the product grouping.
func (p Product) Groups(t *yeoda.Table) []yeoda.Group {
	if p.Grouping == ByIndex {
		return t.GroupBy(t.Index)
	}
	groups := make([]yeoda.Group, 0, t.Len())
	for _, r := range t.Rows {
		groups = append(groups, yeoda.Group{Key: r.Stem(), Rows: []yeoda.Record{r}})
	}
	return groups
}

func scaled(factor float64) nc.Encoding {
	return nc.Encoding{ScaleFactor: factor, FillValue: FillValue, DType: nc.Int16, Compress: true}
}

func counts() nc.Encoding {
	return nc.Encoding{FillValue: FillValue, DType: nc.Int16, Compress: true}
}

// selectTag keeps rows whose index contains tag.
func selectTag(t *yeoda.Table, tag string) (*yeoda.Table, error) {
	return t.FilterIndex(func(k string) bool { return strings.Contains(k, tag) }), nil
}

// lastToken returns the part of a var name after its last dash.
func lastToken(r yeoda.Record) string {
	parts := strings.Split(r.VarName, "-")
	return parts[len(parts)-1]
}

// HParam restructures harmonic model parameters, one archive per orbit.
var HParam = Product{
	Name:        "hparam",
	Marker:      "SIG0-HPAR",
	DataVersion: "V0M2R3",
	Index:       yeoda.ExtraField,
	Grouping:    ByIndex,
	Select:      selectTag,
	Label:       lastToken,
	Policy: func(_ yeoda.Record, label string) VarPolicy {
		if label == NOBS {
			return VarPolicy{Encoding: counts()}
		}
		return VarPolicy{Encoding: scaled(0.1)}
	},
}

// PLIA restructures projected local incidence angles, one archive per file.
var PLIA = Product{
	Name:        "plia",
	Marker:      "PLIA-TAG",
	DataVersion: "V01R03",
	Index:       yeoda.ExtraField,
	Grouping:    PerFile,
	Select:      selectTag,
	Label:       func(yeoda.Record) string { return "PLIA" },
	Policy: func(r yeoda.Record, _ string) VarPolicy {
		if r.VarName == PLIANobs {
			return VarPolicy{Encoding: counts()}
		}
		// Angles are stored in hundredths of a degree.
		return VarPolicy{Encoding: scaled(0.01), Divisor: 100}
	},
}

// SIG0 restructures VV backscatter of a single acquisition.
var SIG0 = Product{
	Name:        "sig0",
	Marker:      "SIG0",
	DataVersion: "V1M1R1",
	Index:       yeoda.Datetime1,
	Grouping:    PerFile,
	Select:      selectEvent,
	Label:       func(yeoda.Record) string { return "SIG0" },
	Policy: func(yeoda.Record, string) VarPolicy {
		return VarPolicy{Encoding: scaled(0.1)}
	},
}

var eventLayouts = []string{yeoda.TimeLayout, "2006-01-02T15:04:05"}

// ParseEventTime parses an acquisition timestamp such as "2018-02-28 04:39:08".
func ParseEventTime(s string) (time.Time, error) {
	for _, layout := range eventLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q, want %q", ErrEventTime, s, yeoda.TimeLayout)
}

// selectEvent keeps the VV rows acquired exactly at the event time.
func selectEvent(t *yeoda.Table, eventTime string) (*yeoda.Table, error) {
	ts, err := ParseEventTime(eventTime)
	if err != nil {
		return nil, err
	}
	return t.Filter(func(r yeoda.Record) bool {
		return r.Datetime1.Equal(ts) && r.Band == Polarization
	}), nil
}

// Products lists all products by name.
var Products = map[string]Product{
	HParam.Name: HParam,
	PLIA.Name:   PLIA,
	SIG0.Name:   SIG0,
}
