package raster

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/airbusgeo/godal"
)

// ChunkRows is the number of lines read from a band at a time.
const ChunkRows = 500

var registerOnce sync.Once

// Register registers all GDAL drivers once per process.
func Register() {
	registerOnce.Do(godal.RegisterAll)
}

// GDAL reads rasters through GDAL.
type GDAL struct {
	logger *slog.Logger
}

// NewGDAL creates a new GDAL backed reader.
func NewGDAL(logger *slog.Logger) *GDAL {
	Register()
	return &GDAL{logger: logger}
}

// Read implements Reader. Every band is read as float64, nodata values are
// replaced by NaN and the band scale/offset is applied.
func (g *GDAL) Read(path string) (*Raster, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer ds.Close()

	r, err := FromDataset(ds)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g.logger.Debug("read raster", "path", path, "width", r.Width, "height", r.Height, "bands", len(r.Bands))
	return r, nil
}

// FromDataset loads all bands of an open dataset.
func FromDataset(ds *godal.Dataset) (*Raster, error) {
	st := ds.Structure()
	gt, err := ds.GeoTransform()
	if err != nil {
		return nil, err
	}
	r := &Raster{
		Width:        st.SizeX,
		Height:       st.SizeY,
		GeoTransform: gt,
		CRS:          ds.Projection(),
	}
	for _, band := range ds.Bands() {
		data, err := readBand(band, r.Width, r.Height)
		if err != nil {
			return nil, err
		}
		r.Bands = append(r.Bands, data)
	}
	return r, nil
}

func readBand(band godal.Band, width, height int) ([]float64, error) {
	data := make([]float64, width*height)
	for y := 0; y < height; y += ChunkRows {
		rows := min(ChunkRows, height-y)
		if err := band.Read(0, y, data[y*width:(y+rows)*width], width, rows); err != nil {
			return nil, err
		}
	}
	bs := band.Structure()
	nodata, ok := band.NoData()
	maskAndScale(data, nodata, ok, bs.Scale, bs.Offset)
	return data, nil
}
