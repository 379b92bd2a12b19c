package restructure

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rtm0/floodmapper/internal/nc"
	"github.com/rtm0/floodmapper/internal/raster"
	"github.com/rtm0/floodmapper/internal/tile"
	"github.com/rtm0/floodmapper/internal/yeoda"
)

// ErrShapeMismatch is returned when rasters of one group differ in size.
var ErrShapeMismatch = errors.New("raster shapes differ")

// Request holds the positional arguments of a restructure run.
type Request struct {
	Root string
	Out  string
	// Tile is the tile long name, e.g. EU020M_E051N015T3.
	Tile string
	// Arg is the tag or event time, depending on the product.
	Arg string
}

// Result reports what a run wrote.
type Result struct {
	OutDir  string
	Matched int
	Files   []string
}

// Pipeline discovers, groups, transforms and persists product files.
type Pipeline struct {
	logger     *slog.Logger
	discoverer yeoda.Discoverer
	reader     raster.Reader
	writer     *nc.Writer
}

// New creates a new pipeline.
func New(logger *slog.Logger, discoverer yeoda.Discoverer, reader raster.Reader, writer *nc.Writer) *Pipeline {
	return &Pipeline{
		logger:     logger,
		discoverer: discoverer,
		reader:     reader,
		writer:     writer,
	}
}

// OutputDir returns <out>/<version>/EQUI7_<grid>/<tile>.
func OutputDir(out, version string, t tile.Tile) string {
	return filepath.Join(out, version, t.EquiGrid(), t.Name)
}

// Run restructures the files of product p selected by req. A request that
// matches nothing writes nothing and is not an error.
func (p *Pipeline) Run(prod Product, req Request) (*Result, error) {
	t, err := tile.Parse(req.Tile)
	if err != nil {
		return nil, err
	}
	logger := p.logger.With("product", prod.Name, "tile", t.String())

	table, err := p.discoverer.Discover(req.Root, prod.Patterns(t), prod.Index)
	if err != nil {
		return nil, fmt.Errorf("discovering %s files: %w", prod.Name, err)
	}
	res := &Result{OutDir: OutputDir(req.Out, prod.DataVersion, t)}
	if err := os.MkdirAll(res.OutDir, 0o755); err != nil {
		return nil, err
	}

	selected, err := prod.Select(table, req.Arg)
	if err != nil {
		return nil, err
	}
	res.Matched = selected.Len()
	logger.Debug("selected files", "discovered", table.Len(), "selected", res.Matched, "arg", req.Arg)

	for _, g := range prod.Groups(selected) {
		path := filepath.Join(res.OutDir, g.Key+".nc")
		if err := p.restructure(prod, g, path); err != nil {
			return res, fmt.Errorf("group %s: %w", g.Key, err)
		}
		res.Files = append(res.Files, path)
		if err := p.report(logger, path, len(g.Rows)); err != nil {
			return res, fmt.Errorf("group %s: %w", g.Key, err)
		}
	}

	if len(res.Files) == 0 {
		logger.Warn("No files matched, nothing written", "root", req.Root, "arg", req.Arg, "discovered", table.Len())
	}
	return res, nil
}

func (p *Pipeline) restructure(prod Product, g yeoda.Group, path string) error {
	rasters := make([]*raster.Raster, len(g.Rows))
	for i, r := range g.Rows {
		var err error
		if rasters[i], err = p.reader.Read(r.Path); err != nil {
			return err
		}
	}
	ds, err := Build(prod, g, rasters)
	if err != nil {
		return err
	}
	return p.writer.Write(path, ds)
}

// Build assembles the dataset of a group from its rasters, which must be
// given in group row order.
func Build(prod Product, g yeoda.Group, rasters []*raster.Raster) (*nc.Dataset, error) {
	if len(rasters) == 0 || len(rasters) != len(g.Rows) {
		return nil, fmt.Errorf("group %s: %d rasters for %d files", g.Key, len(rasters), len(g.Rows))
	}
	ds := nc.NewDataset(rasters[0])
	for i, r := range g.Rows {
		rs := rasters[i]
		if rs.Width != ds.Width || rs.Height != ds.Height {
			return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d", ErrShapeMismatch, r.Path, rs.Width, rs.Height, ds.Width, ds.Height)
		}
		band, err := rs.Band()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Path, err)
		}
		label := prod.Label(r)
		policy := prod.Policy(r, label)
		data := band
		if policy.Divisor != 0 {
			data = make([]float64, len(band))
			for j, v := range band {
				data[j] = v / policy.Divisor
			}
		}
		if err := ds.Add(nc.Variable{Name: label, Data: data, Encoding: policy.Encoding}); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// report reopens a written archive and logs its summary.
func (p *Pipeline) report(logger *slog.Logger, path string, sources int) error {
	f, err := nc.Open(path)
	if err != nil {
		return fmt.Errorf("reopening %s: %w", path, err)
	}
	defer f.Close()
	logger.Info("Wrote archive", append([]any{"path", path, "sources", sources}, f.Summary()...)...)
	return nil
}
