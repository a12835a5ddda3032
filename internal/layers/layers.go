// Package layers builds maps and line layers from configuration and GeoJSON files.
package layers

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/Faultbox/geoline/internal/config"
	"github.com/Faultbox/geoline/internal/feature/line"
	"github.com/Faultbox/geoline/internal/logger"
	"github.com/Faultbox/geoline/internal/mapview"
	"github.com/Faultbox/geoline/internal/source"
	"github.com/Faultbox/geoline/pkg/geo"
)

// NewMap creates a map from the map section of cfg at the given viewport size.
func NewMap(cfg *config.Config, width, height int) (*mapview.Map, error) {
	return mapview.New(mapview.Options{
		GCS:     geo.GCS(cfg.Map.GCS),
		Backend: cfg.Map.Backend,
		Width:   width,
		Height:  height,
		Padding: cfg.Map.Padding,
	})
}

// DefaultStyle converts the style section of cfg.
func DefaultStyle(cfg config.StyleConfig) (source.Style, error) {
	c, err := geo.ParseColor(cfg.StrokeColor)
	if err != nil {
		return source.Style{}, fmt.Errorf("style stroke_color: %w", err)
	}
	return source.Style{Color: c, Width: cfg.StrokeWidth, Opacity: cfg.StrokeOpacity}, nil
}

// LoadFiles creates one layer holding one line feature per GeoJSON file.
func LoadFiles(m *mapview.Map, cfg *config.Config, paths []string) (*mapview.Layer, error) {
	style, err := DefaultStyle(cfg.Style)
	if err != nil {
		return nil, err
	}

	layer := m.CreateLayer()
	for _, path := range paths {
		items, err := source.LoadGeoJSON(path, style)
		if err != nil {
			m.DeleteLayer(layer)
			return nil, err
		}
		opts := source.LineOptions(items, geo.GCS(cfg.Map.DataGCS))
		opts.Bin = cfg.Style.Bin
		if _, err := layer.CreateFeature(line.Type, opts); err != nil {
			m.DeleteLayer(layer)
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Info("loaded lines", zap.String("path", path), zap.Int("items", len(items)))
	}
	return layer, nil
}

// FeatureStats summarizes one built feature.
type FeatureStats struct {
	Items    int
	Segments int
	Vertices int
}

// Stats returns per-feature geometry counts for the features of layer.
// Features that do not expose a mapper are reported with data counts only.
func Stats(layer *mapview.Layer) []FeatureStats {
	var out []FeatureStats
	for _, f := range layer.Features() {
		s := FeatureStats{Items: len(f.Base().Data())}
		if l, ok := f.(*line.Line); ok && l.Mapper().GeometryData() != nil {
			s.Vertices = l.Mapper().GeometryData().NumVertices()
			s.Segments = s.Vertices / line.VerticesPerSegment
		}
		out = append(out, s)
	}
	return out
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Report renders per-file stats as a table. names and stats are index
// aligned.
func Report(names []string, stats []FeatureStats) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("FILE", "ITEMS", "SEGMENTS", "VERTICES")

	var total FeatureStats
	for i, s := range stats {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		t.Row(name, strconv.Itoa(s.Items), strconv.Itoa(s.Segments), strconv.Itoa(s.Vertices))
		total.Items += s.Items
		total.Segments += s.Segments
		total.Vertices += s.Vertices
	}
	if len(stats) > 1 {
		t.Row("total", strconv.Itoa(total.Items), strconv.Itoa(total.Segments), strconv.Itoa(total.Vertices))
	}
	return t.String()
}
