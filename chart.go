package bench

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

const barWidth = 8 // points

// Series is the bar sequence of one backend, one value per chart group.
type Series struct {
	Backend string
	Values  []float64
	Missing []bool // backend has no sample for the group
}

// Chart is a grouped bar chart comparing backends per operation.
type Chart struct {
	Title  string
	YLabel string
	File   string
	Groups []string // operation names, sorted
	Series []Series
}

// Bars returns the number of bars drawn by the chart.
func (c *Chart) Bars() int {
	return len(c.Groups) * len(c.Series)
}

type metric func(Row) float64

// BuildCharts creates the throughput and latency comparison of all tables.
func BuildCharts(tables Tables) (throughput, latency *Chart) {
	groups := operationNames(tables)
	throughput = &Chart{
		Title:  "Throughput for Database Operations",
		YLabel: "Throughput (ops/sec)",
		File:   "throughput.png",
		Groups: groups,
		Series: buildSeries(tables, groups, func(r Row) float64 { return r.Operations }),
	}
	latency = &Chart{
		Title:  "Latency for Database Operations",
		YLabel: "Latency (ms/op)",
		File:   "latency.png",
		Groups: groups,
		Series: buildSeries(tables, groups, func(r Row) float64 { return r.Latency }),
	}
	return throughput, latency
}

func operationNames(tables Tables) []string {
	seen := make(map[string]bool)
	var names []string
	tables.Each(func(t *Table) {
		for _, r := range t.Rows {
			if !seen[r.Name] {
				seen[r.Name] = true
				names = append(names, r.Name)
			}
		}
	})
	sort.Strings(names)
	return names
}

func buildSeries(tables Tables, groups []string, m metric) []Series {
	var series []Series
	tables.Each(func(t *Table) {
		s := Series{
			Backend: t.Backend,
			Values:  make([]float64, len(groups)),
			Missing: make([]bool, len(groups)),
		}
		for i, name := range groups {
			rows := t.Select(name)
			if len(rows) == 0 {
				s.Missing[i] = true
				continue
			}
			vs := make([]float64, len(rows))
			for j, r := range rows {
				vs[j] = m(r)
			}
			s.Values[i] = stat.Mean(vs, nil)
		}
		series = append(series, s)
	})
	return series
}

// Plot renders the chart. Every bar is annotated with its value.
func (c *Chart) Plot() (*plot.Plot, error) {
	if len(c.Groups) == 0 || len(c.Series) == 0 {
		return nil, errors.New("no operations to plot")
	}
	plt := plot.New()
	plt.Title.Text = c.Title
	plt.X.Label.Text = "Operation"
	plt.Y.Label.Text = c.YLabel
	plt.X.Tick.Label.Rotation = math.Pi / 2
	plt.X.Tick.Label.XAlign = text.XRight
	plt.X.Tick.Label.YAlign = text.YCenter
	plt.Legend.Top = true
	plt.NominalX(c.Groups...)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	plt.Add(grid)

	w := vg.Points(barWidth)
	n := len(c.Series)
	for i, s := range c.Series {
		offset := w * vg.Length(float64(i)-float64(n-1)/2)

		bars, err := plotter.NewBarChart(plotter.Values(s.Values), w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Backend, err)
		}
		bars.Offset = offset
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		plt.Add(bars)
		plt.Legend.Add(s.Backend, bars)

		labels, err := valueLabels(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Backend, err)
		}
		labels.Offset = vg.Point{X: offset, Y: vg.Points(1)}
		plt.Add(labels)
	}
	return plt, nil
}

func valueLabels(s Series) (*plotter.Labels, error) {
	xy := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(s.Values)),
		Labels: make([]string, len(s.Values)),
	}
	for i, v := range s.Values {
		xy.XYs[i] = plotter.XY{X: float64(i), Y: v}
		if !s.Missing[i] {
			xy.Labels[i] = fmt.Sprintf("%.1f", v)
		}
	}
	labels, err := plotter.NewLabels(xy)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
		labels.TextStyle[i].Font.Size = vg.Points(6)
	}
	return labels, nil
}

// Save renders the chart to dir/c.File. The image format follows the file
// extension.
func (c *Chart) Save(dir string, width, height vg.Length) (string, error) {
	plt, err := c.Plot()
	if err != nil {
		return "", err
	}
	out := filepath.Join(dir, c.File)
	if err := plt.Save(width, height, out); err != nil {
		return "", err
	}
	return out, nil
}

// SaveCharts writes the throughput and latency charts of tables to dir.
func SaveCharts(dir string, tables Tables, width, height vg.Length) ([]string, error) {
	tp, lat := BuildCharts(tables)
	var files []string
	for _, c := range []*Chart{tp, lat} {
		out, err := c.Save(dir, width, height)
		if err != nil {
			return files, fmt.Errorf("%s: %w", c.Title, err)
		}
		files = append(files, out)
	}
	return files, nil
}
