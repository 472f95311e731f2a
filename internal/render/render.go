package render

import (
	"bytes"
	"fmt"

	"backend-shaketrack/internal/classify"
	"backend-shaketrack/internal/track"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gofiber/fiber/v2"
)

// bucketStyles mirrors the green/yellow/red marker palette in hex.
var bucketStyles = map[classify.Bucket]string{
	classify.Low:    "#2e7d32",
	classify.Medium: "#f9a825",
	classify.High:   "#c62828",
}

// TrackPage renders the projection as a standalone HTML page: a lng/lat
// scatter of markers split per bucket, plus an intensity series in sample
// order.
func TrackPage(proj track.Projection) ([]byte, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Shake Track", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Shake Track",
			Subtitle: fmt.Sprintf("markers=%d path=%d", len(proj.Markers), len(proj.Path)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lng", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lat", Type: "value", Scale: opts.Bool(true)}),
	)

	series := map[classify.Bucket][]opts.ScatterData{}
	for _, m := range proj.Markers {
		series[m.Bucket] = append(series[m.Bucket], opts.ScatterData{
			Value: []interface{}{m.Lng, m.Lat, m.Intensity},
		})
	}
	for _, bucket := range []classify.Bucket{classify.Low, classify.Medium, classify.High} {
		scatter.AddSeries(bucket.String(), series[bucket],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: bucketStyles[bucket]}),
		)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Intensity", Subtitle: "sample order"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	xs := make([]string, 0, len(proj.Markers))
	ys := make([]opts.LineData, 0, len(proj.Markers))
	for i, m := range proj.Markers {
		xs = append(xs, fmt.Sprintf("%d", i+1))
		ys = append(ys, opts.LineData{Value: m.Intensity})
	}
	line.SetXAxis(xs).AddSeries("intensity", ys)

	page := components.NewPage()
	page.AddCharts(scatter, line)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RegisterRoutes serves the HTML view next to the JSON control surface.
func RegisterRoutes(r fiber.Router, rec *track.Recorder) {
	r.Get("/view", func(c *fiber.Ctx) error {
		doc, err := TrackPage(track.Project(rec.Snapshot()))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(doc)
	})
}
