package transporthttp

import (
	"fmt"
	"strings"
	"time"

	"portview/internal/portfolio"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/shopspring/decimal"
)

const (
	chartWidthPx  = 1200
	chartHeightPx = 600
)

// renderChart writes the portfolio series as a standalone HTML line chart.
func renderChart(c *gin.Context, symbol string, result *portfolio.Result) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeWesteros,
			Width:     fmt.Sprintf("%dpx", chartWidthPx),
			Height:    fmt.Sprintf("%dpx", chartHeightPx),
			PageTitle: fmt.Sprintf("Portfolio %s", strings.ToUpper(symbol)),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Portfolio value %s", strings.ToUpper(symbol)),
			Left:  "left",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
	)

	xAxis := make([]string, 0, len(result.Series))
	total := make([]opts.LineData, 0, len(result.Series))
	cash := make([]opts.LineData, 0, len(result.Series))
	assetValue := make([]opts.LineData, 0, len(result.Series))
	for _, p := range result.Series {
		xAxis = append(xAxis, time.UnixMilli(p.Timestamp).UTC().Format("01-02 15:04"))
		total = append(total, opts.LineData{Value: toFloat(p.Total)})
		cash = append(cash, opts.LineData{Value: toFloat(p.Cash)})
		assetValue = append(assetValue, opts.LineData{Value: toFloat(p.AssetValue)})
	}
	line.SetXAxis(xAxis)
	line.AddSeries("Total", total, charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	line.AddSeries("Cash", cash)
	line.AddSeries("Asset Value", assetValue)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
