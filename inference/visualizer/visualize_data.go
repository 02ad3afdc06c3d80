package visualizer

import (
	"fmt"
	"net/http"

	"github.com/flowsight/flowinfer/inference"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/goccy/go-graphviz"
)

// HTML references for the rendered pages.
const marginalRef = "marginal-stats"
const ridgeRef = "ridge-stats"
const summaryRef = "summary-stats"
const flowsheetRef = "flowsheet"

// stream labels for charts and the flowsheet
var streamLabel = [3]string{"x1 (feed)", "x2 (outlet)", "x3 (outlet)"}

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>FlowInfer: Mass-Balance Estimator</title>
    <link rel="stylesheet" href="style.css">
    <script src="script.js"></script>
  </head>
  <body>
    <h1>FlowInfer: Mass-Balance Estimator</h1>
    <ul>
    <li> <h3> <a href="/` + marginalRef + `"> Marginal Densities </a> </h3> </li>
    <li> <h3> <a href="/` + ridgeRef + `"> Ridge Cross-Check </a> </h3> </li>
    <li> <h3> <a href="/` + summaryRef + `"> Chain Summary </a> </h3> </li>
    <li> <h3> <a href="/` + flowsheetRef + `"> Flowsheet </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, MainHtml)
}

// convertCurveData converts a density curve to chart points.
func convertCurveData(x []float64, y []float64) []opts.LineData {
	items := []opts.LineData{}
	for i := range x {
		items = append(items, opts.LineData{Value: [2]float64{x[i], y[i]}})
	}
	return items
}

// newMarginalChart creates a line chart for the marginal density of one
// stream, overlaying the quadrature curve with the chain histogram.
func newMarginalChart(title string, subtitle string, axis []float64, marginal []float64, histCenters []float64, histogram []float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}))
	chart.AddSeries("quadrature", convertCurveData(axis, marginal))
	if len(histogram) > 0 {
		chart.AddSeries("chain histogram", convertCurveData(histCenters, histogram))
	}
	return chart
}

// renderMarginalStats renders the marginal densities of all streams.
func renderMarginalStats(w http.ResponseWriter, r *http.Request) {
	results := GetResultData()
	page := components.NewPage()
	for i := 0; i < 3; i++ {
		page.AddCharts(newMarginalChart(
			"Marginal Density",
			"for "+streamLabel[i]+", "+results.ModelLabel,
			results.Axes[i],
			results.Marginals[i],
			results.HistCenters[i],
			results.Histograms[i]))
	}
	page.Render(w)
}

// renderRidgeStats renders the log-density cut along the diagonal of the
// two unmeasured streams, comparing quadrature and closed form.
func renderRidgeStats(w http.ResponseWriter, r *http.Request) {
	results := GetResultData()
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Ridge Cross-Check",
	}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Ridge Cross-Check",
			Subtitle: fmt.Sprintf("log pair-marginal along x2=x3, Z=%.4g, %s", results.Z, results.ModelLabel),
		}))
	chart.AddSeries("quadrature", convertCurveData(results.RidgeX, results.RidgeQuad)).
		AddSeries("closed form", convertCurveData(results.RidgeX, results.RidgeExact))
	chart.Render(w)
}

// convertSummaryData converts per-stream summary values to bar data.
func convertSummaryData(v [3]float64) []opts.BarData {
	items := []opts.BarData{}
	for i := 0; i < 3; i++ {
		items = append(items, opts.BarData{Value: v[i]})
	}
	return items
}

// renderSummaryStats renders the chain summary statistics.
func renderSummaryStats(w http.ResponseWriter, r *http.Request) {
	results := GetResultData()
	if results.Summary == nil {
		fmt.Fprint(w, "<html><body><h3>No chain summary in the results file.</h3></body></html>")
		return
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Chain Summary",
	}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Chain Summary",
			Subtitle: fmt.Sprintf("posterior flow estimates, acceptance rate %.4f", results.Summary.AcceptanceRate),
		}))
	bar.SetXAxis(streamLabel[:]).
		AddSeries("2.5%", convertSummaryData(results.Summary.Lower)).
		AddSeries("mean", convertSummaryData(results.Summary.Mean)).
		AddSeries("97.5%", convertSummaryData(results.Summary.Upper))
	bar.Render(w)
}

// renderFlowsheet renders the process flowsheet of the balance equation.
func renderFlowsheet(w http.ResponseWriter, r *http.Request) {
	results := GetResultData()
	g := graphviz.New()
	graph, _ := g.Graph()
	defer func() {
		graph.Close()
		g.Close()
	}()
	splitter, _ := graph.CreateNode("splitter")
	splitter.SetLabel("splitter")
	feed, _ := graph.CreateNode("feed")
	feed.SetLabel(streamLabel[0])
	out2, _ := graph.CreateNode("out2")
	out2.SetLabel(streamLabel[1])
	out3, _ := graph.CreateNode("out3")
	out3.SetLabel(streamLabel[2])

	// edge labels carry the posterior means when a chain summary is
	// present, otherwise the incidence coefficients
	label := func(i int) string {
		if results.Summary != nil {
			return fmt.Sprintf("%.3f t/h", results.Summary.Mean[i])
		}
		return fmt.Sprintf("%v", results.Incidence[i])
	}
	e1, _ := graph.CreateEdge("", feed, splitter)
	e1.SetLabel(label(0))
	e1.SetColor("green")
	e2, _ := graph.CreateEdge("", splitter, out2)
	e2.SetLabel(label(1))
	e2.SetColor("gray")
	e3, _ := graph.CreateEdge("", splitter, out3)
	e3.SetLabel(label(2))
	e3.SetColor("gray")

	txt, _ := renderDotGraph("Splitter Flowsheet", flowsheetCaption(results), g, graph)
	fmt.Fprint(w, txt)
}

// flowsheetCaption describes the edge labels of the flowsheet.
func flowsheetCaption(r *ResultData) string {
	if r.Summary != nil {
		return "Edge labels show the posterior mean flows in t/h."
	}
	return "Edge labels show the incidence coefficients of the balance equation."
}

// FireUpWeb fires up a new web-server for data visualization.
func FireUpWeb(d *inference.ResultsJSON, addr string) {
	GetResultData().PopulateResultData(d)
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+marginalRef, renderMarginalStats)
	http.HandleFunc("/"+ridgeRef, renderRidgeStats)
	http.HandleFunc("/"+summaryRef, renderSummaryStats)
	http.HandleFunc("/"+flowsheetRef, renderFlowsheet)
	http.ListenAndServe(":"+addr, nil)
}
