package chart

import "html/template"

type devicePage struct {
	Title     string
	PlotlySrc string
	Traces    template.JS
}

type indexEntry struct {
	Title string
	Href  string
	Count int
}

type indexPage struct {
	Generated string
	Entries   []indexEntry
}

var deviceTemplate = template.Must(template.New("device").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.PlotlySrc}}"></script>
<style>
body { font-family: sans-serif; margin: 1rem; }
#chart { width: 100%; height: 85vh; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div id="chart"></div>
<script>
Plotly.newPlot("chart", {{.Traces}}, {
  xaxis: { title: "time" },
  legend: { orientation: "h" }
}, { responsive: true });
</script>
</body>
</html>
`))

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Device reports</title>
<style>
body { font-family: sans-serif; margin: 1rem; }
li { margin: 0.25rem 0; }
</style>
</head>
<body>
<h1>Device reports</h1>
<p>Generated {{.Generated}}</p>
<ul>
{{range .Entries}}<li><a href="{{.Href}}">{{.Title}}</a> ({{.Count}} series)</li>
{{else}}<li>No devices reported any data.</li>
{{end}}</ul>
</body>
</html>
`))
