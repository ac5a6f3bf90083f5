package web

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Meo-4971/StockView/internal/view"

	"go.uber.org/zap"
)

type pageData struct {
	Title      string
	LoadedAt   string
	Tickers    []string
	Indicators []view.Indicator
	Selection  selection
	Message    string
	Note       string
	Columns    []string
	Rows       [][]string
	ChartURL   string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
form { display: flex; gap: 1em; align-items: end; flex-wrap: wrap; margin-bottom: 1em; }
label { display: flex; flex-direction: column; font-size: .9em; }
table { border-collapse: collapse; font-size: .85em; }
th, td { border: 1px solid #ddd; padding: 2px 8px; text-align: right; }
.message { color: #a33; }
.note { color: #666; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .LoadedAt}}
<p class="note">Data loaded {{.LoadedAt}}</p>
{{- end}}
<form method="get" action="/">
  <label>Ticker
    <select name="ticker">
    {{- range .Tickers}}
      <option value="{{.}}"{{if eq . $.Selection.Ticker}} selected{{end}}>{{.}}</option>
    {{- end}}
    </select>
  </label>
  <label>Start date <input type="date" name="start" value="{{.Selection.Start}}"></label>
  <label>End date <input type="date" name="end" value="{{.Selection.End}}"></label>
  <label>Indicator
    <select name="indicator">
    {{- range .Indicators}}
      <option value="{{.}}"{{if eq (print .) $.Selection.Indicator}} selected{{end}}>{{.}}</option>
    {{- end}}
    </select>
  </label>
  <button type="submit">Show</button>
  <button type="submit" name="chart" value="1">Render Chart</button>
</form>
{{- if .Message}}
<p class="message">{{.Message}}</p>
{{- end}}
{{- if .ChartURL}}
<img src="{{.ChartURL}}" alt="{{.Selection.Ticker}} chart">
{{- end}}
{{- if .Rows}}
<h2>{{.Selection.Ticker}}: {{.Selection.Indicator}}</h2>
{{- if .Note}}<p class="note">{{.Note}}</p>{{end}}
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	params := r.URL.Query()
	q, sel, err := s.query(selectionFromValues(params))
	data := pageData{
		Title:      "Stock Viewer",
		Tickers:    s.store.Tickers(),
		Indicators: view.Indicators,
		Selection:  sel,
	}
	if t := s.store.LoadedAt(); !t.IsZero() {
		data.LoadedAt = t.Format(time.DateTime)
	}

	switch {
	case err != nil:
		data.Message = err.Error()
	default:
		table, err := s.resolve(q)
		if err != nil {
			data.Message = view.Message(err)
			break
		}
		data.Columns = table.Columns
		data.Rows = make([][]string, table.Len())
		for i := range data.Rows {
			data.Rows[i] = table.Cells(i)
		}
		if table.Dropped > 0 {
			data.Note = fmt.Sprintf("%d bars skipped: date could not be read.", table.Dropped)
		}
		if params.Get("chart") == "1" {
			data.ChartURL = "/chart.png?" + sel.values().Encode()
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
	}
}
