package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/stats"
)

// Charts are the rendered SVG documents for one state.
type Charts struct {
	Pie      string
	Calendar string
	Daily    string
}

// RenderCharts paints every chart of st.
func RenderCharts(st dashboard.State, radius float64, style Style) Charts {
	return Charts{
		Pie:      Pie(st, radius, style),
		Calendar: Calendar(st, style),
		Daily:    Daily(st, style),
	}
}

// ChartNames lists the charts served individually.
var ChartNames = []string{"pie", "calendar", "daily"}

// Chart returns one chart by name.
func (c Charts) Chart(name string) (string, bool) {
	switch name {
	case "pie":
		return c.Pie, true
	case "calendar":
		return c.Calendar, true
	case "daily":
		return c.Daily, true
	}
	return "", false
}

type pageData struct {
	State       dashboard.State
	Placeholder string
	Pie         template.HTML
	Calendar    template.HTML
	Daily       template.HTML
	ByEntries   []stats.Count
	ByDays      []stats.Count
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>playtally</title>
<style>
body{font-family:sans-serif;margin:2rem;color:#333}
section{margin-bottom:2rem}
table{border-collapse:collapse}
td,th{padding:.25rem .75rem;text-align:left;border-bottom:1px solid #eee}
.placeholder{color:#999;font-style:italic}
</style>
</head>
<body>
<h1>playtally</h1>
<form method="get" action="/">
<label for="participant">Participant</label>
<select id="participant" name="participant" onchange="this.form.submit()">
{{- range .State.Participants}}
<option value="{{.}}"{{if eq . $.State.Participant}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<noscript><button type="submit">Apply</button></noscript>
</form>
{{if .Placeholder}}<p class="placeholder">{{.Placeholder}}</p>{{else}}<p>{{.State.Total}} games from {{.State.First.Format}} to {{.State.Last.Format}}</p>{{end}}
<section><h2>Games</h2>{{.Pie}}</section>
<section><h2>Calendar</h2>{{.Calendar}}</section>
<section><h2>Daily</h2>{{.Daily}}</section>
<section>
<h2>Leaderboard</h2>
{{template "leaderboard" .}}
</section>
</body>
</html>
{{define "leaderboard"}}
{{- if .Placeholder}}<p class="placeholder">{{.Placeholder}}</p>{{else}}
<table>
<tr><th>#</th><th>Participant</th><th>Games</th></tr>
{{- range $i, $c := .ByEntries}}
<tr><td>{{inc $i}}</td><td>{{$c.Key}}</td><td>{{$c.Value}}</td></tr>
{{- end}}
</table>
<table>
<tr><th>#</th><th>Participant</th><th>Days played</th></tr>
{{- range $i, $c := .ByDays}}
<tr><td>{{inc $i}}</td><td>{{$c.Key}}</td><td>{{$c.Value}}</td></tr>
{{- end}}
</table>
{{end}}
{{- end}}`))

// Leaderboard writes the two ranking tables, by entries and by distinct days, as an
// HTML fragment.
func Leaderboard(w io.Writer, st dashboard.State) error {
	data := pageData{State: st, Placeholder: st.Placeholder(), ByEntries: st.ByEntries, ByDays: st.ByDays}
	if err := pageTmpl.ExecuteTemplate(w, "leaderboard", data); err != nil {
		return fmt.Errorf("render leaderboard: %w", err)
	}
	return nil
}

// Page writes the whole dashboard as one HTML document.
func Page(w io.Writer, st dashboard.State, charts Charts) error {
	// SVG markup is built with escaped text only.
	data := pageData{
		State:       st,
		Placeholder: st.Placeholder(),
		Pie:         template.HTML(charts.Pie),
		Calendar:    template.HTML(charts.Calendar),
		Daily:       template.HTML(charts.Daily),
		ByEntries:   st.ByEntries,
		ByDays:      st.ByDays,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
