package page

import (
	"html/template"

	"github.com/tesso57/feedreader/internal/domain/subscription"
)

type documentView struct {
	Title     string
	BodyClass string
	Feeds     []subscription.Source
	Feed      template.HTML
}

type entryView struct {
	Title   string
	Link    string
	Author  string
	Date    string
	Snippet string
}

type errorView struct {
	Name string
	Err  string
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Feed Reader</title>
<style>
body { font-family: sans-serif; margin: 0; }
.header { display: flex; align-items: center; gap: 1em; padding: 0.5em 1em; background: #36c; color: #fff; }
.menu-icon-link { background: none; border: 0; color: inherit; font-size: 1.5em; cursor: pointer; }
.slide-menu { position: absolute; left: 0; width: 14em; background: #eee; padding: 1em; }
.menu-hidden .slide-menu { display: none; }
.feed-list { list-style: none; padding: 0; }
.feed-list button { background: none; border: 0; padding: 0.25em 0; cursor: pointer; }
.feed { padding: 1em; }
.entry { border-bottom: 1px solid #ddd; padding: 0.5em 0; }
.feed-error { color: #a00; }
</style>
</head>
<body class="{{.BodyClass}}">
<div class="header">
<form method="post" action="/menu/toggle"><button class="menu-icon-link" type="submit">&#9776;</button></form>
<h1 class="header-title">{{.Title}}</h1>
</div>
<div class="slide-menu">
<ul class="feed-list">
{{- range $i, $f := .Feeds}}
<li><form method="post" action="/feeds/{{$i}}/load"><button type="submit" data-id="{{$i}}">{{$f.Name}}</button></form></li>
{{- end}}
</ul>
</div>
<div class="feed">{{.Feed}}</div>
</body>
</html>
`))

var entriesTemplate = template.Must(template.New("entries").Parse(`
{{- range .}}
<a class="entry-link" href="{{.Link}}">
<article class="entry">
<h2>{{.Title}}</h2>
{{- if .Author}}<p class="entry-author">{{.Author}}</p>{{end}}
{{- if .Date}}<p class="entry-date">{{.Date}}</p>{{end}}
<p>{{.Snippet}}</p>
</article>
</a>
{{- end}}
`))

var errorTemplate = template.Must(template.New("error").Parse(
	`<p class="feed-error">Could not load {{if .Name}}{{.Name}}{{else}}feed{{end}}: {{.Err}}</p>`,
))
