package server

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/zdk123/sequenceserver/internal/config"
)

const pageChromeCSS = `
    :root {
      --bg: #f4f7f2;
      --card: #ffffff;
      --ink: #22301f;
      --muted: #5f6f67;
      --accent: #15667f;
      --line: #c4d0dd;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "Avenir Next", "Segoe UI", sans-serif;
      color: var(--ink);
      background: var(--bg);
    }
    main { max-width: 1000px; margin: 24px auto; padding: 0 16px; }
    .card {
      background: var(--card);
      border: 1px solid var(--line);
      border-radius: 12px;
      padding: 16px;
      margin-bottom: 16px;
    }
    .muted { color: var(--muted); font-size: 13px; }
    a { color: var(--accent); text-decoration: none; }
    a:hover { text-decoration: underline; }
    pre { overflow-x: auto; }
    textarea { width: 100%; min-height: 140px; font-family: monospace; }
    .resultn { border-top: 1px solid var(--line); padding-top: 8px; }
`

func writePage(w http.ResponseWriter, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s - sequenceserver</title>
  <style>%s</style>
</head>
<body>
<main>
<div class="card">
%s
</div>
<p class="muted"><a href="/">New search</a></p>
</main>
</body>
</html>
`, html.EscapeString(title), pageChromeCSS, body)
}

func (s *webServer) indexHandler(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("<h2>Search</h2>\n")
	b.WriteString(`<form method="post" action="/search">` + "\n")

	b.WriteString(`<p><label>Method: <select name="method">`)
	for _, m := range config.Methods {
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, m, m)
	}
	b.WriteString("</select></label></p>\n")

	b.WriteString(`<p><textarea name="sequence" placeholder="Paste FASTA sequence(s) here"></textarea></p>` + "\n")

	b.WriteString("<p>Databases:</p>\n<ul>\n")
	for _, db := range s.databases {
		name := html.EscapeString(db.Name)
		fmt.Fprintf(&b, `<li><label><input type="checkbox" name="databases" value="%s"> %s <span class="muted">(%s)</span></label></li>`+"\n",
			name, name, db.Type)
	}
	b.WriteString("</ul>\n")

	b.WriteString(`<p><button type="submit">BLAST</button></p>` + "\n</form>\n")

	writePage(w, "Search", b.String())
}
