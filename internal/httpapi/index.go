package httpapi

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/briefworks/briefgen/internal/brief"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Campaign Brief Generator</title>
  <style>
    body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
    label { display: block; margin-top: 1rem; }
    input, select { width: 100%; padding: 0.4rem; }
    button { margin-top: 1.5rem; padding: 0.5rem 1.5rem; }
    pre { background: #f4f4f4; padding: 1rem; white-space: pre-wrap; }
  </style>
</head>
<body>
  <h1>Campaign Brief Generator</h1>
  <form id="brief-form">
    <label>Brand name <input name="brand_name" required></label>
    <label>Platform
      <select name="platform">{{range .Platforms}}<option>{{.}}</option>{{end}}</select>
    </label>
    <label>Goal
      <select name="goal">{{range .Goals}}<option>{{.}}</option>{{end}}</select>
    </label>
    <label>Tone
      <select name="tone">{{range .Tones}}<option>{{.}}</option>{{end}}</select>
    </label>
    <button type="submit">Generate brief</button>
  </form>
  <pre id="output"></pre>
  <script>
    document.getElementById('brief-form').addEventListener('submit', async (e) => {
      e.preventDefault();
      const body = Object.fromEntries(new FormData(e.target));
      const res = await fetch('/api/generate-brief/', {
        method: 'POST',
        headers: {'Content-Type': 'application/json'},
        body: JSON.stringify(body),
      });
      document.getElementById('output').textContent = JSON.stringify(await res.json(), null, 2);
    });
  </script>
</body>
</html>
`))

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Platforms, Goals, Tones []string
	}{
		Platforms: brief.AllowedPlatforms,
		Goals:     brief.AllowedGoals,
		Tones:     brief.AllowedTones,
	})
	if err != nil {
		h.logger.Error("render index", slog.String("error", err.Error()))
	}
}
