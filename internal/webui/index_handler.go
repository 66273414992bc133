package webui

import (
	"embed"
	"html/template"
	"net/http"

	"explorer.navitia.org/internal/logging"
)

//go:embed index.html debug_index.html
var templateFS embed.FS

type indexData struct {
	Env                string
	Coverage           string
	StationCount       int
	DisruptionCount    int
	DisruptionsUpdated string
}

func (webUI *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Env:                webUI.Config.Env.String(),
		Coverage:           webUI.NavitiaConfig.Coverage,
		DisruptionsUpdated: "never",
	}

	if webUI.Stations != nil {
		if n, err := webUI.Stations.Count(r.Context()); err == nil {
			data.StationCount = n
		}
	}
	if webUI.Disruptions != nil {
		data.DisruptionCount = len(webUI.Disruptions.Snapshot())
		if t := webUI.Disruptions.LastUpdated(); !t.IsZero() {
			data.DisruptionsUpdated = t.UTC().Format("2006-01-02 15:04:05 UTC")
		}
	}

	tmpl, err := template.ParseFS(templateFS, "index.html")
	if err != nil {
		logging.LogError(webUI.Logger, "failed to parse index template", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	if err := tmpl.Execute(w, data); err != nil {
		logging.LogError(webUI.Logger, "failed to execute index template", err)
	}
}
