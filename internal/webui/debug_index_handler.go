package webui

import (
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"explorer.navitia.org/internal/appconf"
	"explorer.navitia.org/internal/logging"
)

type debugData struct {
	Title string
	Pre   string
}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		logging.LogError(webUI.Logger, "failed to parse debug template", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	if err := tmpl.Execute(w, dataStruct); err != nil {
		logging.LogError(webUI.Logger, "failed to execute debug template", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.Config.Env == appconf.Production {
		http.NotFound(w, r)
		return
	}
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "disruptions":
		if webUI.Disruptions != nil {
			data = webUI.Disruptions.Snapshot()
		}
		title = "Disruption Cache"
	case "config":
		cfg := webUI.NavitiaConfig
		cfg.Token = "<redacted>"
		data = map[string]interface{}{
			"app":     webUI.Config,
			"navitia": cfg,
		}
		title = "Configuration"
	default:
		data = map[string]string{
			"error": "Please use one of the following: disruptions, config.",
		}
		title = "Choose a data type"
	}

	webUI.writeDebugData(w, title, data)
}
