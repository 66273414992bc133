// Package webui serves the operator-facing status and debug pages.
package webui

import (
	"explorer.navitia.org/internal/app"
)

type WebUI struct {
	*app.Application
}
