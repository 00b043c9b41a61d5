package mapview

import (
	"context"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/negocios-templui/internal/app/components"
	"github.com/FACorreiaa/negocios-templui/internal/app/domain/maps"
)

const ContainerID = "map-container"

// Container renders the map element. The client script creates the widget
// from data-map-config.
func Container(instance maps.Instance, ok bool) templ.Component {
	return components.Func(func(_ context.Context, w *components.Writer) {
		w.Raw(`<div id="`, ContainerID, `" class="map-container"`)
		if ok {
			cfg, err := maps.ConfigJSON(instance)
			if err == nil {
				w.Raw(` data-map-config="`, components.Text(cfg), `"`)
			}
		}
		w.Raw(`></div>`)
	})
}
