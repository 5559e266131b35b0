package registry

import "github.com/abhisek/vizlearn/internal/viz"

type module struct {
	slug   string
	render viz.Factory
}

// builtinModules is the single table of visualization modules. Each slug
// must have a matching content/<slug>.yaml file.
var builtinModules = []module{
	{slug: "http-request", render: viz.HTTPRequest},
	{slug: "websocket", render: viz.WebSocket},
	{slug: "glbb", render: viz.GLBB},
	{slug: "gerak-parabola", render: viz.Parabola},
}
