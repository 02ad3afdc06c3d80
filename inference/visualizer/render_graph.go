package visualizer

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// graphHtml is the page scaffold for a rendered flowsheet. The dot
// source is embedded verbatim and laid out in the browser by the wasm
// build of graphviz.
const graphHtml = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body { font-family: sans-serif; margin: 2em; }
        figcaption { margin-top: 1em; color: #555; }
    </style>
</head>
<body>
    <h1>%s</h1>
    <figure>
        <div id="flowsheet"></div>
        <figcaption>%s</figcaption>
    </figure>
    <script type="module">
        import { Graphviz } from "https://cdn.jsdelivr.net/npm/@hpcc-js/wasm/dist/index.js";
        const graphviz = await Graphviz.load();
        document.getElementById("flowsheet").innerHTML =
            graphviz.layout(` + "`%s`" + `, "svg", "dot");
    </script>
</body>
</html>
`

// renderDotGraph renders a dot graph as an HTML document with the given
// title and a caption below the drawing.
func renderDotGraph(title string, caption string, g *graphviz.Graphviz, graph *cgraph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := g.Render(graph, "dot", &buf); err != nil {
		return "", err
	}
	return fmt.Sprintf(graphHtml, title, title, caption, buf.String()), nil
}
