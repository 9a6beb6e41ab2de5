package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/balancecoach/pkg/composition"
	"github.com/matzehuels/balancecoach/pkg/render"
)

func ExampleRenderSVG() {
	e := composition.New(composition.DefaultBoard(), composition.WithSeed(7))
	svg := string(render.RenderSVG(e.Snapshot()))

	fmt.Println(strings.HasPrefix(svg, "<svg"))
	fmt.Println(strings.Contains(svg, ">Balanced</text>"))
	// Output:
	// true
	// true
}
