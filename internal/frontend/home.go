package frontend

import (
	"fmt"

	"github.com/janpfeifer/GoSet/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Home is the landing page component: the menu of game variants.
type Home struct {
	app.Compo
}

func (h *Home) OnMount(ctx app.Context) {
	klog.V(1).Infof("Home: OnMount called")
	State.Listeners["home"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
}

func (h *Home) OnDismount() {
	delete(State.Listeners, "home")
}

func (h *Home) OnAppUpdate(ctx app.Context) {
	klog.Infof("Home component: App update available, reloading...")
	ctx.Reload()
}

// playURL returns the path of the page playing the variant.
func playURL(v game.Variant) string {
	return fmt.Sprintf("/play?mode=%s&evil=%t", v.Mode, v.Evil)
}

var variantDescriptions = map[game.Variant]string{
	{Mode: game.ModeSet}:                  "Find 3 cards where each attribute is all the same or all different.",
	{Mode: game.ModeSet, Evil: true}:      "Same rules, but the symbols of each attribute are chosen at random.",
	{Mode: game.ModeUltraset}:             "Find 4 cards that split into two pairs completing to the same card.",
	{Mode: game.ModeUltraset, Evil: true}: "Ultraset with randomly chosen symbols.",
}

func (h *Home) Render() app.UI {
	var variants []app.UI
	for _, v := range game.Variants {
		variants = append(variants, app.Article().Body(
			app.Header().Body(app.H3().Text(v.Name())),
			app.P().Text(variantDescriptions[v]),
			app.Footer().Body(
				app.Button().Text("Play "+v.Name()).OnClick(func(ctx app.Context, e app.Event) {
					ctx.Navigate(playURL(v))
				}),
			),
		))
	}

	return app.Main().Class("container").Body(
		&TopBar{},
		app.Div().Class("grid").Body(variants[:2]...),
		app.Div().Class("grid").Body(variants[2:]...),
	)
}
