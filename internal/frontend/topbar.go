package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type TopBar struct {
	app.Compo
	// Title shown next to the banner, e.g. the variant being played.
	Title string
}

func (t *TopBar) onToggleTheme(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleTheme()
}

func (t *TopBar) onBannerClick(ctx app.Context, e app.Event) {
	ctx.Navigate("/")
}

func (t *TopBar) Render() app.UI {
	themeIcon := "🌙"
	if State.DarkTheme {
		themeIcon = "☀️"
	}

	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(
				app.Strong().
					Text("GoSet").
					Style("cursor", "pointer").
					OnClick(t.onBannerClick),
			),
			app.Li().Body(app.Span().Text(t.Title)),
		),
		app.Ul().Body(
			app.Li().Body(
				app.A().
					Href("#").
					OnClick(t.onToggleTheme).
					Style("text-decoration", "none").
					Body(
						app.Span().
							Style("font-family", "system-ui").
							Text(themeIcon),
					),
			),
		),
	)
}
