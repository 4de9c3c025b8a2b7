package frontend

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/janpfeifer/GoSet/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// numColumns of cards on the table.
const numColumns = 3

// Game is the page where a game is played.
type Game struct {
	app.Compo
	Variant game.Variant
	State   *game.GameView
	Error   string

	stopClock chan struct{}
	onUpdate  func()
}

// parseVariant reads the variant from the query of the /play URL, e.g. "?mode=ultraset&evil=true".
// Missing or invalid values default to the plain Set game.
func parseVariant(query url.Values) game.Variant {
	var v game.Variant
	if mode, err := game.ParseMode(query.Get("mode")); err == nil {
		v.Mode = mode
	}
	if evil, err := strconv.ParseBool(query.Get("evil")); err == nil {
		v.Evil = evil
	}
	return v
}

func (g *Game) OnMount(ctx app.Context) {
	klog.Infof("Game component: OnMount called")
	g.State = State.Game
	g.onUpdate = func() {
		ctx.Dispatch(func(ctx app.Context) {
			g.State = State.Game
			g.Error = State.Error
		})
	}
	State.Listeners["game"] = g.onUpdate

	if app.IsServer {
		return
	}
	// Refresh the clock every second.
	g.stopClock = make(chan struct{})
	go func(stop chan struct{}) {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ctx.Dispatch(func(ctx app.Context) {})
			}
		}
	}(g.stopClock)
}

func (g *Game) OnDismount() {
	klog.Infof("Game component: OnDismount called")
	delete(State.Listeners, "game")
	if g.stopClock != nil {
		close(g.stopClock)
		g.stopClock = nil
	}
}

func (g *Game) OnNav(ctx app.Context) {
	g.Variant = parseVariant(ctx.Page().URL().Query())
	klog.Infof("Game component: Navigated to play %s", g.Variant.Name())
	if app.IsServer {
		return
	}
	g.newGame()
}

func (g *Game) newGame() {
	if err := State.ConnectWS(g.Variant); err != nil {
		g.Error = fmt.Sprintf("Failed to connect to server: %v", err)
		klog.Errorf("Game component: Error connecting: %v", err)
	}
}

func (g *Game) onNewGame(ctx app.Context, e app.Event) {
	g.newGame()
}

func (g *Game) onHint(ctx app.Context, e app.Event) {
	State.SendHint()
}

// elapsed returns the time played, advancing the last value received from the server while the game runs.
func (g *Game) elapsed() time.Duration {
	if g.State.Over {
		return g.State.Elapsed
	}
	return g.State.Elapsed + time.Since(State.GameReceived)
}

func (g *Game) renderCard(idx int, card game.CardView) app.UI {
	border := "2px solid transparent"
	switch {
	case slices.Contains(g.State.Selected, idx):
		border = "2px solid #1f5fbf"
	case slices.Contains(State.Hint, idx):
		border = "2px dashed #e0a800"
	}
	return app.Button().
		Class("outline", "contrast").
		Style("width", "100%").
		Style("min-height", "4rem").
		Style("font-size", "1.6rem").
		Style("color", card.Color).
		Style("border", border).
		Disabled(g.State.Over).
		Text(card.Glyph).
		OnClick(func(ctx app.Context, e app.Event) {
			State.SendSelect(idx)
		})
}

func (g *Game) renderResult() app.UI {
	if g.State.Over {
		return app.P().Class("ins").Text(fmt.Sprintf("Game over! %d cards cleared in %s.",
			g.State.Removed, game.FormatElapsed(g.State.Elapsed)))
	}
	if State.LastResult == nil {
		return app.Text("")
	}
	if State.LastResult.Response == game.InvalidPlay {
		return app.P().Style("color", "red").Text(fmt.Sprintf("Not a%s.", articleFor(g.Variant.Mode)))
	}
	return app.P().Class("ins").Text(fmt.Sprintf("Well done, a%s!", articleFor(g.Variant.Mode)))
}

func articleFor(mode game.Mode) string {
	if mode == game.ModeUltraset {
		return "n ultraset"
	}
	return " set"
}

func (g *Game) Render() app.UI {
	var content app.UI
	switch {
	case g.Error != "":
		content = app.Article().Body(
			app.H2().Text("Error"),
			app.P().Style("color", "red").Text(g.Error),
			app.A().Href("/").Text("Return to Home"),
		)
	case g.State == nil:
		content = app.Div().Aria("busy", "true").Text("Dealing cards...")
	default:
		var rows []app.UI
		for start := 0; start < len(g.State.InPlay); start += numColumns {
			var cols []app.UI
			for idx := start; idx < min(start+numColumns, len(g.State.InPlay)); idx++ {
				cols = append(cols, app.Div().Body(g.renderCard(idx, g.State.InPlay[idx])))
			}
			rows = append(rows, app.Div().Class("grid").Body(cols...))
		}

		content = app.Div().Body(
			app.Div().Class("grid").Body(
				app.H3().Text(fmt.Sprintf("⏱ %s", game.FormatElapsed(g.elapsed()))),
				app.P().Text(fmt.Sprintf("%d cards left in the deck, %d matches on the table",
					g.State.DeckSize, g.State.NumMatches)),
			),
			g.renderResult(),
			app.Div().Body(rows...),
			app.Footer().Class("grid").Body(
				app.Button().Class("secondary").Text("Hint").Disabled(g.State.Over).OnClick(g.onHint),
				app.Button().Text("New Game").OnClick(g.onNewGame),
			),
		)
	}

	return app.Main().Class("container").Body(
		&TopBar{Title: g.Variant.Name()},
		content,
	)
}
