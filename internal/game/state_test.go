package game

import (
	"encoding/json"
	"testing"
	"time"
)

func TestVariants(t *testing.T) {
	names := map[string]bool{}
	for _, v := range Variants {
		names[v.Name()] = true
		a := v.Start()
		if a.Mode() != v.Mode {
			t.Errorf("%s: started game in mode %s", v.Name(), a.Mode())
		}
		checkFullDeck(t, append(a.InPlay(), a.InDeck()...))
	}
	for _, want := range []string{"Set", "Evil Set", "Ultraset", "Evil Ultraset"} {
		if !names[want] {
			t.Errorf("missing variant %q", want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Mode
	}{{"set", ModeSet}, {"Ultraset", ModeUltraset}, {"ULTRASET", ModeUltraset}} {
		got, err := ParseMode(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseMode(%q) = %s, %v; want %s", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseMode("hyperset"); err == nil {
		t.Errorf("ParseMode(\"hyperset\") should fail")
	}
}

func TestFormatElapsed(t *testing.T) {
	for _, tc := range []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{75 * time.Minute, "15:00"},
		{-time.Second, "00:00"},
	} {
		if got := FormatElapsed(tc.d); got != tc.want {
			t.Errorf("FormatElapsed(%s) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestMessagesRoundTrip(t *testing.T) {
	a := StartPlay(orderedDeck(DeckSize), ModeUltraset)
	view := NewGameView("g1", Variant{Mode: ModeUltraset, Evil: true}, a, time.Unix(100, 0), 3*time.Second)
	msg, err := NewWsMessage(MsgTypeState, StateMessage{Game: view})
	if err != nil {
		t.Fatalf("NewWsMessage failed: %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var decoded WsMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	p, err := decoded.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	state, ok := p.(*StateMessage)
	if !ok {
		t.Fatalf("expected *StateMessage, got %T", p)
	}
	if state.Game.Variant != view.Variant || len(state.Game.InPlay) != len(view.InPlay) ||
		state.Game.InPlay[0].Coord != view.InPlay[0].Coord || state.Game.DeckSize != view.DeckSize {
		t.Errorf("decoded game %s, want %s", &state.Game, &view)
	}

	bad := WsMessage{Type: "unknown"}
	if _, err := bad.Parse(); err == nil {
		t.Errorf("Parse() of unknown message type should fail")
	}
	empty := WsMessage{Type: MsgTypePlay}
	if p, err := empty.Parse(); err != nil {
		t.Errorf("Parse() of empty play message failed: %v", err)
	} else if _, ok := p.(*PlayMessage); !ok {
		t.Errorf("expected *PlayMessage, got %T", p)
	}
}
