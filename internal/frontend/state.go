package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/GoSet/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// GlobalClientState manages the connection and the state of the game being played.
type GlobalClientState struct {
	Game         *game.GameView
	GameReceived time.Time // When Game was last updated, to keep the clock running
	Error        string
	Conn         *websocket.Conn

	// Outcome of the last play, and positions given by the last hint.
	LastResult *game.ResultMessage
	Hint       []int

	// DarkTheme is toggled from the top bar.
	DarkTheme bool

	// Listeners for state updates
	Listeners map[string]func()
}

var State *GlobalClientState

func InitState() {
	if State == nil {
		klog.V(1).Infof("InitState: creating new state (was nil)")
		State = &GlobalClientState{
			Listeners: make(map[string]func()),
		}
	} else {
		klog.V(1).Infof("InitState: state already exists")
	}
}

func (s *GlobalClientState) Notify() {
	klog.V(1).Infof("GlobalClientState: Notifying %d listeners", len(s.Listeners))
	for _, l := range s.Listeners {
		if l != nil {
			l()
		}
	}
}

// ToggleTheme switches between the light and dark themes of pico.css.
func (s *GlobalClientState) ToggleTheme() {
	s.DarkTheme = !s.DarkTheme
	theme := "light"
	if s.DarkTheme {
		theme = "dark"
	}
	app.Window().Get("document").Get("documentElement").Call("setAttribute", "data-theme", theme)
	s.Notify()
}

// ConnectWS connects to the server and starts a new game of the variant.
func (s *GlobalClientState) ConnectWS(variant game.Variant) error {
	if s.Conn != nil {
		klog.Infof("ConnectWS: Closing existing connection")
		s.Conn.CloseNow()
	}
	s.Game = nil
	s.LastResult = nil
	s.Hint = nil

	wsURL := fmt.Sprintf("ws://%s/ws", app.Window().URL().Host)
	klog.Infof("ConnectWS: Connecting to %s (%s)", wsURL, variant.Name())

	// We use a context that lasts for the duration of the connection setup.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		klog.Errorf("ConnectWS: Dial failed: %v", err)
		return fmt.Errorf("dial failed: %w", err)
	}
	s.Conn = conn

	newMsg, err := game.NewWsMessage(game.MsgTypeNew, game.NewMessage{Variant: variant})
	if err != nil {
		return fmt.Errorf("failed to create new game message: %w", err)
	}
	if err := wsjson.Write(ctx, conn, newMsg); err != nil {
		klog.Errorf("ConnectWS: Failed to send new game: %v", err)
		return fmt.Errorf("failed to send new game: %w", err)
	}

	// Start reading loop in background
	go s.readLoop(conn)
	return nil
}

func (s *GlobalClientState) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	klog.Infof("readLoop: started")
	for {
		var msg game.WsMessage
		err := wsjson.Read(ctx, conn, &msg)
		if err != nil {
			klog.Errorf("readLoop: WS read error: %v", err)
			break
		}

		klog.V(1).Infof("readLoop: received message type: %s", msg.Type)
		s.handleMessage(msg)
	}
}

func (s *GlobalClientState) handleMessage(msg game.WsMessage) {
	p, err := msg.Parse()
	if err != nil {
		klog.Errorf("handleMessage: Failed to parse %s message: %v", msg.Type, err)
		return
	}

	switch m := p.(type) {
	case *game.StateMessage:
		klog.V(1).Infof("handleMessage: %s", &m.Game)
		s.Game = &m.Game
		s.GameReceived = time.Now()
		s.Error = ""
		s.Notify()

	case *game.ResultMessage:
		klog.Infof("handleMessage: play was %s", m.Response)
		s.LastResult = m
		s.Hint = nil
		s.Notify()

	case *game.HintMessage:
		s.Hint = m.Indices
		s.Notify()

	case *game.ErrorMessage:
		s.Error = m.Message
		s.Notify()

	case *game.PingMessage:
		s.send(game.MsgTypePong, game.PongMessage{
			ServerTime: m.ServerTime,
			ClientTime: time.Now().UnixNano(),
		})
	}
}

func (s *GlobalClientState) send(msgType game.MessageType, payload any) {
	if s.Conn == nil {
		return
	}
	msg, err := game.NewWsMessage(msgType, payload)
	if err != nil {
		klog.Errorf("send: Failed to create %s message: %v", msgType, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	if err := wsjson.Write(ctx, s.Conn, msg); err != nil {
		klog.Errorf("send: Failed to send %s message: %v", msgType, err)
	}
}

// SendSelect toggles the selection of the card at index.
func (s *GlobalClientState) SendSelect(index int) {
	s.send(game.MsgTypeSelect, game.SelectMessage{Index: index})
}

// SendHint asks the server for a hint.
func (s *GlobalClientState) SendHint() {
	s.send(game.MsgTypeHint, nil)
}
