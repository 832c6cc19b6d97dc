package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
)

// Message mirrors the publisher's wire format. Channels are
// "casino.{casinoId}" for session verdicts and "user.{userId}" for seed
// collection notifications.
type Message struct {
	Channel string                 `json:"channel"`
	Event   string                 `json:"event"`
	Data    map[string]interface{} `json:"data"`
}

const eventSubscribe = "subscribe"

type Subscription struct {
	Conn    *websocket.Conn
	Channel string
}

type Hub struct {
	Channels    map[string]map[*websocket.Conn]bool
	Broadcast   chan Message
	Subscribe   chan Subscription
	Unsubscribe chan *websocket.Conn
	mutex       sync.RWMutex
	log         *slog.Logger
}

func NewHub(
	log *slog.Logger,
) *Hub {
	return &Hub{
		Channels:    make(map[string]map[*websocket.Conn]bool),
		Broadcast:   make(chan Message),
		Subscribe:   make(chan Subscription),
		Unsubscribe: make(chan *websocket.Conn),
		log:         log,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (hub *Hub) run() {
	var (
		err       error
		data      []byte
		conn      *websocket.Conn
		receivers map[*websocket.Conn]bool
		ok        bool
	)

	for {
		select {
		case sub := <-hub.Subscribe:
			if hub.Channels[sub.Channel] == nil {
				hub.Channels[sub.Channel] = make(map[*websocket.Conn]bool)
			}
			hub.Channels[sub.Channel][sub.Conn] = true
		case conn = <-hub.Unsubscribe:
			for _, receivers = range hub.Channels {
				delete(receivers, conn)
			}
		case message := <-hub.Broadcast:
			if receivers, ok = hub.Channels[message.Channel]; ok {
				data, err = json.Marshal(message)
				if err != nil {
					hub.log.Error("failed to marshal message", sl.Err(err))

					continue
				}

				hub.log.Info("broadcasting message", sl.String("channel", message.Channel),
					sl.String("event", message.Event))

				for conn = range receivers {
					if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
						hub.log.Error("failed to write message", sl.Err(err))
					}
				}
			}
		}
	}
}

// HandleConnection serves one ws client. A client subscribes by sending
// {"channel": "...", "event": "subscribe"}; any other event is broadcast to
// the message's channel (this is how the api process publishes verdicts).
func (hub *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	var (
		err     error
		ws      *websocket.Conn
		p       []byte
		message Message
	)

	ws, err = upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.Error("failed to upgrade connection", sl.Err(err))

		return
	}
	defer func(ws *websocket.Conn) {
		hub.Unsubscribe <- ws

		if err = ws.Close(); err != nil {
			hub.log.Error("failed to close connection", sl.Err(err))
		}
	}(ws)

	for {
		_, p, err = ws.ReadMessage()
		if err != nil {
			hub.log.Info("connection closed", sl.Err(err))

			return
		}

		if err = json.Unmarshal(p, &message); err != nil {
			hub.log.Error("failed to unmarshal message", sl.Err(err))

			continue
		}

		if message.Event == eventSubscribe {
			hub.Subscribe <- Subscription{Conn: ws, Channel: message.Channel}

			continue
		}

		hub.Broadcast <- message
	}
}

func (hub *Hub) RunServer() {
	go hub.run()
}
