package web

import (
	"encoding/json"
	"net/http"

	"github.com/Meo-4971/StockView/internal/view"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxMessageSize = 4096

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// viewReply is what the session socket sends back for each selection.
type viewReply struct {
	Ticker    string   `json:"ticker"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Indicator string   `json:"indicator"`
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	Dropped   int      `json:"dropped,omitempty"`
	Message   string   `json:"message,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	handle := s.makeMessageHandler()
	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := conn.WriteJSON(handle(msg)); err != nil {
			s.logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

// makeMessageHandler returns a function that turns one selection message
// into the view reply for it. Malformed messages get a reply carrying only
// a message.
func (s *Server) makeMessageHandler() func(msg []byte) viewReply {
	return func(msg []byte) viewReply {
		var sel selection
		if err := json.Unmarshal(msg, &sel); err != nil {
			s.logger.Warn("failed to parse selection", zap.Error(err))
			return viewReply{Message: "invalid request: " + err.Error()}
		}

		q, sel, err := s.query(sel)
		reply := viewReply{
			Ticker:    sel.Ticker,
			Start:     sel.Start,
			End:       sel.End,
			Indicator: sel.Indicator,
		}
		if err != nil {
			reply.Message = err.Error()
			return reply
		}

		table, err := s.resolve(q)
		if err != nil {
			reply.Message = view.Message(err)
			return reply
		}

		reply.Columns = table.Columns
		reply.Dropped = table.Dropped
		reply.Rows = make([][]any, table.Len())
		for i := range reply.Rows {
			reply.Rows[i] = table.Values(i)
		}
		return reply
	}
}
