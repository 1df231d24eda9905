// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		// In production, you should validate the origin
		return true
	},
}

// wsQuestion is one question sent by a chat client.
type wsQuestion struct {
	Query string   `json:"query"`
	TopK  int      `json:"top_k"`
	Files []string `json:"files"`
}

// wsReply is the answer sent back for one question.
type wsReply struct {
	Answer  interface{} `json:"answer,omitempty"`
	Sources interface{} `json:"sources,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HandleWebSocket handles GET /ws: a chat-style connection where each
// received question is answered in turn.
func (s *Service) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("HandleWebSocket: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var question wsQuestion
		if err := conn.ReadJSON(&question); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("HandleWebSocket: read error: %v", err)
			}
			return
		}

		if question.Query == "" {
			if err := conn.WriteJSON(wsReply{Error: "query is required"}); err != nil {
				return
			}
			continue
		}

		answer, err := s.answerer.Ask(r.Context(), question.Query, s.askOptions(question.TopK, question.Files))
		if err != nil {
			if werr := conn.WriteJSON(wsReply{Error: err.Error()}); werr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(wsReply{Answer: answer.Answer, Sources: answer.Sources}); err != nil {
			return
		}
	}
}
