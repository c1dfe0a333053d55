package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"smartfarm/models"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	Conn   *websocket.Conn
	UserID uint
}

var (
	clientsMu sync.Mutex
	clients   = make(map[*websocket.Conn]Client)
)

func HandleWebSocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userIDRaw, exists := c.Get("user_id")
	if !exists {
		conn.Close()
		return
	}

	var userID uint
	switch v := userIDRaw.(type) {
	case float64:
		userID = uint(v)
	case uint:
		userID = v
	case string:
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			userID = uint(id)
		} else {
			conn.Close()
			return
		}
	default:
		conn.Close()
		return
	}

	clientsMu.Lock()
	clients[conn] = Client{Conn: conn, UserID: userID}
	clientsMu.Unlock()

	defer func() {
		clientsMu.Lock()
		delete(clients, conn)
		clientsMu.Unlock()
		conn.Close()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func broadcast(event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": event,
		"data":  payload,
	})
	if err != nil {
		return
	}

	clientsMu.Lock()
	defer clientsMu.Unlock()
	for conn := range clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// BroadcastUpdate pushes a new sensor reading to all dashboard clients.
func BroadcastUpdate(reading models.SensorReading) {
	broadcast("reading", reading)
}

// BroadcastMotorState pushes a motor state change to all dashboard clients.
func BroadcastMotorState(state models.MotorState) {
	broadcast("motor", state)
}

// BroadcastNotification pushes an alert to all dashboard clients.
func BroadcastNotification(kind, message string, reading models.SensorReading) {
	broadcast("notification", map[string]interface{}{
		"kind":    kind,
		"message": message,
		"reading": reading,
	})
}
