package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Code4Devil/TechStore/models"
)

type OrderEventType string

const (
	OrderEventPlaced        OrderEventType = "order_placed"
	OrderEventStatusChanged OrderEventType = "status_changed"
)

// OrderEvent is pushed to every connected feed client when an order is placed
// or its status changes.
type OrderEvent struct {
	Type     OrderEventType     `json:"type"`
	OrderID  uint               `json:"orderId"`
	OrderRef string             `json:"orderRef"`
	Status   models.OrderStatus `json:"status"`
	At       time.Time          `json:"at"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	feedMu      sync.Mutex
	feedClients = make(map[*websocket.Conn]bool)
)

// GET /retailer/orders/feed
func OrderFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	feedMu.Lock()
	feedClients[conn] = true
	feedMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			feedMu.Lock()
			delete(feedClients, conn)
			feedMu.Unlock()
			break
		}
	}
}

// BroadcastOrderEvent fans an event out to all feed clients. Dead connections
// are dropped on the next read error.
func BroadcastOrderEvent(event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	feedMu.Lock()
	defer feedMu.Unlock()
	for client := range feedClients {
		_ = client.WriteMessage(websocket.TextMessage, data)
	}
}
