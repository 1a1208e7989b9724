package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"nursery/database"
	"nursery/models"
)

// Hub fans notifications out to connected admin dashboards.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var hub = &Hub{clients: map[*websocket.Conn]bool{}}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Broadcast sends the notification to every connected client. Clients whose
// write fails are dropped.
func (h *Hub) Broadcast(n models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(n); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NotificationSocket upgrades the connection and keeps it registered until
// the client disconnects.
func NotificationSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to open websocket"})
		return
	}
	hub.add(conn)
	go func() {
		defer hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// OrderNotifier persists order events as notifications and pushes them to
// connected dashboards.
type OrderNotifier struct {
	log *zap.Logger
}

func NewOrderNotifier(log *zap.Logger) *OrderNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderNotifier{log: log}
}

func (n *OrderNotifier) Notify(ctx context.Context, title, message, kind string) error {
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Message:   message,
		Type:      kind,
		CreatedAt: time.Now(),
	}
	if _, err := database.NotificationCollection.InsertOne(ctx, notification); err != nil {
		n.log.Warn("failed to persist notification", zap.String("title", title), zap.Error(err))
		return err
	}
	hub.Broadcast(notification)
	return nil
}

// GetNotifications lists notifications, newest first.
func GetNotifications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.NotificationCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch notifications"})
		return
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to decode notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

// MarkNotificationRead flags a single notification as read.
func MarkNotificationRead(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid notification id"})
		return
	}

	result, err := database.NotificationCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update notification"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}
