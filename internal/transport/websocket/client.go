package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
)

const writeWait = 10 * time.Second

// ConnectionManager tracks the socket attached to each game session.
// One screen plays a session, so a newer connection replaces the older one.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

func (cm *ConnectionManager) AddConnection(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[sessionID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[sessionID] = conn
	cm.writeMu[sessionID] = &sync.Mutex{}
}

func (cm *ConnectionManager) RemoveConnection(sessionID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[sessionID]; exists {
		conn.Close()
		delete(cm.connections, sessionID)
		delete(cm.writeMu, sessionID)
	}
}

// RemoveConnectionIfMatching leaves a newer connection for the same session alone.
func (cm *ConnectionManager) RemoveConnectionIfMatching(sessionID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[sessionID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, sessionID)
		delete(cm.writeMu, sessionID)
	}
}

func (cm *ConnectionManager) IsCurrentConnection(sessionID string, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[sessionID]
	return exists && currentConn == conn
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage writes a JSON frame to the session's socket. A session without a socket is not an error.
func (cm *ConnectionManager) SendMessage(sessionID string, message any) error {
	cm.mu.RLock()
	conn, exists := cm.connections[sessionID]
	mu, muExists := cm.writeMu[sessionID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// Notify satisfies game.Notifier.
func (cm *ConnectionManager) Notify(sessionID string, message domain.ServerMessage) error {
	return cm.SendMessage(sessionID, message)
}
