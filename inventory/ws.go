package inventory

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"solstice/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS subscribes a client to live capacity updates for one resource,
// keyed "merch_<id>" or "availability_<date>". Browsers cannot set headers
// on a websocket dial, so the token rides in the query string.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if _, err := middleware.ValidateJWT(r.URL.Query().Get("token")); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	resource := ps.ByName("resource")
	id := ps.ByName("id")
	key := resource + "_" + id

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own failure response.
		log.Printf("websocket upgrade failed for %s: %v", key, err)
		return
	}

	mu.Lock()
	subscribers[key] = append(subscribers[key], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[key]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[key] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastCapacity pushes the remaining count for a resource to its
// subscribers. Called after commits only, never mid-transaction.
func BroadcastCapacity(resource, id string, remaining int) {
	msg, _ := json.Marshal(map[string]any{
		"type":      "capacity_update",
		"resource":  resource,
		"id":        id,
		"remaining": remaining,
	})
	broadcast(resource+"_"+id, msg)
}

func broadcast(key string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[key] = newList
}
