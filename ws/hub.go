package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"qrmenu/pkg/resp"
	"qrmenu/services"
	"qrmenu/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Hub กระจาย event ไปยัง dashboard ของเจ้าของร้านที่เปิดอยู่
type Hub struct {
	clients    map[uint]map[*client]bool // profileID -> set of clients
	broadcast  chan services.Event
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex

	profiles *services.ProfileService
	log      logrus.FieldLogger
}

// client = 1 connection ของ dashboard
type client struct {
	conn      *websocket.Conn
	profileID uint
	send      chan services.Event
}

func NewHub(profiles *services.ProfileService, log logrus.FieldLogger) *Hub {
	return &Hub{
		clients:    make(map[uint]map[*client]bool),
		broadcast:  make(chan services.Event, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		profiles:   profiles,
		log:        log,
	}
}

// Run คอยฟัง register/unregister/broadcast จนกว่า ctx จะถูกยกเลิก
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[uint]map[*client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.profileID] == nil {
				h.clients[c.profileID] = make(map[*client]bool)
			}
			h.clients[c.profileID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients[ev.ProfileID] {
				select {
				case c.send <- ev:
				default:
					// client ช้าเกินไป ตัดทิ้ง
					h.remove(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove ต้องถือ h.mu อยู่แล้ว
func (h *Hub) remove(c *client) {
	set := h.clients[c.profileID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.profileID)
	}
}

// Publish ไม่ block ผู้เรียก ถ้า buffer เต็ม event จะถูกทิ้ง
func (h *Hub) Publish(profileID uint, ev services.Event) {
	ev.ProfileID = profileID
	select {
	case h.broadcast <- ev:
	default:
		h.log.WithField("profileId", profileID).Warn("event dropped: hub is busy")
	}
}

// Connected จำนวน connection ของร้าน
func (h *Hub) Connected(profileID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[profileID])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleEvents: GET /api/profiles/:id/events?token=
func (h *Hub) HandleEvents(c *gin.Context) {
	profileID, ok := utils.ParamUint(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid profile id")
		return
	}
	actor := services.Actor{UserID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
	if _, err := h.profiles.Authorize(actor, profileID); err != nil {
		resp.Fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}

	cl := &client{conn: conn, profileID: profileID, send: make(chan services.Event, 16)}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(cl)
	go h.readPump(cl)
}

// readPump อ่านไว้เพื่อรับ pong/close เท่านั้น dashboard ไม่ส่งข้อความมา
func (h *Hub) readPump(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
		cl.conn.Close()
	}()
	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("ws read error")
			}
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(ev); err != nil {
				h.log.WithError(err).Debug("ws write error")
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
