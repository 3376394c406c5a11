package hub

import (
	"context"
	"encoding/json"
	"sync"
)

const (
	EventTeamCreated       = "team_created"
	EventMemberJoined      = "member_joined"
	EventMemberLeft        = "member_left"
	EventMemberKicked      = "member_kicked"
	EventLeaderChanged     = "leader_changed"
	EventTeamDisbanded     = "team_disbanded"
	EventApplicantAdded    = "applicant_added"
	EventApplicantRemoved  = "applicant_removed"
	EventApplicantEvicted  = "applicant_evicted"
	EventApplicantsCleared = "applicants_cleared"
)

type Event struct {
	Type   string `json:"type"`
	TeamID uint64 `json:"team_id"`
	Data   any    `json:"data,omitempty"`
}

type TeamCreatedData struct {
	LeaderID uint64 `json:"leader_id"`
}

type MemberData struct {
	PlayerID uint64 `json:"player_id"`
	Reason   string `json:"reason,omitempty"`
}

type LeaderChangedData struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type ApplicantData struct {
	PlayerID uint64 `json:"player_id"`
}

type Client struct {
	ID       string
	PlayerID uint64
	Teams    map[uint64]bool
	Send     chan []byte
}

// Hub fans team events out to subscribed clients.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

func (h *Hub) deliver(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range h.clients {
		if !client.Teams[ev.TeamID] {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Client buffer full, skip
		}
		// A disbanded id never comes back.
		if ev.Type == EventTeamDisbanded {
			delete(client.Teams, ev.TeamID)
		}
	}
}

// Register adds client. Once the hub has stopped the client's Send channel
// is closed straight away.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Subscribe(clientID string, teamID uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.clients[clientID]
	if ok {
		client.Teams[teamID] = true
	}
	return ok
}

func (h *Hub) Unsubscribe(clientID string, teamID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Teams, teamID)
	}
}

// Publish queues events for delivery in order.
func (h *Hub) Publish(events ...Event) {
	for _, ev := range events {
		select {
		case h.broadcast <- ev:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
