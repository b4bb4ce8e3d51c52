package events

import (
	"encoding/json"
	"time"

	"github.com/lucsky/cuid"
)

// Publisher delivers encoded events to a topic.
type Publisher interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// FavoriteToggled is emitted each time a restaurant enters or leaves the
// favorite set.
type FavoriteToggled struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Favorite  bool      `json:"favorite"`
	Timestamp time.Time `json:"timestamp"`
}

func NewFavoriteToggled(name string, favorite bool, at time.Time) FavoriteToggled {
	return FavoriteToggled{
		ID:        cuid.New(),
		Name:      name,
		Favorite:  favorite,
		Timestamp: at.UTC(),
	}
}

func (e FavoriteToggled) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Noop drops every message.
type Noop struct{}

func (Noop) WriteMessage(string, []byte) error { return nil }
func (Noop) Close() error                      { return nil }
