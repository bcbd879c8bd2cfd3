/* events.go
 * Document change events: the payload delivered to trigger handlers whenever
 * a group or match document is created, updated or deleted. Before/After are
 * JSON snapshots; a missing side marks a creation or a deletion.
 */

package trigger

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	TopicGroups  = "documents.groups"
	TopicMatches = "documents.matches"
)

// DocumentChange describes one write to a document: its id plus the snapshots
// around the write.
type DocumentChange struct {
	ID     string          `json:"id"`
	Before json.RawMessage `json:"before,omitempty"`
	After  json.RawMessage `json:"after,omitempty"`
}

// NewMessage wraps a change into a watermill message ready for publishing.
func NewMessage(change DocumentChange) (*message.Message, error) {
	payload, err := json.Marshal(change)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document change: %w", err)
	}
	return message.NewMessage(uuid.NewString(), payload), nil
}

// Publish sends a document change on the given topic.
func Publish(pub message.Publisher, topic string, change DocumentChange) error {
	msg, err := NewMessage(change)
	if err != nil {
		return err
	}
	return pub.Publish(topic, msg)
}

// present reports whether a snapshot side actually holds a document.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
