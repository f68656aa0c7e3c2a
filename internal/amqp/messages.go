package amqp

import (
	"encoding/json"
	"time"
)

// SnapshotSyncMessage asks the worker to export one snapshot to the backup
// sheet. It carries only the id; the worker fetches the full row from the
// database so the queue never holds stale balances.
type SnapshotSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSnapshotSyncMessage(id int64) *SnapshotSyncMessage {
	return &SnapshotSyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *SnapshotSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SnapshotSyncMessageFromJSON(data []byte) (*SnapshotSyncMessage, error) {
	var msg SnapshotSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
