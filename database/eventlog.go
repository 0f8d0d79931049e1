// Copyright 2026 The NFT-Gated Historical Archives authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

var (
	eventSeqKey    = []byte("eventlog_seq")
	eventKeyPrefix = []byte("evt:")
)

const eventSeqBandwidth = 64

// ArchivedEvent is one entry in the append-only archive of emitted domain
// events, kept for external indexers. The archive is written after the
// originating operation commits; it is an observer of the metadata store,
// not a participant in its transactions.
type ArchivedEvent struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Seq       uint64          `json:"seq"`
	Height    uint64          `json:"height"`
	Timestamp int64           `json:"timestamp"`
}

func eventKey(seq uint64) []byte {
	key := make([]byte, 0, len(eventKeyPrefix)+8)
	key = append(key, eventKeyPrefix...)
	key = binary.BigEndian.AppendUint64(key, seq)
	return key
}

// AppendEvent appends an emitted event to the archive and returns its
// sequence number
func (d *Database) AppendEvent(
	height uint64,
	timestamp int64,
	eventType string,
	data any,
) (uint64, error) {
	encodedData, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("failed to encode event data: %w", err)
	}
	seq, err := d.eventSeq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to get event sequence: %w", err)
	}
	record := ArchivedEvent{
		Seq:       seq,
		Height:    height,
		Timestamp: timestamp,
		Type:      eventType,
		Data:      encodedData,
	}
	encoded, err := json.Marshal(&record)
	if err != nil {
		return 0, fmt.Errorf("failed to encode event record: %w", err)
	}
	err = d.eventDb.Update(func(txn *badger.Txn) error {
		return txn.Set(eventKey(seq), encoded)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to append event: %w", err)
	}
	return seq, nil
}

// GetEvents returns up to limit archived events with sequence numbers at or
// after fromSeq, in sequence order
func (d *Database) GetEvents(
	fromSeq uint64,
	limit int,
) ([]ArchivedEvent, error) {
	var events []ArchivedEvent
	err := d.eventDb.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = eventKeyPrefix
		iter := txn.NewIterator(iterOpts)
		defer iter.Close()
		for iter.Seek(eventKey(fromSeq)); iter.Valid(); iter.Next() {
			if limit > 0 && len(events) >= limit {
				break
			}
			err := iter.Item().Value(func(val []byte) error {
				var record ArchivedEvent
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				events = append(events, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read event archive: %w", err)
	}
	return events, nil
}
