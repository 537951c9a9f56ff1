package serializer

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/bKV/lib/kv"
	"github.com/ValentinKolb/bKV/rpc/common"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() IRPCSerializer{
	"JSON":   NewJSONSerializer,
	"GOB":    NewGOBSerializer,
	"Binary": NewBinarySerializer,
}

// testMessages creates a set of test messages with different fields filled
func testMessages() []common.Message {
	return []common.Message{
		// Basic message with just a type
		{MsgType: common.MsgTSuccess},

		// Insert request
		{
			MsgType: common.MsgTInsert,
			Mods: []kv.Modification{
				kv.Update("test-key", "test-value"),
				kv.Delete("stale-key"),
			},
		},

		// Info response
		{
			MsgType: common.MsgTInfo,
			Head:    42,
			Size:    1234,
		},

		// Fetch request
		{
			MsgType: common.MsgTFetch,
			Begin:   20,
			End:     40,
			Head:    7,
		},

		// Fetch response with entries and diff
		{
			MsgType: common.MsgTFetch,
			Head:    9,
			Entries: []kv.Modification{
				kv.Update("a", "1"),
				kv.Update("b", "2"),
			},
			Diff: []kv.Modification{
				kv.Delete("a"),
			},
		},

		// Error response
		{
			MsgType: common.MsgTError,
			Err:     "test error message",
		},
	}
}

// TestSerializerRoundTrip tests that messages can be serialized and deserialized correctly
func TestSerializerRoundTrip(t *testing.T) {
	messages := testMessages()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			serializer := factory()

			for i, msg := range messages {
				// Serialize
				data, err := serializer.Serialize(msg)
				if err != nil {
					t.Errorf("Failed to serialize message %d: %v", i, err)
					continue
				}

				// Deserialize
				var result common.Message
				err = serializer.Deserialize(data, &result)
				if err != nil {
					t.Errorf("Failed to deserialize message %d: %v", i, err)
					continue
				}

				// Compare
				if !reflect.DeepEqual(msg, result) {
					t.Errorf("Message %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, msg, result)
				}
			}
		})
	}
}

// TestSerializerRejectsGarbage tests that malformed payloads produce an
// error instead of a silently corrupted message
func TestSerializerRejectsGarbage(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			var msg common.Message
			if err := factory().Deserialize(garbage, &msg); err == nil {
				t.Error("expected error for garbage payload, got nil")
			}
		})
	}
}

// TestBinaryRejectsUnknownOp tests that the binary decoder refuses
// modification ops outside the known set
func TestBinaryRejectsUnknownOp(t *testing.T) {
	msg := common.Message{
		MsgType: common.MsgTInsert,
		Mods:    []kv.Modification{{Op: kv.Op(99), Key: "k"}},
	}

	data, err := NewBinarySerializer().Serialize(msg)
	if err != nil {
		t.Fatalf("failed to serialize: %v", err)
	}

	var result common.Message
	if err := NewBinarySerializer().Deserialize(data, &result); err == nil {
		t.Error("expected error for unknown op, got nil")
	}
}
