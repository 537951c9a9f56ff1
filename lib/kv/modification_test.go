package kv

import (
	"encoding/json"
	"testing"
)

func TestOpJSONRoundTrip(t *testing.T) {
	for _, op := range []Op{OpUpdate, OpDelete} {
		data, err := json.Marshal(op)
		if err != nil {
			t.Fatalf("failed to marshal op %s: %v", op, err)
		}

		var result Op
		if err := json.Unmarshal(data, &result); err != nil {
			t.Fatalf("failed to unmarshal op %s: %v", op, err)
		}

		if result != op {
			t.Errorf("op doesn't match after round trip: expected %s, got %s", op, result)
		}
	}
}

func TestOpUnmarshalUnknown(t *testing.T) {
	var op Op
	if err := json.Unmarshal([]byte(`"truncate"`), &op); err == nil {
		t.Error("expected error for unknown op, got nil")
	}
}

func TestModificationFactories(t *testing.T) {
	u := Update("a", "1")
	if u.Op != OpUpdate || u.Key != "a" || u.Value != "1" {
		t.Errorf("unexpected update modification: %+v", u)
	}

	d := Delete("a")
	if d.Op != OpDelete || d.Key != "a" || d.Value != "" {
		t.Errorf("unexpected delete modification: %+v", d)
	}
}

func TestModificationJSON(t *testing.T) {
	data, err := json.Marshal(Update("key", "value"))
	if err != nil {
		t.Fatalf("failed to marshal modification: %v", err)
	}

	var m Modification
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("failed to unmarshal modification: %v", err)
	}

	if m.Op != OpUpdate || m.Key != "key" || m.Value != "value" {
		t.Errorf("modification doesn't match after round trip: %+v", m)
	}
}
