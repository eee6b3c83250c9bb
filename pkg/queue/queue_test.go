package queue

import "testing"

type refreshMsg struct {
	RegionID string `json:"region_id"`
	Days     int    `json:"days"`
}

func TestParsePayloadTyped(t *testing.T) {
	in := refreshMsg{RegionID: "suez_logistics", Days: 30}

	got, err := ParsePayload[refreshMsg](in)
	if err != nil {
		t.Fatalf("value payload: %v", err)
	}
	if got.RegionID != "suez_logistics" || got.Days != 30 {
		t.Fatalf("unexpected result: %+v", got)
	}

	got, err = ParsePayload[refreshMsg](&in)
	if err != nil {
		t.Fatalf("pointer payload: %v", err)
	}
	if got != &in {
		t.Fatalf("pointer payload should pass through")
	}
}

func TestParsePayloadFromMap(t *testing.T) {
	// payloads read back from redis arrive as generic maps
	m := map[string]interface{}{"region_id": "la_port", "days": float64(7)}

	got, err := ParsePayload[refreshMsg](m)
	if err != nil {
		t.Fatalf("map payload: %v", err)
	}
	if got.RegionID != "la_port" || got.Days != 7 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParsePayloadMismatch(t *testing.T) {
	if _, err := ParsePayload[refreshMsg](42); err == nil {
		t.Fatalf("expected error for unsupported payload type")
	}
}
