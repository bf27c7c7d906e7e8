package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSON(t *testing.T) {
	var payload struct {
		Total Money `json:"total"`
		Fee   Money `json:"fee"`
		Tip   Money `json:"tip"`
	}
	if err := json.Unmarshal([]byte(`{"total":"12.345","fee":7.5,"tip":null}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Total.String() != "12.35" || payload.Fee.String() != "7.50" || payload.Tip.String() != "0.00" {
		t.Fatalf("unexpected amounts: %s %s %s", payload.Total, payload.Fee, payload.Tip)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(body) != `{"total":"12.35","fee":"7.50","tip":"0.00"}` {
		t.Fatalf("unexpected json: %s", body)
	}
	if err := json.Unmarshal([]byte(`{"total":"abc"}`), &payload); err == nil {
		t.Fatalf("invalid amount should fail")
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	if err := m.Scan("19.999"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if m.String() != "20.00" {
		t.Fatalf("unexpected scanned amount: %s", m)
	}
	value, err := NewMoneyFromDecimal(m.Decimal).Value()
	if err != nil || value != "20" {
		t.Fatalf("unexpected driver value: %v err=%v", value, err)
	}
}
