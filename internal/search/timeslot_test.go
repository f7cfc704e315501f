package search

import "testing"

func TestParseSlot(t *testing.T) {
	slot, ok := ParseSlot("06:00-12:00")
	if !ok || slot.Start != 6 || slot.End != 12 {
		t.Fatalf("ParseSlot(06:00-12:00) = %+v ok=%v, want {6 12} true", slot, ok)
	}
}

func TestParseSlot_Invalid(t *testing.T) {
	if _, ok := ParseSlot(""); ok {
		t.Error("ParseSlot(\"\") must fail")
	}
	if _, ok := ParseSlot("morning"); ok {
		t.Error("ParseSlot without a dash must fail")
	}
}

func TestParseSlot_MangledHoursFallBack(t *testing.T) {
	slot, ok := ParseSlot("xx:00-yy:00")
	if !ok || slot.Start != 0 || slot.End != 24 {
		t.Errorf("mangled hours should degrade to the widest bucket, got %+v", slot)
	}
}

func TestSlot_ContainsHalfOpen(t *testing.T) {
	slot := Slot{Start: 0, End: 6}
	if slot.Contains(6) {
		t.Error("end hour is exclusive: 6 must not be in [0,6)")
	}
	if !slot.Contains(0) {
		t.Error("start hour is inclusive: 0 must be in [0,6)")
	}
	if !slot.Contains(5) {
		t.Error("5 must be in [0,6)")
	}
}

func TestClockHour(t *testing.T) {
	if h, ok := ClockHour("16:25"); !ok || h != 16 {
		t.Errorf("ClockHour(16:25) = %d ok=%v, want 16 true", h, ok)
	}
	if _, ok := ClockHour(""); ok {
		t.Error("ClockHour of empty string must fail")
	}
	if _, ok := ClockHour("noon"); ok {
		t.Error("ClockHour of non-numeric string must fail")
	}
}
