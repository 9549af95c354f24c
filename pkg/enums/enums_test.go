package enums

import "testing"

func TestOrderStatusParseRoundTrip(t *testing.T) {
	for _, raw := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		status, err := ParseOrderStatus(raw)
		if err != nil {
			t.Fatalf("ParseOrderStatus(%q) returned error: %v", raw, err)
		}
		if status.String() != raw {
			t.Fatalf("expected %q got %q", raw, status.String())
		}
		if !status.IsValid() {
			t.Fatalf("parsed status %q should be valid", raw)
		}
	}

	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
	if OrderStatus("returned").IsValid() {
		t.Fatal("unknown status should not be valid")
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusPending:    false,
		OrderStatusProcessing: false,
		OrderStatusShipped:    false,
		OrderStatusDelivered:  true,
		OrderStatusCancelled:  true,
	}
	for status, want := range terminal {
		if status.IsTerminal() != want {
			t.Fatalf("IsTerminal(%s) expected %v", status, want)
		}
	}
}

func TestCommissionTypeParse(t *testing.T) {
	for _, raw := range []string{"percentage", "subscription"} {
		ct, err := ParseCommissionType(raw)
		if err != nil {
			t.Fatalf("ParseCommissionType(%q) returned error: %v", raw, err)
		}
		if !ct.IsValid() {
			t.Fatalf("parsed commission type %q should be valid", raw)
		}
	}
	if _, err := ParseCommissionType("barter"); err == nil {
		t.Fatal("expected unknown commission type to be rejected")
	}
}

func TestSortKeyParse(t *testing.T) {
	for _, raw := range []string{"price", "rating", "popularity"} {
		key, err := ParseSortKey(raw)
		if err != nil {
			t.Fatalf("ParseSortKey(%q) returned error: %v", raw, err)
		}
		if key.String() != raw {
			t.Fatalf("expected %q got %q", raw, key.String())
		}
	}
	if _, err := ParseSortKey("name"); err == nil {
		t.Fatal("expected unknown sort key to be rejected")
	}
}

func TestNotificationLevelParse(t *testing.T) {
	for _, raw := range []string{"success", "error", "info"} {
		level, err := ParseNotificationLevel(raw)
		if err != nil {
			t.Fatalf("ParseNotificationLevel(%q) returned error: %v", raw, err)
		}
		if !level.IsValid() {
			t.Fatalf("parsed level %q should be valid", raw)
		}
	}
	if _, err := ParseNotificationLevel("debug"); err == nil {
		t.Fatal("expected unknown level to be rejected")
	}
}
