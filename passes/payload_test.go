package passes

import (
	"strings"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	payload := GeneratePassPayload("pass123", "res456", "event-pass1")

	passID, reservationID, passType, err := VerifyPassPayload(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if passID != "pass123" || reservationID != "res456" || passType != "event-pass1" {
		t.Fatalf("unexpected identity: %s %s %s", passID, reservationID, passType)
	}
}

func TestPayloadRejectsTampering(t *testing.T) {
	payload := GeneratePassPayload("pass123", "res456", "event-pass1")

	// Splice in a different pass type while keeping the signature.
	tampered := strings.Replace(payload, "event-pass1", "event-pass2", 1)
	if _, _, _, err := VerifyPassPayload(tampered); err == nil {
		t.Fatal("expected spliced payload to fail verification")
	}
}

func TestPayloadRejectsBadFormat(t *testing.T) {
	cases := []string{
		"",
		"pass123",
		"pass123|res456|event-pass1",
		"a|b|c|d|e",
	}
	for _, payload := range cases {
		if _, _, _, err := VerifyPassPayload(payload); err == nil {
			t.Fatalf("expected %q to be rejected", payload)
		}
	}
}

func TestPayloadSignatureBindsAllFields(t *testing.T) {
	a := GeneratePassPayload("p1", "r1", "event-pass1")
	b := GeneratePassPayload("p2", "r1", "event-pass1")

	sigA := a[strings.LastIndex(a, "|")+1:]
	sigB := b[strings.LastIndex(b, "|")+1:]
	if sigA == sigB {
		t.Fatal("different passes must not share a signature")
	}
}
