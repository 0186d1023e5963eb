package passes

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"solstice/globals"
)

// GeneratePassPayload returns the signed string encoded into a pass QR:
// passID|reservationID|passType|signature. The signature binds the three
// fields together so a scanned payload cannot be forged or spliced.
func GeneratePassPayload(passID, reservationID, passType string) string {
	data := fmt.Sprintf("%s|%s|%s", passID, reservationID, passType)

	h := hmac.New(sha256.New, globals.PassSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyPassPayload checks the signature and returns the pass identity.
func VerifyPassPayload(payload string) (passID, reservationID, passType string, err error) {
	parts := strings.Split(payload, "|")
	if len(parts) != 4 {
		return "", "", "", errors.New("invalid QR format")
	}

	passID = parts[0]
	reservationID = parts[1]
	passType = parts[2]
	signature := parts[3]

	data := fmt.Sprintf("%s|%s|%s", passID, reservationID, passType)
	h := hmac.New(sha256.New, globals.PassSecret)
	h.Write([]byte(data))
	expectedSig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expectedSig)) {
		return "", "", "", errors.New("invalid signature")
	}

	return passID, reservationID, passType, nil
}
