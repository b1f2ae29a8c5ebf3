package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Identity-provider webhooks are signed svix-style: HMAC-SHA256 over
// "id.timestamp.payload" with the base64 secret that follows the "whsec_"
// prefix, delivered as a space-separated list of "v1,<base64>" entries.
const webhookTimestampTolerance = 5 * time.Minute

var errInvalidSignature = errors.New("invalid webhook signature")

func verifyWebhookSignature(secret, msgID, timestamp, signatures string, payload []byte, now time.Time) error {
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return fmt.Errorf("decoding signing secret: %w", err)
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errInvalidSignature
	}
	sent := time.Unix(ts, 0)
	if sent.Before(now.Add(-webhookTimestampTolerance)) || sent.After(now.Add(webhookTimestampTolerance)) {
		return errInvalidSignature
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, entry := range strings.Fields(signatures) {
		version, sig, found := strings.Cut(entry, ",")
		if !found || version != "v1" {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return errInvalidSignature
}
