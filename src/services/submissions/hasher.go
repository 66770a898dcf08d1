package submissions

import (
	"crypto/sha256"
	"encoding/hex"
)

// SubmitterHash derives the dedup identity token from the request-level
// signals: the network origin and the client agent string, concatenated with
// no separator, digested with SHA-256 and rendered as lowercase hex.
//
// Both inputs are spoofable and may be empty; an empty pair still yields a
// stable token. That weakness is accepted — the token is best-effort
// identity, not authentication.
func SubmitterHash(origin, agent string) string {
	sum := sha256.Sum256([]byte(origin + agent))
	return hex.EncodeToString(sum[:])
}
