// Package txid generates transaction ids for business calls.
package txid

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/philiph/zmxy/internal/core/ports"
)

// MaxLength is the longest transaction id the provider accepts.
const MaxLength = 64

// timestampLayout renders yyyyMMddHHmmssSSS once the dot is removed.
const timestampLayout = "20060102150405.000"

// UUIDGenerator builds ids of the form prefix + timestamp + random hex.
type UUIDGenerator struct {
	prefix string
	now    func() time.Time
}

// NewUUIDGenerator creates a generator. The prefix is usually the caller's
// platform name and is truncated on a character boundary so ids never
// exceed MaxLength and stay valid UTF-8.
func NewUUIDGenerator(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix, now: time.Now}
}

// Next returns a fresh transaction id.
func (g *UUIDGenerator) Next() string {
	ts := strings.Replace(g.now().Format(timestampLayout), ".", "", 1)
	id := uuid.New()
	random := strings.ReplaceAll(id.String(), "-", "")

	room := MaxLength - len(ts) - len(random)
	prefix := g.prefix
	if len(prefix) > room {
		for room > 0 && !utf8.RuneStart(prefix[room]) {
			room--
		}
		prefix = prefix[:room]
	}
	return prefix + ts + random
}

// Ensure UUIDGenerator implements ports.TransactionIDGenerator
var _ ports.TransactionIDGenerator = (*UUIDGenerator)(nil)
