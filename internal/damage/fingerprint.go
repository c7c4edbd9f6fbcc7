package damage

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Fingerprint derives a deterministic cache key from the
// calculation-relevant fields of a request: target actor, damage type,
// source, base damage, and element. Two requests with equal fields always
// produce the same fingerprint regardless of modifier lists or context.
func Fingerprint(req *Request) string {
	var b strings.Builder
	b.WriteString(req.TargetID)
	b.WriteByte('|')
	b.WriteString(req.DamageTypeID)
	b.WriteByte('|')
	b.WriteString(string(req.Source))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(req.BaseDamage, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(req.ElementID)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// ModifierDigest derives a deterministic key component from an ordered
// modifier list. Order is significant: the same modifiers in a different
// order fold differently and must not share a cache entry.
func ModifierDigest(mods []Modifier) string {
	if len(mods) == 0 {
		return "none"
	}

	var b strings.Builder
	for i := range mods {
		m := &mods[i]
		b.WriteString(string(m.Kind))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(m.Value, 'g', -1, 64))
		b.WriteByte(':')
		b.WriteString(m.CustomTag)
		if len(m.Properties) > 0 {
			keys := make([]string, 0, len(m.Properties))
			for k := range m.Properties {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b.WriteByte(':')
				b.WriteString(k)
				b.WriteByte('=')
				b.WriteString(strconv.FormatFloat(m.Properties[k], 'g', -1, 64))
			}
		}
		b.WriteByte(';')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
