// Package slug builds URL-safe article identifiers.
package slug

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	gosimple "github.com/gosimple/slug"
)

// Make derives a slug from a title and appends a short random suffix.
// Uniqueness is probabilistic: collisions are possible in theory but the
// 3-byte suffix makes them negligible in practice, so there is no retry on
// conflict.
func Make(title string) string {
	base := gosimple.Make(title)
	if base == "" {
		base = "article"
	}

	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; if it somehow does,
		// the slug's unique index still catches a collision.
		return base
	}

	return fmt.Sprintf("%s-%s", base, hex.EncodeToString(suffix))
}
