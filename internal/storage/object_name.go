package storage

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AudioObjectName returns audio/YYYY/MM/DD/<uuid><ext>. The client filename
// is not used beyond its extension.
func AudioObjectName(now time.Time, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("audio", now.UTC().Format("2006/01/02"), uuid.NewString()+ext)
}
