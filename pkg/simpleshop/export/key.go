package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator names the stored file of an export
type Generator interface {
	GenerateKey(id uuid.UUID, meta KeyMetadata) string
}

// KeyMetadata contains information that influences key generation
type KeyMetadata struct {
	View      string
	Extension string
	CreatedAt time.Time
	// Scheduled marks snapshot exports produced by the scheduler.
	Scheduled bool
}

// DatedGenerator groups exports by view and month:
// exports/{view}/{yyyy}/{mm}/{yyyymmddThhmmss}-{id8}.{ext}
// Scheduled snapshots go under snapshots/ instead of exports/.
type DatedGenerator struct{}

func NewDatedGenerator() *DatedGenerator {
	return &DatedGenerator{}
}

func (g *DatedGenerator) GenerateKey(id uuid.UUID, meta KeyMetadata) string {
	root := "exports"
	if meta.Scheduled {
		root = "snapshots"
	}
	at := meta.CreatedAt.UTC()
	shortID := strings.ReplaceAll(id.String(), "-", "")[:8]
	return fmt.Sprintf("%s/%s/%s/%s-%s%s",
		root,
		sanitizePathComponent(viewOrDefault(meta.View)),
		at.Format("2006/01"),
		at.Format("20060102T150405"),
		shortID,
		extension(meta.Extension),
	)
}

// FlatGenerator stores every export directly under exports/.
type FlatGenerator struct{}

func NewFlatGenerator() *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) GenerateKey(id uuid.UUID, meta KeyMetadata) string {
	return fmt.Sprintf("exports/%s%s", id, extension(meta.Extension))
}

// PrefixedGenerator places keys of another generator below a fixed prefix,
// for buckets shared between shops.
type PrefixedGenerator struct {
	Prefix string
	Base   Generator
}

func NewPrefixedGenerator(prefix string, base Generator) *PrefixedGenerator {
	return &PrefixedGenerator{Prefix: prefix, Base: base}
}

func (g *PrefixedGenerator) GenerateKey(id uuid.UUID, meta KeyMetadata) string {
	key := g.Base.GenerateKey(id, meta)
	prefix := strings.Trim(g.Prefix, "/")
	if prefix == "" {
		return key
	}
	parts := strings.Split(prefix, "/")
	for i, p := range parts {
		parts[i] = sanitizePathComponent(p)
	}
	return strings.Join(parts, "/") + "/" + key
}

// NewRecommendedGenerator returns the generator used when none is configured
func NewRecommendedGenerator() Generator {
	return NewDatedGenerator()
}

func viewOrDefault(view string) string {
	if view == "" {
		return "unknown"
	}
	return view
}

func extension(ext string) string {
	ext = sanitizePathComponent(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return ""
	}
	return "." + ext
}

func sanitizePathComponent(component string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
		"..", "_",
	)
	return strings.ToLower(replacer.Replace(component))
}
