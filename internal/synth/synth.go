// Package synth derives draft product records from photo filename and album
// name heuristics, optionally refined by a text-generation model.
package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	CategoryClothing    = "Clothing"
	CategoryAccessories = "Accessories"

	clothingBasePrice    = 45
	accessoriesBasePrice = 25
	priceSpread          = 30
)

// Keyword sets scanned during hint extraction. Any keyword found in the
// filename or album name becomes a hint.
var (
	clothingKeywords  = []string{"dress", "shirt", "pants", "skirt", "jacket", "coat", "top", "blouse", "jeans", "sweater", "hoodie", "tshirt"}
	accessoryKeywords = []string{"bag", "purse", "wallet", "belt", "scarf", "hat", "jewelry", "necklace", "bracelet", "earring", "watch"}
	colorKeywords     = []string{"red", "blue", "black", "white", "green", "yellow", "pink", "purple", "brown", "gray", "beige"}
	styleKeywords     = []string{"casual", "formal", "elegant", "vintage", "modern", "classic", "trendy", "chic", "bohemian"}

	// categorizeKeywords is wider than the extraction set: it also covers
	// the Indian fashionwear terms the store actually sells under.
	categorizeKeywords = []string{
		"dress", "shirt", "pants", "trousers", "skirt", "jacket", "top", "blouse", "jeans", "sweater",
		"churidar", "kurti", "lehenga", "gown", "suit", "set", "dupatta", "saree", "sari", "kaftan",
	}

	defaultHints = []string{"fashion", "stylish", "quality"}

	nameAdjectives = []string{"Elegant", "Stylish", "Classic", "Modern", "Chic", "Trendy", "Premium", "Luxury"}
)

// DraftProduct is a synthesized product candidate, not yet persisted.
type DraftProduct struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	SuggestedPrice float64  `json:"suggestedPrice"`
	Tags           []string `json:"tags"`
	ImageURL       string   `json:"imageUrl,omitempty"`
}

// Generator is the slice of the LLM client the synthesizer needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Synthesizer builds DraftProducts. The random source is injected so tests
// can seed it; pass nil for a time-seeded source.
type Synthesizer struct {
	rng *rand.Rand
	llm Generator
}

func New(rng *rand.Rand, llm Generator) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{rng: rng, llm: llm}
}

// ExtractHints scans the lower-cased filename and album name against the
// fixed keyword sets. When nothing matches it falls back to generic hints.
func ExtractHints(filename, albumName string) []string {
	text := strings.ToLower(filename + " " + albumName)

	var hints []string
	for _, set := range [][]string{clothingKeywords, accessoryKeywords, colorKeywords, styleKeywords} {
		for _, keyword := range set {
			if strings.Contains(text, keyword) {
				hints = append(hints, keyword)
			}
		}
	}

	if len(hints) == 0 {
		return append([]string(nil), defaultHints...)
	}
	return hints
}

// Categorize returns Clothing when any hint is a clothing keyword, otherwise
// Accessories. This single rule is the whole categorization scheme.
func Categorize(hints []string) string {
	for _, h := range hints {
		lower := strings.ToLower(h)
		for _, keyword := range categorizeKeywords {
			if lower == keyword {
				return CategoryClothing
			}
		}
	}
	return CategoryAccessories
}

// Synthesize builds a rule-based draft. Repeated calls for the same input
// give different names and prices on purpose: the offset and adjective come
// from the injected random source.
func (s *Synthesizer) Synthesize(filename, albumName string) DraftProduct {
	hints := ExtractHints(filename, albumName)
	category := Categorize(hints)

	return DraftProduct{
		Name:           s.productName(hints),
		Description:    describe(hints, albumName, category),
		Category:       category,
		SuggestedPrice: s.estimatePrice(category),
		Tags:           tagsFromHints(hints),
	}
}

// SynthesizeWithAI asks the model for product copy and overlays any fields
// it returns over the rule-based draft. Every model failure (network,
// non-2xx, unparseable output) silently falls back to the rule-based
// result; the second return value reports whether the model contributed.
func (s *Synthesizer) SynthesizeWithAI(ctx context.Context, filename, albumName string) (DraftProduct, bool) {
	draft := s.Synthesize(filename, albumName)
	if s.llm == nil {
		return draft, false
	}

	hints := ExtractHints(filename, albumName)
	raw, err := s.llm.Generate(ctx, buildPrompt(filename, albumName, hints))
	if err != nil {
		slog.Warn("model generation failed, using rule-based draft", "error", err)
		return draft, false
	}

	block, ok := ExtractJSONBlock(raw)
	if !ok {
		slog.Warn("no JSON block in model output, using rule-based draft")
		return draft, false
	}

	var override struct {
		Name           *string  `json:"name"`
		Description    *string  `json:"description"`
		Category       *string  `json:"category"`
		SuggestedPrice *float64 `json:"suggestedPrice"`
		Tags           []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(block), &override); err != nil {
		slog.Warn("model output is not valid JSON, using rule-based draft", "error", err)
		return draft, false
	}

	if override.Name != nil && *override.Name != "" {
		draft.Name = *override.Name
	}
	if override.Description != nil && *override.Description != "" {
		draft.Description = *override.Description
	}
	if override.Category != nil && (*override.Category == CategoryClothing || *override.Category == CategoryAccessories) {
		draft.Category = *override.Category
	}
	if override.SuggestedPrice != nil && *override.SuggestedPrice > 0 {
		draft.SuggestedPrice = *override.SuggestedPrice
	}
	if len(override.Tags) > 0 {
		draft.Tags = override.Tags
	}

	return draft, true
}

// ExtractJSONBlock returns the first balanced top-level {...} substring.
// It is a narrow best-effort scanner for JSON embedded in model prose, not
// a general parser; strings containing braces inside the block are handled,
// escapes inside strings are honored.
func ExtractJSONBlock(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func buildPrompt(filename, albumName string, hints []string) string {
	if filename == "" {
		filename = "unknown"
	}
	if albumName == "" {
		albumName = "general"
	}

	return fmt.Sprintf(`You are a fashion e-commerce expert. Based on this information, generate product details:

Filename: %s
Album: %s
Hints: %s

Generate a JSON response with:
- name: Short, catchy product name (max 50 chars)
- description: Detailed product description (2-3 sentences)
- category: Either "Clothing" or "Accessories"
- suggestedPrice: Price in USD (number only)
- tags: Array of 3-5 relevant tags

Respond ONLY with valid JSON, no markdown.`, filename, albumName, strings.Join(hints, ", "))
}

func (s *Synthesizer) productName(hints []string) string {
	adjective := nameAdjectives[s.rng.Intn(len(nameAdjectives))]
	item := "Fashion Item"
	if len(hints) > 0 {
		item = capitalize(hints[0])
	}
	return adjective + " " + item
}

func (s *Synthesizer) estimatePrice(category string) float64 {
	base := accessoriesBasePrice
	if category == CategoryClothing {
		base = clothingBasePrice
	}
	return float64(base + s.rng.Intn(priceSpread))
}

func describe(hints []string, albumName, category string) string {
	style := "stylish"
	if len(hints) > 0 {
		n := len(hints)
		if n > 3 {
			n = 3
		}
		style = strings.Join(hints[:n], ", ")
	}

	desc := fmt.Sprintf("Beautiful %s piece featuring %s design. Perfect for any occasion. High-quality materials and excellent craftsmanship.",
		strings.ToLower(category), style)
	if albumName != "" {
		desc += fmt.Sprintf(" From our %s collection.", albumName)
	}
	return desc
}

func tagsFromHints(hints []string) []string {
	if len(hints) > 5 {
		hints = hints[:5]
	}
	return append([]string(nil), hints...)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
