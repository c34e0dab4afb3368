// Package labels reads product label uploads and spots allergens named in them.
package labels

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"alerscan/models"
)

// MaxUploadSize bounds label uploads accepted by the handlers.
const MaxUploadSize = 5 << 20 // 5 MiB

// ErrUnsupportedFormat is returned for uploads that are neither PDF nor text.
var ErrUnsupportedFormat = errors.New("unsupported label format")

// keywords maps a lowercased allergen name to ingredient words that imply it.
var keywords = map[string][]string{
	"gluten":    {"wheat", "rye", "barley", "oat", "oats", "spelt", "malt"},
	"egg":       {"eggs", "albumin", "ovalbumin"},
	"milk":      {"lactose", "whey", "casein", "caseinate", "cheese"},
	"soy":       {"soya", "soybean", "soybeans", "tofu"},
	"tree nuts": {"almond", "almonds", "hazelnut", "hazelnuts", "walnut", "walnuts", "cashew", "cashews", "pecan", "pecans", "pistachio", "pistachios", "macadamia"},
	"peanuts":   {"peanut", "groundnut", "groundnuts"},
	"shellfish": {"shrimp", "shrimps", "prawn", "prawns", "crab", "lobster", "crayfish"},
}

// Upload is a label file received from a form.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// Text extracts plain text from the upload.
func (u Upload) Text() (string, error) {
	return Extract(u.Data, u.ContentType, u.Name)
}

// Extract returns the plain text of a PDF or text label. The content type is
// inferred from the file name when the client did not send one.
func Extract(data []byte, contentType, name string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(contentType))
	if kind == "" || kind == "application/octet-stream" {
		kind = contentTypeFromName(name)
	}

	switch {
	case strings.Contains(kind, "pdf"):
		return extractTextFromPDF(data)
	case strings.HasPrefix(kind, "text/"):
		if !utf8.Valid(data) {
			return "", ErrUnsupportedFormat
		}
		return string(data), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

func extractTextFromPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

func contentTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".txt", ".text":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// Detect returns the ids of the allergens whose name, or one of its
// ingredient keywords, appears as whole words in text.
func Detect(text string, allergens []models.Allergen) []uint {
	haystack := normalize(text)
	if haystack == "  " {
		return nil
	}

	var ids []uint
	for _, allergen := range allergens {
		name := strings.ToLower(strings.TrimSpace(allergen.Name))
		if name == "" {
			continue
		}
		terms := append([]string{name}, keywords[name]...)
		for _, term := range terms {
			if strings.Contains(haystack, normalize(term)) {
				ids = append(ids, allergen.ID)
				break
			}
		}
	}
	return ids
}

// normalize lowercases text and reduces it to letter runs separated by single
// spaces, padded on both ends so whole-word lookups can use Contains.
func normalize(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	return " " + strings.Join(words, " ") + " "
}
