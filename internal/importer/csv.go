package importer

import (
	"strconv"
	"strings"
)

// BuildCSV renders the successfully created products as a small CSV for
// download from the admin panel. Tags are joined with ';' inside one field.
func BuildCSV(products []ImportedProduct) string {
	rows := []string{"image_url,name,description,category,price,tags"}
	for _, p := range products {
		rows = append(rows, strings.Join([]string{
			p.ImageURL,
			quoteField(p.Name),
			quoteField(p.Description),
			p.Category,
			strconv.FormatFloat(p.SuggestedPrice, 'f', -1, 64),
			quoteField(strings.Join(p.Tags, ";")),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
