package extract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/extract"
)

func docWithPages(texts ...string) *domain.ParsedDocument {
	doc := &domain.ParsedDocument{}
	for i, text := range texts {
		doc.Pages = append(doc.Pages, domain.Page{Number: i + 1, Text: text})
	}
	return doc
}

func TestBuildDocumentExcerpt_AllPagesWithinBudget(t *testing.T) {
	doc := docWithPages("first page", "second page")

	excerpt, truncated := extract.BuildDocumentExcerpt(doc, 60000)

	assert.False(t, truncated)
	assert.Contains(t, excerpt, "--- page 1 ---")
	assert.Contains(t, excerpt, "first page")
	assert.Contains(t, excerpt, "--- page 2 ---")
	assert.Contains(t, excerpt, "second page")
	assert.Less(t, strings.Index(excerpt, "first page"), strings.Index(excerpt, "second page"))
}

func TestBuildDocumentExcerpt_DropsWholeTrailingPages(t *testing.T) {
	doc := docWithPages("short first page", strings.Repeat("x", 300), "last page")

	budget := len("--- page 1 ---\nshort first page\n") + 40
	excerpt, truncated := extract.BuildDocumentExcerpt(doc, budget)

	assert.True(t, truncated)
	assert.Contains(t, excerpt, "short first page")
	assert.NotContains(t, excerpt, "xxx", "a page is dropped whole, never cut mid-page")
	assert.NotContains(t, excerpt, "last page")
}

func TestBuildDocumentExcerpt_FirstPageAlwaysIncluded(t *testing.T) {
	doc := docWithPages(strings.Repeat("a", 500))

	excerpt, truncated := extract.BuildDocumentExcerpt(doc, 10)

	assert.False(t, truncated)
	assert.Contains(t, excerpt, strings.Repeat("a", 500))
}

func TestBuildDocumentExcerpt_UnboundedWhenZero(t *testing.T) {
	doc := docWithPages("one", "two", "three")

	excerpt, truncated := extract.BuildDocumentExcerpt(doc, 0)

	assert.False(t, truncated)
	assert.Contains(t, excerpt, "three")
}

func TestSchemaPrompt_NamesRequiredFields(t *testing.T) {
	for _, field := range domain.RequiredFields {
		assert.Contains(t, extract.SchemaPrompt, field)
	}
	assert.Contains(t, extract.SchemaPrompt, "others")
}
