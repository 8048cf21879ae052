package extract

import (
	"fmt"
	"strings"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// SystemPrompt frames the extraction task for every provider.
const SystemPrompt = `You are a document data extraction assistant for dividend-resolution vouchers (配当決議書). You receive the text of one voucher document, page by page. Extract the requested fields exactly as they appear in the document. Do not invent values: when a field is not present in the text, return an empty string for it.`

// SchemaPrompt describes the expected response payload: the four required
// fields plus an open-ended "others" bucket.
const SchemaPrompt = `Return ONLY valid JSON with no markdown formatting, no code fences, no explanation — just the raw JSON object, following this schema:

{
  "fields": {
    "title":           {"value": "", "excerpt": "", "page": 1, "confidence": 0.0},
    "company_name":    {"value": "", "excerpt": "", "page": 1, "confidence": 0.0},
    "resolution_date": {"value": "", "excerpt": "", "page": 1, "confidence": 0.0},
    "dividend_amount": {"value": "", "excerpt": "", "page": 1, "confidence": 0.0}
  },
  "others": {
    "<field label>":   {"value": "", "excerpt": "", "page": 1, "confidence": 0.0}
  }
}

RULES:
- "title" is the document heading (e.g. 配当決議書, Dividend Resolution).
- "company_name" is the company resolving the dividend.
- "resolution_date" value must be normalized to YYYY-MM-DD; keep the original wording in "excerpt".
- "dividend_amount" value is the resolved dividend amount, digits and separators only; keep currency marks in "excerpt".
- "excerpt" must be copied VERBATIM from the document text — it is used to locate the value on the page.
- "page" is the 1-based page number the excerpt appears on.
- "confidence" is your certainty in [0,1].
- Put any additional labeled values you find into "others".`

// pageHeader delimits pages inside the document excerpt.
func pageHeader(n int) string {
	return fmt.Sprintf("--- page %d ---", n)
}

// BuildDocumentExcerpt serializes the parsed pages for the prompt, bounded
// by maxChars. When the budget is exceeded, trailing whole pages are dropped
// — never part of a page — and truncated=true is returned. The first page is
// always included.
func BuildDocumentExcerpt(doc *domain.ParsedDocument, maxChars int) (excerpt string, truncated bool) {
	var sb strings.Builder
	for i, page := range doc.Pages {
		section := pageHeader(page.Number) + "\n" + page.Text + "\n"
		if i > 0 && maxChars > 0 && sb.Len()+len(section) > maxChars {
			return sb.String(), true
		}
		sb.WriteString(section)
	}
	return sb.String(), false
}
