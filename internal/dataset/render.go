package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Render turns a parsed Answer into the final answer text for a style.
// Pure and deterministic: the same answer and style always render the
// same string.
func Render(a *Answer, style Style) string {
	if style == StyleStrict {
		return renderStrict(a)
	}
	return renderSections(a, style)
}

// renderSections produces the 4-section layout used by plain and markdown
// styles. Plain additionally strips table pipes left over by undisciplined
// models.
func renderSections(a *Answer, style Style) string {
	bullet := "*"
	if style == StyleMarkdown {
		bullet = "-"
	}

	var lines []string
	if q := strings.TrimSpace(a.Question); q != "" {
		lines = append(lines, "Câu hỏi: "+q)
	}

	lines = append(lines, "1) Hành vi vi phạm:")
	if len(a.Violations) == 0 {
		lines = append(lines, bullet+" Không xác định vi phạm hoặc ngoài phạm vi giao thông.")
	} else {
		for _, v := range a.Violations {
			lines = append(lines, fmt.Sprintf("%s %s: %s", bullet,
				strings.TrimSpace(v.Name), strings.TrimSpace(v.Details)))
		}
	}

	lines = append(lines, "\n2) Căn cứ pháp lý:")
	for _, c := range a.Citations {
		if cite := formatCitation(c); cite != "" {
			lines = append(lines, bullet+" "+cite)
		}
	}

	lines = append(lines, "\n3) Mức phạt áp dụng:")
	for _, p := range a.Penalties {
		fmin, fmax := int64(p.FineMinVND), int64(p.FineMaxVND)
		span := formatVND(fmin) + " VND"
		if fmax > 0 {
			span = fmt.Sprintf("%s–%s VND", formatVND(fmin), formatVND(fmax))
		}
		extra := ""
		if months := int(p.SuspensionMonths); months > 0 {
			extra = fmt.Sprintf(", tước GPLX %d tháng", months)
		}
		lines = append(lines, fmt.Sprintf("%s %s: phạt %s%s", bullet,
			strings.TrimSpace(p.Violation), span, extra))
	}

	if summary := strings.TrimSpace(a.Summary); summary != "" {
		lines = append(lines, "\n4) Tổng hợp:")
		lines = append(lines, summary)
	}

	text := strings.Join(lines, "\n")
	if style != StyleMarkdown {
		text = stripTables(text)
	}
	return text
}

// renderStrict produces the numbered legal-citation form used for
// fine-tuning: one numbered block per violation with its fine range and
// suspension, followed by a combined-penalty sentence.
func renderStrict(a *Answer) string {
	var parts []string

	if q := strings.TrimSpace(a.Question); q != "" {
		parts = append(parts, "Đối với tình huống: "+q)
	}

	basis := "Luật Giao thông đường bộ Việt Nam"
	if laws := uniqueLaws(a.Citations); len(laws) > 0 {
		basis += ", " + strings.Join(laws, ", ")
	}
	parts = append(parts, fmt.Sprintf("Theo %s, xử lý như sau:", basis))

	// Penalties indexed by violation name for the per-violation lookup.
	penByName := make(map[string]Penalty, len(a.Penalties))
	for _, p := range a.Penalties {
		if name := strings.ToLower(strings.TrimSpace(p.Violation)); name != "" {
			penByName[name] = p
		}
	}

	var totalMin, totalMax int64
	maxSusp := 0
	for i, v := range a.Violations {
		name := strings.TrimSpace(v.Name)
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, name))
		if details := strings.TrimSpace(v.Details); details != "" {
			parts = append(parts, details)
		}

		p := penByName[strings.ToLower(name)]
		fmin, fmax := int64(p.FineMinVND), int64(p.FineMaxVND)
		if fmin > 0 || fmax > 0 {
			span := formatVND(fmin) + " đồng"
			if fmax > 0 {
				span = fmt.Sprintf("%s – %s đồng", formatVND(fmin), formatVND(fmax))
			}
			parts = append(parts, fmt.Sprintf("Mức phạt tiền: từ %s.", span))
			totalMin += fmin
			if fmax > 0 {
				totalMax += fmax
			} else {
				totalMax += fmin
			}
		}
		if months := int(p.SuspensionMonths); months > 0 {
			parts = append(parts, fmt.Sprintf("Hình phạt bổ sung: có thể bị tước Giấy phép lái xe %d tháng.", months))
			if months > maxSusp {
				maxSusp = months
			}
		}
	}

	var cites []string
	for _, c := range a.Citations {
		if cite := formatCitation(c); cite != "" {
			cites = append(cites, cite)
		}
	}
	if len(cites) > 0 {
		parts = append(parts, "Căn cứ: "+strings.Join(cites, "; ")+".")
	}

	if summary := strings.TrimSpace(a.Summary); summary != "" {
		parts = append(parts, summary)
	}

	if totalMin > 0 || totalMax > 0 || maxSusp > 0 {
		comb := "Nếu vi phạm đồng thời, tiền phạt được cộng dồn"
		switch {
		case totalMin > 0 && totalMax >= totalMin:
			comb += fmt.Sprintf(" (tổng khoảng %s – %s đồng)", formatVND(totalMin), formatVND(totalMax))
		case totalMin > 0:
			comb += fmt.Sprintf(" (tối thiểu %s đồng)", formatVND(totalMin))
		}
		if maxSusp > 0 {
			comb += fmt.Sprintf(", và có nguy cơ bị tước GPLX tối đa %d tháng.", maxSusp)
		} else {
			comb += "."
		}
		parts = append(parts, comb)
	}

	return stripTables(strings.Join(parts, "\n"))
}

// formatCitation joins the non-empty fields of a citation.
func formatCitation(c Citation) string {
	var fields []string
	for _, f := range []string{c.Law, c.Article, c.Clause} {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return strings.Join(fields, ", ")
}

// uniqueLaws returns the sorted, de-duplicated law names of the citations.
func uniqueLaws(citations []Citation) []string {
	seen := make(map[string]bool)
	var laws []string
	for _, c := range citations {
		law := strings.TrimSpace(c.Law)
		if law != "" && !seen[law] {
			seen[law] = true
			laws = append(laws, law)
		}
	}
	sort.Strings(laws)
	return laws
}

// formatVND renders an amount with thousands separators: 1500000 → "1,500,000".
func formatVND(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// stripTables blanks out markdown table pipes; plain and strict styles
// must stay free of table formatting.
func stripTables(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, "|") {
			lines[i] = strings.ReplaceAll(line, "|", " ")
		}
	}
	return strings.Join(lines, "\n")
}
