package dataset

import (
	"strings"
	"testing"
)

func sampleAnswer() *Answer {
	return &Answer{
		Question: "Vượt đèn đỏ và không đội mũ bảo hiểm thì bị xử lý thế nào?",
		Violations: []Violation{
			{Name: "Vượt đèn đỏ", Details: "Không chấp hành hiệu lệnh của đèn tín hiệu giao thông."},
			{Name: "Không đội mũ bảo hiểm", Details: "Người điều khiển xe máy không đội mũ bảo hiểm."},
		},
		Citations: []Citation{
			{Law: "Nghị định 100/2019/NĐ-CP", Article: "Điều 6", Clause: "Khoản 4"},
		},
		Penalties: []Penalty{
			{Violation: "Vượt đèn đỏ", FineMinVND: 800000, FineMaxVND: 1000000, SuspensionMonths: 2},
			{Violation: "Không đội mũ bảo hiểm", FineMinVND: 400000, FineMaxVND: 600000},
		},
		Summary: "Nếu vi phạm đồng thời, tiền phạt được cộng dồn.",
	}
}

func TestRender_Idempotent(t *testing.T) {
	a := sampleAnswer()
	for _, style := range []Style{StylePlain, StyleMarkdown, StyleStrict} {
		first := Render(a, style)
		second := Render(a, style)
		if first != second {
			t.Fatalf("style %s: rendering is not deterministic", style)
		}
	}
}

func TestRender_PlainSections(t *testing.T) {
	out := Render(sampleAnswer(), StylePlain)

	for _, want := range []string{
		"Câu hỏi: Vượt đèn đỏ",
		"1) Hành vi vi phạm:",
		"* Vượt đèn đỏ: Không chấp hành hiệu lệnh",
		"2) Căn cứ pháp lý:",
		"* Nghị định 100/2019/NĐ-CP, Điều 6, Khoản 4",
		"3) Mức phạt áp dụng:",
		"* Vượt đèn đỏ: phạt 800,000–1,000,000 VND, tước GPLX 2 tháng",
		"4) Tổng hợp:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plain output missing %q\n%s", want, out)
		}
	}
}

func TestRender_MarkdownUsesDashes(t *testing.T) {
	out := Render(sampleAnswer(), StyleMarkdown)
	if !strings.Contains(out, "- Vượt đèn đỏ:") {
		t.Fatalf("markdown output missing dash bullet:\n%s", out)
	}
	if strings.Contains(out, "* Vượt đèn đỏ:") {
		t.Fatalf("markdown output should not use star bullets:\n%s", out)
	}
}

func TestRender_StrictNumbersViolations(t *testing.T) {
	a := &Answer{Violations: []Violation{{Name: "x"}, {Name: "y"}}}
	out := Render(a, StyleStrict)
	if !strings.Contains(out, "1. x\n2. y") {
		t.Fatalf("strict output should number violations:\n%s", out)
	}
}

func TestRender_StrictPenaltiesAndTotals(t *testing.T) {
	out := Render(sampleAnswer(), StyleStrict)

	for _, want := range []string{
		"Đối với tình huống:",
		"Theo Luật Giao thông đường bộ Việt Nam, Nghị định 100/2019/NĐ-CP, xử lý như sau:",
		"1. Vượt đèn đỏ",
		"Mức phạt tiền: từ 800,000 – 1,000,000 đồng.",
		"Hình phạt bổ sung: có thể bị tước Giấy phép lái xe 2 tháng.",
		"2. Không đội mũ bảo hiểm",
		"Căn cứ: Nghị định 100/2019/NĐ-CP, Điều 6, Khoản 4.",
		"(tổng khoảng 1,200,000 – 1,600,000 đồng)",
		"và có nguy cơ bị tước GPLX tối đa 2 tháng.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("strict output missing %q\n%s", want, out)
		}
	}
}

func TestRender_EmptyViolations(t *testing.T) {
	a := &Answer{Summary: "Ngoài phạm vi giao thông"}
	out := Render(a, StylePlain)
	if !strings.Contains(out, "* Không xác định vi phạm hoặc ngoài phạm vi giao thông.") {
		t.Fatalf("plain output missing out-of-scope marker:\n%s", out)
	}
}

func TestRender_PlainStripsTables(t *testing.T) {
	a := &Answer{Summary: "| Hành vi | Mức phạt |"}
	if out := Render(a, StylePlain); strings.Contains(out, "|") {
		t.Fatalf("plain output should strip pipes:\n%s", out)
	}
	if out := Render(a, StyleMarkdown); !strings.Contains(out, "|") {
		t.Fatalf("markdown output should keep pipes:\n%s", out)
	}
	if out := Render(a, StyleStrict); strings.Contains(out, "|") {
		t.Fatalf("strict output should strip pipes:\n%s", out)
	}
}

func TestFormatVND(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		800000:   "800,000",
		1500000:  "1,500,000",
		12345678: "12,345,678",
	}
	for n, want := range cases {
		if got := formatVND(n); got != want {
			t.Errorf("formatVND(%d) = %q, want %q", n, got, want)
		}
	}
}
