package dataset

import (
	"fmt"
	"strings"
)

const trafficSystemPrompt = "Bạn là trợ lý pháp lý Việt Nam, CHỈ trả lời về lĩnh vực luật giao thông " +
	"(đường bộ, đường sắt, đường thủy nội địa, hàng hải, hàng không trong phạm vi pháp luật VN). " +
	"Nếu câu hỏi ngoài phạm vi giao thông, hãy trả lời đúng một dòng: 'Ngoài phạm vi giao thông'. " +
	"Câu trả lời cần ngắn gọn, chính xác, nêu căn cứ pháp lý (tên văn bản, điều/khoản nếu có)."

const generalSystemPrompt = "Bạn là trợ lý pháp lý Việt Nam. Trả lời ngắn gọn, chính xác, dẫn chiếu " +
	"căn cứ pháp lý (tên văn bản, điều/khoản nếu có). Nếu không chắc, nói rõ."

// analysisHint structures free-text answers into the four sections the
// dataset rows are expected to follow.
const analysisHint = "Trả lời theo cấu trúc:\n" +
	"1) Phân tích hành vi\n2) Căn cứ pháp lý\n3) Mức phạt áp dụng\n4) Tổng hợp."

// DefaultSystemPrompt returns the system prompt for a domain.
func DefaultSystemPrompt(domain Domain) string {
	if domain == DomainTraffic {
		return trafficSystemPrompt
	}
	return generalSystemPrompt
}

// jsonInstruction tells the model to answer with the structured JSON shape
// instead of free text.
func jsonInstruction(domain Domain) string {
	domainLine := "Trong phạm vi pháp luật Việt Nam."
	if domain == DomainTraffic {
		domainLine = "CHỈ trong phạm vi luật giao thông Việt Nam (ưu tiên đường bộ)."
	}

	var b strings.Builder
	b.WriteString(domainLine)
	b.WriteString("\n")
	b.WriteString("Trả lời DUY NHẤT bằng JSON thuần (không Markdown, không bảng, không gạch đầu dòng) theo schema sau, không thêm văn bản ngoài JSON.\n")
	b.WriteString("YÊU CẦU: với mỗi vi phạm hãy đưa khung phạt tiền (fine_min_vnd, fine_max_vnd) và số tháng tước GPLX nếu có;\n")
	b.WriteString("đồng thời trong 'summary' phải có câu tổng hợp kiểu: 'Nếu vi phạm đồng thời, tiền phạt được cộng dồn (tổng từ X đến Y đồng), và có nguy cơ bị tước GPLX tối đa Z tháng.'\n")
	b.WriteString("{\n")
	b.WriteString("  \"question\": string,\n")
	b.WriteString("  \"violations\": [ { \"name\": string, \"details\": string } ],\n")
	b.WriteString("  \"citations\": [ { \"law\": string, \"article\": string, \"clause\": string } ],\n")
	b.WriteString("  \"penalties\": [ { \"violation\": string, \"fine_min_vnd\": number, \"fine_max_vnd\": number, \"license_suspension_months\": number | 0 } ],\n")
	b.WriteString("  \"summary\": string\n")
	b.WriteString("}\n")
	b.WriteString("Nếu câu hỏi ngoài phạm vi, trả về JSON: {\"summary\": \"Ngoài phạm vi giao thông\", \"violations\":[], \"citations\":[], \"penalties\":[], \"question\": q}.")
	return b.String()
}

// BuildPrompts assembles the (system, user) prompt pair for one question.
// Pure: same inputs always produce the same prompts.
func BuildPrompts(question string, cfg Config) (system, user string) {
	system = cfg.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt(cfg.Domain)
	}

	if cfg.Structured {
		user = fmt.Sprintf("%s\n\nQ: %s", jsonInstruction(cfg.Domain), question)
		return system, user
	}

	user = fmt.Sprintf("%s\n\n%s", question, analysisHint)
	return system, user
}
