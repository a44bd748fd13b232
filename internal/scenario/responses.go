package scenario

import (
	"fmt"
	"strings"

	"sosai/internal/domain"
)

// Per-scenario contact reference data, keyed by Korean display name.
var scenarioContacts = map[string]domain.CrisisContact{
	"학교폭력": {
		Organization: "교육부 / 시도교육청",
		Phone:        "117 (학교폭력 신고센터)",
		URL:          "https://www.schoolsafe.kr/",
	},
	"가정폭력": {
		Organization: "여성가족부",
		Phone:        "1366 (여성긴급전화, 24시간 운영)",
		URL:          "https://www.women1366.kr/",
	},
	"자살위험": {
		Organization: "보건복지부 / 중앙자살예방센터",
		Phone:        "1393 (자살예방 상담전화)",
		URL:          "https://www.spc.go.kr/",
	},
	"기타": {
		Organization: "보건복지부 상담센터",
		Phone:        "129 (보건복지 상담센터)",
		URL:          "http://www.129.go.kr/",
	},
}

// ContactInfo is a pure lookup by Korean display name, defaulting to the
// generic record for unrecognized input.
func ContactInfo(displayName string) domain.CrisisContact {
	if c, ok := scenarioContacts[displayName]; ok {
		return c
	}
	return scenarioContacts["기타"]
}

const undeterminedResponse = "현재 상황을 파악하기 어렵습니다. 더 자세한 설명을 해주시면 도움을 드릴 수 있습니다."

// GenerateResponse emits one guidance block per detected category, framed by
// risk level, joined with blank lines. Category order is the caller's
// detection order, so identical inputs produce identical output.
func GenerateResponse(categories []string, risk domain.RiskLevel) string {
	if len(categories) == 0 {
		return undeterminedResponse
	}

	blocks := make([]string, 0, len(categories))
	for _, category := range categories {
		name := DisplayName(category)
		contacts := ContactInfo(name)

		switch risk {
		case domain.RiskHigh:
			blocks = append(blocks, fmt.Sprintf(`🚨 %s 상황이 의심됩니다. 너무 힘들고 두려운 상황이었을 것 같아요.

당신은 혼자가 아니에요. 지금 당장 도움을 드릴 수 있도록 담당자와 연결해드릴게요.

📩 가능하시다면 이름과 연락 가능한 번호를 입력해주세요.
전문가가 직접 연락드릴 수 있도록 하겠습니다.
(개인정보는 암호화되어 안전하게 처리됩니다)

%s에서도 24시간 긴급 지원을 제공하고 있습니다.
전화: %s
웹사이트: %s`, name, contacts.Organization, contacts.Phone, contacts.URL))

		case domain.RiskMid:
			blocks = append(blocks, fmt.Sprintf(`⚠️ %s 상황이 의심됩니다. 힘든 상황이었을 것 같아요.

혼자서 견디지 마세요. 도움을 요청하는 것은 용기 있는 행동입니다.

📩 필요하시다면 이름과 연락 가능한 번호를 입력해주세요.
담당자가 직접 연락드려 도움을 제공해드리겠습니다.
(개인정보는 암호화되어 안전하게 처리됩니다)

%s에서 전문적인 상담을 제공하고 있습니다.
전화: %s
웹사이트: %s`, name, contacts.Organization, contacts.Phone, contacts.URL))

		default:
			blocks = append(blocks, fmt.Sprintf(`ℹ️ %s 관련 도움이 필요하신가요?

지금의 기분을 잘 표현해주셨네요. 감정을 표현하는 것은 건강한 일입니다.

📩 필요하시다면 이름과 연락 가능한 번호를 입력해주세요.
담당자가 연락드려 도움을 제공해드리겠습니다.
(개인정보는 암호화되어 안전하게 처리됩니다)

%s에서 관련 정보와 상담을 제공하고 있습니다.
전화: %s
웹사이트: %s`, name, contacts.Organization, contacts.Phone, contacts.URL))
		}
	}

	return strings.Join(blocks, "\n\n")
}
