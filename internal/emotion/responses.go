package emotion

import (
	"fmt"

	"sosai/internal/domain"
)

// Crisis contact reference data, keyed by Korean category name. Loaded once,
// never mutated.
var crisisContacts = map[string]domain.CrisisContact{
	"자살 및 자해": {
		Organization: "보건복지부 / 중앙자살예방센터",
		Phone:        "1393 (자살예방 상담전화)",
		URL:          "https://www.spc.go.kr/",
	},
	"가정폭력": {
		Organization: "여성가족부",
		Phone:        "1366 (여성긴급전화, 24시간 운영)",
		URL:          "https://www.women1366.kr/",
	},
	"학교폭력": {
		Organization: "교육부 / 시도교육청",
		Phone:        "117 (학교폭력 신고센터)",
		URL:          "https://www.schoolsafe.kr/",
	},
	"정신건강": {
		Organization: "보건복지부 / 지역 정신건강복지센터",
		Phone:        "1577-0199 (정신건강상담전화)",
		URL:          "https://www.mentalhealth.go.kr/",
	},
}

// CrisisContact returns the hotline record for a Korean category name.
func CrisisContact(category string) (domain.CrisisContact, bool) {
	c, ok := crisisContacts[category]
	return c, ok
}

// GenerateResponse selects the supportive reply for a risk level. The text
// and scores are accepted for interface parity with the analysis pipeline
// but do not influence template selection.
func GenerateResponse(text string, risk domain.RiskLevel, scores domain.EmotionScores) string {
	_ = text
	_ = scores

	switch risk {
	case domain.RiskHigh:
		contacts := crisisContacts["자살 및 자해"]
		return fmt.Sprintf(`지금 마음이 많이 힘드시군요. 혼자서 견디기 어려운 상황이시라면,
전문가의 도움을 받는 것이 좋습니다.

%s에서 24시간 상담을 제공하고 있습니다.
전화: %s
웹사이트: %s

지금 바로 도움을 요청하시는 것을 권장드립니다.
당신의 이야기를 들어줄 전문가가 기다리고 있습니다.`, contacts.Organization, contacts.Phone, contacts.URL)

	case domain.RiskMid:
		contacts := crisisContacts["정신건강"]
		return fmt.Sprintf(`지금 마음이 많이 무거워 보이네요.
이런 감정을 느끼는 것은 당연한 일입니다.
함께 이야기를 나누면서 조금씩 나아가보면 어떨까요?

%s에서 전문적인 상담을 제공하고 있습니다.
전화: %s
웹사이트: %s

혼자서 견디지 마시고, 도움을 요청하시는 것을 권장드립니다.`, contacts.Organization, contacts.Phone, contacts.URL)

	default:
		return `지금의 기분을 잘 표현해주셨네요.
감정을 표현하는 것은 건강한 일입니다.
계속해서 이야기를 나누며 마음을 나누어보면 어떨까요?`
	}
}
