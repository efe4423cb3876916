package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,
	language.Korean,
}

var matcher = language.NewMatcher(supported)

// Korean catalog keyed by error code. English messages live on the errors themselves.
var korean = map[string]string{
	"SERVICE_UNAVAILABLE": "일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
	"VALIDATION_ERROR":    "입력값이 올바르지 않습니다.",
	"BAD_REQUEST":         "잘못된 요청입니다.",
	"RATE_LIMITED":        "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",

	"TOKEN_REQUIRED":             "인증 토큰이 필요합니다.",
	"INVALID_TOKEN":              "유효하지 않은 인증 토큰입니다. 다시 로그인해주세요.",
	"VERIFICATION_CODE_REQUIRED": "인증 코드를 입력해주세요.",
	"INVALID_VERIFICATION_CODE":  "인증 코드가 올바르지 않거나 만료되었습니다.",

	"USER_NOT_FOUND":      "등록되지 않은 이메일입니다. 관리자에게 문의하세요.",
	"ADMIN_ROLE_REQUIRED": "허용되지 않은 직급입니다.",
	"INVALID_LIST_QUERY":  "유효하지 않은 JSON 형식입니다.",

	"ATTENDANCE_NOT_FOUND":    "출근 기록을 찾을 수 없습니다.",
	"ATTENDANCE_NOT_OWNED":    "본인의 출근 기록만 수정할 수 있습니다.",
	"ALREADY_CLOCKED_IN":      "이미 오늘 출근 처리가 완료되었습니다.",
	"ALREADY_CLOCKED_OUT":     "이미 퇴근 처리가 완료되었습니다.",
	"NOT_CLOCKED_IN":          "출근 시간이 없습니다.",
	"CLOCKOUT_BEFORE_CLOCKIN": "퇴근 시간은 출근 시간보다 빠를 수 없습니다.",

	"LEAVE_TYPES_REQUIRED":    "휴가 유형 데이터가 필요합니다.",
	"LEAVE_TYPE_IDS_REQUIRED": "삭제할 id 목록이 필요합니다.",
	"NO_VALID_LEAVE_TYPE_IDS": "유효한 id가 없습니다.",
	"LEAVE_TYPE_NOT_FOUND":    "휴가 유형을 찾을 수 없습니다.",
	"LEAVE_TYPE_EXISTS":       "이미 존재하는 휴가 유형입니다.",
	"LEAVE_TYPE_IN_USE":       "사용 중인 휴가 유형은 삭제할 수 없습니다.",
	"LEAVE_POLICY_NOT_FOUND":  "해당 년도의 기본 연차가 존재하지 않습니다.",
	"LEAVE_REQUEST_NOT_FOUND": "휴가 신청을 찾을 수 없습니다.",
	"LEAVE_ALREADY_PROCESSED": "이미 처리된 휴가 신청입니다.",
	"INVALID_LEAVE_RANGE":     "종료일은 시작일보다 빠를 수 없습니다.",
	"LEAVE_RANGE_TOO_LONG":    "한 번에 366일을 초과하여 휴가를 신청할 수 없습니다.",

	"VERIFICATION_DELIVERY_FAILED": "인증 코드 발송에 실패하였습니다. 잠시 후 다시 시도해주세요.",

	// Success messages
	"VERIFICATION_CODE_SENT": "인증 코드가 발송되었습니다.",
	"LOGIN_SUCCESS":          "로그인에 성공했습니다.",
	"CLOCK_IN_SUCCESS":       "출근 완료! 오늘도 힘내세요 ☺️",
	"CLOCK_OUT_SUCCESS":      "퇴근 완료! 오늘 하루 수고하셨습니다 😊",
	"ATTENDANCE_FETCHED":     "출퇴근 정보를 조회했습니다.",
	"MONTHLY_SUMMARY":        "월간 근태 요약을 조회했습니다.",
	"LEAVE_TYPES_FETCHED":    "휴가 유형 목록을 조회했습니다.",
	"LEAVE_TYPES_UPSERTED":   "휴가 유형을 처리했습니다.",
	"LEAVE_TYPES_DELETED":    "휴가 유형을 삭제했습니다.",
	"LEAVE_POLICY_FETCHED":   "기본 연차를 불러왔습니다.",
	"LEAVE_POLICY_CREATED":   "기본 연차가 존재하지 않아 기본값으로 생성하였습니다.",
	"LEAVE_POLICY_UPDATED":   "기본 연차를 수정하였습니다.",
	"LEAVES_FETCHED":         "휴가 내역을 조회했습니다.",
	"LEAVE_REQUESTED":        "휴가 신청이 완료되었습니다.",
	"LEAVE_APPROVED":         "휴가 신청을 승인했습니다.",
	"LEAVE_REJECTED":         "휴가 신청을 반려했습니다.",
}

// Translator renders error messages in the configured locale.
type Translator struct {
	tag language.Tag
}

// NewTranslator picks the closest supported language for locale, falling back to English.
func NewTranslator(locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		return &Translator{tag: language.English}
	}
	_, idx, _ := matcher.Match(tag)
	return &Translator{tag: supported[idx]}
}

// Language returns the selected language tag.
func (t *Translator) Language() language.Tag {
	if t == nil {
		return language.English
	}
	return t.tag
}

// Message returns the localized message for code, or fallback when no translation exists.
func (t *Translator) Message(code, fallback string) string {
	if t == nil || t.tag != language.Korean {
		return fallback
	}
	if msg, ok := korean[code]; ok {
		return msg
	}
	return fallback
}
