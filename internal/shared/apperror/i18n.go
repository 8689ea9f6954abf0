package apperror

import "golang.org/x/text/language"

var supportedLanguages = []language.Tag{
	language.English, // first entry is the fallback
	language.Korean,
	language.Chinese,
	language.Russian,
	language.Spanish,
	language.Vietnamese,
	language.Polish,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var genericMessages = map[string]map[language.Tag]string{
	CodeBadRequest: {
		language.Korean:     "요청이 올바르지 않습니다",
		language.Chinese:    "请求无效",
		language.Russian:    "Некорректный запрос",
		language.Spanish:    "La solicitud no es válida",
		language.Vietnamese: "Yêu cầu không hợp lệ",
		language.Polish:     "Nieprawidłowe żądanie",
	},
	CodeUnauthorized: {
		language.Korean:     "로그인이 필요합니다",
		language.Chinese:    "需要登录",
		language.Russian:    "Требуется аутентификация",
		language.Spanish:    "Se requiere autenticación",
		language.Vietnamese: "Yêu cầu xác thực",
		language.Polish:     "Wymagane uwierzytelnienie",
	},
	CodeForbidden: {
		language.Korean:     "이 리소스에 대한 권한이 없습니다",
		language.Chinese:    "您无权访问此资源",
		language.Russian:    "Недостаточно прав для доступа к ресурсу",
		language.Spanish:    "No tiene permiso para acceder a este recurso",
		language.Vietnamese: "Bạn không có quyền truy cập tài nguyên này",
		language.Polish:     "Brak uprawnień do tego zasobu",
	},
	CodeNotFound: {
		language.Korean:     "리소스를 찾을 수 없습니다",
		language.Chinese:    "未找到资源",
		language.Russian:    "Ресурс не найден",
		language.Spanish:    "Recurso no encontrado",
		language.Vietnamese: "Không tìm thấy tài nguyên",
		language.Polish:     "Nie znaleziono zasobu",
	},
	CodeConflict: {
		language.Korean:     "이미 존재하는 리소스입니다",
		language.Chinese:    "资源冲突",
		language.Russian:    "Конфликт данных",
		language.Spanish:    "El recurso ya existe",
		language.Vietnamese: "Tài nguyên đã tồn tại",
		language.Polish:     "Zasób już istnieje",
	},
	CodeTooManyRequests: {
		language.Korean:     "요청이 너무 많습니다",
		language.Chinese:    "请求过多",
		language.Russian:    "Слишком много запросов",
		language.Spanish:    "Demasiadas solicitudes",
		language.Vietnamese: "Quá nhiều yêu cầu",
		language.Polish:     "Zbyt wiele żądań",
	},
	CodeServiceUnavailable: {
		language.Korean:     "일시적으로 서비스를 사용할 수 없습니다",
		language.Chinese:    "服务暂时不可用",
		language.Russian:    "Сервис временно недоступен",
		language.Spanish:    "Servicio no disponible temporalmente",
		language.Vietnamese: "Dịch vụ tạm thời không khả dụng",
		language.Polish:     "Usługa chwilowo niedostępna",
	},
	CodeInternalError: {
		language.Korean:     "예기치 않은 오류가 발생했습니다",
		language.Chinese:    "发生意外错误",
		language.Russian:    "Произошла непредвиденная ошибка",
		language.Spanish:    "Ocurrió un error inesperado",
		language.Vietnamese: "Đã xảy ra lỗi không mong muốn",
		language.Polish:     "Wystąpił nieoczekiwany błąd",
	},
}

// Localize picks the message for an Accept-Language header. English keeps the specific message.
func Localize(code, message, acceptLanguage string) string {
	if acceptLanguage == "" {
		return message
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return message
	}
	_, idx, confidence := languageMatcher.Match(tags...)
	if confidence == language.No || idx == 0 {
		return message
	}
	if localized, ok := genericMessages[code][supportedLanguages[idx]]; ok {
		return localized
	}
	return message
}
