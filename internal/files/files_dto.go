package files

import "time"

type Purpose string

const (
	PurposeDocument Purpose = "documents"
	PurposeAvatar   Purpose = "avatars"
	PurposePayslip  Purpose = "payslips"
	PurposeContract Purpose = "contracts"
)

type UploadURLRequest struct {
	CompanyID   string  `json:"company_id" binding:"omitempty,uuid"`
	Purpose     Purpose `json:"purpose" binding:"required,oneof=documents avatars payslips contracts"`
	Filename    string  `json:"filename" binding:"required,max=200"`
	ContentType string  `json:"content_type" binding:"required,max=100"`
}

type DownloadURLQuery struct {
	Key string `form:"key" binding:"required,max=512"`
}

type PresignedURL struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	Method      string    `json:"method"`
	ContentType string    `json:"content_type,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}
