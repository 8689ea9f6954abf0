package performance

import (
	"strings"
	"time"

	"hr-hub/internal/shared/request"
)

const dateLayout = "2006-01-02"

type CreateCycleRequest struct {
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
	Name      string `json:"name" binding:"required,min=3,max=120"`
	StartsOn  string `json:"starts_on" binding:"required,datetime=2006-01-02"`
	EndsOn    string `json:"ends_on" binding:"required,datetime=2006-01-02"`
}

func (r *CreateCycleRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type AdvanceCycleRequest struct {
	ToStatus Status `json:"to_status" binding:"required,oneof=ACTIVE EVAL_OPEN CALIBRATION CLOSED"`
}

type ListCyclesQuery struct {
	request.PageQuery
	Status Status `form:"status" binding:"omitempty,oneof=DRAFT ACTIVE EVAL_OPEN CALIBRATION CLOSED"`
}

type CycleResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	StartsOn  string    `json:"starts_on"`
	EndsOn    string    `json:"ends_on"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
