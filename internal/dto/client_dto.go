package dto

type GetCoachResponse struct {
	CoachName  *string `json:"coachName"`
	CoachEmail *string `json:"coachEmail"`
}

type UpdateCoachRequest struct {
	CoachName  *string `json:"coachName" validate:"omitempty,max=255"`
	CoachEmail *string `json:"coachEmail" validate:"omitempty,email"`
}
