package request

type UserListRequest struct {
	PaginatedRequest
	Role    string `json:"role" validate:"omitempty,oneof=customer driver vendor admin"`
	Blocked *bool  `json:"blocked"`
	Search  string `json:"search" validate:"omitempty,max=100"`
}

type BlockUserRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer driver vendor admin"`
}
