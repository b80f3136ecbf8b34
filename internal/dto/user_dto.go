package dto

type ListUsersQuery struct {
	Skip   int    `query:"skip" validate:"omitempty,min=0"`
	Take   int    `query:"take" validate:"omitempty,min=1,max=100"`
	Search string `query:"search"`
	SortBy string `query:"sort_by"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin customer seller"`
}

type ListUsersResponse struct {
	Data  []UserResponse `json:"data"`
	Total int64          `json:"total"`
}
