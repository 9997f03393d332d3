package roles

// CreateRoleRequest is the body of POST /api/roles.
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Key         string   `json:"key" validate:"required,max=64"`
	Description string   `json:"description" validate:"max=2000"`
	Permissions []string `json:"permissions" validate:"dive,required"`
}

// UpdateRoleRequest carries the fields of a partial update.
type UpdateRoleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=200"`
	Key         *string   `json:"key" validate:"omitempty,max=64"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,required"`
}
