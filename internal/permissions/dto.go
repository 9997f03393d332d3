package permissions

// CreatePermissionRequest is the body of POST /api/permissions.
type CreatePermissionRequest struct {
	Key         string `json:"key" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdatePermissionRequest carries the fields of a partial update.
type UpdatePermissionRequest struct {
	Key         *string `json:"key" validate:"omitempty,max=64"`
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}
