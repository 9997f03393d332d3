package users

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Email    string   `json:"email" validate:"required,email,max=320"`
	Password string   `json:"password" validate:"omitempty,min=8,max=72"`
	Roles    []string `json:"roles" validate:"dive,required"`
	Provider string   `json:"provider" validate:"omitempty,oneof=local google github"`
	OAuthID  string   `json:"oauth_id" validate:"max=200"`
}

// UpdateUserRequest carries the fields of a partial update.
type UpdateUserRequest struct {
	Name     *string   `json:"name" validate:"omitempty,max=200"`
	Email    *string   `json:"email" validate:"omitempty,email,max=320"`
	Password *string   `json:"password" validate:"omitempty,min=8,max=72"`
	Roles    *[]string `json:"roles" validate:"omitempty,dive,required"`
	Provider *string   `json:"provider" validate:"omitempty,oneof=local google github"`
	OAuthID  *string   `json:"oauth_id" validate:"omitempty,max=200"`
}
