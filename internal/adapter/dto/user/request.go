package user

// CreateUserRequest creates a password account
type CreateUserRequest struct {
	Username   string  `json:"username" validate:"required,username"`
	Name       string  `json:"name" validate:"required,max=255"`
	Password   string  `json:"password" validate:"required,min=8,max=72"`
	Role       string  `json:"role" validate:"required,oneof=admin evaluator salesperson guest"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
}

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin evaluator salesperson guest"`
}

// ResetPasswordRequest sets a new password on behalf of a user
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}
