package authhandler

type SignupBody struct {
	Name     string `json:"name"     binding:"required" example:"Priya Teacher"`
	Email    string `json:"email"    binding:"required,email" example:"priya@example.com"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"     binding:"required,oneof=teacher student"`
} // @name SignupRequest

type LoginBody struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
} // @name LoginRequest

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
