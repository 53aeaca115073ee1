package api

type registerInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type forgotPasswordInput struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordInput struct {
	Token           string `json:"token" form:"token"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

type workspaceCreateInput struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Logo        string `json:"logo" form:"logo"`
}

type workspaceUpdateInput struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	Logo        *string `json:"logo" form:"logo"`
}

type memberRoleInput struct {
	Role string `json:"role" form:"role"`
}

type invitationCreateInput struct {
	Email string `json:"email" form:"email"`
	Role  string `json:"role" form:"role"`
}
