package project

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerID   *int64  `json:"manager_id"`
}

type GrantPermissionRequest struct {
	UserID     int64  `json:"user_id" binding:"required"`
	Permission string `json:"permission"`
}
