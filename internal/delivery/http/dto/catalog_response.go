package dto

type RoleResponse struct {
	Value       string `json:"value"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}
