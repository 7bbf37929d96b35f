package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler    healthHandler
	authHandler      authHandler
	projectHandler   projectHandler
	blogHandler      blogHandler
	tagHandler       tagHandler
	dashboardHandler dashboardHandler
	uploadHandler    *uploadHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Unauthorized"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"slug"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// MessageResponse is returned by operations that have no entity to return
type MessageResponse struct {
	Message string `json:"message" example:"Project deleted successfully"`
}

// LoginResponse carries the admin token
type LoginResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token"`
}

// HealthResponse reports liveness and how long the process has been up
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"3h2m1s"`
}

// UploadResponse holds the public URL of a stored image
type UploadResponse struct {
	URL string `json:"url"`
}
