package model

// Role is the coarse-grained user type carried inside tokens.
type Role string

const (
	RoleSeeker Role = "seeker"
	RoleHR     Role = "hr"
	RoleAdmin  Role = "admin"
)
