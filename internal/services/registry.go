package services

import "findthem_backend/internal/email"

// ServiceContainer groups the application services for wiring.
type ServiceContainer struct {
	AuthService   AuthService
	UserService   UserService
	CaseService   CaseService
	UploadService UploadService
	EmailService  email.Provider
}
