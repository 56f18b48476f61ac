package main

import (
	"fmt"
	"net/http"

	"github.com/peopledesk/peopledesk-api/internal/config"
	appHTTP "github.com/peopledesk/peopledesk-api/internal/handler/http"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
	"github.com/peopledesk/peopledesk-api/internal/pkg/jwt"
	"github.com/peopledesk/peopledesk-api/internal/pkg/oauth"
	"github.com/peopledesk/peopledesk-api/internal/repository/postgresql"
	activityService "github.com/peopledesk/peopledesk-api/internal/service/activity"
	attendanceService "github.com/peopledesk/peopledesk-api/internal/service/attendance"
	authService "github.com/peopledesk/peopledesk-api/internal/service/auth"
	leaveService "github.com/peopledesk/peopledesk-api/internal/service/leave"
	profileService "github.com/peopledesk/peopledesk-api/internal/service/profile"
	roleService "github.com/peopledesk/peopledesk-api/internal/service/role"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	identityRepo := postgresql.NewIdentityRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.GoogleOAuthEnabled() {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	activityLogger := activityService.NewActivityLogger(activityRepo, roleRepo)
	authSvc := authService.NewAuthService(db, identityRepo, roleRepo, profileRepo, jwtService, googleService)
	profileSvc := profileService.NewProfileService(profileRepo, roleRepo, activityLogger)
	roleSvc := roleService.NewRoleService(roleRepo, activityLogger)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, roleRepo, activityLogger)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, roleRepo, activityLogger)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Profile:    appHTTP.NewProfileHandler(profileSvc),
		Role:       appHTTP.NewRoleHandler(roleSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Activity:   appHTTP.NewActivityHandler(activityLogger),
	}

	router := appHTTP.NewRouter(jwtService, handlers, cfg.App.FrontendURL)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
