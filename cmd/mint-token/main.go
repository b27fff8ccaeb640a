package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/tutorlane/assess-backend/internal/config"
	"github.com/tutorlane/assess-backend/internal/service"
	"golang.org/x/term"
)

// Development helper: mints author/respondent JWTs for exercising the API.
// Identity issuance in production belongs to the surrounding platform.
func main() {
	cfg := config.Load()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Mint Access Token ===")

	// Role
	fmt.Print("Role (author/respondent): ")
	roleStr, _ := reader.ReadString('\n')
	roleStr = strings.TrimSpace(roleStr)
	role := service.TokenRole(roleStr)
	if role != service.RoleAuthor && role != service.RoleRespondent {
		fmt.Println("Error: role must be 'author' or 'respondent'")
		return
	}

	// User ID
	fmt.Print("User ID: ")
	userID, _ := reader.ReadString('\n')
	userID = strings.TrimSpace(userID)
	if userID == "" {
		fmt.Println("Error: user ID is required")
		return
	}

	// Owner ID (respondent only)
	ownerID := ""
	if role == service.RoleRespondent {
		fmt.Print("Owner (author) ID: ")
		ownerID, _ = reader.ReadString('\n')
		ownerID = strings.TrimSpace(ownerID)
		if ownerID == "" {
			fmt.Println("Error: respondent tokens require an owner ID")
			return
		}
	}

	// Display name
	fmt.Print("Display name: ")
	displayName, _ := reader.ReadString('\n')
	displayName = strings.TrimSpace(displayName)

	// Signing secret: from env/config, otherwise prompt without echo.
	if os.Getenv("JWT_SECRET") == "" {
		fmt.Print("JWT secret: ")
		byteSecret, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			fmt.Println("\nError reading secret")
			return
		}
		fmt.Println()
		secret := strings.TrimSpace(string(byteSecret))
		if secret == "" {
			fmt.Println("Error: JWT secret is required")
			return
		}
		cfg.JWTSecret = secret
	}

	authService := service.NewAuthService(cfg)
	token, err := authService.GenerateToken(role, userID, ownerID, displayName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\n%s\n", token)
}
