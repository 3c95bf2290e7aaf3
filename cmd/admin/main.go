// Command admin provisions and manages admin accounts for the
// portfolio backend.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin create <email> <password> [name]   - Create admin account")
		fmt.Println("  go run ./cmd/admin promote <email>                    - Promote user to admin")
		fmt.Println("  go run ./cmd/admin deactivate <email>                 - Deactivate account")
		fmt.Println("  go run ./cmd/admin activate <email>                   - Reactivate account")
		fmt.Println("  go run ./cmd/admin list                               - List all accounts")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "create":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run ./cmd/admin create <email> <password> [name]")
			os.Exit(1)
		}
		name := "Admin"
		if len(os.Args) > 4 {
			name = os.Args[4]
		}
		createAdmin(db, os.Args[2], os.Args[3], name)

	case "promote":
		requireEmailArg()
		setField(db, os.Args[2], "role", models.RoleAdmin, "promoted to admin")

	case "deactivate":
		requireEmailArg()
		setField(db, os.Args[2], "is_active", false, "deactivated")

	case "activate":
		requireEmailArg()
		setField(db, os.Args[2], "is_active", true, "activated")

	case "list":
		listUsers(db)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func requireEmailArg() {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: go run ./cmd/admin %s <email>\n", os.Args[1])
		os.Exit(1)
	}
}

func createAdmin(db *gorm.DB, email, password, name string) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Fatalf("Account %s already exists (use promote instead)", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Lookup failed: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatalf("Password hashing failed: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Create failed: %v", err)
	}
	fmt.Printf("Admin account created: %s (id=%d)\n", email, user.ID)
}

func setField(db *gorm.DB, email, column string, value interface{}, action string) {
	email = strings.ToLower(strings.TrimSpace(email))

	result := db.Model(&models.User{}).Where("email = ?", email).Update(column, value)
	if result.Error != nil {
		log.Fatalf("Update failed: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Fatalf("No account found for %s", email)
	}
	fmt.Printf("Account %s %s\n", email, action)
}

func listUsers(db *gorm.DB) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		log.Fatalf("List failed: %v", err)
	}

	fmt.Printf("%-5s %-30s %-8s %-8s %s\n", "ID", "EMAIL", "ROLE", "ACTIVE", "NAME")
	for _, u := range users {
		fmt.Printf("%-5d %-30s %-8s %-8v %s\n", u.ID, u.Email, u.Role, u.IsActive, u.Name)
	}
}
