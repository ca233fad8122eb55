package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedAdminPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with reference data",
	Long:  `Seed roles, admin permissions and a bootstrap admin user. Safe to re-run.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		roles := []struct {
			ID   int64
			Name string
			Desc string
		}{
			{1, "User", "Registered user with standard access"},
			{2, "Guest", "Default role for newly registered accounts"},
			{99, "Admin", "Full administrative access"},
		}

		for _, role := range roles {
			var exists int
			row := db.Raw("SELECT 1 FROM roles WHERE id = ?", role.ID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (id, name, description, created_at) VALUES (?, ?, ?, now())", role.ID, role.Name, role.Desc).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", role.Name, err)
			}
			fmt.Println("Seeded role:", role.Name)
		}

		permissions := []struct {
			RoleID int64
			Name   string
			Desc   string
		}{
			{99, "manage_users", "Can list and administer user accounts"},
			{99, "manage_roles", "Can administer roles and permissions"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE role_id = ? AND name = ?", p.RoleID, p.Name).Row()
			if err := row.Scan(&pid); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO permissions (role_id, name, description, created_at) VALUES (?, ?, ?, now())", p.RoleID, p.Name, p.Desc).Error; err != nil {
				log.Fatalf("failed to insert permission %s: %v", p.Name, err)
			}
			fmt.Println("Seeded permission:", p.Name)
		}

		adminUsername := "admin"
		adminEmail := "admin@example.com"

		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE username = ?", adminUsername).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists, nothing to do")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		if err := db.Exec(
			"INSERT INTO users (username, email, password_hash, full_name, is_active, role_id, created_at) VALUES (?, ?, ?, ?, true, 99, now())",
			adminUsername, adminEmail, string(hash), "Administrator",
		).Error; err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}

		fmt.Println("Seeded admin user:", adminUsername)
	},
}
