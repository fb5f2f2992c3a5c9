package config

import (
	"log"
	"os"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/core/authz"
	"transit-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedMasterData seeds roles, locations and the bootstrap admin account
func SeedMasterData(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}

	if err := seedLocations(db); err != nil {
		return err
	}

	if err := seedBootstrapAdmin(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedRoles(db *gorm.DB) error {
	for _, name := range authz.AllRoles {
		var existing models.Role
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&models.Role{Name: name}).Error; err != nil {
					return err
				}
				log.Printf("   Created role: %s", name)
			}
		}
	}
	return nil
}

func seedLocations(db *gorm.DB) error {
	locations := []models.Location{
		{Code: "HQ", Name: "Head Office"},
		{Code: "NORTH", Name: "North Depot"},
		{Code: "SOUTH", Name: "South Depot"},
	}

	for _, loc := range locations {
		var existing models.Location
		if err := db.Where("code = ?", loc.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&loc).Error; err != nil {
					return err
				}
				log.Printf("   Created location: %s", loc.Name)
			}
		}
	}
	return nil
}

// seedBootstrapAdmin creates the initial Super Admin account when
// BOOTSTRAP_ADMIN_EMAIL and BOOTSTRAP_ADMIN_PASSWORD are set and the
// user does not exist yet. Provisioning of regular users happens
// through external admin tooling.
func seedBootstrapAdmin(db *gorm.DB) error {
	email := os.Getenv("BOOTSTRAP_ADMIN_EMAIL")
	plain := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	if email == "" || plain == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return err
	}

	var superAdmin models.Role
	if err := db.Where("name = ?", authz.RoleSuperAdmin).First(&superAdmin).Error; err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashed,
		IsActive: true,
		Roles:    []models.Role{superAdmin},
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("   Created bootstrap admin: %s", email)
	return nil
}
