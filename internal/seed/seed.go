// Package seed holds the default documents written to the store on first
// access, so a fresh deployment comes up with two cohorts to explore.
package seed

import (
	"time"

	"github.com/squadran/buildforge/internal/app/models"
)

// SuperAdmin returns the fixed template for the platform operator
// profile, created lazily on first super-admin login.
func SuperAdmin() models.UserProfile {
	return models.UserProfile{
		UID:           "super_admin",
		InstitutionID: models.PlatformInstitutionID,
		Name:          "Squadran CEO",
		Role:          models.RoleSuperAdmin,
		Avatar:        "https://ui-avatars.com/api/?name=CEO",
		Blocked:       false,
	}
}

// Institutions returns the default cohort set.
func Institutions() []models.Institution {
	return []models.Institution{
		{
			ID:          "cohort_alpha",
			Name:        "BuildForge Alpha",
			Code:        "ALPHA",
			Logo:        "https://cdn-icons-png.flaticon.com/512/3413/3413535.png",
			Description: "First Cohort: Forging ideas into MVP.",
			ThemeColor:  "#FF725E",
		},
		{
			ID:          "cohort_beta",
			Name:        "BuildForge Beta",
			Code:        "BETA",
			Logo:        "https://cdn-icons-png.flaticon.com/512/2997/2997274.png",
			Description: "Advanced Product Acceleration.",
			ThemeColor:  "#6C63FF",
		},
	}
}

// Users returns the default profiles across the seed cohorts.
func Users() []models.UserProfile {
	return []models.UserProfile{
		SuperAdmin(),
		{
			UID:           "founder_01",
			InstitutionID: "cohort_alpha",
			Name:          "Rohan (Founder)",
			Email:         "rohan@buildforge.io",
			Role:          models.RoleFounder,
			StartupName:   "DecentraVote",
			Avatar:        "https://picsum.photos/seed/student1/200",
			Bio:           "Building a decentralized voting app.",
		},
		{
			UID:           "admin_alpha",
			InstitutionID: "cohort_alpha",
			Name:          "Alpha Lead",
			Email:         "lead@alpha.io",
			Role:          models.RoleLead,
			Avatar:        "https://ui-avatars.com/api/?name=Lead",
		},
		{
			UID:           "dev_beta_1",
			InstitutionID: "cohort_beta",
			Name:          "Vikram (Dev)",
			Email:         "vikram@buildforge.io",
			Role:          models.RoleDeveloper,
			Skills:        "React, Node.js",
			Avatar:        "https://picsum.photos/seed/iit1/200",
			Bio:           "Full Stack Developer looking for projects.",
		},
	}
}

// Posts returns the default feed entries for the seed cohorts.
func Posts() []models.Post {
	now := time.Now().UnixMilli()
	return []models.Post{
		{
			ID:            "post_alpha_1",
			InstitutionID: "cohort_alpha",
			AuthorID:      "admin_alpha",
			AuthorName:    "Alpha Lead",
			AuthorRole:    models.RoleLead,
			Title:         "Demo Day: Project Delivery",
			Content:       "Join us for the final project delivery showcase.",
			Timestamp:     now - 100000,
			Likes:         150,
			Comments:      []models.Comment{},
			Status:        models.PostStatusVerified,
			Type:          models.PostTypeDelivery,
		},
		{
			ID:            "post_beta_1",
			InstitutionID: "cohort_beta",
			AuthorID:      "dev_beta_1",
			AuthorName:    "Vikram (Dev)",
			AuthorRole:    models.RoleDeveloper,
			Title:         "Smart Canteen App",
			Content:       "We are building a queue management system for the canteen.",
			Timestamp:     now - 50000,
			Likes:         20,
			Comments:      []models.Comment{},
			Status:        models.PostStatusVerified,
			Type:          models.PostTypeIdeaSubmission,
			MVP: &models.MVPData{
				Description: "Mobile App (Flutter) + Node.js Backend for real-time order tracking.",
				TechStack:   []string{"Flutter", "Node.js", "Firebase"},
				DocLink:     "#",
				Status:      models.MVPStatusReady,
			},
			Applicants: []string{"dev_beta_1"},
			Team:       []string{"dev_beta_1"},
		},
	}
}
