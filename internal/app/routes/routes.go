package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/squadran/buildforge/internal/app/controllers"
	"github.com/squadran/buildforge/internal/app/models"
	"github.com/squadran/buildforge/internal/app/models/dto"
	"github.com/squadran/buildforge/internal/middleware"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	institutionController *controllers.InstitutionController,
	postController *controllers.PostController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/super-admin/login", authController.SuperAdminLogin)
		auth.POST("/lead/login", authController.LeadLogin)
		auth.POST("/login", authController.Login)
		auth.POST("/register/founder", authController.RegisterFounder)
		auth.POST("/register/developer", authController.RegisterDeveloper)
	}

	// --- Public Institution routes ---
	// Cohort discovery happens before the user has a session.
	institutions := v1.Group("/institutions")
	{
		institutions.GET("", institutionController.ListInstitutions)
		institutions.GET("/code/:code", institutionController.GetInstitutionByCode)
	}

	// Onboarding applications arrive unauthenticated.
	v1.POST("/onboarding-requests", institutionController.SubmitOnboardingRequest)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.AuthRequired())
	{
		// User routes
		users := authenticated.Group("/users")
		{
			users.GET("/connections", userController.ListConnections)
			users.GET("/messageable", userController.ListMessageableUsers)
			users.GET("/developers", userController.ListDevelopers)
			users.GET("/:uid", userController.GetUser)
			users.PUT("/:uid", userController.UpdateProfile)
			users.GET("/:uid/posts", postController.ListUserPosts)

			// Moderation routes for cohort leads and the platform admin
			usersModeratorProtected := users.Group("")
			usersModeratorProtected.Use(authMiddleware.RoleRequired(models.RoleLead, models.RoleSuperAdmin))
			{
				usersModeratorProtected.GET("", userController.ListManageableUsers)
				usersModeratorProtected.POST("/:uid/block", userController.ToggleBlock)
				usersModeratorProtected.DELETE("/:uid", userController.DeleteUser)
			}
		}

		// Post routes
		posts := authenticated.Group("/posts")
		{
			posts.GET("", postController.ListPosts)
			posts.POST("", postController.CreatePost)
			posts.POST("/:id/like", postController.ToggleLike)
			posts.POST("/:id/comments", postController.AddComment)
			posts.POST("/:id/apply", postController.ApplyToProject)

			postsModeratorProtected := posts.Group("")
			postsModeratorProtected.Use(authMiddleware.RoleRequired(models.RoleLead, models.RoleSuperAdmin))
			{
				postsModeratorProtected.GET("/pending", postController.ListPendingPosts)
				postsModeratorProtected.POST("/:id/verify", postController.VerifyPost)
				postsModeratorProtected.DELETE("/:id", postController.DeletePost)
			}

			postsFounderProtected := posts.Group("")
			postsFounderProtected.Use(authMiddleware.RoleRequired(models.RoleFounder, models.RoleLead, models.RoleSuperAdmin))
			{
				postsFounderProtected.POST("/:id/team", postController.AssignDeveloper)
			}
		}

		// Message routes
		messages := authenticated.Group("/messages")
		{
			messages.POST("", messageController.SendMessage)
			messages.GET("/partners", messageController.ListConversationPartners)
			messages.GET("/:id", messageController.GetConversation)
		}

		// Institution membership listing requires a session.
		authenticated.GET("/institutions/:id/users", userController.ListInstitutionUsers)

		// Platform-admin routes
		superAdminProtected := authenticated.Group("")
		superAdminProtected.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			superAdminProtected.POST("/institutions", institutionController.CreateInstitution)
			superAdminProtected.DELETE("/institutions/:id", institutionController.DeleteInstitution)

			superAdminProtected.GET("/onboarding-requests/pending", institutionController.ListPendingRequests)
			superAdminProtected.POST("/onboarding-requests/:id/approve", institutionController.ApproveRequest)
			superAdminProtected.POST("/onboarding-requests/:id/reject", institutionController.RejectRequest)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
