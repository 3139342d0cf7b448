package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labspace/praktikum/internal/app/controllers"
	"github.com/labspace/praktikum/internal/app/models"
	"github.com/labspace/praktikum/internal/app/models/dto"
	"github.com/labspace/praktikum/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	classController *controllers.ClassController,
	folderController *controllers.FolderController,
	moduleController *controllers.ModuleController,
	assignmentController *controllers.AssignmentController,
	newsController *controllers.NewsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		aslabOnly := authMiddleware.RoleRequired(string(models.RoleAslab))
		praktikanOnly := authMiddleware.RoleRequired(string(models.RolePraktikan))

		// Class routes
		classes := authenticated.Group("/classes")
		{
			classes.GET("", classController.GetAllClasses)
			classes.GET("/:id", classController.GetClassByID)

			classesAslab := classes.Group("")
			classesAslab.Use(aslabOnly)
			{
				classesAslab.POST("", classController.CreateClass)
				classesAslab.PUT("/:id", classController.UpdateClass)
				classesAslab.DELETE("/:id", classController.DeleteClass)
				classesAslab.GET("/:id/students", classController.GetStudents)
			}

			// Enrollment is a praktikan action; aslab see every class anyway
			classesPraktikan := classes.Group("")
			classesPraktikan.Use(praktikanOnly)
			{
				classesPraktikan.POST("/:id/enroll", classController.Enroll)
				classesPraktikan.DELETE("/:id/enroll", classController.Unenroll)
			}
		}

		// Module folder routes
		folders := authenticated.Group("/folders")
		{
			folders.GET("/class/:classId", folderController.GetFoldersByClass)
			folders.GET("/:id", folderController.GetFolderByID)

			foldersAslab := folders.Group("")
			foldersAslab.Use(aslabOnly)
			{
				foldersAslab.POST("", folderController.CreateFolder)
				foldersAslab.PUT("/:id", folderController.UpdateFolder)
				foldersAslab.DELETE("/:id", folderController.DeleteFolder)
			}
		}

		// Module routes
		modules := authenticated.Group("/modules")
		{
			modules.GET("/class/:classId", moduleController.GetModulesByClass)
			modules.GET("/:id", moduleController.GetModuleByID)

			modulesAslab := modules.Group("")
			modulesAslab.Use(aslabOnly)
			{
				modulesAslab.POST("", moduleController.CreateModule)
				modulesAslab.PUT("/:id", moduleController.UpdateModule)
				modulesAslab.DELETE("/:id", moduleController.DeleteModule)
				modulesAslab.POST("/:id/files", moduleController.UploadFile)
				modulesAslab.DELETE("/:id/files/:fileId", moduleController.DeleteFile)
			}
		}

		// Assignment routes
		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("/class/:classId", assignmentController.GetAssignmentsByClass)
			assignments.GET("/:id", assignmentController.GetAssignmentByID)

			assignmentsAslab := assignments.Group("")
			assignmentsAslab.Use(aslabOnly)
			{
				assignmentsAslab.POST("", assignmentController.CreateAssignment)
				assignmentsAslab.PUT("/:id", assignmentController.UpdateAssignment)
				assignmentsAslab.DELETE("/:id", assignmentController.DeleteAssignment)
				assignmentsAslab.GET("/:id/submissions", assignmentController.GetSubmissions)
				assignmentsAslab.PUT("/:id/submissions/:submissionId/grade", assignmentController.GradeSubmission)
			}

			assignmentsPraktikan := assignments.Group("")
			assignmentsPraktikan.Use(praktikanOnly)
			{
				assignmentsPraktikan.POST("/:id/submit", assignmentController.Submit)
				assignmentsPraktikan.GET("/:id/my-submission", assignmentController.GetMySubmission)
			}
		}

		// News routes
		news := authenticated.Group("/news")
		{
			news.GET("", newsController.GetAllNews)
			news.GET("/:id", newsController.GetNewsByID)

			newsAslab := news.Group("")
			newsAslab.Use(aslabOnly)
			{
				newsAslab.POST("", newsController.CreateNews)
				newsAslab.PUT("/:id", newsController.UpdateNews)
				newsAslab.DELETE("/:id", newsController.DeleteNews)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
