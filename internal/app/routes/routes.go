package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hare-edu/hare-backend/internal/app/controllers"
	"github.com/hare-edu/hare-backend/internal/middleware"
)

// Controllers groups everything SetupRouter wires into the engine.
type Controllers struct {
	Auth             *controllers.AuthController
	User             *controllers.UserController
	Student          *controllers.StudentController
	Statistics       *controllers.StatisticsController
	DocumentTypes    *controllers.CatalogController
	EnrollmentStatus *controllers.CatalogController
	Schools          *controllers.CatalogController
	Municipalities   *controllers.CatalogController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/login/token", ctrl.Auth.LoginForm)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", ctrl.Auth.GetProfile)

		users := authenticated.Group("/users")
		{
			users.POST("", ctrl.User.CreateUser)
			users.GET("", ctrl.User.GetAllUsers)
			users.GET("/:id", ctrl.User.GetUserByID)
			users.PUT("/:id", ctrl.User.UpdateUser)
			users.DELETE("/:id", ctrl.User.DeleteUser)
		}

		students := authenticated.Group("/students")
		{
			// Fixed paths come before the :id parameter routes.
			students.GET("/mine", ctrl.Student.GetMyStudents)
			students.GET("/statistics", ctrl.Statistics.GetStatistics)
			students.GET("/charts", ctrl.Statistics.GetChart)
			students.POST("/import", ctrl.Student.ImportStudents)

			students.POST("", ctrl.Student.CreateStudent)
			students.GET("", ctrl.Student.GetAllStudents)
			students.GET("/:id", ctrl.Student.GetStudentByID)
			students.PUT("/:id", ctrl.Student.UpdateStudent)
			students.DELETE("/:id", ctrl.Student.DeleteStudent)
		}

		registerCatalog(authenticated, "/document-types", ctrl.DocumentTypes)
		registerCatalog(authenticated, "/enrollment-statuses", ctrl.EnrollmentStatus)
		registerCatalog(authenticated, "/schools", ctrl.Schools)
		registerCatalog(authenticated, "/municipalities", ctrl.Municipalities)
	}
}

func registerCatalog(group *gin.RouterGroup, path string, ctrl *controllers.CatalogController) {
	catalog := group.Group(path)
	{
		catalog.POST("", ctrl.CreateItem)
		catalog.GET("", ctrl.GetAllItems)
		catalog.GET("/:id", ctrl.GetItemByID)
		catalog.PUT("/:id", ctrl.UpdateItem)
		catalog.DELETE("/:id", ctrl.DeleteItem)
	}
}
