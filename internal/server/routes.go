package server

import (
	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/middleware"
)

// crudHandler is the handler shape of every resource with a list route and a
// detail route.
type crudHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerRoutes(router *gin.Engine, auth *middleware.AuthMiddleware, h *handlers) {
	// Token issue and self registration accept anonymous callers.
	public := router.Group("")
	public.Use(auth.OptionalAuth())
	{
		public.POST("/auth/token/", h.user.Login)
		public.POST("/users/", h.user.Register)
		public.POST("/exerciser/", h.exerciser.Register)
		public.POST("/coach/", h.coach.Register)
	}

	protected := router.Group("")
	protected.Use(auth.RequireAuth())

	users := protected.Group("/users")
	{
		users.GET("/", h.user.List)
		users.GET("/current/", h.user.Current)
		users.PATCH("/change-password/", h.user.ChangePassword)
		users.PATCH("/:id/activate/", auth.RequireAdmin(), h.user.Activate)
		users.POST("/:id/avatar/", h.user.UploadAvatar)
		detail(users, h.user.Get, h.user.Update, h.user.Delete)
	}

	exercisers := protected.Group("/exerciser")
	exercisers.GET("/", h.exerciser.List)
	detail(exercisers, h.exerciser.Get, h.exerciser.Update, h.exerciser.Delete)

	coaches := protected.Group("/coach")
	coaches.GET("/", h.coach.List)
	detail(coaches, h.coach.Get, h.coach.Update, h.coach.Delete)

	activities := protected.Group("/activity")
	{
		activities.GET("/search/", h.activity.Search)
		activities.POST("/:id/image/", h.activity.UploadImage)
		crud(activities, h.activity)
	}

	crud(protected.Group("/tag"), h.tag)
	crud(protected.Group("/specialization"), h.specialization)

	workouts := protected.Group("/workoutplan")
	{
		workouts.POST("/create-plan/", h.workoutPlan.CreatePlan)
		crud(workouts, h.workoutPlan)
	}

	meals := protected.Group("/mealplan")
	{
		meals.POST("/create-plan/", h.mealPlan.CreatePlan)
		crud(meals, h.mealPlan)
	}

	records := protected.Group("/healthrecord")
	{
		records.POST("/add-record/", h.healthRecord.AddRecord)
		records.GET("/view-record/", h.healthRecord.ViewRecord)
		records.GET("/stats/", h.healthRecord.Stats)
		crud(records, h.healthRecord)
	}

	crud(protected.Group("/healthdiary"), h.healthDiary)
	crud(protected.Group("/goal"), h.goal)
	crud(protected.Group("/expert"), h.expert)
	crud(protected.Group("/connection"), h.connection)

	chats := protected.Group("/chatmessage")
	{
		chats.POST("/", h.chat.SendMessage)
		chats.POST("/send-message/", h.chat.SendMessage)
		chats.PATCH("/:id/read/", h.chat.MarkRead)
		chats.GET("/", h.chat.List)
		detail(chats, h.chat.Get, h.chat.Update, h.chat.Delete)
	}
}

func crud(g *gin.RouterGroup, h crudHandler) {
	g.POST("/", h.Create)
	g.GET("/", h.List)
	detail(g, h.Get, h.Update, h.Delete)
}

func detail(g *gin.RouterGroup, get, update, remove gin.HandlerFunc) {
	g.GET("/:id/", get)
	g.PUT("/:id/", update)
	g.PATCH("/:id/", update)
	g.DELETE("/:id/", remove)
}
