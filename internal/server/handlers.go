package server

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/config"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/ratelimit"
	"anoa.com/healthmanage/pkg/search"
	"anoa.com/healthmanage/pkg/storage"

	activityHttp "anoa.com/healthmanage/internal/modules/activity/delivery/http"
	activityRepo "anoa.com/healthmanage/internal/modules/activity/repository"
	activityService "anoa.com/healthmanage/internal/modules/activity/service"

	catalogHttp "anoa.com/healthmanage/internal/modules/catalog/delivery/http"
	catalogDto "anoa.com/healthmanage/internal/modules/catalog/dto"
	catalogRepo "anoa.com/healthmanage/internal/modules/catalog/repository"
	catalogService "anoa.com/healthmanage/internal/modules/catalog/service"

	chatHttp "anoa.com/healthmanage/internal/modules/chat/delivery/http"
	chatRepo "anoa.com/healthmanage/internal/modules/chat/repository"
	chatService "anoa.com/healthmanage/internal/modules/chat/service"

	connectionHttp "anoa.com/healthmanage/internal/modules/connection/delivery/http"
	connectionRepo "anoa.com/healthmanage/internal/modules/connection/repository"
	connectionService "anoa.com/healthmanage/internal/modules/connection/service"

	expertHttp "anoa.com/healthmanage/internal/modules/expert/delivery/http"
	expertRepo "anoa.com/healthmanage/internal/modules/expert/repository"
	expertService "anoa.com/healthmanage/internal/modules/expert/service"

	goalHttp "anoa.com/healthmanage/internal/modules/goal/delivery/http"
	goalRepo "anoa.com/healthmanage/internal/modules/goal/repository"
	goalService "anoa.com/healthmanage/internal/modules/goal/service"

	diaryHttp "anoa.com/healthmanage/internal/modules/healthdiary/delivery/http"
	diaryRepo "anoa.com/healthmanage/internal/modules/healthdiary/repository"
	diaryService "anoa.com/healthmanage/internal/modules/healthdiary/service"

	recordHttp "anoa.com/healthmanage/internal/modules/healthrecord/delivery/http"
	recordRepo "anoa.com/healthmanage/internal/modules/healthrecord/repository"
	recordService "anoa.com/healthmanage/internal/modules/healthrecord/service"

	mealHttp "anoa.com/healthmanage/internal/modules/mealplan/delivery/http"
	mealRepo "anoa.com/healthmanage/internal/modules/mealplan/repository"
	mealService "anoa.com/healthmanage/internal/modules/mealplan/service"

	profileHttp "anoa.com/healthmanage/internal/modules/profile/delivery/http"
	profileRepo "anoa.com/healthmanage/internal/modules/profile/repository"
	profileService "anoa.com/healthmanage/internal/modules/profile/service"

	userHttp "anoa.com/healthmanage/internal/modules/user/delivery/http"
	userRepo "anoa.com/healthmanage/internal/modules/user/repository"
	userService "anoa.com/healthmanage/internal/modules/user/service"

	workoutHttp "anoa.com/healthmanage/internal/modules/workoutplan/delivery/http"
	workoutRepo "anoa.com/healthmanage/internal/modules/workoutplan/repository"
	workoutService "anoa.com/healthmanage/internal/modules/workoutplan/service"
)

type handlers struct {
	users userRepo.UserRepository

	user           *userHttp.UserHandler
	exerciser      *profileHttp.ProfileHandler[entity.Exerciser, *entity.Exerciser]
	coach          *profileHttp.ProfileHandler[entity.Coach, *entity.Coach]
	activity       *activityHttp.ActivityHandler
	tag            *catalogHttp.CatalogHandler[entity.Tag, catalogDto.TagResponse]
	specialization *catalogHttp.CatalogHandler[entity.ExpertSpecialization, catalogDto.SpecializationResponse]
	workoutPlan    *workoutHttp.WorkoutPlanHandler
	mealPlan       *mealHttp.MealPlanHandler
	healthRecord   *recordHttp.HealthRecordHandler
	healthDiary    *diaryHttp.HealthDiaryHandler
	goal           *goalHttp.GoalHandler
	chat           *chatHttp.ChatHandler
	expert         *expertHttp.ExpertProfileHandler
	connection     *connectionHttp.ConnectionHandler
}

func newHandlers(
	cfg *config.Config,
	db *gorm.DB,
	log *zap.Logger,
	engine *authz.Engine,
	imageStorage storage.ImageStorage,
	index search.ActivityIndex,
	limiter ratelimit.Limiter,
) *handlers {
	users := userRepo.NewUserRepository(db)
	userSvc := userService.NewUserService(users, engine, imageStorage, userService.Config{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		PageSize:  cfg.PageSize,
	}, log)

	exerciserSvc := profileService.NewProfileService[entity.Exerciser, *entity.Exerciser](
		profileRepo.NewProfileRepository[entity.Exerciser, *entity.Exerciser](db),
		userSvc,
		engine,
		profileService.Config{
			Resource:         authz.ResourceExerciser,
			Role:             entity.RoleExerciser,
			RequiresApproval: cfg.RegistrationApproval == config.ApprovalAll,
			PageSize:         cfg.PageSize,
		},
	)
	coachSvc := profileService.NewProfileService[entity.Coach, *entity.Coach](
		profileRepo.NewProfileRepository[entity.Coach, *entity.Coach](db),
		userSvc,
		engine,
		profileService.Config{
			Resource:         authz.ResourceCoach,
			Role:             entity.RoleExpert,
			RequiresApproval: cfg.RegistrationApproval != config.ApprovalNone,
			PageSize:         cfg.PageSize,
		},
	)

	tagSvc := catalogService.NewCatalogService(catalogRepo.NewCatalogRepository[entity.Tag](db), engine, catalogService.TagEntry, cfg.PageSize)
	specializationSvc := catalogService.NewCatalogService(catalogRepo.NewCatalogRepository[entity.ExpertSpecialization](db), engine, catalogService.SpecializationEntry, cfg.PageSize)

	chatSvc := chatService.NewChatService(chatRepo.NewChatMessageRepository(db), users, engine, limiter, chatService.Config{
		PageSize:     cfg.PageSize,
		SendInterval: cfg.RateLimitMessage,
	}, log)

	return &handlers{
		users: users,

		user:           userHttp.NewUserHandler(userSvc),
		exerciser:      profileHttp.NewProfileHandler[entity.Exerciser, *entity.Exerciser](exerciserSvc),
		coach:          profileHttp.NewProfileHandler[entity.Coach, *entity.Coach](coachSvc),
		activity:       activityHttp.NewActivityHandler(activityService.NewActivityService(activityRepo.NewActivityRepository(db), engine, index, imageStorage, cfg.PageSize, log)),
		tag:            catalogHttp.NewCatalogHandler(tagSvc, catalogDto.ToTagResponse),
		specialization: catalogHttp.NewCatalogHandler(specializationSvc, catalogDto.ToSpecializationResponse),
		workoutPlan:    workoutHttp.NewWorkoutPlanHandler(workoutService.NewWorkoutPlanService(workoutRepo.NewWorkoutPlanRepository(db), users, engine, cfg.PageSize)),
		mealPlan:       mealHttp.NewMealPlanHandler(mealService.NewMealPlanService(mealRepo.NewMealPlanRepository(db), users, engine, cfg.PageSize)),
		healthRecord:   recordHttp.NewHealthRecordHandler(recordService.NewHealthRecordService(recordRepo.NewHealthRecordRepository(db), users, engine, cfg.PageSize, time.Now)),
		healthDiary:    diaryHttp.NewHealthDiaryHandler(diaryService.NewHealthDiaryService(diaryRepo.NewHealthDiaryRepository(db), engine, cfg.PageSize, time.Now)),
		goal:           goalHttp.NewGoalHandler(goalService.NewGoalService(goalRepo.NewGoalRepository(db), users, engine, cfg.PageSize)),
		chat:           chatHttp.NewChatHandler(chatSvc),
		expert:         expertHttp.NewExpertProfileHandler(expertService.NewExpertProfileService(expertRepo.NewExpertProfileRepository(db), users, engine, cfg.PageSize)),
		connection:     connectionHttp.NewConnectionHandler(connectionService.NewConnectionService(connectionRepo.NewConnectionRepository(db), users, engine, cfg.PageSize)),
	}
}
