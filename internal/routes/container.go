package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"sales-activity-backend/config"
	"sales-activity-backend/internal/access"
	"sales-activity-backend/internal/geo"
	"sales-activity-backend/internal/repository"
	"sales-activity-backend/internal/usecase"
)

// Container holds the shared wiring for all route groups.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users         repository.UserRepository
	Customers     repository.CustomerRepository
	Activities    repository.ActivityRepository
	Notifications repository.NotificationRepository

	Plans    *usecase.PreCallPlanUsecase
	Reports  *usecase.CallReportUsecase
	Coaching *usecase.CoachingUsecase
	UserUC   *usecase.UserUsecase
}

// NewContainer builds repositories and usecases. rdb may be nil.
func NewContainer(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *logrus.Logger) *Container {
	users := repository.NewUserRepository(db)
	customers := repository.NewCustomerRepository(db)
	activities := repository.NewActivityRepository(db)
	plans := repository.NewPreCallPlanRepository(db)
	reports := repository.NewCallReportRepository(db)
	photos := repository.NewPhotoRepository(db)
	coaching := repository.NewCoachingRepository(db)
	notifications := repository.NewNotificationRepository(db)

	directory := repository.NewCachedDirectory(users, rdb, cfg.SubordinateTTL, logger)
	policy := access.NewPolicy(directory)
	notifier := usecase.NewStoreNotifier(notifications, logger)
	locker := usecase.NewLocker(rdb, cfg.TransitionLockTTL, logger)
	clock := time.Now

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Users:         users,
		Customers:     customers,
		Activities:    activities,
		Notifications: notifications,

		Plans: usecase.NewPreCallPlanUsecase(plans, users, customers, policy, notifier, locker, clock),
		Reports: usecase.NewCallReportUsecase(usecase.CallReportDeps{
			Reports:      reports,
			Plans:        plans,
			Users:        users,
			Customers:    customers,
			Activities:   activities,
			Photos:       photos,
			Policy:       policy,
			GPS:          geo.NewValidator(cfg.MaxCheckInRadius),
			Notifier:     notifier,
			Locker:       locker,
			Clock:        clock,
			DeadlineDays: cfg.SubmissionDeadline,
			Location:     cfg.Location,
		}),
		Coaching: usecase.NewCoachingUsecase(coaching, reports, users, policy, notifier, clock),
		UserUC:   usecase.NewUserUsecase(users, policy),
	}
}

// Setup registers every route group.
func Setup(app *fiber.App, c *Container) {
	SetupUserRoutes(app, c)
	SetupCustomerRoutes(app, c)
	SetupActivityRoutes(app, c)
	SetupPreCallPlanRoutes(app, c)
	SetupCallReportRoutes(app, c)
	SetupCoachingRoutes(app, c)
	SetupNotificationRoutes(app, c)
	SetupRoleRoutes(app, c)
}
