package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	WorkdayRepo  WorkdayRepository
	ActivityRepo ActivityRepository
	CommentRepo  CommentRepository
	AuditRepo    AuditRepository
	UserRepo     UserRepository
	RoleRepo     RoleRepository
	AreaRepo     AreaRepository
	StateRepo    TaskStateRepository
	ReportRepo   ReportRepository
}
