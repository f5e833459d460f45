package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/checkin-tracker/tracker_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over a shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		WorkdayRepo:  newPgxWorkdayRepository(pool),
		ActivityRepo: newPgxActivityRepository(pool),
		CommentRepo:  newPgxCommentRepository(pool),
		AuditRepo:    newPgxAuditRepository(pool),
		UserRepo:     newPgxUserRepository(pool),
		RoleRepo:     newPgxRoleRepository(pool),
		AreaRepo:     newPgxAreaRepository(pool),
		StateRepo:    newPgxTaskStateRepository(pool),
		ReportRepo:   newPgxReportRepository(pool),
	}
}

// NewTransactionManager exposes the pool-backed transaction helpers to the
// service layer.
func NewTransactionManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &BaseRepository{Pool: pool}
}
