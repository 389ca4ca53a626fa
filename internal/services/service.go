package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-gin/internal/apperrors"
	"hospital-gin/internal/database"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SessionRevoker drops every live session of a user.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID uint) error
}

// Service implements every hospital operation on top of gorm. Callers are
// expected to have passed the role gate already; ownership checks that
// depend on row contents happen here.
type Service struct {
	db       *gorm.DB
	sessions SessionRevoker
	log      zerolog.Logger
	now      func() time.Time
}

// New builds a Service. sessions may be nil, in which case deleting or
// blacklisting an account leaves its sessions alive.
func New(db *gorm.DB, sessions SessionRevoker, log zerolog.Logger) *Service {
	return &Service{
		db:       db,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Ping checks the database connection.
func (s *Service) Ping(ctx context.Context) error {
	return database.Ping(ctx, s.db)
}

func (s *Service) revokeSessions(ctx context.Context, userID uint) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.RevokeUser(ctx, userID); err != nil {
		s.log.Error().Err(err).Uint("user_id", userID).Msg("failed to revoke sessions")
	}
}

// lookupErr turns a failed by-id fetch into NotFound or Internal.
func lookupErr(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return apperrors.NewInternalError("load "+what, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// passThrough keeps AppErrors raised inside a transaction and wraps anything else.
func passThrough(msg string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.NewInternalError(msg, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns q into a LIKE pattern matching it as a literal,
// lower-cased substring. Use it with likeAny, which declares the escape.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// likeAny builds "col LIKE ? ESCAPE '\' OR ..." for cols and returns the
// matching argument list for pattern.
func likeAny(pattern string, cols ...string) (string, []interface{}) {
	clauses := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		clauses[i] = col + ` LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return strings.Join(clauses, " OR "), args
}
