package streak

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ahorify-go-be/models"
)

// FreezeResult reports a manual freeze attempt.
type FreezeResult struct {
	Success          bool   `json:"success"`
	FreezeUsed       bool   `json:"freeze_used"`
	RemainingFreezes int    `json:"remaining_freezes"`
	Message          string `json:"message"`
}

// Service persists streak state transitions. All read-modify-write
// sequences run inside a transaction with the user and streak rows locked,
// so concurrent updates for the same user are serialized.
type Service struct {
	db  *gorm.DB
	log zerolog.Logger
	now func() time.Time
}

// NewService creates a streak service on the given database handle.
func NewService(db *gorm.DB, log zerolog.Logger) *Service {
	return &Service{db: db, log: log, now: time.Now}
}

// GetOrCreate returns the user's streak, inserting a zeroed row on first
// access. The insert is an upsert (ON CONFLICT DO NOTHING) so concurrent
// first-time access cannot create duplicates.
func (s *Service) GetOrCreate(userID uuid.UUID) (*models.Streak, error) {
	return getOrCreate(s.db, userID)
}

func getOrCreate(tx *gorm.DB, userID uuid.UUID) (*models.Streak, error) {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Streak{UserID: userID}).Error
	if err != nil {
		return nil, fmt.Errorf("create streak: %w", err)
	}
	var streak models.Streak
	if err := tx.First(&streak, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}
	return &streak, nil
}

// Update records activity for the given date (calendar-day precision) and
// returns the outcome. Wraps UpdateWithin in its own transaction.
func (s *Service) Update(userID uuid.UUID, activityDate time.Time) (UpdateResult, error) {
	var result UpdateResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = s.UpdateWithin(tx, userID, activityDate)
		return txErr
	})
	return result, err
}

// UpdateWithin records activity inside an existing transaction, so callers
// can make the streak mutation and their own writes atomic together.
func (s *Service) UpdateWithin(tx *gorm.DB, userID uuid.UUID, activityDate time.Time) (UpdateResult, error) {
	user, err := lockUser(tx, userID)
	if err != nil {
		return UpdateResult{}, err
	}

	if _, err := getOrCreate(tx, userID); err != nil {
		return UpdateResult{}, err
	}
	var streak models.Streak
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&streak, "user_id = ?", userID).Error
	if err != nil {
		return UpdateResult{}, fmt.Errorf("lock streak: %w", err)
	}

	result, err := advance(&streak, user, activityDate)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("streak update rejected")
		return UpdateResult{}, err
	}

	if err := tx.Save(&streak).Error; err != nil {
		return UpdateResult{}, fmt.Errorf("save streak: %w", err)
	}
	if err := tx.Save(user).Error; err != nil {
		return UpdateResult{}, fmt.Errorf("save user: %w", err)
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("outcome", string(result.Outcome)).
		Int("current_streak", result.CurrentStreak).
		Bool("freeze_used", result.FreezeUsed).
		Msg("streak updated")
	return result, nil
}

// CanUseWeeklyFreeze reports freeze eligibility for the given date. The
// lazy weekly roll is persisted first, matching the write path.
func (s *Service) CanUseWeeklyFreeze(userID uuid.UUID, current time.Time) (bool, error) {
	var eligible bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		hadFreezeDate := user.LastWeeklyFreezeDate != nil
		rollWeeklyCounter(user, current)
		if hadFreezeDate && user.LastWeeklyFreezeDate == nil {
			if err := tx.Save(user).Error; err != nil {
				return fmt.Errorf("save user: %w", err)
			}
		}
		eligible = canUseWeeklyFreeze(user, current)
		return nil
	})
	return eligible, err
}

// UseFreeze consumes the weekly protector manually, against today. Reports
// a non-success result, mutating nothing, when the protector was already
// spent this week.
func (s *Service) UseFreeze(userID uuid.UUID) (FreezeResult, error) {
	today := dateOnly(s.now())
	var result FreezeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		rollWeeklyCounter(user, today)

		if !canUseWeeklyFreeze(user, today) {
			result = FreezeResult{
				Success:          false,
				RemainingFreezes: 0,
				Message:          fmt.Sprintf("Ya usaste tu protector semanal (%d/1 esta semana). Resetea el lunes.", user.WeeklyFreezeCount),
			}
			return nil
		}

		user.LastWeeklyFreezeDate = &today
		user.WeeklyFreezeCount = 1
		if err := tx.Save(user).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		result = FreezeResult{
			Success:          true,
			FreezeUsed:       true,
			RemainingFreezes: 0,
			Message:          "Protector semanal usado. Ya no puedes usar otro hasta el próximo lunes.",
		}
		return nil
	})
	if err == nil && result.FreezeUsed {
		s.log.Info().Str("user_id", userID.String()).Msg("weekly freeze consumed manually")
	}
	return result, err
}

func lockUser(tx *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}
