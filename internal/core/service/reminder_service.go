package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
)

const (
	defaultReminderHorizon = 24 * time.Hour
	releaseTimeout         = 5 * time.Second
)

// ReminderOptions tunes the reminder scanner.
type ReminderOptions struct {
	// Horizon is how far ahead a card counts as due soon. Defaults to 24h.
	Horizon time.Duration
	// Location decides calendar days for reminder de-duplication. Defaults to UTC.
	Location *time.Location
	// Now overrides the clock; used by tests.
	Now func() time.Time
}

type reminderService struct {
	cards    ports.CardRepository
	boards   ports.BoardRepository
	ids      ports.IDValidator
	ledger   ports.ReminderLedger
	notifier ports.Notifier
	horizon  time.Duration
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// NewReminderService returns a ReminderService implementation.
func NewReminderService(
	cards ports.CardRepository,
	boards ports.BoardRepository,
	ids ports.IDValidator,
	ledger ports.ReminderLedger,
	notifier ports.Notifier,
	opts ReminderOptions,
	log zerolog.Logger,
) ports.ReminderService {
	if opts.Horizon <= 0 {
		opts.Horizon = defaultReminderHorizon
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &reminderService{
		cards:    cards,
		boards:   boards,
		ids:      ids,
		ledger:   ledger,
		notifier: notifier,
		horizon:  opts.Horizon,
		loc:      opts.Location,
		now:      opts.Now,
		log:      log,
	}
}

// GetCardsDueForUser lists the user's cards due within daysAhead days.
func (s *reminderService) GetCardsDueForUser(ctx context.Context, userID string, daysAhead int, includeCompleted bool) ([]domain.Card, error) {
	if daysAhead < domain.MinDaysAhead || daysAhead > domain.MaxDaysAhead {
		return nil, fmt.Errorf("%w: daysAhead must be between %d and %d", domain.ErrInvalidInput, domain.MinDaysAhead, domain.MaxDaysAhead)
	}
	if !s.ids.Valid(userID) {
		return nil, domain.ErrInvalidID
	}

	// UTC keeps each day of the window exactly 24h long.
	now := s.now().UTC()
	cards, err := s.cards.FindDue(ctx, ports.DueCardsFilter{
		MemberID:         userID,
		From:             now,
		To:               now.AddDate(0, 0, daysAhead),
		IncludeCompleted: includeCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("cards due for user: %w", err)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].DueDate.Before(*cards[j].DueDate)
	})
	return cards, nil
}

// CheckDueReminders notifies every member of every card due within the
// horizon, at most once per card, member and calendar day. A failure for one
// recipient is logged and the sweep moves on.
func (s *reminderService) CheckDueReminders(ctx context.Context) (domain.SweepResult, error) {
	var res domain.SweepResult

	now := s.now()
	cards, err := s.cards.FindDue(ctx, ports.DueCardsFilter{
		From: now,
		To:   now.Add(s.horizon),
	})
	if err != nil {
		return res, fmt.Errorf("check due reminders: %w", err)
	}
	res.Cards = len(cards)
	day := now.In(s.loc).Format(time.DateOnly)

	for i := range cards {
		card := &cards[i]
		for _, userID := range card.MemberIDs {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}

			claimed, err := s.ledger.Claim(ctx, card.ID, userID, day)
			if err != nil {
				res.Failed++
				s.log.Error().Err(err).Str("card_id", card.ID).Str("user_id", userID).Msg("reminder claim failed")
				continue
			}
			if !claimed {
				res.Skipped++
				continue
			}

			if err := s.notifier.Notify(ctx, s.dueNotification(card, userID, now)); err != nil {
				res.Failed++
				s.log.Error().Err(err).Str("card_id", card.ID).Str("user_id", userID).Msg("reminder dispatch failed")
				s.releaseClaim(ctx, card.ID, userID, day)
				continue
			}
			res.Sent++
		}
	}

	s.log.Info().
		Int("cards", res.Cards).
		Int("sent", res.Sent).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("due reminder sweep finished")

	return res, nil
}

// releaseClaim frees a claim whose dispatch failed. It must survive the
// sweep's own cancellation, otherwise the member stays marked as reminded.
func (s *reminderService) releaseClaim(ctx context.Context, cardID, userID, day string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.ledger.Release(ctx, cardID, userID, day); err != nil {
		s.log.Warn().Err(err).Str("card_id", cardID).Str("user_id", userID).Msg("failed to release reminder claim")
	}
}

// SendImmediateDueReminder notifies the members of a single card without
// consulting the ledger. It reports whether anything was sent.
func (s *reminderService) SendImmediateDueReminder(ctx context.Context, cardID string) (bool, error) {
	if !s.ids.Valid(cardID) {
		return false, nil
	}

	card, err := s.boards.FindCard(ctx, cardID)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("immediate reminder: %w", err)
	}

	now := s.now()
	if card.Completed || card.Deleted || !card.DueWithin(now, now.Add(s.horizon)) {
		return false, nil
	}

	sent := false
	var lastErr error
	for _, userID := range card.MemberIDs {
		if err := s.notifier.Notify(ctx, s.dueNotification(card, userID, now)); err != nil {
			lastErr = err
			s.log.Error().Err(err).Str("card_id", card.ID).Str("user_id", userID).Msg("immediate reminder failed")
			continue
		}
		sent = true
	}
	if !sent && lastErr != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrNotificationFailed, lastErr)
	}
	return sent, nil
}

func (s *reminderService) dueNotification(card *domain.Card, userID string, now time.Time) domain.Notification {
	return domain.Notification{
		RecipientID: userID,
		Type:        domain.NotificationCardDueSoon,
		Message:     dueMessage(card, now, s.loc),
		WorkspaceID: card.WorkspaceID(),
		BoardID:     card.Board.ID(),
		CardID:      card.ID,
		CreatedAt:   now.UTC(),
	}
}

func dueMessage(card *domain.Card, now time.Time, loc *time.Location) string {
	left := card.DueDate.Sub(now)
	switch {
	case left < time.Hour:
		return fmt.Sprintf("Card %q is due in less than an hour", card.Title)
	case left < 24*time.Hour:
		return fmt.Sprintf("Card %q is due in %d hours", card.Title, int(left.Hours()))
	default:
		return fmt.Sprintf("Card %q is due on %s", card.Title, card.DueDate.In(loc).Format("Mon Jan 2 15:04"))
	}
}
