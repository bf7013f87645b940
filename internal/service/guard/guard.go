// Package guard is the only place where a reservation becomes confirmed.
//
// A confirmation holds the per-resource lock and runs one serializable transaction
// that re-validates the candidate, re-reads every confirmed interval of the resource
// and writes the new status. Overlap turns the candidate into refused.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-EstateBookingService/internal/domain"
	"github.com/m04kA/SMC-EstateBookingService/internal/domain/interval"
	"github.com/m04kA/SMC-EstateBookingService/pkg/ptr"
)

// Outcome результат попытки подтверждения
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeRefused   Outcome = "refused"
)

// Candidate заявка, которую пытаются подтвердить
type Candidate struct {
	ResourceID int64
	ID         int64
	Interval   interval.Interval
}

// Decision итог подтверждения. Для отказа Reason содержит код причины, Cause исходную ошибку правила
type Decision struct {
	Outcome Outcome
	Reason  string
	Cause   error
}

// Confirmed возвращает true для подтвержденной заявки
func (d *Decision) Confirmed() bool {
	return d.Outcome == OutcomeConfirmed
}

// RevalidateFunc перепроверяет заявку внутри транзакции guard.
// Нарушение бизнес-правила (domain.IsRuleViolation) переводит заявку в refused, любая другая ошибка прерывает подтверждение.
type RevalidateFunc func(ctx context.Context) error

// Guard сериализует подтверждения заявок одного вида по ресурсу
type Guard struct {
	kind      domain.ReservationKind
	store     Store
	txManager TransactionManager
	locker    Locker
	metrics   Metrics
	logger    Logger
}

// NewGuard создает guard для заявок вида kind
func NewGuard(
	kind domain.ReservationKind,
	store Store,
	txManager TransactionManager,
	locker Locker,
	metrics Metrics,
	logger Logger,
) *Guard {
	return &Guard{
		kind:      kind,
		store:     store,
		txManager: txManager,
		locker:    locker,
		metrics:   metrics,
		logger:    logger,
	}
}

// LockKey ключ блокировки ресурса, например "stay:42"
func (g *Guard) LockKey(resourceID int64) string {
	return domain.ResourceKey(g.kind, resourceID)
}

// TryConfirm подтверждает заявку или отказывает в ней.
// Ошибка возвращается только если решение не было принято и статус не изменился.
func (g *Guard) TryConfirm(ctx context.Context, c Candidate, revalidate RevalidateFunc) (*Decision, error) {
	if err := c.Interval.Validate(); err != nil {
		return nil, fmt.Errorf("%w: candidate id=%d: %v", ErrInvalidCandidate, c.ID, err)
	}

	key := g.LockKey(c.ResourceID)

	// 1. Блокировка ресурса
	waitStart := time.Now()
	unlock, err := g.locker.Lock(ctx, key)
	if err != nil {
		g.logger.Error("TryConfirm: failed to lock %s: %v", key, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrLock, key, err)
	}
	defer unlock()
	g.metrics.RecordLockWait(string(g.kind), time.Since(waitStart))

	// 2. Проверка и запись в одной сериализуемой транзакции
	var decision *Decision
	err = g.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		decision = nil

		// 2.1. Перепроверка заявки
		if revalidate != nil {
			if err := revalidate(txCtx); err != nil {
				if !domain.IsRuleViolation(err) {
					return err
				}
				decision = refusal(err)
				return g.store.SetStatus(txCtx, c.ID, domain.StatusPending, domain.StatusRefused, ptr.Ptr(decision.Reason))
			}
		}

		// 2.2. Перечитываем подтвержденные интервалы ресурса
		confirmed, err := g.store.ConfirmedIntervals(txCtx, c.ResourceID, c.Interval, c.ID)
		if err != nil {
			return fmt.Errorf("%w: ConfirmedIntervals: %v", ErrInternal, err)
		}

		taken, overlap, err := interval.OverlapsAny(c.Interval, confirmed)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 2.3. Пересечение: отказ
		if overlap {
			g.logger.Warn("TryConfirm: %s id=%d %s overlaps confirmed %s", g.kind, c.ID, c.Interval, taken)
			decision = refusal(domain.ErrOverlapAtConfirmation)
			return g.store.SetStatus(txCtx, c.ID, domain.StatusPending, domain.StatusRefused, ptr.Ptr(decision.Reason))
		}

		// 2.4. Подтверждение
		if err := g.store.SetStatus(txCtx, c.ID, domain.StatusPending, domain.StatusConfirmed, nil); err != nil {
			return err
		}
		decision = &Decision{Outcome: OutcomeConfirmed}
		return nil
	})

	// Ограничение на уровне БД сработало раньше проверки: заявку всё равно нужно отклонить
	if err != nil && errors.Is(err, domain.ErrOverlapAtConfirmation) {
		g.logger.Warn("TryConfirm: storage rejected overlap for %s id=%d: %v", g.kind, c.ID, err)
		decision = refusal(domain.ErrOverlapAtConfirmation)
		err = g.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			return g.store.SetStatus(txCtx, c.ID, domain.StatusPending, domain.StatusRefused, ptr.Ptr(decision.Reason))
		})
	}

	if err != nil {
		g.logger.Error("TryConfirm: %s id=%d failed: %v", g.kind, c.ID, err)
		return nil, err
	}

	g.metrics.RecordConfirmation(string(g.kind), string(decision.Outcome))
	if decision.Confirmed() {
		g.logger.Info("TryConfirm: %s id=%d confirmed on resource %d", g.kind, c.ID, c.ResourceID)
	} else {
		g.logger.Info("TryConfirm: %s id=%d refused: %s", g.kind, c.ID, decision.Reason)
	}

	return decision, nil
}

func refusal(cause error) *Decision {
	return &Decision{
		Outcome: OutcomeRefused,
		Reason:  domain.ReasonCode(cause),
		Cause:   cause,
	}
}
