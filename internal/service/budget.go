package service

import (
	"context"
	"time"

	"github.com/numenapp/numen-service/internal/ledger"
	"github.com/numenapp/numen-service/internal/models"
)

// SetFixedIncome replaces the session's fixed monthly income
func (s *Service) SetFixedIncome(ctx context.Context, req models.SetFixedIncomeRequest) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		return l.SetFixedIncome(req.Amount)
	})
	if err != nil {
		return err
	}
	s.log.Infof("Fixed income set to %.2f for user %d", req.Amount, sess.UserID)
	s.persist("fixed income", s.store.UpdateFixedIncome(ctx, sess.UserID, req.Amount))
	return nil
}

// AddVariableIncome appends a variable income entry
func (s *Service) AddVariableIncome(ctx context.Context, req models.AddVariableIncomeRequest) (models.VariableIncome, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.VariableIncome{}, err
	}
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	var entry models.VariableIncome
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		entry, err = l.AddVariableIncome(req.Amount, date, req.Label)
		return err
	})
	if err != nil {
		return models.VariableIncome{}, err
	}
	s.persist("variable income", s.store.InsertVariableIncome(ctx, sess.UserID, entry))
	return entry, nil
}

// ListVariableIncomes returns the session's variable income entries
func (s *Service) ListVariableIncomes(ctx context.Context) ([]models.VariableIncome, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	var entries []models.VariableIncome
	sess.WithLedger(func(l *ledger.Ledger) error {
		entries = append(entries, l.VariableIncomes...)
		return nil
	})
	return entries, nil
}

// RemoveVariableIncome removes the entry at the given index
func (s *Service) RemoveVariableIncome(ctx context.Context, index int) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	var removed models.VariableIncome
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		removed, err = l.RemoveVariableIncome(index)
		return err
	})
	if err != nil {
		return err
	}
	s.persist("remove variable income", s.store.DeleteVariableIncome(ctx, sess.UserID, removed.ID))
	return nil
}

// SetPlannedExpense updates one category's budgeted amount
func (s *Service) SetPlannedExpense(ctx context.Context, req models.SetPlannedExpenseRequest) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		return l.SetPlannedExpense(req.Category, req.Amount)
	})
	if err != nil {
		return err
	}
	s.persist("planned expense", s.store.UpsertPlannedExpense(ctx, sess.UserID, req.Category, req.Amount))
	return nil
}

// AddGoal creates a savings goal
func (s *Service) AddGoal(ctx context.Context, req models.AddGoalRequest) (models.SavingsGoal, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	var goal models.SavingsGoal
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		goal, err = l.AddGoal(req.Name, req.Target, req.Initial, time.Now())
		return err
	})
	if err != nil {
		return models.SavingsGoal{}, err
	}
	s.log.Infof("Goal %q created for user %d", goal.Name, sess.UserID)
	s.persist("goal", s.store.InsertGoal(ctx, sess.UserID, goal))
	return goal, nil
}

// DepositToGoal adds funds to the goal at the given index
func (s *Service) DepositToGoal(ctx context.Context, index int, req models.DepositToGoalRequest) (models.SavingsGoal, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.SavingsGoal{}, err
	}
	var goal models.SavingsGoal
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		goal, err = l.DepositToGoal(index, req.Amount)
		return err
	})
	if err != nil {
		return models.SavingsGoal{}, err
	}
	s.persist("goal deposit", s.store.UpdateGoalCurrent(ctx, sess.UserID, goal.ID, goal.Current))
	return goal, nil
}

// RemoveGoal removes the goal at the given index
func (s *Service) RemoveGoal(ctx context.Context, index int) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	var removed models.SavingsGoal
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		removed, err = l.RemoveGoal(index)
		return err
	})
	if err != nil {
		return err
	}
	s.persist("remove goal", s.store.DeleteGoal(ctx, sess.UserID, removed.ID))
	return nil
}
