package source

import (
	"context"
	"net/url"

	"github.com/eshaffer321/goalplan-go/internal/transport"
	"github.com/eshaffer321/goalplan-go/internal/types"
	"github.com/eshaffer321/goalplan-go/pkg/goalplan"
	"github.com/pkg/errors"
)

// RemoteOptions configures a RemoteSource
type RemoteOptions struct {
	BaseURL     string
	Token       string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// RemoteSource reads records from the record API
type RemoteSource struct {
	transport *transport.RESTTransport
}

// NewRemoteSource creates a source backed by the record API
func NewRemoteSource(opts *RemoteOptions) *RemoteSource {
	if opts == nil {
		opts = &RemoteOptions{}
	}

	trans := transport.NewRESTTransport(&transport.Options{
		BaseURL:     opts.BaseURL,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})
	if opts.Token != "" {
		trans.SetAuth(opts.Token)
	}

	return &RemoteSource{transport: trans}
}

// Goal fetches one goal
func (s *RemoteSource) Goal(ctx context.Context, id string) (goalplan.Goal, error) {
	var goal goalplan.Goal
	if err := s.transport.Get(ctx, "/goals/"+url.PathEscape(id), nil, &goal); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return goalplan.Goal{}, errors.Wrap(ErrGoalNotFound, id)
		}
		return goalplan.Goal{}, errors.Wrap(err, "fetching goal")
	}
	return goal, nil
}

// Goals fetches the goals of an owner
func (s *RemoteSource) Goals(ctx context.Context, ownerID string) ([]goalplan.Goal, error) {
	var goals []goalplan.Goal
	if err := s.transport.Get(ctx, ownerPath(ownerID, "goals"), nil, &goals); err != nil {
		return nil, errors.Wrap(err, "fetching goals")
	}
	for i := range goals {
		if goals[i].OwnerID == "" {
			goals[i].OwnerID = ownerID
		}
	}
	return goals, nil
}

// Incomes fetches the incomes of an owner
func (s *RemoteSource) Incomes(ctx context.Context, ownerID string) ([]goalplan.IncomeRecord, error) {
	var incomes []goalplan.IncomeRecord
	if err := s.transport.Get(ctx, ownerPath(ownerID, "incomes"), nil, &incomes); err != nil {
		return nil, errors.Wrap(err, "fetching incomes")
	}
	return incomes, nil
}

// Expenses fetches the expenses of an owner
func (s *RemoteSource) Expenses(ctx context.Context, ownerID string) ([]goalplan.ExpenseRecord, error) {
	var expenses []goalplan.ExpenseRecord
	if err := s.transport.Get(ctx, ownerPath(ownerID, "expenses"), nil, &expenses); err != nil {
		return nil, errors.Wrap(err, "fetching expenses")
	}
	return expenses, nil
}

func ownerPath(ownerID, collection string) string {
	return "/owners/" + url.PathEscape(ownerID) + "/" + collection
}
