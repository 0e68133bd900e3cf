package services

import (
	portsrepo "github.com/SscSPs/envelope_budget/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/SscSPs/envelope_budget/internal/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, recorder *metrics.Recorder) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Budgeting: NewBudgetingService(repos, WithMetrics(recorder)),
	}
}
