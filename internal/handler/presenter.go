package handler

import (
	"context"
	"sync"

	"github.com/olegiv/gov-portal/internal/portal"
)

// bufferedPresenter keeps the last rendered view of a portal and collects
// notifications until the browser fetches them. Deferred notifications
// rendered between requests are therefore delivered on the next poll.
type bufferedPresenter struct {
	mu      sync.Mutex
	handler portal.CommandHandler
	view    portal.ViewModel
	pending []portal.Notification
}

func (p *bufferedPresenter) Render(vm portal.ViewModel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = vm
	p.pending = append(p.pending, vm.Notifications...)
}

func (p *bufferedPresenter) OnCommand(h portal.CommandHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler = h
}

// dispatch sends cmd to the portal's registered handler.
func (p *bufferedPresenter) dispatch(ctx context.Context, cmd portal.Command) error {
	p.mu.Lock()
	h := p.handler
	p.mu.Unlock()
	return h(ctx, cmd)
}

// take returns the last view with every notification not yet delivered.
func (p *bufferedPresenter) take() portal.ViewModel {
	p.mu.Lock()
	defer p.mu.Unlock()
	vm := p.view
	vm.Notifications = p.pending
	p.pending = nil
	return vm
}
