package workers

import (
	"context"

	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/repositories"
	"github.com/cbodonnell/lastone/pkg/repositories/models"
)

type SaveSetResultWorker struct {
	repository     repositories.Repository
	saveResultChan <-chan *models.SetResult
}

type NewSaveSetResultWorkerOptions struct {
	Repository     repositories.Repository
	SaveResultChan <-chan *models.SetResult
}

// NewSaveSetResultWorker creates a new SaveSetResultWorker.
// The worker stores every completed set it receives until the
// channel is closed or the context is done.
func NewSaveSetResultWorker(opts NewSaveSetResultWorkerOptions) *SaveSetResultWorker {
	return &SaveSetResultWorker{
		repository:     opts.Repository,
		saveResultChan: opts.SaveResultChan,
	}
}

func (w *SaveSetResultWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case result, ok := <-w.saveResultChan:
			if !ok {
				return
			}
			w.saveSetResult(ctx, result)
		}
	}
}

func (w *SaveSetResultWorker) saveSetResult(ctx context.Context, result *models.SetResult) {
	if err := w.repository.SaveSetResult(ctx, result); err != nil {
		log.Error("Failed to save set %s: %v", result.ID, err)
		return
	}
	log.Info("Saved set %s", result.ID)
}
