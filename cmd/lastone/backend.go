package main

import (
	"context"
	"sync"

	"github.com/cbodonnell/lastone/pkg/api"
	"github.com/cbodonnell/lastone/pkg/clients"
	"github.com/cbodonnell/lastone/pkg/log"
	"github.com/cbodonnell/lastone/pkg/queue"
	"github.com/cbodonnell/lastone/pkg/repositories"
	"github.com/cbodonnell/lastone/pkg/repositories/models"
	"github.com/cbodonnell/lastone/pkg/state"
	"github.com/cbodonnell/lastone/pkg/workers"
)

const saveResultChannelSize = 16

// backend holds the services that run next to a session: the results
// history and, when serving, the API with its spectator feed.
type backend struct {
	repository     repositories.Repository
	saveResultChan chan *models.SetResult
	eventQueue     queue.Queue
	standings      state.StandingsManager
	server         *api.APIServer

	saveWG          sync.WaitGroup
	broadcastWG     sync.WaitGroup
	cancelBroadcast context.CancelFunc
}

type newBackendOptions struct {
	// Repository enables the results history when set
	Repository repositories.Repository
	// ServeAddr starts the API server and spectator feed when set
	ServeAddr   string
	AllowOrigin string
}

func startBackend(ctx context.Context, opts newBackendOptions) *backend {
	b := &backend{repository: opts.Repository}

	if opts.Repository != nil {
		b.saveResultChan = make(chan *models.SetResult, saveResultChannelSize)
		saveWorker := workers.NewSaveSetResultWorker(workers.NewSaveSetResultWorkerOptions{
			Repository:     opts.Repository,
			SaveResultChan: b.saveResultChan,
		})
		b.saveWG.Add(1)
		go func() {
			defer b.saveWG.Done()
			saveWorker.Start(ctx)
		}()
	}

	if opts.ServeAddr == "" {
		return b
	}

	b.eventQueue = queue.NewInMemoryQueue(queue.DefaultQueueSize)
	b.standings = state.NewInMemoryStandingsManager()
	spectatorEvents := clients.NewSpectatorEventManager()
	spectators := clients.NewSpectatorManager(clients.NewSpectatorManagerOptions{
		Events: spectatorEvents,
	})

	broadcastWorker := workers.NewBroadcastEventWorker(workers.NewBroadcastEventWorkerOptions{
		EventQueue: b.eventQueue,
		Spectators: spectators,
		Standings:  b.standings,
	})
	spectatorEvents.RegisterHandler(broadcastWorker.HandleSpectatorEvent)

	broadcastCtx, cancel := context.WithCancel(ctx)
	b.cancelBroadcast = cancel
	b.broadcastWG.Add(1)
	go func() {
		defer b.broadcastWG.Done()
		broadcastWorker.Start(broadcastCtx)
	}()

	b.server = api.NewAPIServer(api.NewAPIServerOptions{
		Addr:        opts.ServeAddr,
		AllowOrigin: opts.AllowOrigin,
		Repository:  opts.Repository,
		Standings:   b.standings,
		Spectators:  spectators,
	})
	go b.server.Start()

	return b
}

func (b *backend) appOptions(opts newAppOptions) newAppOptions {
	if b.saveResultChan != nil {
		opts.SaveResultChan = b.saveResultChan
	}
	if b.eventQueue != nil {
		opts.EventQueue = b.eventQueue
		opts.Standings = b.standings
	}
	return opts
}

// close waits for pending results to be saved, sends the last events to
// spectators and stops the server.
func (b *backend) close(ctx context.Context) {
	if b.saveResultChan != nil {
		close(b.saveResultChan)
		b.saveWG.Wait()
	}
	if b.cancelBroadcast != nil {
		b.cancelBroadcast()
		b.broadcastWG.Wait()
	}
	if b.server != nil {
		if err := b.server.Stop(ctx); err != nil {
			log.Error("Failed to stop server: %v", err)
		}
	}
	if b.repository != nil {
		if err := b.repository.Close(ctx); err != nil {
			log.Error("Failed to close repository: %v", err)
		}
	}
}
