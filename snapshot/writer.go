package snapshot

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/TradeAdvisor/whale-radar-main/paper"
)

// Writer persists account snapshots off the caller's path. Schedule never
// blocks: snapshots land in a one-slot mailbox where a newer snapshot
// replaces an unserved older one. Callers must serialize Schedule calls in
// state order (the engine does so by scheduling under its mutex); a single
// goroutine then drains the mailbox, so writes reach disk strictly in
// schedule order and an old snapshot can never overwrite a newer one.
// Write failures are logged and dropped; the durable copy is stale until
// the next successful write.
type Writer struct {
	path string
	log  *logrus.Entry

	mailbox chan paper.AccountState
	quit    chan struct{}
	wg      sync.WaitGroup
}

func NewWriter(path string, log *logrus.Logger) *Writer {
	w := &Writer{
		path:    path,
		log:     log.WithField("component", "snapshot"),
		mailbox: make(chan paper.AccountState, 1),
		quit:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

// Schedule queues a snapshot for writing and returns immediately. If a
// previous snapshot is still waiting it is superseded; the replacement is
// always the newer state.
func (w *Writer) Schedule(snap paper.AccountState) {
	for {
		select {
		case w.mailbox <- snap:
			return
		default:
		}
		select {
		case <-w.mailbox:
		default:
		}
	}
}

// Close stops the writer after flushing any pending snapshot.
func (w *Writer) Close() {
	close(w.quit)
	w.wg.Wait()
}

func (w *Writer) run() {
	defer w.wg.Done()
	for {
		select {
		case snap := <-w.mailbox:
			w.write(snap)
		case <-w.quit:
			select {
			case snap := <-w.mailbox:
				w.write(snap)
			default:
			}
			return
		}
	}
}

func (w *Writer) write(snap paper.AccountState) {
	if err := Save(w.path, snap); err != nil {
		w.log.WithError(err).Warn("snapshot write failed, state kept in memory")
	}
}
